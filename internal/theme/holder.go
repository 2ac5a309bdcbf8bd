package theme

import (
	"strconv"
	"strings"
	"sync"
)

// Preference is the viewer's color-scheme preference as reported by their
// client at load time.
type Preference int

const (
	PreferNone Preference = iota
	PreferLight
	PreferDark
)

func (p Preference) String() string {
	switch p {
	case PreferLight:
		return "light"
	case PreferDark:
		return "dark"
	}
	return "none"
}

// PreferenceEnv is the session environment variable a client can set to
// choose its initial mode, e.g. `ssh -o SetEnv=PORTFOLIO_THEME=dark`.
const PreferenceEnv = "PORTFOLIO_THEME"

// ParsePreference maps "light"/"dark" to a preference. Anything else is
// treated as no preference.
func ParsePreference(s string) Preference {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return PreferLight
	case "dark":
		return PreferDark
	}
	return PreferNone
}

// DetectPreference inspects a session environment. PORTFOLIO_THEME wins;
// otherwise the background index of COLORFGBG ("fg;bg") decides, where the
// low ANSI colors other than 7 are dark backgrounds.
func DetectPreference(environ []string) Preference {
	var colorfgbg string
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		switch key {
		case PreferenceEnv:
			if p := ParsePreference(value); p != PreferNone {
				return p
			}
		case "COLORFGBG":
			colorfgbg = value
		}
	}
	return preferenceFromColorFGBG(colorfgbg)
}

func preferenceFromColorFGBG(v string) Preference {
	if v == "" {
		return PreferNone
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return PreferNone
	}
	if (bg >= 0 && bg <= 6) || bg == 8 {
		return PreferDark
	}
	return PreferLight
}

// Marker receives the document-root dark marker. It is set when the flag is
// dark and cleared when it is light.
type Marker interface {
	MarkDark(dark bool)
}

// MarkerFunc adapts a function to Marker.
type MarkerFunc func(dark bool)

// MarkDark implements Marker.
func (f MarkerFunc) MarkDark(dark bool) { f(dark) }

// Holder owns the single page-wide dark flag.
type Holder struct {
	mu     sync.RWMutex
	dark   bool
	marker Marker
}

// NewHolder initializes the flag from pref (light when absent) and applies
// the root marker before returning, so the first render is already correct.
func NewHolder(pref Preference, marker Marker) *Holder {
	h := &Holder{dark: pref == PreferDark, marker: marker}
	h.apply(h.dark)
	return h
}

// IsDark reports the current flag.
func (h *Holder) IsDark() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dark
}

// Mode reports the current flag as a Mode.
func (h *Holder) Mode() Mode {
	return ModeFor(h.IsDark())
}

// Toggle flips the flag, updates the root marker and returns the new value.
func (h *Holder) Toggle() bool {
	h.mu.Lock()
	h.dark = !h.dark
	dark := h.dark
	h.apply(dark)
	h.mu.Unlock()
	return dark
}

func (h *Holder) apply(dark bool) {
	if h.marker != nil {
		h.marker.MarkDark(dark)
	}
}
