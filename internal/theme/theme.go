package theme

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Mode is the page-wide visual mode.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ModeFor maps the boolean theme flag to a Mode.
func ModeFor(dark bool) Mode {
	if dark {
		return ModeDark
	}
	return ModeLight
}

// Opposite returns the mode a toggle would switch to.
func (m Mode) Opposite() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// ParseMode accepts "light" or "dark" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight:
		return ModeLight, nil
	case ModeDark:
		return ModeDark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// SemanticRoles defines stable semantic color slots used across the UI.
type SemanticRoles struct {
	Primary    string
	Accent     string
	Muted      string
	Border     string
	Surface    string
	SurfaceAlt string
}

// Style describes presentational attributes for a UI element.
type Style struct {
	Foreground string
	Background string
	Bold       bool
}

// StyleSet provides strongly-typed styles for every page surface.
type StyleSet struct {
	NavbarTransparent Style
	NavbarOpaque      Style
	NavItem           Style
	NavActive         Style
	Toggle            Style
	Hero              Style
	Heading           Style
	Body              Style
	Muted             Style
	Card              Style
	Chip              Style
	Accent            Style
	Link              Style
	Footer            Style
}

// Bundle contains all display styles needed by one render pass.
type Bundle struct {
	StyleSet
	Roles SemanticRoles
	Mode  Mode
	Mono  bool
}

// TermProfile describes terminal rendering capabilities derived from TERM.
type TermProfile struct {
	Colors    int
	TrueColor bool
	IsTTY     bool
}

// TermProfileDetector maps a TERM value to a terminal capability profile.
type TermProfileDetector func(term string) TermProfile

// ErrUnknownMode is returned when a requested mode is not known.
var ErrUnknownMode = errors.New("unknown theme mode")

var (
	termProfileCache sync.Map
	knownProfiles    = map[string]TermProfile{
		"dumb":           {Colors: 0, TrueColor: false, IsTTY: false},
		"ansi":           {Colors: 8, TrueColor: false, IsTTY: true},
		"linux":          {Colors: 16, TrueColor: false, IsTTY: true},
		"xterm":          {Colors: 16, TrueColor: false, IsTTY: true},
		"xterm-256color": {Colors: 256, TrueColor: false, IsTTY: true},
		"screen":         {Colors: 8, TrueColor: false, IsTTY: true},
		"tmux":           {Colors: 256, TrueColor: false, IsTTY: true},
		"vt100":          {Colors: 8, TrueColor: false, IsTTY: true},
		"xterm-kitty":    {Colors: 1 << 24, TrueColor: true, IsTTY: true},
		"wezterm":        {Colors: 1 << 24, TrueColor: true, IsTTY: true},
	}
)

// Palettes follow the page's gray/blue scheme with a purple accent.
var palettes = map[Mode]Bundle{
	ModeLight: {
		StyleSet: StyleSet{
			NavbarTransparent: Style{Foreground: "#374151"},
			NavbarOpaque:      Style{Foreground: "#374151", Background: "#F3F4F6"},
			NavItem:           Style{Foreground: "#374151"},
			NavActive:         Style{Foreground: "#2563EB", Bold: true},
			Toggle:            Style{Foreground: "#374151", Background: "#E5E7EB"},
			Hero:              Style{Foreground: "#1F2937", Background: "#EFF6FF", Bold: true},
			Heading:           Style{Foreground: "#1F2937", Bold: true},
			Body:              Style{Foreground: "#4B5563"},
			Muted:             Style{Foreground: "#6B7280"},
			Card:              Style{Foreground: "#1F2937", Background: "#F9FAFB"},
			Chip:              Style{Foreground: "#1D4ED8", Background: "#DBEAFE"},
			Accent:            Style{Foreground: "#2563EB", Bold: true},
			Link:              Style{Foreground: "#2563EB"},
			Footer:            Style{Foreground: "#D1D5DB", Background: "#1F2937"},
		},
		Roles: SemanticRoles{Primary: "#2563EB", Accent: "#9333EA", Muted: "#6B7280", Border: "#D1D5DB", Surface: "#FFFFFF", SurfaceAlt: "#F9FAFB"},
		Mode:  ModeLight,
	},
	ModeDark: {
		StyleSet: StyleSet{
			NavbarTransparent: Style{Foreground: "#D1D5DB"},
			NavbarOpaque:      Style{Foreground: "#D1D5DB", Background: "#1F2937"},
			NavItem:           Style{Foreground: "#D1D5DB"},
			NavActive:         Style{Foreground: "#60A5FA", Bold: true},
			Toggle:            Style{Foreground: "#FDE047", Background: "#374151"},
			Hero:              Style{Foreground: "#FFFFFF", Background: "#111827", Bold: true},
			Heading:           Style{Foreground: "#FFFFFF", Bold: true},
			Body:              Style{Foreground: "#D1D5DB"},
			Muted:             Style{Foreground: "#9CA3AF"},
			Card:              Style{Foreground: "#FFFFFF", Background: "#1F2937"},
			Chip:              Style{Foreground: "#93C5FD", Background: "#1E3A8A"},
			Accent:            Style{Foreground: "#60A5FA", Bold: true},
			Link:              Style{Foreground: "#60A5FA"},
			Footer:            Style{Foreground: "#9CA3AF", Background: "#111827"},
		},
		Roles: SemanticRoles{Primary: "#60A5FA", Accent: "#A855F7", Muted: "#9CA3AF", Border: "#374151", Surface: "#111827", SurfaceAlt: "#1F2937"},
		Mode:  ModeDark,
	},
}

var modes = [...]Mode{ModeLight, ModeDark}

// Resolve resolves a concrete style bundle for a mode and TERM value.
//
// Terminals that are not TTYs (TERM empty or "dumb") get a monochrome
// bundle that still carries the requested mode.
func Resolve(mode Mode, term string) (Bundle, error) {
	return resolveWith(mode, ResolveOptions{Term: term}, detectTermProfile)
}

// ResolveWithOptions resolves a bundle honoring ForceColor/ForceMono.
func ResolveWithOptions(mode Mode, opts ResolveOptions) (Bundle, error) {
	return resolveWith(mode, opts, detectTermProfile)
}

// ResolveWithDetector resolves a bundle using a caller-provided TERM detector.
func ResolveWithDetector(mode Mode, opts ResolveOptions, detector TermProfileDetector) (Bundle, error) {
	if detector == nil {
		detector = detectTermProfile
	}
	return resolveWith(mode, opts, detector)
}

// MustResolve is Resolve for modes produced by this package.
func MustResolve(mode Mode, opts ResolveOptions) Bundle {
	b, err := resolveWith(mode, opts, detectTermProfile)
	if err != nil {
		panic(err)
	}
	return b
}

// DetectTermProfile maps TERM to a terminal capability profile.
func DetectTermProfile(term string) TermProfile {
	return detectTermProfile(term)
}

// OptionsFromEnv reads runtime overrides:
//   - THEME_FORCE_COLOR (boolean)
//   - THEME_FORCE_MONO (boolean)
//
// When THEME_DEBUG is true, the resolved TERM profile is logged.
func OptionsFromEnv(term string) ResolveOptions {
	opts := ResolveOptions{
		Term:       term,
		ForceColor: parseBoolEnv("THEME_FORCE_COLOR"),
		ForceMono:  parseBoolEnv("THEME_FORCE_MONO"),
	}
	if parseBoolEnv("THEME_DEBUG") {
		profile := detectTermProfile(term)
		log.Info("term profile", "event", "theme_debug", "term", term,
			"colors", profile.Colors, "truecolor", profile.TrueColor, "tty", profile.IsTTY,
			"force_color", opts.ForceColor, "force_mono", opts.ForceMono)
	}
	return opts
}

// ResolveOptions controls how a bundle is selected once a TERM profile exists.
type ResolveOptions struct {
	Term       string
	ForceColor bool
	ForceMono  bool
}

func resolveWith(mode Mode, opts ResolveOptions, detector TermProfileDetector) (Bundle, error) {
	bundle, _, err := resolveWithProfile(mode, opts, detector)
	return bundle, err
}

func resolveWithProfile(mode Mode, opts ResolveOptions, detector TermProfileDetector) (Bundle, TermProfile, error) {
	base, ok := palettes[mode]
	if !ok {
		return Bundle{}, TermProfile{}, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}

	profile := detector(strings.TrimSpace(opts.Term))
	if shouldUseMonochrome(profile, opts) {
		return monochromeBundle(mode), profile, nil
	}
	return base, profile, nil
}

func parseBoolEnv(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func shouldUseMonochrome(profile TermProfile, opts ResolveOptions) bool {
	if opts.ForceMono {
		return true
	}
	if opts.ForceColor {
		return false
	}
	return !profile.IsTTY || profile.Colors < 8
}

func detectTermProfile(term string) TermProfile {
	norm := strings.ToLower(strings.TrimSpace(term))
	if cached, ok := termProfileCache.Load(norm); ok {
		return cached.(TermProfile)
	}

	profile := detectTermProfileUncached(norm)
	termProfileCache.Store(norm, profile)
	return profile
}

func detectTermProfileUncached(norm string) TermProfile {
	if norm == "" {
		return TermProfile{Colors: 0, TrueColor: false, IsTTY: false}
	}

	if p, ok := knownProfiles[norm]; ok {
		return p
	}

	profile := TermProfile{Colors: 16, TrueColor: false, IsTTY: true}
	if strings.Contains(norm, "truecolor") || strings.Contains(norm, "24bit") || strings.Contains(norm, "kitty") || strings.Contains(norm, "wezterm") {
		profile.TrueColor = true
		profile.Colors = 1 << 24
	}
	if strings.Contains(norm, "256") {
		profile.Colors = 256
	}
	if strings.Contains(norm, "dumb") {
		profile = TermProfile{Colors: 0, TrueColor: false, IsTTY: false}
	}
	if strings.Contains(norm, "screen") {
		profile.Colors = 8
	}

	return profile
}

// monochromeBundle keeps bold emphasis and drops every color. Backgrounds
// are left empty so the terminal's own colors show through in either mode.
func monochromeBundle(mode Mode) Bundle {
	plain := Style{}
	bold := Style{Bold: true}
	return Bundle{
		StyleSet: StyleSet{
			NavbarTransparent: plain,
			NavbarOpaque:      plain,
			NavItem:           plain,
			NavActive:         bold,
			Toggle:            plain,
			Hero:              bold,
			Heading:           bold,
			Body:              plain,
			Muted:             plain,
			Card:              plain,
			Chip:              plain,
			Accent:            bold,
			Link:              plain,
			Footer:            plain,
		},
		Mode: mode,
		Mono: true,
	}
}
