package theme

import (
	"sync"
	"testing"
)

type recordingMarker struct {
	calls []bool
}

func (r *recordingMarker) MarkDark(dark bool) { r.calls = append(r.calls, dark) }

func (r *recordingMarker) last() (bool, bool) {
	if len(r.calls) == 0 {
		return false, false
	}
	return r.calls[len(r.calls)-1], true
}

func TestNewHolderDefaultsToLight(t *testing.T) {
	t.Parallel()

	marker := &recordingMarker{}
	h := NewHolder(PreferNone, marker)
	if h.IsDark() {
		t.Fatal("absent preference should start light")
	}
	if got, ok := marker.last(); !ok || got {
		t.Fatalf("root marker = %v (applied=%v), want cleared", got, ok)
	}
}

func TestNewHolderDarkPreferenceMarksRootImmediately(t *testing.T) {
	t.Parallel()

	marker := &recordingMarker{}
	h := NewHolder(PreferDark, marker)
	if !h.IsDark() || h.Mode() != ModeDark {
		t.Fatal("dark preference should start dark")
	}
	if got, ok := marker.last(); !ok || !got {
		t.Fatal("root should be marked dark before any interaction")
	}
}

func TestToggleUpdatesMarker(t *testing.T) {
	t.Parallel()

	marker := &recordingMarker{}
	h := NewHolder(PreferDark, marker)

	if h.Toggle() {
		t.Fatal("Toggle() from dark should return false")
	}
	if got, _ := marker.last(); got {
		t.Fatal("root marker should be cleared after toggling to light")
	}
	if !h.Toggle() {
		t.Fatal("Toggle() from light should return true")
	}
	if got, _ := marker.last(); !got {
		t.Fatal("root marker should be set after toggling to dark")
	}
}

func TestEvenTogglesRestoreFlag(t *testing.T) {
	t.Parallel()

	for _, pref := range []Preference{PreferNone, PreferLight, PreferDark} {
		h := NewHolder(pref, nil)
		start := h.IsDark()
		for i := 0; i < 6; i++ {
			h.Toggle()
		}
		if h.IsDark() != start {
			t.Fatalf("pref %s: six toggles changed the flag", pref)
		}
	}
}

func TestConcurrentTogglesKeepParity(t *testing.T) {
	t.Parallel()

	var count int
	var mu sync.Mutex
	h := NewHolder(PreferLight, MarkerFunc(func(bool) {
		mu.Lock()
		count++
		mu.Unlock()
	}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Toggle()
		}()
	}
	wg.Wait()

	if h.IsDark() {
		t.Fatal("ten toggles should end light")
	}
	if count != 11 {
		t.Fatalf("marker calls = %d, want 11", count)
	}
}

func TestDetectPreference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		environ []string
		want    Preference
	}{
		{name: "empty", environ: nil, want: PreferNone},
		{name: "explicit dark", environ: []string{"PORTFOLIO_THEME=dark"}, want: PreferDark},
		{name: "explicit light beats colorfgbg", environ: []string{"COLORFGBG=15;0", "PORTFOLIO_THEME=Light"}, want: PreferLight},
		{name: "colorfgbg dark", environ: []string{"COLORFGBG=15;0"}, want: PreferDark},
		{name: "colorfgbg three fields", environ: []string{"COLORFGBG=0;default;15"}, want: PreferLight},
		{name: "colorfgbg garbage", environ: []string{"COLORFGBG=x;y"}, want: PreferNone},
		{name: "unknown explicit value", environ: []string{"PORTFOLIO_THEME=auto"}, want: PreferNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectPreference(tt.environ); got != tt.want {
				t.Fatalf("DetectPreference(%v) = %s, want %s", tt.environ, got, tt.want)
			}
		})
	}
}
