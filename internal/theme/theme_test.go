package theme

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestDetectTermProfileTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		term string
		want TermProfile
	}{
		{name: "xterm", term: "xterm", want: TermProfile{Colors: 16, IsTTY: true}},
		{name: "xterm-256color", term: "xterm-256color", want: TermProfile{Colors: 256, IsTTY: true}},
		{name: "screen", term: "screen", want: TermProfile{Colors: 8, IsTTY: true}},
		{name: "tmux", term: "tmux", want: TermProfile{Colors: 256, IsTTY: true}},
		{name: "dumb", term: "dumb", want: TermProfile{Colors: 0, IsTTY: false}},
		{name: "empty", term: "", want: TermProfile{Colors: 0, IsTTY: false}},
		{name: "kitty truecolor", term: "xterm-kitty", want: TermProfile{Colors: 1 << 24, TrueColor: true, IsTTY: true}},
		{name: "unknown truecolor", term: "foot-truecolor", want: TermProfile{Colors: 1 << 24, TrueColor: true, IsTTY: true}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := detectTermProfile(tt.term)
			if got != tt.want {
				t.Fatalf("detectTermProfile(%q) = %+v, want %+v", tt.term, got, tt.want)
			}
		})
	}
}

func TestResolveImmutability(t *testing.T) {
	t.Parallel()

	first, err := Resolve(ModeDark, "wezterm")
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	first.Card.Background = "#000000"

	second, err := Resolve(ModeDark, "wezterm")
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if second.Card.Background != "#1F2937" {
		t.Fatalf("expected immutable palette, got %q", second.Card.Background)
	}
}

func TestResolveSnapshots(t *testing.T) {
	t.Parallel()

	for _, mode := range modes {
		mode := mode
		t.Run(string(mode), func(t *testing.T) {
			t.Parallel()
			got, err := Resolve(mode, "xterm-256color")
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if got != palettes[mode] {
				t.Fatalf("snapshot mismatch for %s:\n got=%+v\nwant=%+v", mode, got, palettes[mode])
			}
			if got.Mode != mode {
				t.Fatalf("bundle mode = %q, want %q", got.Mode, mode)
			}
		})
	}
}

func TestPalettesDifferBetweenModes(t *testing.T) {
	t.Parallel()

	light, dark := palettes[ModeLight], palettes[ModeDark]
	if light.Body == dark.Body || light.Card == dark.Card || light.Hero == dark.Hero {
		t.Fatal("light and dark palettes should differ on body, card and hero")
	}
}

func TestResolveUnknownMode(t *testing.T) {
	t.Parallel()

	_, err := Resolve(Mode("sepia"), "wezterm")
	if !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestMonochromeForNonTTY(t *testing.T) {
	t.Parallel()

	for _, term := range []string{"", "dumb"} {
		for _, mode := range modes {
			got, err := Resolve(mode, term)
			if err != nil {
				t.Fatalf("Resolve(%s, %q) unexpected error: %v", mode, term, err)
			}
			if got != monochromeBundle(mode) {
				t.Fatalf("Resolve(%s, %q) should be monochrome", mode, term)
			}
			if !got.Mono || got.Mode != mode {
				t.Fatalf("monochrome bundle lost mode: %+v", got)
			}
		}
	}
}

func TestModeCoverage(t *testing.T) {
	t.Parallel()

	if len(palettes) != len(modes) {
		t.Fatalf("mode coverage mismatch: palettes=%d modes=%d", len(palettes), len(modes))
	}
	for _, m := range modes {
		if _, ok := palettes[m]; !ok {
			t.Fatalf("missing palette for mode %q", m)
		}
	}
}

func TestResolveForceOverrides(t *testing.T) {
	t.Parallel()

	color, _, err := resolveWithProfile(ModeLight, ResolveOptions{Term: "dumb", ForceColor: true}, detectTermProfile)
	if err != nil {
		t.Fatalf("resolveWithProfile error: %v", err)
	}
	if color.Mono {
		t.Fatalf("force color should not return monochrome bundle")
	}

	mono, _, err := resolveWithProfile(ModeLight, ResolveOptions{Term: "wezterm", ForceMono: true}, detectTermProfile)
	if err != nil {
		t.Fatalf("resolveWithProfile error: %v", err)
	}
	if mono != monochromeBundle(ModeLight) {
		t.Fatalf("force mono should return monochrome bundle")
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Mode{"light": ModeLight, " DARK ": ModeDark} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMode("auto"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("ParseMode(auto) error = %v", err)
	}
	if ModeDark.Opposite() != ModeLight || ModeLight.Opposite() != ModeDark {
		t.Fatal("Opposite() should swap modes")
	}
}

func TestOptionsFromEnvLogsProfileWhenDebugging(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.NewWithOptions(&buf, log.Options{Formatter: log.LogfmtFormatter}))
	t.Cleanup(func() { log.SetDefault(prev) })

	t.Setenv("THEME_FORCE_MONO", "true")
	t.Setenv("THEME_DEBUG", "")
	if opts := OptionsFromEnv("xterm-256color"); !opts.ForceMono {
		t.Fatal("THEME_FORCE_MONO should set ForceMono")
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected log output without THEME_DEBUG: %q", buf.String())
	}

	t.Setenv("THEME_DEBUG", "1")
	OptionsFromEnv("xterm-256color")
	out := buf.String()
	for _, want := range []string{"event=theme_debug", "term=xterm-256color", "colors=256", "force_mono=true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("debug log missing %q: %q", want, out)
		}
	}
}
