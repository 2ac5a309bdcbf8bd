package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"portfolio-terminal/internal/theme"
	"portfolio-terminal/internal/tui"
)

const defaultRenderWidth = 100

func newRenderCmd(a *app) *cobra.Command {
	var (
		themeFlag string
		width     int
		color     string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the terminal page once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.portfolio()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderer, err := rendererFor(out, color)
			if err != nil {
				return err
			}
			mode, err := renderMode(themeFlag, renderer)
			if err != nil {
				return err
			}
			tui.MarkRenderer(renderer).MarkDark(mode == theme.ModeDark)

			opts := theme.OptionsFromEnv(os.Getenv("TERM"))
			if color == "always" {
				opts.ForceColor = true
			}
			page, err := tui.RenderDocument(p, tui.RenderOptions{
				Mode:     mode,
				Width:    width,
				Theme:    opts,
				Renderer: renderer,
			})
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, page)
			return err
		},
	}

	cmd.Flags().StringVar(&themeFlag, "theme", "auto", "light, dark or auto")
	cmd.Flags().IntVar(&width, "width", defaultRenderWidth, "page width in columns")
	cmd.Flags().StringVar(&color, "color", "auto", "auto, always or never")
	return cmd
}

func rendererFor(w io.Writer, color string) (*lipgloss.Renderer, error) {
	r := lipgloss.NewRenderer(w)
	switch color {
	case "auto":
	case "always":
		r.SetColorProfile(termenv.TrueColor)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	default:
		return nil, fmt.Errorf("--color must be auto, always or never, got %q", color)
	}
	return r, nil
}

// renderMode resolves --theme. auto follows the environment's preference and
// otherwise asks a color-capable terminal for its background.
func renderMode(flag string, r *lipgloss.Renderer) (theme.Mode, error) {
	if flag != "auto" {
		return theme.ParseMode(flag)
	}
	switch theme.DetectPreference(os.Environ()) {
	case theme.PreferDark:
		return theme.ModeDark, nil
	case theme.PreferLight:
		return theme.ModeLight, nil
	}
	if r.ColorProfile() != termenv.Ascii && r.HasDarkBackground() {
		return theme.ModeDark, nil
	}
	return theme.ModeLight, nil
}
