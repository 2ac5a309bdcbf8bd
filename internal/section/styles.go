// Package section renders each portfolio section as terminal text.
//
// Every renderer is a pure function of its Styles, its own content and the
// available width.
package section

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"portfolio-terminal/internal/theme"
)

const (
	minWidth = 24
	maxWidth = 100
)

// Styles are the lipgloss styles derived from one theme bundle.
type Styles struct {
	Mode theme.Mode
	Mono bool
	// Profile is the color profile of the renderer the styles were built on.
	Profile termenv.Profile

	NavbarTransparent lipgloss.Style
	NavbarOpaque      lipgloss.Style
	NavItem           lipgloss.Style
	NavActive         lipgloss.Style
	Toggle            lipgloss.Style
	Hero              lipgloss.Style
	Heading           lipgloss.Style
	Body              lipgloss.Style
	Muted             lipgloss.Style
	Card              lipgloss.Style
	Chip              lipgloss.Style
	Accent            lipgloss.Style
	Link              lipgloss.Style
	Footer            lipgloss.Style
}

// NewStyles builds Styles for b on renderer r. A nil renderer uses the
// process default.
func NewStyles(r *lipgloss.Renderer, b theme.Bundle) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	mk := func(s theme.Style) lipgloss.Style {
		st := r.NewStyle().Bold(s.Bold)
		if s.Foreground != "" {
			st = st.Foreground(lipgloss.Color(s.Foreground))
		}
		if s.Background != "" {
			st = st.Background(lipgloss.Color(s.Background))
		}
		return st
	}

	card := mk(b.Card).Padding(0, 1).Border(lipgloss.RoundedBorder())
	if b.Mono {
		card = card.Border(lipgloss.NormalBorder())
	} else {
		card = card.BorderForeground(lipgloss.Color(b.Roles.Border))
	}

	return Styles{
		Mode:              b.Mode,
		Mono:              b.Mono,
		Profile:           r.ColorProfile(),
		NavbarTransparent: mk(b.NavbarTransparent).Padding(0, 1),
		NavbarOpaque:      mk(b.NavbarOpaque).Padding(0, 1),
		NavItem:           mk(b.NavItem),
		NavActive:         mk(b.NavActive).Underline(!b.Mono),
		Toggle:            mk(b.Toggle).Padding(0, 1),
		Hero:              mk(b.Hero).Padding(1, 2),
		Heading:           mk(b.Heading).MarginBottom(1),
		Body:              mk(b.Body),
		Muted:             mk(b.Muted),
		Card:              card,
		Chip:              mk(b.Chip).Padding(0, 1),
		Accent:            mk(b.Accent),
		Link:              mk(b.Link).Underline(!b.Mono),
		Footer:            mk(b.Footer).Padding(1, 2),
	}
}

// ContentWidth clamps a terminal width to the readable column.
func ContentWidth(width int) int {
	return min(max(width, minWidth), maxWidth)
}

var upper = cases.Upper(language.English)

func heading(st Styles, text string) string {
	if st.Mono {
		text = upper.String(text)
	}
	return st.Heading.Render(text)
}
