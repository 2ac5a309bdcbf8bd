package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/nav"
	"portfolio-terminal/internal/section"
	"portfolio-terminal/internal/theme"
)

// compactWidth is the terminal width below which the navbar collapses into
// a menu.
const compactWidth = 80

// document is the scrollable page body built for one mode, width and role.
type document struct {
	body    string
	anchors []nav.Anchor
	mode    theme.Mode
	width   int
	role    int
}

// buildDocument renders hero, sections and footer, recording the line at
// which each section starts.
func buildDocument(st section.Styles, p *content.Portfolio, reg content.Registry, role, width, year int) document {
	w := section.ContentWidth(width)

	blocks := []string{section.Hero(st, p.Hero, role, w)}
	anchors := make([]nav.Anchor, 0, reg.Len())
	offset := lipgloss.Height(blocks[0]) + 1

	for _, d := range reg.Entries() {
		block := section.Render(st, d, w)
		if block == "" {
			continue
		}
		anchors = append(anchors, nav.Anchor{ID: d.ID, Offset: offset})
		blocks = append(blocks, block)
		offset += lipgloss.Height(block) + 1
	}
	blocks = append(blocks, section.Footer(st, p.Owner, year, w))

	return document{
		body:    strings.Join(blocks, "\n\n"),
		anchors: anchors,
		mode:    st.Mode,
		width:   width,
		role:    role,
	}
}

type navbarView struct {
	brand    string
	entries  []content.Descriptor
	active   content.SectionID
	focus    int
	scrolled bool
	compact  bool
	dark     bool
	width    int
}

func renderNavbar(st section.Styles, v navbarView) string {
	bar := st.NavbarTransparent
	if v.scrolled {
		bar = st.NavbarOpaque
	}

	// The toggle shows the mode it switches to.
	icon := "☾"
	if v.dark {
		icon = "☀"
	}
	toggle := st.Toggle.Render(icon)

	var items []string
	if v.compact {
		items = append(items, st.NavItem.Render("≡ menu [m]"))
	} else {
		for i, d := range v.entries {
			label := d.Label
			if i == v.focus {
				label = "›" + label
			}
			style := st.NavItem
			if d.ID == v.active {
				style = st.NavActive
			}
			items = append(items, style.Render(label))
		}
	}
	menu := strings.Join(items, " ")

	inner := v.width - bar.GetHorizontalFrameSize()
	left := menu
	if brand := st.Accent.Render(v.brand); lipgloss.Width(brand)+lipgloss.Width(menu)+lipgloss.Width(toggle)+3 <= inner {
		left = brand + "  " + menu
	}
	gap := inner - lipgloss.Width(left) - lipgloss.Width(toggle)
	line := left + strings.Repeat(" ", max(gap, 1)) + toggle
	return bar.Width(max(v.width, 1)).MaxHeight(1).Render(line)
}

func renderMenu(st section.Styles, entries []content.Descriptor, cursor, width int) string {
	lines := make([]string, 0, len(entries))
	for i, d := range entries {
		if i == cursor {
			lines = append(lines, st.NavActive.Render("› "+d.Label))
			continue
		}
		lines = append(lines, st.NavItem.Render("  "+d.Label))
	}
	return st.NavbarOpaque.Width(max(width, 1)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
