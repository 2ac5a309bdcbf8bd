package section

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"portfolio-terminal/internal/content"
)

// Render dispatches d to its section renderer. Unknown content renders
// nothing.
func Render(st Styles, d content.Descriptor, width int) string {
	switch c := d.Content.(type) {
	case content.About:
		return About(st, c, width)
	case content.Education:
		return Education(st, c, width)
	case content.Skills:
		return Skills(st, c, width)
	case content.Projects:
		return Projects(st, c, width)
	case content.Experience:
		return Experience(st, c, width)
	case content.Certifications:
		return Certifications(st, c, width)
	case content.Contact:
		return Contact(st, c, width)
	}
	return ""
}

// ProjectsAction labels the hero's shortcut to the projects section.
const ProjectsAction = "View Projects"

// Hero renders the greeting block with the role at index role.
func Hero(st Styles, h content.Hero, role int, width int) string {
	w := ContentWidth(width)
	inner := w - st.Hero.GetHorizontalFrameSize()

	lines := []string{
		st.Body.Render(h.Greeting),
		st.Accent.Render(strings.TrimSpace(h.Name + " " + h.Emoji)),
	}
	if len(h.Roles) > 0 {
		idx := ((role % len(h.Roles)) + len(h.Roles)) % len(h.Roles)
		lines = append(lines, st.Heading.UnsetMarginBottom().Render(h.Roles[idx]))
	}
	if h.Tagline != "" {
		lines = append(lines, "", st.Body.Width(inner).Render(h.Tagline))
	}
	lines = append(lines, "")
	if !h.CV.IsZero() {
		label := h.CV.Label
		if label == "" {
			label = "Download CV"
		}
		lines = append(lines, st.Muted.Render(fmt.Sprintf("[c] %s  %s", label, h.CV.Path)))
	}
	lines = append(lines, st.Muted.Render("[p] "+ProjectsAction))
	return st.Hero.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// About renders the profile card, the markdown paragraphs and the facts.
func About(st Styles, a content.About, width int) string {
	w := ContentWidth(width)

	var profile []string
	if a.Image.Path != "" {
		label := a.Image.Label
		if label == "" {
			label = "profile"
		}
		profile = append(profile, st.Muted.Render(fmt.Sprintf("[image: %s] %s", label, a.Image.Path)))
	}
	if a.Badge != "" {
		profile = append(profile, st.Chip.Render(a.Badge))
	}

	parts := []string{heading(st, a.Heading)}
	if len(profile) > 0 {
		parts = append(parts, lipgloss.JoinVertical(lipgloss.Left, profile...), "")
	}
	if len(a.Paragraphs) > 0 {
		parts = append(parts, renderMarkdown(st, strings.Join(a.Paragraphs, "\n\n"), w))
	}
	for _, f := range a.Facts {
		parts = append(parts, st.Body.Render(strings.TrimSpace(f.Icon+" "+f.Text)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Education renders one card per institution.
func Education(st Styles, e content.Education, width int) string {
	w := ContentWidth(width)
	inner := w - st.Card.GetHorizontalFrameSize()

	parts := []string{heading(st, e.Heading)}
	for _, item := range e.Items {
		lines := []string{
			st.Accent.Render(item.Institution),
			st.Body.Width(inner).Render(item.Degree),
			st.Muted.Render(joinNonEmpty(" · ", item.Period, item.Location)),
		}
		for _, d := range item.Details {
			lines = append(lines, st.Body.Width(inner).Render("• "+d))
		}
		parts = append(parts, st.Card.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Skills renders one card per category with its skills as chips.
func Skills(st Styles, s content.Skills, width int) string {
	w := ContentWidth(width)
	inner := w - st.Card.GetHorizontalFrameSize()

	parts := []string{heading(st, s.Heading)}
	for _, cat := range s.Categories {
		title := st.Accent.Render(strings.TrimSpace(cat.Icon + " " + cat.Title))
		parts = append(parts, st.Card.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, chips(st, cat.Skills, inner))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Projects renders one card per project.
func Projects(st Styles, p content.Projects, width int) string {
	w := ContentWidth(width)
	inner := w - st.Card.GetHorizontalFrameSize()

	parts := []string{heading(st, p.Heading)}
	for _, item := range p.Items {
		var lines []string
		if item.HasThumbnail() {
			lines = append(lines, st.Muted.Render("[image] "+item.Image))
		} else if item.Image != "" {
			lines = append(lines, item.Image)
		}
		lines = append(lines,
			st.Accent.Render(item.Name),
			st.Body.Width(inner).Render(item.Description),
		)
		if len(item.TechStack) > 0 {
			lines = append(lines, chips(st, item.TechStack, inner))
		}
		if item.Contribution != "" {
			lines = append(lines, st.Muted.Width(inner).Render("My contribution: "+item.Contribution))
		}
		var links []string
		if item.CodeURL != "" {
			links = append(links, st.Link.Render("Code "+item.CodeURL))
		}
		if item.DemoURL != "" {
			links = append(links, st.Link.Render("Demo "+item.DemoURL))
		}
		if len(links) > 0 {
			lines = append(lines, strings.Join(links, "  "))
		}
		parts = append(parts, st.Card.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Experience renders one card per position.
func Experience(st Styles, e content.Experience, width int) string {
	w := ContentWidth(width)
	inner := w - st.Card.GetHorizontalFrameSize()

	parts := []string{heading(st, e.Heading)}
	for _, item := range e.Items {
		lines := []string{
			st.Accent.Render(item.Title),
			st.Body.Render(item.Company),
			st.Muted.Width(inner).Render(joinNonEmpty(" · ", item.Period, item.Location)),
		}
		if item.Description != "" {
			lines = append(lines, "", st.Body.Width(inner).Render(item.Description))
		}
		parts = append(parts, st.Card.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Certifications renders the list in two columns when there is room.
func Certifications(st Styles, c content.Certifications, width int) string {
	w := ContentWidth(width)

	cols := 1
	if w >= 70 {
		cols = 2
	}
	cellWidth := w / cols
	inner := cellWidth - st.Card.GetHorizontalFrameSize()

	cells := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		body := lipgloss.JoinVertical(lipgloss.Left,
			st.Accent.Width(inner).Render(strings.TrimSpace(item.Icon+" "+item.Name)),
			st.Muted.Render(item.Issuer),
		)
		cells = append(cells, st.Card.Width(cellWidth).Render(body))
	}

	parts := []string{heading(st, c.Heading)}
	for i := 0; i < len(cells); i += cols {
		end := min(i+cols, len(cells))
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Contact renders the blurb, the outbound links and the address.
func Contact(st Styles, c content.Contact, width int) string {
	w := ContentWidth(width)

	parts := []string{heading(st, c.Heading)}
	if c.Title != "" {
		parts = append(parts, st.Accent.Render(c.Title))
	}
	if c.Blurb != "" {
		parts = append(parts, st.Body.Width(w).Render(c.Blurb), "")
	}
	for _, l := range c.Links {
		parts = append(parts, fmt.Sprintf("%s %s  %s", linkIcon(l.Kind), st.Body.Render(l.Label), st.Link.Render(l.Href)))
	}
	if c.Address != "" {
		parts = append(parts, "", st.Muted.Width(w).Render("📍 "+c.Address))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Footer renders the copyright line.
func Footer(st Styles, owner string, year int, width int) string {
	w := ContentWidth(width)
	return st.Footer.Width(w).Align(lipgloss.Center).Render(fmt.Sprintf("© %d %s. All rights reserved.", year, owner))
}

func linkIcon(kind content.LinkKind) string {
	switch kind {
	case content.LinkEmail:
		return "✉"
	case content.LinkPhone:
		return "☎"
	case content.LinkLinkedIn:
		return "in"
	case content.LinkGitHub:
		return "gh"
	}
	return "•"
}

// chips lays out items as chips, wrapping to new rows at width.
func chips(st Styles, items []string, width int) string {
	var (
		rows    []string
		current []string
		used    int
	)
	for _, item := range items {
		chip := st.Chip.Render(item)
		cw := lipgloss.Width(chip) + 1
		if used > 0 && used+cw > width {
			rows = append(rows, strings.Join(current, " "))
			current, used = nil, 0
		}
		current = append(current, chip)
		used += cw
	}
	if len(current) > 0 {
		rows = append(rows, strings.Join(current, " "))
	}
	return strings.Join(rows, "\n")
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
