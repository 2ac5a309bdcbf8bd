// Package web renders the portfolio as a single HTML page.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/nav"
	"portfolio-terminal/internal/theme"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// Root is the document root of one page. The holder marks it dark through
// MarkDark; the template writes Class onto <html>.
type Root struct {
	dark bool
}

// MarkDark implements theme.Marker.
func (r *Root) MarkDark(dark bool) { r.dark = dark }

// Class is the class attribute of <html>.
func (r *Root) Class() string {
	if r.dark {
		return "dark"
	}
	return ""
}

// NavEntry is one navbar link.
type NavEntry struct {
	ID    content.SectionID
	Label string
	Href  string
}

// SectionView pairs a section with its pre-rendered body.
type SectionView struct {
	ID    content.SectionID
	Label string
	Data  any
	HTML  template.HTML
}

// AboutView is the About content with its paragraphs converted to HTML.
type AboutView struct {
	content.About
	HTML []template.HTML
}

// ProjectView is a project with its thumbnail resolved to an href. Emoji
// images leave Thumbnail empty.
type ProjectView struct {
	content.Project
	Thumbnail string
}

// ProjectsView is the Projects content with resolved thumbnails.
type ProjectsView struct {
	Heading string
	Items   []ProjectView
}

// PageOptions tune links that differ between the live server and a static
// export.
type PageOptions struct {
	Year int
	// ToggleHref returns the link that switches to the given mode.
	ToggleHref func(theme.Mode) string
	// AssetHref maps an asset path such as /assets/cv.pdf to the href the
	// page uses. Nil keeps paths as they are.
	AssetHref func(string) string
	CVHref    string
}

// Page is everything the page template needs.
type Page struct {
	Title      string
	Owner      string
	RootClass  string
	Mode       theme.Mode
	ToggleMode theme.Mode
	ToggleHref string
	ToggleIcon string
	LightVars  template.CSS
	DarkVars   template.CSS
	Threshold  int
	Hero       content.Hero
	CVHref     string
	Nav        []NavEntry
	Sections   []SectionView
	Year       int
}

// BuildPage derives the page for p from the holder's current mode.
func BuildPage(p *content.Portfolio, holder *theme.Holder, root *Root, opts PageOptions) (Page, error) {
	mode := holder.Mode()
	if opts.ToggleHref == nil {
		opts.ToggleHref = func(m theme.Mode) string { return "?theme=" + string(m) }
	}
	if opts.AssetHref == nil {
		opts.AssetHref = func(path string) string { return path }
	}
	if opts.CVHref == "" && !p.Hero.CV.IsZero() {
		opts.CVHref = opts.AssetHref(p.Hero.CV.Path)
	}

	light, err := theme.ResolveWithOptions(theme.ModeLight, theme.ResolveOptions{ForceColor: true})
	if err != nil {
		return Page{}, err
	}
	dark, err := theme.ResolveWithOptions(theme.ModeDark, theme.ResolveOptions{ForceColor: true})
	if err != nil {
		return Page{}, err
	}

	icon := "🌙"
	if mode == theme.ModeDark {
		icon = "☀️"
	}

	page := Page{
		Title:      p.Owner + " | Portfolio",
		Owner:      p.Owner,
		RootClass:  root.Class(),
		Mode:       mode,
		ToggleMode: mode.Opposite(),
		ToggleHref: opts.ToggleHref(mode.Opposite()),
		ToggleIcon: icon,
		LightVars:  cssVars(light),
		DarkVars:   cssVars(dark),
		Threshold:  nav.WebThreshold,
		Hero:       p.Hero,
		CVHref:     opts.CVHref,
		Year:       opts.Year,
	}

	reg := content.NewRegistry(p)
	for _, d := range reg.Entries() {
		page.Nav = append(page.Nav, NavEntry{ID: d.ID, Label: d.Label, Href: "#" + string(d.ID)})

		data := d.Content
		switch c := d.Content.(type) {
		case content.About:
			view := AboutView{About: c}
			if view.Image.Path != "" {
				view.Image.Path = opts.AssetHref(view.Image.Path)
			}
			for _, para := range c.Paragraphs {
				html, err := renderMarkdown(para)
				if err != nil {
					return Page{}, fmt.Errorf("render about paragraph: %w", err)
				}
				view.HTML = append(view.HTML, html)
			}
			data = view
		case content.Projects:
			view := ProjectsView{Heading: c.Heading, Items: make([]ProjectView, len(c.Items))}
			for i, project := range c.Items {
				view.Items[i] = ProjectView{Project: project}
				if project.HasThumbnail() {
					view.Items[i].Thumbnail = opts.AssetHref(project.Image)
				}
			}
			data = view
		}
		page.Sections = append(page.Sections, SectionView{ID: d.ID, Label: d.Label, Data: data})
	}
	return page, nil
}

func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	// goldmark escapes raw HTML unless WithUnsafe is set.
	return template.HTML(buf.String()), nil
}

func cssVars(b theme.Bundle) template.CSS {
	vars := [][2]string{
		{"--bg", b.Roles.Surface},
		{"--bg-alt", b.Roles.SurfaceAlt},
		{"--fg", b.Body.Foreground},
		{"--heading", b.Heading.Foreground},
		{"--muted", b.Muted.Foreground},
		{"--primary", b.Roles.Primary},
		{"--accent", b.Roles.Accent},
		{"--border", b.Roles.Border},
		{"--card", b.Card.Background},
		{"--chip-fg", b.Chip.Foreground},
		{"--chip-bg", b.Chip.Background},
		{"--nav-fg", b.NavItem.Foreground},
		{"--nav-bg", b.NavbarOpaque.Background},
		{"--toggle-fg", b.Toggle.Foreground},
		{"--toggle-bg", b.Toggle.Background},
		{"--footer-fg", b.Footer.Foreground},
		{"--footer-bg", b.Footer.Background},
	}
	var sb strings.Builder
	for _, v := range vars {
		if v[1] == "" {
			continue
		}
		fmt.Fprintf(&sb, "%s:%s;", v[0], v[1])
	}
	return template.CSS(sb.String())
}
