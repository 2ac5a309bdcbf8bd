package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"portfolio-terminal/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"external": func(l content.Link) bool { return l.External() },
	// Contact hrefs are checked against their kind's scheme when content
	// loads; tel: links would otherwise be rewritten by the URL filter.
	"linkHref": func(l content.Link) template.URL { return template.URL(l.Href) },
}).ParseFS(templateFS, "templates/*.html"))

// Render writes the full HTML document for page to w.
func Render(w io.Writer, page Page) error {
	sections := make([]SectionView, len(page.Sections))
	for i, s := range page.Sections {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, "section-"+string(s.ID), s.Data); err != nil {
			return fmt.Errorf("render section %s: %w", s.ID, err)
		}
		s.HTML = template.HTML(buf.String())
		sections[i] = s
	}
	page.Sections = sections
	return templates.ExecuteTemplate(w, "page", page)
}
