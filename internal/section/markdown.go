package section

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"portfolio-terminal/internal/theme"
)

type markdownKey struct {
	style   string
	width   int
	profile termenv.Profile
}

var markdown = struct {
	sync.Mutex
	renderers map[markdownKey]*glamour.TermRenderer
}{renderers: make(map[markdownKey]*glamour.TermRenderer)}

func glamourStyle(st Styles) string {
	switch {
	case st.Mono:
		return "notty"
	case st.Mode == theme.ModeDark:
		return "dark"
	default:
		return "light"
	}
}

// renderMarkdown renders src with the glamour style matching st. On error
// the source is returned wrapped in the body style.
func renderMarkdown(st Styles, src string, width int) string {
	key := markdownKey{style: glamourStyle(st), width: width, profile: st.Profile}

	markdown.Lock()
	defer markdown.Unlock()

	r, ok := markdown.renderers[key]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(key.style),
			glamour.WithWordWrap(width),
			glamour.WithColorProfile(key.profile),
		)
		if err != nil {
			log.Warn("markdown renderer unavailable", "event", "markdown_error", "style", key.style, "err", err)
			return st.Body.Width(width).Render(src)
		}
		markdown.renderers[key] = r
	}

	out, err := r.Render(src)
	if err != nil {
		log.Warn("markdown render failed", "event", "markdown_error", "err", err)
		return st.Body.Width(width).Render(src)
	}
	return strings.Trim(out, "\n")
}
