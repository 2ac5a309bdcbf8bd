package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/nav"
	"portfolio-terminal/internal/section"
	"portfolio-terminal/internal/theme"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// DefaultRotateEvery is how often the hero role changes.
const DefaultRotateEvery = 3 * time.Second

// Message types consumed by Update.
type (
	rotateMsg     struct{}
	glideFrameMsg struct{ gen uint64 }
)

// Options configure a Model. Zero values fall back to sensible defaults.
type Options struct {
	// Holder owns the theme flag. When nil a light holder marking Renderer
	// is created.
	Holder *theme.Holder
	// Renderer is the session's lipgloss renderer.
	Renderer *lipgloss.Renderer
	// Theme carries the TERM value and color overrides.
	Theme theme.ResolveOptions
	// Signal is the page's scroll signal.
	Signal *nav.Signal

	Width       int
	Height      int
	RotateEvery time.Duration
	// CVURL is shown by the CV key instead of the bare asset path.
	CVURL string
	Now   func() time.Time
}

// MarkRenderer returns the root marker of a terminal page: a dark flag
// switches the renderer's background so adaptive colors follow.
func MarkRenderer(r *lipgloss.Renderer) theme.Marker {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return theme.MarkerFunc(r.SetHasDarkBackground)
}

// Model is the root composer of the terminal page.
type Model struct {
	portfolio *content.Portfolio
	registry  content.Registry

	holder   *theme.Holder
	renderer *lipgloss.Renderer
	resolve  theme.ResolveOptions
	signal   *nav.Signal
	observer *nav.Observer
	life     *Lifetime

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	menu     nav.Menu
	glide    nav.Glide
	glideTo  content.SectionID
	ctrl     nav.Controller
	doc      document

	width       int
	height      int
	focus       int
	role        int
	rotateEvery time.Duration
	lastOffset  int
	year        int
	cvURL       string
	notice      string
}

// NewModel builds the page for p.
func NewModel(p *content.Portfolio, opts Options) Model {
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}
	if opts.Holder == nil {
		opts.Holder = theme.NewHolder(theme.PreferNone, MarkRenderer(opts.Renderer))
	}
	if opts.Signal == nil {
		opts.Signal = nav.NewSignal()
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.RotateEvery <= 0 {
		opts.RotateEvery = DefaultRotateEvery
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	reg := content.NewRegistry(p)
	m := Model{
		portfolio:   p,
		registry:    reg,
		holder:      opts.Holder,
		renderer:    opts.Renderer,
		resolve:     opts.Theme,
		signal:      opts.Signal,
		observer:    nav.NewObserver(nav.TerminalThreshold),
		life:        &Lifetime{},
		keys:        newKeyMap(),
		help:        help.New(),
		viewport:    viewport.New(opts.Width, opts.Height),
		menu:        nav.NewMenu(reg.Len()),
		glide:       nav.NewGlide(),
		width:       opts.Width,
		height:      opts.Height,
		focus:       -1,
		rotateEvery: opts.RotateEvery,
		year:        opts.Now().Year(),
		cvURL:       opts.CVURL,
	}
	m.relayout()
	return m
}

// Init mounts the page: it subscribes the scroll observer and starts the
// role rotation.
func (m Model) Init() tea.Cmd {
	if !m.life.Mount() {
		return nil
	}
	m.observer.Mount(m.signal)
	m.life.Acquire(m.observer.Unmount)
	return m.rotateCmd()
}

// Unmount releases the scroll subscription and stops the rotation. Later
// timer and glide messages are ignored.
func (m Model) Unmount() {
	m.life.Unmount()
}

// Alive reports whether the page is mounted.
func (m Model) Alive() bool { return m.life.Alive() }

// Mode reports the current theme mode.
func (m Model) Mode() theme.Mode { return m.holder.Mode() }

// Scrolled reports whether the navbar is in its scrolled state.
func (m Model) Scrolled() bool { return m.observer.Scrolled() }

// Offset is the current scroll offset in lines.
func (m Model) Offset() int { return m.viewport.YOffset }

// Update advances model state in response to events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.compact() {
			m.menu.Close()
		}
		m.relayout()

	case rotateMsg:
		if !m.life.Alive() {
			return m, nil
		}
		m.role++
		m.relayout()
		cmd = m.rotateCmd()

	case glideFrameMsg:
		if !m.life.Alive() || msg.gen != m.glide.Generation() || !m.glide.Active() {
			return m, nil
		}
		off, done := m.glide.Step()
		m.viewport.SetYOffset(off)
		if !done {
			cmd = frameCmd(msg.gen)
		}

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.Unmount()
			return m, tea.Quit
		}
		if m.menu.IsOpen() {
			cmd = m.updateMenu(msg)
			break
		}
		cmd = m.updateKeys(msg)

	case tea.MouseMsg:
		if tea.MouseEvent(msg).IsWheel() {
			m.glide.Cancel()
		}
		m.viewport, cmd = m.viewport.Update(msg)

	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}

	m.publishScroll()
	return m, cmd
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.MenuUp):
		m.menu.Up()
	case key.Matches(msg, m.keys.MenuDown):
		m.menu.Down()
	case key.Matches(msg, m.keys.Select):
		idx, ok := m.menu.Choose()
		m.resize()
		if ok {
			return m.jumpIndex(idx)
		}
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Menu):
		m.menu.Close()
		m.resize()
	case key.Matches(msg, m.keys.Toggle):
		m.toggleTheme()
	}
	return nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Jump):
		return m.jumpIndex(int(msg.Runes[0] - '1'))
	case key.Matches(msg, m.keys.Next):
		if n := m.registry.Len(); n > 0 {
			m.focus = (m.focus + 1) % n
		}
	case key.Matches(msg, m.keys.Prev):
		if n := m.registry.Len(); n > 0 {
			if m.focus <= 0 {
				m.focus = n - 1
			} else {
				m.focus--
			}
		}
	case key.Matches(msg, m.keys.Select):
		if m.focus >= 0 {
			return m.jumpIndex(m.focus)
		}
	case key.Matches(msg, m.keys.Menu):
		if m.compact() {
			m.menu.Toggle()
			m.resize()
		}
	case key.Matches(msg, m.keys.CV):
		m.toggleNotice()
		m.resize()
	case key.Matches(msg, m.keys.Projects):
		return m.ScrollTo(content.SectionProjects)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	default:
		var cmd tea.Cmd
		m.glide.Cancel()
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) toggleTheme() {
	m.holder.Toggle()
	m.relayout()
}

func (m *Model) toggleNotice() {
	if m.notice != "" {
		m.notice = ""
		return
	}
	cv := m.portfolio.Hero.CV
	if cv.IsZero() {
		m.notice = "No CV published."
		return
	}
	target := m.cvURL
	if target == "" {
		target = cv.Path
	}
	label := cv.Label
	if label == "" {
		label = "Download CV"
	}
	m.notice = fmt.Sprintf("%s: %s", label, target)
}

// jumpIndex scrolls to the n-th registry entry. Out-of-range indexes do
// nothing.
func (m *Model) jumpIndex(i int) tea.Cmd {
	d, ok := m.registry.At(i)
	if !ok {
		return nil
	}
	return m.ScrollTo(d.ID)
}

// ScrollTo glides to the section id. Ids without an anchor are ignored.
func (m *Model) ScrollTo(id content.SectionID) tea.Cmd {
	off, ok := m.ctrl.Locate(id)
	if !ok {
		return nil
	}
	if idx := m.registry.Index(id); idx >= 0 {
		m.focus = idx
	}
	m.glideTo = id
	target := min(off, m.maxOffset())
	gen := m.glide.Start(m.viewport.YOffset, target)
	if !m.glide.Active() {
		return nil
	}
	return frameCmd(gen)
}

func (m *Model) maxOffset() int {
	return max(m.viewport.TotalLineCount()-m.viewport.Height, 0)
}

func (m Model) rotateCmd() tea.Cmd {
	if len(m.portfolio.Hero.Roles) < 2 {
		return nil
	}
	return tea.Tick(m.rotateEvery, func(time.Time) tea.Msg { return rotateMsg{} })
}

func frameCmd(gen uint64) tea.Cmd {
	return tea.Tick(nav.FrameInterval, func(time.Time) tea.Msg { return glideFrameMsg{gen: gen} })
}

func (m *Model) publishScroll() {
	if off := m.viewport.YOffset; off != m.lastOffset {
		m.lastOffset = off
		m.signal.Publish(off)
	}
}

func (m Model) compact() bool { return m.width < compactWidth }

func (m Model) styles(mode theme.Mode) section.Styles {
	bundle, err := theme.ResolveWithOptions(mode, m.resolve)
	if err != nil {
		bundle = theme.MustResolve(theme.ModeLight, m.resolve)
	}
	return section.NewStyles(m.renderer, bundle)
}

// relayout rebuilds the document for the current mode, width and role,
// keeping the scroll offset. A running glide is pointed at its section's
// new anchor.
func (m *Model) relayout() {
	st := m.styles(m.holder.Mode())
	m.doc = buildDocument(st, m.portfolio, m.registry, m.role, m.width, m.year)
	m.ctrl = nav.NewController(m.doc.anchors)
	m.resize()
	off := m.viewport.YOffset
	m.viewport.SetContent(m.doc.body)
	m.viewport.SetYOffset(off)

	if !m.glide.Active() {
		return
	}
	if anchor, ok := m.ctrl.Locate(m.glideTo); ok {
		m.glide.Retarget(min(anchor, m.maxOffset()))
	} else {
		m.glide.Cancel()
	}
}

// resize fits the viewport between the fixed chrome and the help line.
func (m *Model) resize() {
	chrome := 2 // navbar and rule
	if m.menu.IsOpen() {
		chrome += m.registry.Len()
	}
	if m.notice != "" {
		chrome++
	}
	m.help.Width = m.width
	chrome += lipgloss.Height(m.help.View(m.keys))

	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chrome, 1)
	m.viewport.SetYOffset(m.viewport.YOffset)
}

// View renders the page. The theme mode is read once and every part of the
// frame is styled from that snapshot.
func (m Model) View() string {
	mode := m.holder.Mode()
	st := m.styles(mode)

	vp := m.viewport
	ctrl := m.ctrl
	if m.doc.mode != mode {
		doc := buildDocument(st, m.portfolio, m.registry, m.role, m.width, m.year)
		vp.SetContent(doc.body)
		ctrl = nav.NewController(doc.anchors)
	}

	parts := []string{
		renderNavbar(st, navbarView{
			brand:    m.portfolio.Owner,
			entries:  m.registry.Entries(),
			active:   ctrl.SectionAt(vp.YOffset),
			focus:    m.focus,
			scrolled: m.observer.Scrolled(),
			compact:  m.compact(),
			dark:     mode == theme.ModeDark,
			width:    m.width,
		}),
	}
	if m.menu.IsOpen() {
		parts = append(parts, renderMenu(st, m.registry.Entries(), m.menu.Cursor(), m.width))
	}
	parts = append(parts, m.rule().Render(strings.Repeat("─", max(m.width, 1))), vp.View())
	if m.notice != "" {
		parts = append(parts, st.Accent.Render(m.notice))
	}

	h := m.help
	h.Styles = helpStyles(st)
	parts = append(parts, h.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// rule follows the renderer's background flag, which the holder sets.
func (m Model) rule() lipgloss.Style {
	return m.renderer.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"})
}

func helpStyles(st section.Styles) help.Styles {
	return help.Styles{
		Ellipsis:       st.Muted,
		ShortKey:       st.Accent,
		ShortDesc:      st.Muted,
		ShortSeparator: st.Muted,
		FullKey:        st.Accent,
		FullDesc:       st.Muted,
		FullSeparator:  st.Muted,
	}
}

// RenderOptions configure a one-shot render of the page.
type RenderOptions struct {
	Mode     theme.Mode
	Width    int
	Theme    theme.ResolveOptions
	Renderer *lipgloss.Renderer
	Now      func() time.Time
}

// RenderDocument renders the navbar and the whole page body once, without
// any interactive chrome.
func RenderDocument(p *content.Portfolio, opts RenderOptions) (string, error) {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Mode == "" {
		opts.Mode = theme.ModeLight
	}
	bundle, err := theme.ResolveWithOptions(opts.Mode, opts.Theme)
	if err != nil {
		return "", err
	}
	st := section.NewStyles(opts.Renderer, bundle)
	reg := content.NewRegistry(p)
	doc := buildDocument(st, p, reg, 0, opts.Width, opts.Now().Year())

	bar := renderNavbar(st, navbarView{
		brand:   p.Owner,
		entries: reg.Entries(),
		focus:   -1,
		compact: opts.Width < compactWidth,
		dark:    opts.Mode == theme.ModeDark,
		width:   opts.Width,
	})
	return bar + "\n\n" + doc.body + "\n", nil
}
