package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle   key.Binding
	Jump     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Select   key.Binding
	Menu     key.Binding
	MenuUp   key.Binding
	MenuDown key.Binding
	Close    key.Binding
	CV       key.Binding
	Projects key.Binding
	Scroll   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Toggle:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Jump:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go")),
		Menu:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		MenuUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		MenuDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		CV:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cv")),
		Projects: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
		Scroll:   key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓/pgup/pgdn", "scroll")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Jump, k.Menu, k.CV, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.CV, k.Projects},
		{k.Jump, k.Next, k.Prev, k.Select},
		{k.Menu, k.MenuUp, k.MenuDown, k.Close},
		{k.Scroll, k.Help, k.Quit},
	}
}
