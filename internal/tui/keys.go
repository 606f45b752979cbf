package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	View    key.Binding
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	Link    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		View:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "switch view")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "flip/open")),
		Link:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "take action")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.View, k.Left, k.Right, k.Select, k.Link, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
