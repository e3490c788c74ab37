package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	Waste   key.Binding
	Draw    key.Binding
	Hint    key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select card")),
		Waste:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "select waste")),
		Draw:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "draw")),
		Hint:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "hint")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new deal")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Draw, k.Waste, k.Restart, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Waste, k.Draw, k.Hint},
		{k.Restart, k.Help, k.Quit},
	}
}
