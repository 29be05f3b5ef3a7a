package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Submit key.Binding
	Join   key.Binding
	Bot    key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev card")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next card")),
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Join:   key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "join")),
	Bot:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "add bot")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Toggle, k.Submit, k.Join, k.Bot, k.Quit}
}
