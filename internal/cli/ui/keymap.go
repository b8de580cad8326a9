package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap — привязки клавиш каталога для help-бара.
type keyMap struct {
	PrevTab key.Binding
	NextTab key.Binding
	Up      key.Binding
	Down    key.Binding
	New     key.Binding
	Delete  key.Binding
	SignOut key.Binding
	Submit  key.Binding
	Back    key.Binding
	Field   key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		PrevTab: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tab")),
		NextTab: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next tab")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		SignOut: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sign out")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Field:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp — строка подсказок в режиме списка.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevTab, k.NextTab, k.Up, k.Down, k.New, k.Delete, k.SignOut, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevTab, k.NextTab, k.Up, k.Down},
		{k.New, k.Delete, k.SignOut, k.Quit},
	}
}
