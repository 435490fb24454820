package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Device  key.Binding
	Network key.Binding
	Storage key.Binding
	Refresh key.Binding
	OS      key.Binding
	CPU     key.Binding
	RAM     key.Binding
	GPU     key.Binding
	Close   key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	NextTab: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab", "next view"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Device: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "device"),
	),
	Network: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "network"),
	),
	Storage: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "storage"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	OS: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "os"),
	),
	CPU: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "cpu"),
	),
	RAM: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "memory"),
	),
	GPU: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "gpu"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// helpBindings are listed in the footer, in order.
func helpBindings(detailOpen bool) []key.Binding {
	if detailOpen {
		return []key.Binding{keys.Close, keys.Refresh, keys.Quit}
	}
	return []key.Binding{keys.NextTab, keys.Refresh, keys.OS, keys.CPU, keys.RAM, keys.GPU, keys.Quit}
}
