package quiz

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Choose  key.Binding
	Up      key.Binding
	Down    key.Binding
	Grade   key.Binding
	Reload  key.Binding
	Close   key.Binding
	History key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Choose: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Select"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑↓", "Move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑↓", "Move"),
		),
		Grade: key.NewBinding(
			key.WithKeys("enter", "g"),
			key.WithHelp("Enter", "Grade"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Close"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "History"),
		),
	}
}
