package quiz

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Dismiss key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Dismiss: key.NewBinding(
		key.WithKeys("enter", "space"),
		key.WithHelp("enter", "continue"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}
