package tui

import (
	"github.com/MikeBiancalana/datepick/internal/tui/components"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Accept key.Binding
	Cancel key.Binding
	Help   key.Binding

	picker components.KeyMap
}

func newKeyMap(picker components.KeyMap) keyMap {
	return keyMap{
		Accept: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "accept"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "more keys"),
		),
		picker: picker,
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return append([]key.Binding{k.Accept, k.Cancel, k.Help}, k.picker.ShortHelp()...)
}

func (k keyMap) FullHelp() [][]key.Binding {
	return append([][]key.Binding{{k.Accept, k.Cancel, k.Help}}, k.picker.FullHelp()...)
}
