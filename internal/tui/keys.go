package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings of every state.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding // opens the picker or prompt for the focused row
	Add       key.Binding
	Delete    key.Binding
	Clear     key.Binding
	Toggle    key.Binding
	Open      key.Binding
	ClearFile key.Binding
	ClearAll  key.Binding
	Save      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	Confirm     key.Binding
	Cancel      key.Binding
	Yes         key.Binding
	No          key.Binding
	DeleteFiles key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Add: key.NewBinding(
			key.WithKeys("+", "a"),
			key.WithHelp("+", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("-", "d"),
			key.WithHelp("-", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("⌫", "clear"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "file"),
		),
		ClearFile: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear file"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear all"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ok"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "delete"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "keep"),
		),
		DeleteFiles: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "also delete files"),
		),
	}
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() || b.Help().Key == "" {
			continue
		}
		parts = append(parts, b.Help().Key+": "+b.Help().Desc)
	}
	return strings.Join(parts, " • ")
}
