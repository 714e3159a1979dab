// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the full help.
	Help key.Binding

	// Back leaves the filter, a confirmation or a secondary view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a choice.
	Select key.Binding

	// Toggle flips the selection of the row under the cursor.
	Toggle key.Binding

	// SelectAll selects every visible row, or clears the selection.
	SelectAll key.Binding

	// Filter focuses the filter input.
	Filter key.Binding

	// SortType, SortName and SortSize activate or flip a column.
	SortType key.Binding
	SortName key.Binding
	SortSize key.Binding

	// Delete deletes the selected documents after confirmation.
	Delete key.Binding

	// Reload asks the server to re-process the files.
	Reload key.Binding

	// Refresh fetches the list again.
	Refresh key.Binding

	// Language opens the language selector.
	Language key.Binding

	// Confirm accepts a pending confirmation.
	Confirm key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "select"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		SortType: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "sort type"),
		),
		SortName: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "sort name"),
		),
		SortSize: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "sort size"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R", "ctrl+r"),
			key.WithHelp("R", "refresh"),
		),
		Language: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "language"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Filter, k.Delete, k.Reload, k.Help, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.SelectAll},
		{k.Filter, k.SortType, k.SortName, k.SortSize},
		{k.Delete, k.Reload, k.Refresh, k.Language},
		{k.Back, k.Help, k.Quit},
	}
}

// ListHelp returns keybindings for selector views.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back}
}
