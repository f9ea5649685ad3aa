package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard contract of a form and its select fields.
// Each binding includes the actual keys and help text for display.
// Up/Down share identical help text since they appear as a single row in
// the footer.
type KeyMap struct {
	// Dropdown
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Space  key.Binding
	Escape key.Binding

	// Chips
	Backspace key.Binding

	// Focus
	Tab      key.Binding
	ShiftTab key.Binding

	// Actions
	Copy   key.Binding
	Theme  key.Binding
	Submit key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings. Letter keys are never bound
// because every printable character belongs to the search input.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/↓", "Move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↑/↓", "Move"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "Select"),
		),
		Space: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("Space", "Open"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Close"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "Remove last"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("⇥", "Next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("⇧⇥", "Previous field"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("^Y", "Copy value"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("^T", "Theme"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^S", "Save & exit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("^C", "Quit"),
		),
	}
}

// FooterBindings returns the bindings shown in the form footer, with Up and
// Down collapsed into one entry.
func (k KeyMap) FooterBindings() []key.Binding {
	return []key.Binding{k.Up, k.Enter, k.Escape, k.Tab, k.Copy, k.Theme, k.Submit, k.Quit}
}
