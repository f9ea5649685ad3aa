package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	t.Run("NavigationBindings", func(t *testing.T) {
		if !key.Matches(tea.KeyMsg{Type: tea.KeyUp}, km.Up) {
			t.Error("expected up arrow to match Up binding")
		}
		if !key.Matches(tea.KeyMsg{Type: tea.KeyCtrlP}, km.Up) {
			t.Error("expected ctrl+p to match Up binding")
		}
		if !key.Matches(tea.KeyMsg{Type: tea.KeyDown}, km.Down) {
			t.Error("expected down arrow to match Down binding")
		}
		if !key.Matches(tea.KeyMsg{Type: tea.KeyCtrlN}, km.Down) {
			t.Error("expected ctrl+n to match Down binding")
		}
	})

	t.Run("LettersAreNeverBound", func(t *testing.T) {
		bindings := []key.Binding{
			km.Up, km.Down, km.Enter, km.Escape, km.Backspace,
			km.Tab, km.ShiftTab, km.Copy, km.Theme, km.Submit, km.Quit,
		}
		for _, r := range "abcdefghijklmnopqrstuvwxyzQ?/" {
			msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
			for _, b := range bindings {
				if key.Matches(msg, b) {
					t.Errorf("rune %q should be typed, but matches %v", r, b.Keys())
				}
			}
		}
	})

	t.Run("SpaceBinding", func(t *testing.T) {
		if !key.Matches(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, km.Space) {
			t.Error("expected space to match Space binding")
		}
	})

	t.Run("FocusBindings", func(t *testing.T) {
		if !key.Matches(tea.KeyMsg{Type: tea.KeyTab}, km.Tab) {
			t.Error("expected tab to match Tab binding")
		}
		if !key.Matches(tea.KeyMsg{Type: tea.KeyShiftTab}, km.ShiftTab) {
			t.Error("expected shift+tab to match ShiftTab binding")
		}
	})

	t.Run("ActionBindings", func(t *testing.T) {
		if !key.Matches(tea.KeyMsg{Type: tea.KeyCtrlY}, km.Copy) {
			t.Error("expected ctrl+y to match Copy binding")
		}
		if !key.Matches(tea.KeyMsg{Type: tea.KeyCtrlS}, km.Submit) {
			t.Error("expected ctrl+s to match Submit binding")
		}
		if !key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit) {
			t.Error("expected ctrl+c to match Quit binding")
		}
	})
}

func TestFooterBindingsHaveHelp(t *testing.T) {
	for _, b := range DefaultKeyMap().FooterBindings() {
		if b.Help().Key == "" || b.Help().Desc == "" {
			t.Errorf("binding %v missing help text", b.Keys())
		}
	}
}
