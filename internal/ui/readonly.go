package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"formbox/internal/form"
	"formbox/internal/option"
	"formbox/internal/selection"
)

// noneText is shown for an empty read-only value without a placeholder.
const noneText = "None"

// ReadOnly displays a committed selection without any interaction.
type ReadOnly struct {
	key         string
	label       string
	placeholder string
	style       form.ReadOnlyStyle
	policy      selection.Policy
	store       form.Store
	value       []option.Option
	width       int
}

// NewReadOnly builds the display for field. The value is read from store,
// else fallback.
func NewReadOnly(field form.Field, store form.Store, fallback any) ReadOnly {
	r := ReadOnly{
		key:         field.Key,
		label:       field.DisplayLabel(),
		placeholder: field.Placeholder,
		style:       field.Style(),
		policy:      selection.For(field.Multi()),
		store:       store,
		width:       defaultSelectWidth,
	}
	r.value = r.policy.Normalize(fallback)
	return r.Resync()
}

// Resync reloads the value from the store.
func (r ReadOnly) Resync() ReadOnly {
	if r.store == nil {
		return r
	}
	if v, ok := r.store.Get(r.key); ok {
		r.value = r.policy.Normalize(v)
	}
	return r
}

// Text returns the joined labels, the placeholder, or "None".
func (r ReadOnly) Text() string {
	if len(r.value) > 0 {
		return option.JoinLabels(r.value)
	}
	if strings.TrimSpace(r.placeholder) != "" {
		return r.placeholder
	}
	return noneText
}

// View renders the label and value. The disabled style draws the value in a
// dimmed input box.
func (r ReadOnly) View() string {
	label := styleFieldLabel().Render(ansi.Truncate(r.label, r.width-2, "…"))
	if r.style == form.ReadOnlyDisabled {
		text := ansi.Truncate(r.Text(), inputTextWidth(r.width)+1, "…")
		return label + "\n" + styleInputDisabled().Width(r.width-2).Render(text)
	}
	text := r.Text()
	style := styleValueText()
	if len(r.value) == 0 {
		style = stylePlaceholder()
	}
	return label + "\n" + style.Render(wrapText(text, r.width))
}

// Height is the number of lines View renders.
func (r ReadOnly) Height() int {
	return strings.Count(r.View(), "\n") + 1
}

// SetWidth resizes the display.
func (r ReadOnly) SetWidth(w int) ReadOnly {
	if w > 0 {
		r.width = w
	}
	return r
}

// Key returns the store key the display reads.
func (r ReadOnly) Key() string { return r.key }

// Close is a no-op; read-only displays hold no resources.
func (ReadOnly) Close() {}
