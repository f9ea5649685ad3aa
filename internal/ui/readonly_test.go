package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formbox/internal/form"
	"formbox/internal/option"
)

func TestReadOnlyText(t *testing.T) {
	tests := []struct {
		name     string
		field    form.Field
		store    map[string]any
		fallback any
		want     string
	}{
		{
			name:  "single from store",
			field: form.Field{Key: "color", Type: form.TypeSelect},
			store: map[string]any{"color": &option.Option{Label: "Red", Value: "red"}},
			want:  "Red",
		},
		{
			name:  "multi joined",
			field: form.Field{Key: "tags", Type: form.TypeSelectMulti},
			store: map[string]any{"tags": []option.Option{option.New("Go", "go"), option.New("Rust", "rust")}},
			want:  "Go, Rust",
		},
		{
			name:     "fallback when store is empty",
			field:    form.Field{Key: "color", Type: form.TypeSelect},
			fallback: "green",
			want:     "green",
		},
		{
			name:  "placeholder",
			field: form.Field{Key: "color", Type: form.TypeSelect, Placeholder: "Not set"},
			want:  "Not set",
		},
		{
			name:  "none",
			field: form.Field{Key: "color", Type: form.TypeSelect},
			want:  noneText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReadOnly(tt.field, form.NewMemoryStore(tt.store), tt.fallback)
			assert.Equal(t, tt.want, r.Text())
		})
	}
}

func TestReadOnlyResync(t *testing.T) {
	store := form.NewMemoryStore(nil)
	r := NewReadOnly(form.Field{Key: "color", Type: form.TypeSelect}, store, nil)
	require.Equal(t, noneText, r.Text())

	require.NoError(t, store.Set("color", &option.Option{Label: "Blue", Value: "blue"}))
	assert.Equal(t, noneText, r.Text(), "display does not change until resynced")

	r = r.Resync()
	assert.Equal(t, "Blue", r.Text())
}

func TestReadOnlyView(t *testing.T) {
	field := form.Field{Key: "color", Label: "Color", Type: form.TypeSelect}
	store := form.NewMemoryStore(map[string]any{"color": "red"})

	t.Run("ValueStyle", func(t *testing.T) {
		r := NewReadOnly(field, store, nil)
		view := ansi.Strip(r.View())
		assert.Equal(t, "Color\nred", view)
		assert.Equal(t, 2, r.Height())
	})

	t.Run("DisabledStyle", func(t *testing.T) {
		f := field
		f.ReadOnlyStyle = form.ReadOnlyDisabled
		r := NewReadOnly(f, store, nil).SetWidth(30)
		view := ansi.Strip(r.View())
		lines := strings.Split(view, "\n")
		require.Len(t, lines, 4, "label plus a bordered box")
		assert.Contains(t, lines[2], "red")
		assert.Equal(t, 4, r.Height())
		for _, line := range lines {
			assert.LessOrEqual(t, ansi.StringWidth(line), 30)
		}
	})
}
