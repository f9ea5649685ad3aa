// Package theme provides the semantic color palettes used to draw form
// widgets.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette holds the semantic colors a widget draws with. Every color is
// adaptive so light and dark terminals both stay readable.
type Palette struct {
	Primary   lipgloss.AdaptiveColor // focused borders, field labels
	Secondary lipgloss.AdaptiveColor // highlighted dropdown row
	Accent    lipgloss.AdaptiveColor // check marks, required marker

	Error   lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor // chip background

	Text      lipgloss.AdaptiveColor
	TextMuted lipgloss.AdaptiveColor // placeholders, hints, empty states

	Background          lipgloss.AdaptiveColor
	BackgroundSecondary lipgloss.AdaptiveColor // highlighted chip, dropdown panel

	BorderNormal  lipgloss.AdaptiveColor
	BorderFocused lipgloss.AdaptiveColor
	BorderDim     lipgloss.AdaptiveColor
}

// Colors returns every slot keyed by name, for validation and previews.
func (p Palette) Colors() map[string]lipgloss.AdaptiveColor {
	return map[string]lipgloss.AdaptiveColor{
		"primary":             p.Primary,
		"secondary":           p.Secondary,
		"accent":              p.Accent,
		"error":               p.Error,
		"warning":             p.Warning,
		"success":             p.Success,
		"info":                p.Info,
		"text":                p.Text,
		"textMuted":           p.TextMuted,
		"background":          p.Background,
		"backgroundSecondary": p.BackgroundSecondary,
		"borderNormal":        p.BorderNormal,
		"borderFocused":       p.BorderFocused,
		"borderDim":           p.BorderDim,
	}
}
