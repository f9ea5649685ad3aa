package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"formbox/internal/ui/theme"
)

// Styles are built on demand so a theme switch takes effect on the next
// frame.

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Background).
		Background(theme.Current().Primary).
		Bold(true).
		Padding(0, 1)
}

func styleDescription() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted)
}

func styleFieldLabel() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text).Bold(true)
}

func styleFieldLabelFocused() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Primary).Bold(true)
}

func styleRequired() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent)
}

func styleHelpText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted).Italic(true)
}

func styleInput() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderDim).
		Padding(0, 1)
}

func styleInputFocused() lipgloss.Style {
	return styleInput().BorderForeground(theme.Current().BorderFocused)
}

func styleInputError() lipgloss.Style {
	return styleInput().BorderForeground(theme.Current().Error)
}

func styleInputDisabled() lipgloss.Style {
	return styleInput().
		BorderForeground(theme.Current().BorderDim).
		Foreground(theme.Current().TextMuted)
}

func styleValueText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text)
}

func stylePlaceholder() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted)
}

func styleDropdown() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderNormal).
		Background(theme.Current().BackgroundSecondary)
}

func styleOption() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text).
		Background(theme.Current().BackgroundSecondary)
}

func styleOptionHighlight() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary).
		Background(theme.Current().BackgroundSecondary).
		Bold(true)
}

func styleCheck() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Success).
		Background(theme.Current().BackgroundSecondary)
}

func styleDropdownHint() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted).
		Background(theme.Current().BackgroundSecondary)
}

func styleEmpty() lipgloss.Style {
	return styleDropdownHint().Italic(true)
}

func styleEmptyError() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Error).
		Background(theme.Current().BackgroundSecondary).
		Italic(true)
}

func styleSpinner() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Primary)
}

func styleFooterKey() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Primary).Bold(true)
}

func styleFooterDesc() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted)
}

func styleStatus() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Success)
}

func styleStatusError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Error).Bold(true)
}

// wrapText word-wraps plain text to width. A non-positive width returns the
// text unchanged.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// BuildMarkdownRenderer returns a renderer for the given output format.
// "plain" and renderer failures fall back to word wrapping.
func BuildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wrapText(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" || style == "dark" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
