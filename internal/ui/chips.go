package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"formbox/internal/option"
	"formbox/internal/ui/theme"
)

// Chip visual states for pill rendering
type chipState int

const (
	chipStateNormal chipState = iota
	// chipStateHighlight marks the chip Backspace would remove.
	chipStateHighlight
	chipStateDisabled
)

// Powerline characters for pill-shaped chips
const (
	pillLeft  = "\ue0b6" // Left half-circle (rounded left edge)
	pillRight = "\ue0b4" // Right half-circle (rounded right edge)
	chipClose = "×"
)

// chipBox is the on-screen footprint of one chip, relative to the first
// chip line.
type chipBox struct {
	value string
	line  int
	x     int
	width int
}

// closeX is the column of the chip's remove glyph.
func (b chipBox) closeX() int {
	return b.x + b.width - 2
}

// chipAt returns the chip under (x, line) and whether the press landed on
// its remove glyph.
func chipAt(boxes []chipBox, x, line int) (chipBox, bool, bool) {
	for _, b := range boxes {
		if b.line != line || x < b.x || x >= b.x+b.width {
			continue
		}
		return b, x == b.closeX(), true
	}
	return chipBox{}, false, false
}

// renderPillChip renders a label as a pill-shaped chip using powerline glyphs.
// The pill has curved edges, a solid background and a trailing remove glyph.
func renderPillChip(label string, state chipState, removable bool) string {
	var bgColor, fgColor lipgloss.TerminalColor

	t := theme.Current()
	switch state {
	case chipStateHighlight:
		bgColor = t.BackgroundSecondary
		fgColor = t.Text
	case chipStateDisabled:
		bgColor = t.BorderDim
		fgColor = t.TextMuted
	default:
		bgColor = t.Info
		fgColor = t.Background
	}

	leftCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillLeft)

	labelStyle := lipgloss.NewStyle().
		Foreground(fgColor).
		Background(bgColor)
	if state == chipStateHighlight {
		labelStyle = labelStyle.Bold(true)
	}
	body := label
	if removable {
		body += " " + chipClose
	}
	labelText := labelStyle.Render(body)

	rightCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillRight)

	return leftCap + labelText + rightCap
}

// layoutChips renders the committed options as chips wrapped to width and
// reports where each chip landed. highlight is the index of the chip drawn
// in the highlight state, or -1.
func layoutChips(opts []option.Option, width, highlight int, removable bool) ([]string, []chipBox) {
	if len(opts) == 0 {
		return nil, nil
	}

	var (
		lines       []string
		boxes       []chipBox
		currentLine []string
		currentX    int
	)
	for i, opt := range opts {
		state := chipStateNormal
		switch {
		case !removable:
			state = chipStateDisabled
		case i == highlight:
			state = chipStateHighlight
		}
		chip := renderPillChip(opt.Display(), state, removable)
		chipWidth := lipgloss.Width(chip)

		spaceNeeded := chipWidth
		if len(currentLine) > 0 {
			spaceNeeded++ // +1 for space separator
		}
		if width > 0 && currentX+spaceNeeded > width && len(currentLine) > 0 {
			lines = append(lines, strings.Join(currentLine, " "))
			currentLine = nil
			currentX = 0
			spaceNeeded = chipWidth
		}

		x := currentX
		if len(currentLine) > 0 {
			x++
		}
		boxes = append(boxes, chipBox{value: opt.Value, line: len(lines), x: x, width: chipWidth})
		currentLine = append(currentLine, chip)
		currentX += spaceNeeded
	}
	if len(currentLine) > 0 {
		lines = append(lines, strings.Join(currentLine, " "))
	}
	return lines, boxes
}
