package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"formbox/internal/combobox"
	"formbox/internal/dismiss"
	"formbox/internal/option"
)

// inputHeight is the rendered height of the bordered input box.
const inputHeight = 3

// selectLayout is the vertical arrangement of a select, relative to its
// origin. The dropdown is drawn as an overlay starting at dropTop and does
// not count towards height.
type selectLayout struct {
	chipLines []string
	chips     []chipBox
	chipTop   int
	inputTop  int
	dropTop   int
	helpLines []string
	height    int
}

func (s Select) layout() selectLayout {
	l := selectLayout{chipTop: 1}
	if s.state.Multiple {
		l.chipLines, l.chips = layoutChips(s.state.Value, s.width, s.chipHighlight(), s.state.Interactive())
	}
	l.inputTop = l.chipTop + len(l.chipLines)
	l.dropTop = l.inputTop + inputHeight
	if strings.TrimSpace(s.help) != "" {
		l.helpLines = strings.Split(wrapText(s.help, s.width), "\n")
	}
	l.height = l.dropTop + len(l.helpLines)
	return l
}

// chipHighlight marks the chip Backspace would remove.
func (s Select) chipHighlight() int {
	if !s.focused || s.input.Value() != "" || !s.state.Interactive() {
		return -1
	}
	return len(s.state.Value) - 1
}

// View renders the label, chips, input box and help text. The dropdown is
// rendered separately by Dropdown so the host can draw it above later
// fields.
func (s Select) View() string {
	l := s.layout()
	lines := make([]string, 0, l.height)
	lines = append(lines, s.labelLine())
	lines = append(lines, l.chipLines...)
	lines = append(lines, s.inputBox())
	for _, h := range l.helpLines {
		lines = append(lines, styleHelpText().Render(h))
	}
	return strings.Join(lines, "\n")
}

// Height is the number of lines View renders.
func (s Select) Height() int {
	return s.layout().height
}

// DropdownOffset is the line, relative to the select's origin, where the
// dropdown overlay starts.
func (s Select) DropdownOffset() int {
	return s.layout().dropTop
}

func (s Select) labelLine() string {
	label := s.label
	if strings.TrimSpace(label) == "" {
		label = s.key
	}
	style := styleFieldLabel()
	if s.focused {
		style = styleFieldLabelFocused()
	}
	out := style.Render(ansi.Truncate(label, s.width-2, "…"))
	if s.required {
		out += styleRequired().Render(" *")
	}
	return out
}

func (s Select) inputBox() string {
	var content string
	switch {
	case s.state.Disabled:
		content = s.placeholder
		if !s.state.Multiple && len(s.state.Value) > 0 {
			content = s.state.Value[0].Display()
		}
	case s.focused:
		content = s.input.View()
	case !s.state.Multiple && len(s.state.Value) > 0 && s.state.Search == "":
		content = styleValueText().Render(ansi.Truncate(s.state.Value[0].Display(), inputTextWidth(s.width)+1, "…"))
	case s.state.Search != "":
		content = styleValueText().Render(ansi.Truncate(s.state.Search, inputTextWidth(s.width)+1, "…"))
	default:
		content = stylePlaceholder().Render(s.placeholder)
	}
	if s.state.Loading {
		content += " " + s.spinner.View()
	}

	style := styleInput()
	switch {
	case s.hasError:
		style = styleInputError()
	case s.state.Disabled:
		style = styleInputDisabled()
	case s.focused:
		style = styleInputFocused()
	}
	return style.Width(s.width - 2).Render(content)
}

// window returns the candidate range visible in the dropdown.
func (s Select) window() (int, int) {
	start := s.scroll
	end := start + s.maxVisible
	if end > len(s.state.Candidates) {
		end = len(s.state.Candidates)
	}
	if start > end {
		start = end
	}
	return start, end
}

// dropdownLines renders the dropdown body without its border.
func (s Select) dropdownLines() []string {
	contentWidth := s.width - 2
	row := func(style lipgloss.Style, text string) string {
		return style.Width(contentWidth).Render(ansi.Truncate(text, contentWidth, "…"))
	}

	if len(s.state.Candidates) == 0 {
		if s.state.Loading {
			return []string{row(styleDropdownHint(), "  Searching…")}
		}
		kind := s.state.EmptyKind()
		if kind == combobox.EmptyError {
			return []string{row(styleEmptyError(), "  "+kind.Message())}
		}
		return []string{row(styleEmpty(), "  "+kind.Message())}
	}

	start, end := s.window()
	var lines []string
	if start > 0 {
		lines = append(lines, row(styleDropdownHint(), "  ▲ more above"))
	}
	for i := start; i < end; i++ {
		lines = append(lines, s.renderRow(i, contentWidth))
	}
	if end < len(s.state.Candidates) {
		lines = append(lines, row(styleDropdownHint(), "  ▼ more below"))
	}
	if s.state.Failed {
		lines = append(lines, row(styleEmptyError(), "  "+combobox.EmptyError.Message()))
	}
	return lines
}

func (s Select) renderRow(i, contentWidth int) string {
	opt := s.state.Candidates[i]
	highlighted := i == s.state.Highlight

	prefix := "  "
	style := styleOption()
	if highlighted {
		prefix = "▸ "
		style = styleOptionHighlight()
	}

	mark := ""
	if s.state.Multiple {
		mark = "  "
		if s.state.Selected(opt.Value) {
			mark = styleCheck().Render("✓ ")
		} else {
			mark = style.Render(mark)
		}
	}

	avail := contentWidth - lipgloss.Width(prefix) - lipgloss.Width(mark)
	label := ansi.Truncate(opt.Display(), avail, "…")
	body := style.Render(prefix) + mark + style.Render(label)
	if pad := contentWidth - lipgloss.Width(body); pad > 0 {
		body += style.Render(strings.Repeat(" ", pad))
	}
	return body
}

// Dropdown renders the open dropdown, or "" while closed.
func (s Select) Dropdown() string {
	if !s.state.Open {
		return ""
	}
	return styleDropdown().Width(s.width - 2).Render(strings.Join(s.dropdownLines(), "\n"))
}

// rowAt maps a line offset from the dropdown top to a candidate index.
func (s Select) rowAt(dy int) (int, bool) {
	if len(s.state.Candidates) == 0 {
		return -1, false
	}
	start, end := s.window()
	first := 1 // border
	if start > 0 {
		first++
	}
	idx := start + dy - first
	if dy < first || idx >= end {
		return -1, false
	}
	return idx, true
}

func (s Select) dropdownHeight() int {
	if !s.state.Open {
		return 0
	}
	return len(s.dropdownLines()) + 2
}

// Contains reports whether (x, y) in host coordinates falls on the select
// or its open dropdown.
func (s Select) Contains(x, y int) bool {
	return s.region.Contains(x, y)
}

// syncRegion publishes the select's footprint to its dismissal target.
func (s Select) syncRegion() {
	l := s.layout()
	rects := []dismiss.Rect{{X: s.originX, Y: s.originY, W: s.width, H: l.height}}
	if s.state.Open {
		rects = append(rects, dismiss.Rect{X: s.originX, Y: s.originY + l.dropTop, W: s.width, H: s.dropdownHeight()})
	}
	s.region.Set(rects...)
}

// Text returns the committed labels joined for display.
func (s Select) Text() string {
	return option.JoinLabels(s.state.Value)
}
