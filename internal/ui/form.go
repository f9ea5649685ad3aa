package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"formbox/internal/debug"
	"formbox/internal/dismiss"
	"formbox/internal/form"
	"formbox/internal/option"
	"formbox/internal/ui/theme"
)

var formLogf = debug.Component("form")

const (
	fieldIndent   = 2
	minFieldWidth = 20
	maxFieldWidth = 72
)

// Form hosts the mounted widgets of one definition. It owns focus cycling,
// draws the open dropdown above later fields and routes pointer presses
// through the dismissal hub.
type Form struct {
	title       string
	description string
	widgets     []Widget
	focus       int
	store       form.Store
	hub         *dismiss.Hub
	keys        KeyMap

	width  int
	height int

	status      string
	statusErr   bool
	statusToken int

	initCmd   tea.Cmd
	submitted bool
	quitting  bool
}

// NewForm mounts every field of def. opts.Hub is created when nil so the
// form always routes outside presses.
func NewForm(def form.Definition, store form.Store, opts MountOptions) (Form, error) {
	if opts.Hub == nil {
		opts.Hub = dismiss.NewHub()
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	if opts.Width <= 0 {
		opts.Width = defaultSelectWidth
	}

	f := Form{
		title:       def.Title,
		description: def.Description,
		focus:       -1,
		store:       store,
		hub:         opts.Hub,
		keys:        keys,
	}
	for _, field := range def.Fields {
		w, err := Mount(field, store, opts)
		if err != nil {
			f.Close()
			return Form{}, fmt.Errorf("mount %s: %w", field.Key, err)
		}
		f.widgets = append(f.widgets, w)
	}

	var cmds []tea.Cmd
	for i, w := range f.widgets {
		if sel, ok := w.(Select); ok && sel.Focusable() {
			var cmd tea.Cmd
			f.focus = i
			f.widgets[i], cmd = sel.Focus()
			cmds = append(cmds, cmd)
			break
		}
	}
	f.initCmd = tea.Batch(cmds...)
	f = f.syncOrigins()
	return f, nil
}

// Init starts every select and focuses the first one.
func (f Form) Init() tea.Cmd {
	cmds := []tea.Cmd{f.initCmd}
	for _, w := range f.widgets {
		if sel, ok := w.(Select); ok {
			cmds = append(cmds, sel.Init())
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	f, cmd = f.update(msg)
	f = f.syncOrigins()
	return f, tea.Batch(cmd, f.mouseEdge())
}

func (f Form) update(msg tea.Msg) (Form, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width, f.height = msg.Width, msg.Height
		return f.resize(), nil

	case tea.KeyMsg:
		return f.handleKey(msg)

	case tea.MouseMsg:
		return f.handleMouse(msg)

	case tea.BlurMsg:
		return f.updateFocused(func(s Select) (Select, tea.Cmd) { return s.Blur() })

	case tea.FocusMsg:
		return f.updateFocused(func(s Select) (Select, tea.Cmd) { return s.Focus() })

	case SelectCommittedMsg:
		formLogf("%s committed", msg.Key)
		var cmd tea.Cmd
		f, cmd = f.resyncOthers(msg.Key)
		text := option.JoinLabels(selectionOf(msg.Value))
		if text == "" {
			text = noneText
		}
		status := f.setStatus(fmt.Sprintf("Saved %s: %s", f.labelFor(msg.Key), text), false)
		return f, tea.Batch(cmd, status)

	case SelectErrorMsg:
		formLogf("%s error: %v", msg.Key, msg.Err)
		cmd := f.setStatus(fmt.Sprintf("%s: %v", f.labelFor(msg.Key), msg.Err), true)
		return f, cmd

	case SelectCopiedMsg:
		cmd := f.setStatus(fmt.Sprintf("Copied %q", msg.Text), false)
		return f, cmd

	case SelectClosedMsg:
		formLogf("%s closed", msg.Key)
		return f, nil

	case statusClearMsg:
		if msg.token == f.statusToken {
			f.status = ""
			f.statusErr = false
		}
		return f, nil
	}

	return f.broadcast(msg)
}

func (f Form) handleKey(msg tea.KeyMsg) (Form, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Quit):
		f.quitting = true
		return f, tea.Quit
	case key.Matches(msg, f.keys.Submit):
		f.submitted = true
		return f, tea.Quit
	case key.Matches(msg, f.keys.Theme):
		cmd := f.setStatus("Theme: "+theme.Cycle(), false)
		return f, cmd
	case key.Matches(msg, f.keys.Tab):
		return f.tabTo(1, msg)
	case key.Matches(msg, f.keys.ShiftTab):
		return f.tabTo(-1, msg)
	}
	return f.updateFocused(func(s Select) (Select, tea.Cmd) { return s.Update(msg) })
}

// tabTo closes the focused dropdown with the Tab key and moves focus.
func (f Form) tabTo(delta int, msg tea.KeyMsg) (Form, tea.Cmd) {
	f, closeCmd := f.updateFocused(func(s Select) (Select, tea.Cmd) { return s.Update(msg) })
	next := f.nextFocusable(delta)
	if next < 0 {
		return f, closeCmd
	}
	f, focusCmd := f.focusIndex(next)
	return f, tea.Batch(closeCmd, focusCmd)
}

func (f Form) handleMouse(msg tea.MouseMsg) (Form, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return f, nil
	}

	var cmds []tea.Cmd
	for _, id := range f.hub.PointerDown(msg.X, msg.Y) {
		for i, w := range f.widgets {
			sel, ok := w.(Select)
			if !ok || sel.HubID() != id {
				continue
			}
			var cmd tea.Cmd
			f.widgets[i], cmd = sel.Dismiss()
			cmds = append(cmds, cmd)
		}
	}

	target := f.widgetAt(msg.X, msg.Y)
	if target < 0 {
		return f, tea.Batch(cmds...)
	}
	sel, ok := f.widgets[target].(Select)
	if !ok || !sel.Focusable() {
		return f, tea.Batch(cmds...)
	}
	if target != f.focus {
		var cmd tea.Cmd
		f, cmd = f.focusIndex(target)
		return f, tea.Batch(append(cmds, cmd)...)
	}
	var cmd tea.Cmd
	f.widgets[target], cmd = sel.Update(msg)
	return f, tea.Batch(append(cmds, cmd)...)
}

// widgetAt returns the widget under (x, y). Open dropdowns are checked
// first because they are drawn above the fields they cover.
func (f Form) widgetAt(x, y int) int {
	for i, w := range f.widgets {
		if sel, ok := w.(Select); ok && sel.State().Open && sel.Contains(x, y) {
			return i
		}
	}
	for i, w := range f.widgets {
		if sel, ok := w.(Select); ok && sel.Contains(x, y) {
			return i
		}
	}
	return -1
}

func (f Form) focusIndex(i int) (Form, tea.Cmd) {
	var cmds []tea.Cmd
	if f.focus >= 0 && f.focus != i {
		if sel, ok := f.widgets[f.focus].(Select); ok {
			var cmd tea.Cmd
			f.widgets[f.focus], cmd = sel.Blur()
			cmds = append(cmds, cmd)
		}
	}
	if sel, ok := f.widgets[i].(Select); ok {
		var cmd tea.Cmd
		f.widgets[i], cmd = sel.Focus()
		cmds = append(cmds, cmd)
		f.focus = i
	}
	return f, tea.Batch(cmds...)
}

func (f Form) nextFocusable(delta int) int {
	n := len(f.widgets)
	if n == 0 {
		return -1
	}
	start := f.focus
	if start < 0 {
		start = 0
		if delta > 0 {
			start = n - 1
		}
	}
	for step := 1; step <= n; step++ {
		i := ((start+delta*step)%n + n) % n
		if sel, ok := f.widgets[i].(Select); ok && sel.Focusable() {
			return i
		}
	}
	return -1
}

func (f Form) updateFocused(fn func(Select) (Select, tea.Cmd)) (Form, tea.Cmd) {
	if f.focus < 0 || f.focus >= len(f.widgets) {
		return f, nil
	}
	sel, ok := f.widgets[f.focus].(Select)
	if !ok {
		return f, nil
	}
	var cmd tea.Cmd
	f.widgets[f.focus], cmd = fn(sel)
	return f, cmd
}

// broadcast hands msg to every select. Selects ignore messages addressed to
// other instances.
func (f Form) broadcast(msg tea.Msg) (Form, tea.Cmd) {
	var cmds []tea.Cmd
	for i, w := range f.widgets {
		if sel, ok := w.(Select); ok {
			var cmd tea.Cmd
			f.widgets[i], cmd = sel.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return f, tea.Batch(cmds...)
}

// resyncOthers reloads every widget bound to key from the store.
func (f Form) resyncOthers(key string) (Form, tea.Cmd) {
	var cmds []tea.Cmd
	for i, w := range f.widgets {
		if w.Key() != key {
			continue
		}
		switch w := w.(type) {
		case Select:
			var cmd tea.Cmd
			f.widgets[i], cmd = w.Resync()
			cmds = append(cmds, cmd)
		case ReadOnly:
			f.widgets[i] = w.Resync()
		}
	}
	return f, tea.Batch(cmds...)
}

func (f *Form) setStatus(text string, isErr bool) tea.Cmd {
	f.statusToken++
	f.status = text
	f.statusErr = isErr
	return scheduleStatusClear(f.statusToken)
}

func (f Form) labelFor(key string) string {
	for _, w := range f.widgets {
		if w.Key() != key {
			continue
		}
		if sel, ok := w.(Select); ok && sel.label != "" {
			return sel.label
		}
		if ro, ok := w.(ReadOnly); ok && ro.label != "" {
			return ro.label
		}
	}
	return key
}

func (f Form) fieldWidth() int {
	if f.width <= 0 {
		return defaultSelectWidth
	}
	w := f.width - 2*fieldIndent
	if w < minFieldWidth {
		w = minFieldWidth
	}
	if w > maxFieldWidth {
		w = maxFieldWidth
	}
	return w
}

func (f Form) resize() Form {
	w := f.fieldWidth()
	for i, widget := range f.widgets {
		switch widget := widget.(type) {
		case Select:
			f.widgets[i] = widget.SetWidth(w)
		case ReadOnly:
			f.widgets[i] = widget.SetWidth(w)
		}
	}
	return f
}

// headerLines renders the title and description.
func (f Form) headerLines() []string {
	var lines []string
	if strings.TrimSpace(f.title) != "" {
		lines = append(lines, styleTitle().Render(f.title))
	}
	if strings.TrimSpace(f.description) != "" {
		for _, line := range strings.Split(wrapText(f.description, f.fieldWidth()), "\n") {
			lines = append(lines, styleDescription().Render(line))
		}
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	return lines
}

// origins returns the top line of every widget.
func (f Form) origins() []int {
	y := len(f.headerLines())
	out := make([]int, len(f.widgets))
	for i, w := range f.widgets {
		out[i] = y
		y += w.Height() + 1
	}
	return out
}

func (f Form) syncOrigins() Form {
	for i, y := range f.origins() {
		if sel, ok := f.widgets[i].(Select); ok {
			f.widgets[i] = sel.SetOrigin(fieldIndent, y)
		}
	}
	return f
}

// mouseEdge turns terminal mouse tracking on while any dropdown is open.
func (f Form) mouseEdge() tea.Cmd {
	active, changed := f.hub.Edge()
	if !changed {
		return nil
	}
	if active {
		return tea.EnableMouseCellMotion
	}
	return tea.DisableMouse
}

func (f Form) footer() string {
	var parts []string
	seen := map[string]bool{}
	for _, b := range f.keys.FooterBindings() {
		h := b.Help()
		if seen[h.Key] {
			continue
		}
		seen[h.Key] = true
		parts = append(parts, styleFooterKey().Render(h.Key)+" "+styleFooterDesc().Render(h.Desc))
	}
	help := strings.Join(parts, styleFooterDesc().Render(" • "))

	status := ""
	if f.status != "" {
		style := styleStatus()
		if f.statusErr {
			style = styleStatusError()
		}
		status = style.Render(f.status)
	}
	return status + "\n" + help
}

// View renders the form. The open dropdown, if any, is composed over the
// fields below it on a cell canvas.
func (f Form) View() string {
	if f.quitting || f.submitted {
		return ""
	}

	indent := lipgloss.NewStyle().PaddingLeft(fieldIndent)
	lines := f.headerLines()
	openIdx := -1
	for i, w := range f.widgets {
		lines = append(lines, indent.Render(w.View()), "")
		if sel, ok := w.(Select); ok && sel.State().Open {
			openIdx = i
		}
	}
	lines = append(lines, f.footer())
	base := strings.Join(lines, "\n")
	if openIdx < 0 {
		return base
	}

	sel := f.widgets[openIdx].(Select)
	dropdown := sel.Dropdown()
	dropY := f.origins()[openIdx] + sel.DropdownOffset()

	height := lipgloss.Height(base)
	if bottom := dropY + lipgloss.Height(dropdown); bottom > height {
		height = bottom
	}
	width := lipgloss.Width(base)
	if w := fieldIndent + lipgloss.Width(dropdown); w > width {
		width = w
	}

	canvas := NewCanvas(width, height)
	canvas.DrawStringAt(0, 0, base)
	canvas.OverlayAt(fieldIndent, dropY, dropdown)
	return canvas.Render()
}

// Submitted reports whether the user saved and exited.
func (f Form) Submitted() bool { return f.submitted }

// Widgets returns the mounted widgets in definition order.
func (f Form) Widgets() []Widget { return f.widgets }

// Focused returns the index of the focused widget, or -1.
func (f Form) Focused() int { return f.focus }

// Store returns the value store the form writes into.
func (f Form) Store() form.Store { return f.store }

// Close releases every widget.
func (f Form) Close() {
	for _, w := range f.widgets {
		w.Close()
	}
}

// selectionOf converts a store value written by a select back into options.
func selectionOf(v any) []option.Option {
	switch v := v.(type) {
	case *option.Option:
		if v == nil {
			return nil
		}
		return []option.Option{*v}
	case []option.Option:
		return v
	default:
		return option.Decode(v)
	}
}
