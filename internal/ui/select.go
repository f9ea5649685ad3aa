package ui

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"formbox/internal/combobox"
	"formbox/internal/config"
	"formbox/internal/datasource"
	"formbox/internal/debounce"
	"formbox/internal/debug"
	"formbox/internal/dismiss"
	appErrors "formbox/internal/errors"
	"formbox/internal/form"
	"formbox/internal/option"
)

var logf = debug.Component("select")

var selectIDs atomic.Uint64

// SelectConfig configures a Select at construction.
type SelectConfig struct {
	Key         string
	Label       string
	Placeholder string
	Help        string
	Required    bool
	HasError    bool

	// Combobox seeds the state machine. When Source is a *datasource.Static
	// its options and match mode replace Combobox.Options and Combobox.Match.
	Combobox combobox.Config
	Source   datasource.Source
	Store    form.Store
	Hub      *dismiss.Hub
	Keys     *KeyMap

	Debounce   time.Duration
	BlurGrace  time.Duration
	Timeout    time.Duration
	Width      int
	MaxVisible int
}

// Select is a searchable selection combobox bound to one store key. It
// drives a combobox.State and carries out the effects each transition asks
// for.
type Select struct {
	id          uint64
	key         string
	label       string
	placeholder string
	help        string
	required    bool
	hasError    bool

	state  combobox.State
	source datasource.Source
	store  form.Store

	input   textinput.Model
	spinner spinner.Model
	keys    KeyMap

	debouncer *debounce.Debouncer[string]
	settled   chan string
	closeOnce *sync.Once

	hub     *dismiss.Hub
	region  *dismiss.Region
	hubID   string
	release func()
	grace   dismiss.Grace

	timeout    time.Duration
	width      int
	maxVisible int
	scroll     int
	focused    bool
	originX    int
	originY    int
}

// NewSelect builds a closed select. Remote sources are marked loading right
// away; Init issues the initial query.
func NewSelect(cfg SelectConfig) Select {
	cc := cfg.Combobox
	if static, ok := cfg.Source.(*datasource.Static); ok {
		cc.Options = static.Options()
		cc.Match = static.Match()
	}
	cc.Remote = datasource.Remote(cfg.Source)

	keys := DefaultKeyMap()
	if cfg.Keys != nil {
		keys = *cfg.Keys
	}

	width := cfg.Width
	if width <= 0 {
		width = defaultSelectWidth
	}
	maxVisible := cfg.MaxVisible
	if maxVisible <= 0 {
		maxVisible = config.DefaultMaxVisible
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultRemoteTimeout
	}
	delay := cfg.Debounce
	if delay <= 0 {
		delay = config.DefaultSearchDebounce
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = cfg.Placeholder
	ti.CharLimit = 200
	ti.Width = inputTextWidth(width)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styleSpinner()

	settled := make(chan string, 1)

	s := Select{
		id:          selectIDs.Add(1),
		key:         cfg.Key,
		label:       cfg.Label,
		placeholder: cfg.Placeholder,
		help:        cfg.Help,
		required:    cfg.Required,
		hasError:    cfg.HasError,
		state:       combobox.New(cc),
		source:      cfg.Source,
		store:       cfg.Store,
		input:       ti,
		spinner:     sp,
		keys:        keys,
		debouncer:   debounce.New(delay, publishLatest(settled)),
		settled:     settled,
		closeOnce:   &sync.Once{},
		hub:         cfg.Hub,
		region:      &dismiss.Region{},
		grace:       dismiss.NewGrace(cfg.BlurGrace),
		timeout:     timeout,
		width:       width,
		maxVisible:  maxVisible,
	}
	if s.state.Remote {
		s.state, _ = combobox.Populate(s.state)
	}
	s.syncRegion()
	return s
}

const defaultSelectWidth = 40

// inputTextWidth is the text area inside the bordered, padded input box,
// minus one cell for the cursor and two for the spinner.
func inputTextWidth(width int) int {
	w := width - 7
	if w < 1 {
		w = 1
	}
	return w
}

// publishLatest returns a debouncer publish func that keeps only the newest
// settled term in ch.
func publishLatest(ch chan string) func(string) {
	return func(text string) {
		for {
			select {
			case ch <- text:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Init starts the settled-term listener and, for remote sources, the
// initial query.
func (s Select) Init() tea.Cmd {
	cmds := []tea.Cmd{waitSettled(s.id, s.settled)}
	if s.state.Loading {
		cmds = append(cmds, s.fetch(), s.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update implements the Bubble Tea update loop for one select.
func (s Select) Update(msg tea.Msg) (Select, tea.Cmd) {
	switch msg := msg.(type) {
	case settledMsg:
		if msg.id != s.id {
			return s, nil
		}
		var cmd tea.Cmd
		s, cmd = s.apply(combobox.Settled(msg.text))
		return s, tea.Batch(cmd, waitSettled(s.id, s.settled))

	case resultsMsg:
		if msg.id != s.id {
			return s, nil
		}
		if msg.err != nil {
			logf("%s: query seq=%d failed: %v", s.key, msg.seq, msg.err)
			return s.apply(combobox.Failed(msg.seq, msg.err))
		}
		if msg.seq != s.state.Seq {
			logf("%s: dropping stale results seq=%d latest=%d", s.key, msg.seq, s.state.Seq)
		}
		return s.apply(combobox.Results(msg.seq, msg.opts))

	case blurExpiredMsg:
		if msg.id != s.id || !s.grace.Expired(msg.token) {
			return s, nil
		}
		return s.apply(combobox.Key(combobox.EventDismiss))

	case spinner.TickMsg:
		if !s.state.Loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.MouseMsg:
		return s.handleMouse(msg)

	case tea.KeyMsg:
		if !s.focused {
			return s, nil
		}
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s Select) handleKey(msg tea.KeyMsg) (Select, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Copy):
		return s, s.copyValue()
	case key.Matches(msg, s.keys.Up):
		return s.apply(combobox.Key(combobox.EventKeyUp))
	case key.Matches(msg, s.keys.Down):
		return s.apply(combobox.Key(combobox.EventKeyDown))
	case key.Matches(msg, s.keys.Enter):
		return s.apply(combobox.Key(combobox.EventKeyEnter))
	case key.Matches(msg, s.keys.Escape):
		return s.apply(combobox.Key(combobox.EventKeyEscape))
	case key.Matches(msg, s.keys.Tab), key.Matches(msg, s.keys.ShiftTab):
		return s.apply(combobox.Key(combobox.EventKeyTab))
	case key.Matches(msg, s.keys.Space) && (s.state.NoSearch || !s.state.Open):
		return s.apply(combobox.Key(combobox.EventKeySpace))
	case key.Matches(msg, s.keys.Backspace) && s.input.Value() == "" && s.state.Multiple:
		if n := len(s.state.Value); n > 0 {
			return s.apply(combobox.Remove(s.state.Value[n-1].Value))
		}
		return s, nil
	}

	if s.state.NoSearch || !s.state.Interactive() {
		return s, nil
	}
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() == before {
		return s, cmd
	}
	var typed tea.Cmd
	s, typed = s.apply(combobox.Type(s.input.Value()))
	return s, tea.Batch(cmd, typed)
}

func (s Select) handleMouse(msg tea.MouseMsg) (Select, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return s, nil
	}
	if !s.Contains(msg.X, msg.Y) || !s.state.Interactive() {
		return s, nil
	}
	s.grace.Cancel()

	x, y := msg.X-s.originX, msg.Y-s.originY
	l := s.layout()
	if s.state.Open && y >= l.dropTop {
		if idx, ok := s.rowAt(y - l.dropTop); ok {
			return s.apply(combobox.Click(idx))
		}
		return s, nil
	}
	if y >= l.chipTop && y < l.inputTop {
		if chip, onClose, ok := chipAt(l.chips, x, y-l.chipTop); ok && onClose {
			return s.apply(combobox.Remove(chip.value))
		}
		return s, nil
	}
	if y >= l.inputTop && y < l.inputTop+inputHeight {
		return s.apply(combobox.Key(combobox.EventToggleOpen))
	}
	return s, nil
}

// apply runs one transition and performs the effects it requested.
func (s Select) apply(ev combobox.Event) (Select, tea.Cmd) {
	next, eff := combobox.Transition(s.state, ev)
	s.state = next

	var cmds []tea.Cmd
	if s.input.Value() != s.state.Search {
		s.input.SetValue(s.state.Search)
		s.input.CursorEnd()
	}
	if eff.Has(combobox.EffectSearch) {
		s.debouncer.Push(s.state.Search)
	}
	if eff.Has(combobox.EffectQuery) {
		cmds = append(cmds, s.fetch(), s.spinner.Tick)
	}
	if eff.Has(combobox.EffectCommit) {
		cmds = append(cmds, s.writeValue())
	}
	if eff.Has(combobox.EffectFocus) && s.focused {
		cmds = append(cmds, s.input.Focus())
	}
	if eff.Has(combobox.EffectClose) {
		cmds = append(cmds, emit(SelectClosedMsg{Key: s.key}))
	}

	s = s.syncOpen()
	s.adjustScroll()
	s.syncRegion()
	return s, tea.Batch(cmds...)
}

// syncOpen holds a dismissal registration exactly while the dropdown is
// open.
func (s Select) syncOpen() Select {
	switch {
	case s.state.Open && s.release == nil && s.hub != nil:
		s.hubID, s.release = s.hub.Register(s.region)
	case !s.state.Open && s.release != nil:
		s.release()
		s.release = nil
		s.hubID = ""
	}
	if !s.state.Open {
		s.grace.Cancel()
	}
	return s
}

func (s Select) fetch() tea.Cmd {
	src, id := s.source, s.id
	term, seq, timeout := s.state.Queried, s.state.Seq, s.timeout
	return func() tea.Msg {
		opts, err := datasource.Fetch(context.Background(), src, term, timeout)
		return resultsMsg{id: id, seq: seq, opts: opts, err: err}
	}
}

func (s Select) writeValue() tea.Cmd {
	value := s.state.Policy().Encode(s.state.Value)
	if s.store != nil {
		if err := s.store.Set(s.key, value); err != nil {
			logf("%s: store write failed: %v", s.key, err)
			if appErrors.CodeOf(err) == appErrors.CodeUnknown {
				err = appErrors.New(appErrors.CodeStoreFailed, "write "+s.key, err)
			}
			return emit(SelectErrorMsg{Key: s.key, Err: err})
		}
	}
	logf("%s: committed %q", s.key, option.JoinLabels(s.state.Value))
	return emit(SelectCommittedMsg{Key: s.key, Value: value})
}

func (s Select) copyValue() tea.Cmd {
	text := option.JoinLabels(s.state.Value)
	k := s.key
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return SelectErrorMsg{Key: k, Err: err}
		}
		return SelectCopiedMsg{Key: k, Text: text}
	}
}

// adjustScroll keeps the highlighted row inside the visible window.
func (s *Select) adjustScroll() {
	if s.state.Highlight < 0 {
		s.scroll = 0
		return
	}
	if s.state.Highlight < s.scroll {
		s.scroll = s.state.Highlight
	}
	if s.state.Highlight >= s.scroll+s.maxVisible {
		s.scroll = s.state.Highlight - s.maxVisible + 1
	}
	maxOffset := len(s.state.Candidates) - s.maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.scroll > maxOffset {
		s.scroll = maxOffset
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
}

// Focus gives the select keyboard focus, which opens its dropdown.
func (s Select) Focus() (Select, tea.Cmd) {
	s.focused = true
	s.grace.Cancel()
	blink := s.input.Focus()
	var cmd tea.Cmd
	s, cmd = s.apply(combobox.Key(combobox.EventFocus))
	return s, tea.Batch(blink, cmd)
}

// Blur removes keyboard focus. An open dropdown stays up for the grace
// period so a pending click on a row can still land.
func (s Select) Blur() (Select, tea.Cmd) {
	s.focused = false
	s.input.Blur()
	if !s.state.Open {
		return s, nil
	}
	token := s.grace.Arm()
	return s, scheduleBlurExpiry(s.id, token, s.grace.Delay)
}

// Dismiss closes the dropdown after an outside interaction.
func (s Select) Dismiss() (Select, tea.Cmd) {
	return s.apply(combobox.Key(combobox.EventDismiss))
}

// Resync reloads the committed value from the store.
func (s Select) Resync() (Select, tea.Cmd) {
	if s.store == nil {
		return s, nil
	}
	v, ok := s.store.Get(s.key)
	if !ok {
		return s, nil
	}
	return s.apply(combobox.Resync(s.state.Policy().Normalize(v)))
}

// SetOptions replaces the candidate list.
func (s Select) SetOptions(opts []option.Option) (Select, tea.Cmd) {
	return s.apply(combobox.SetOptions(opts))
}

// SetDisabled toggles the disabled flag, closing the dropdown when set.
func (s Select) SetDisabled(v bool) (Select, tea.Cmd) {
	return s.apply(combobox.SetDisabled(v))
}

// SetReadOnly toggles the read-only flag, closing the dropdown when set.
func (s Select) SetReadOnly(v bool) (Select, tea.Cmd) {
	return s.apply(combobox.SetReadOnly(v))
}

// SetHasError toggles the error border.
func (s Select) SetHasError(v bool) Select {
	s.hasError = v
	return s
}

// SetWidth resizes the select.
func (s Select) SetWidth(w int) Select {
	if w <= 0 {
		return s
	}
	s.width = w
	s.input.Width = inputTextWidth(w)
	s.syncRegion()
	return s
}

// SetOrigin records where the host drew the select, for mouse hit testing.
func (s Select) SetOrigin(x, y int) Select {
	s.originX, s.originY = x, y
	s.syncRegion()
	return s
}

// Close stops the debouncer and releases the dismissal registration. The
// select must not be used afterwards.
func (s Select) Close() {
	s.closeOnce.Do(func() {
		s.debouncer.Close()
		close(s.settled)
	})
	if s.release != nil {
		s.release()
	}
}

// Key returns the store key the select writes.
func (s Select) Key() string { return s.key }

// State returns the combobox state.
func (s Select) State() combobox.State { return s.state }

// HubID returns the dismissal registration id, empty while closed.
func (s Select) HubID() string { return s.hubID }

// Focused reports whether the select has keyboard focus.
func (s Select) Focused() bool { return s.focused }

// InputValue returns the text in the search input.
func (s Select) InputValue() string { return s.input.Value() }

// Value returns the committed value in store form.
func (s Select) Value() any { return s.state.Policy().Encode(s.state.Value) }

// Focusable reports whether the select can take keyboard focus.
func (s Select) Focusable() bool { return !s.state.Disabled }
