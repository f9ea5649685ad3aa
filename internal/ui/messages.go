package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"formbox/internal/option"
)

// SelectCommittedMsg is sent after a select wrote a new value to the store.
// Value is what the store received: *option.Option for single selects,
// []option.Option for multi selects.
type SelectCommittedMsg struct {
	Key   string
	Value any
}

// SelectClosedMsg is sent when a select's dropdown closes.
type SelectClosedMsg struct {
	Key string
}

// SelectErrorMsg reports a failure that left the select usable, such as a
// store write or clipboard error.
type SelectErrorMsg struct {
	Key string
	Err error
}

// SelectCopiedMsg is sent after the committed labels were copied.
type SelectCopiedMsg struct {
	Key  string
	Text string
}

// settledMsg carries a debounced search term back into Update.
type settledMsg struct {
	id   uint64
	text string
}

// resultsMsg carries the answer of the remote query tagged seq.
type resultsMsg struct {
	id   uint64
	seq  uint64
	opts []option.Option
	err  error
}

// blurExpiredMsg fires when a blur grace period elapses.
type blurExpiredMsg struct {
	id    uint64
	token uint64
}

// statusClearMsg clears the form footer status after a delay.
type statusClearMsg struct {
	token int
}

const statusDuration = 2 * time.Second

func scheduleBlurExpiry(id, token uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return blurExpiredMsg{id: id, token: token}
	})
}

func scheduleStatusClear(token int) tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusClearMsg{token: token}
	})
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// waitSettled blocks on the debouncer channel. It returns nil once the
// channel is closed so the command chain ends with the widget.
func waitSettled(id uint64, ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		text, ok := <-ch
		if !ok {
			return nil
		}
		return settledMsg{id: id, text: text}
	}
}
