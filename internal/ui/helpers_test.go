package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"formbox/internal/dismiss"
	"formbox/internal/option"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func colorOptions() []option.Option {
	return []option.Option{
		option.New("Red", "red"),
		option.New("Green", "green"),
		option.New("Blue", "blue"),
	}
}

func letterOptions() []option.Option {
	return []option.Option{
		option.New("A", "a"),
		option.New("B", "b"),
		option.New("C", "c"),
	}
}

func newTestSelect(t *testing.T, cfg SelectConfig) Select {
	t.Helper()
	if cfg.Key == "" {
		cfg.Key = "color"
	}
	if cfg.Hub == nil {
		cfg.Hub = dismiss.NewHub()
	}
	s := NewSelect(cfg)
	t.Cleanup(s.Close)
	return s
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// send feeds msgs through Update and collects the returned commands.
func send(s Select, msgs ...tea.Msg) (Select, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, msg := range msgs {
		var cmd tea.Cmd
		s, cmd = s.Update(msg)
		cmds = append(cmds, cmd)
	}
	return s, cmds
}

func typeText(s Select, text string) Select {
	for _, r := range text {
		s, _ = s.Update(runeMsg(r))
	}
	return s
}

// drain runs cmd and every command it batches, returning the messages that
// arrive within a short window. Commands that block (timers, the settled
// listener) are abandoned.
func drain(cmds ...tea.Cmd) []tea.Msg {
	var out []tea.Msg
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		ch := make(chan tea.Msg, 1)
		go func(c tea.Cmd) { ch <- c() }(cmd)
		select {
		case msg := <-ch:
			if batch, ok := msg.(tea.BatchMsg); ok {
				out = append(out, drain(batch...)...)
				continue
			}
			if msg != nil {
				out = append(out, msg)
			}
		case <-time.After(20 * time.Millisecond):
		}
	}
	return out
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if m, ok := msg.(T); ok {
			return m, true
		}
	}
	var zero T
	return zero, false
}

type failingStore struct{}

func (failingStore) Get(string) (any, bool)  { return nil, false }
func (failingStore) Set(string, any) error { return errors.New("disk full") }
