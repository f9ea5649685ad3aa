// Package combobox is the headless engine behind searchable selects.
//
// Transition is a pure function from (State, Event) to the next State plus a
// set of Effects the host must carry out: write the committed value, fire
// the close callback, forward the search term to the debouncer, issue a
// remote query, refocus the input. Nothing in this package blocks, starts
// goroutines or touches the terminal.
package combobox

import (
	"formbox/internal/option"
	"formbox/internal/selection"
)

// State is the full widget state of one combobox.
type State struct {
	Open       bool
	Highlight  int
	Candidates []option.Option

	Search string
	Value  []option.Option

	// Loading is true while the latest remote query is outstanding.
	Loading bool
	// Failed is true when the latest remote query returned an error.
	Failed bool
	Err    error

	// Seq is the sequence number of the latest issued remote query.
	Seq uint64
	// Queried is the search text of the latest issued remote query.
	Queried   string
	populated bool

	// Static is the full client-side list. Unused for remote sources.
	Static []option.Option
	Remote bool
	Match  option.Match

	Multiple bool
	NoSearch bool
	Disabled bool
	ReadOnly bool
}

// Config describes a combobox at mount time.
type Config struct {
	// Options is the static candidate list. Ignored when Remote is set.
	Options []option.Option
	Remote  bool
	Match   option.Match

	Multiple bool
	// NoSearch disables typing; the list is navigated with keys only.
	NoSearch bool
	Disabled bool
	ReadOnly bool

	// Value is the committed value read from the store or field default.
	Value []option.Option
}

// New returns the closed initial state for cfg. Remote sources start with no
// candidates; send Settled("") to issue the initial query.
func New(cfg Config) State {
	s := State{
		Highlight: -1,
		Remote:    cfg.Remote,
		Match:     cfg.Match,
		Multiple:  cfg.Multiple,
		NoSearch:  cfg.NoSearch,
		Disabled:  cfg.Disabled,
		ReadOnly:  cfg.ReadOnly,
	}
	s.Value = normalizeValue(cfg.Value, cfg.Multiple)
	if !cfg.Remote {
		s.Static = option.Dedupe(option.Clone(cfg.Options))
		s.Candidates = option.Clone(s.Static)
	}
	return s
}

// Policy returns the selection policy for the state's mode.
func (s State) Policy() selection.Policy {
	return selection.For(s.Multiple)
}

// Interactive reports whether user input can change the state.
func (s State) Interactive() bool {
	return !s.Disabled && !s.ReadOnly
}

// Selected reports whether value is part of the committed value.
func (s State) Selected(value string) bool {
	return option.Contains(s.Value, value)
}

// HighlightedOption returns the candidate under the highlight.
func (s State) HighlightedOption() (option.Option, bool) {
	if s.Highlight < 0 || s.Highlight >= len(s.Candidates) {
		return option.Option{}, false
	}
	return s.Candidates[s.Highlight], true
}

// EmptyKind classifies an empty candidate list.
type EmptyKind int

const (
	// EmptyNone means there are candidates, or a query is still loading.
	EmptyNone EmptyKind = iota
	// EmptyNoOptions means no search term and nothing to choose from.
	EmptyNoOptions
	// EmptyNoMatches means the search term matched nothing.
	EmptyNoMatches
	// EmptyError means the latest remote query failed.
	EmptyError
)

// EmptyKind reports why the candidate list is empty.
func (s State) EmptyKind() EmptyKind {
	switch {
	case len(s.Candidates) > 0, s.Loading:
		return EmptyNone
	case s.Failed:
		return EmptyError
	case s.Search == "":
		return EmptyNoOptions
	default:
		return EmptyNoMatches
	}
}

// Message returns the user-facing text for the empty state.
func (k EmptyKind) Message() string {
	switch k {
	case EmptyNoOptions:
		return "No options available"
	case EmptyNoMatches:
		return "No results"
	case EmptyError:
		return "Could not load options"
	default:
		return ""
	}
}

func normalizeValue(v []option.Option, multiple bool) []option.Option {
	v = option.Dedupe(option.Clone(v))
	if !multiple && len(v) > 1 {
		v = v[:1]
	}
	return v
}
