package combobox

import "formbox/internal/option"

// Kind identifies an Event.
type Kind int

const (
	EventFocus Kind = iota + 1
	EventKeyDown
	EventKeyUp
	EventKeyEnter
	EventKeySpace
	EventKeyEscape
	EventKeyTab
	EventType
	EventClick
	EventRemove
	EventToggleOpen
	EventDismiss
	EventSettled
	EventResults
	EventFailed
	EventResync
	EventSetOptions
	EventSetDisabled
	EventSetReadOnly
)

var kindNames = map[Kind]string{
	EventFocus:       "focus",
	EventKeyDown:     "key-down",
	EventKeyUp:       "key-up",
	EventKeyEnter:    "key-enter",
	EventKeySpace:    "key-space",
	EventKeyEscape:   "key-escape",
	EventKeyTab:      "key-tab",
	EventType:        "type",
	EventClick:       "click",
	EventRemove:      "remove",
	EventToggleOpen:  "toggle-open",
	EventDismiss:     "dismiss",
	EventSettled:     "settled",
	EventResults:     "results",
	EventFailed:      "failed",
	EventResync:      "resync",
	EventSetOptions:  "set-options",
	EventSetDisabled: "set-disabled",
	EventSetReadOnly: "set-read-only",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is an input to Transition. Only the payload fields relevant to Kind
// are read.
type Event struct {
	Kind Kind

	Text    string
	Index   int
	Value   string
	Seq     uint64
	Options []option.Option
	Err     error
	Flag    bool
}

// Key returns a payload-free event such as EventKeyDown or EventDismiss.
func Key(k Kind) Event { return Event{Kind: k} }

// Type records a raw keystroke change of the search term.
func Type(text string) Event { return Event{Kind: EventType, Text: text} }

// Click commits the candidate at index.
func Click(index int) Event { return Event{Kind: EventClick, Index: index} }

// Remove drops the committed option with value.
func Remove(value string) Event { return Event{Kind: EventRemove, Value: value} }

// Settled delivers the debounced search term.
func Settled(text string) Event { return Event{Kind: EventSettled, Text: text} }

// Results delivers the options of the remote query tagged seq.
func Results(seq uint64, opts []option.Option) Event {
	return Event{Kind: EventResults, Seq: seq, Options: opts}
}

// Failed reports that the remote query tagged seq failed.
func Failed(seq uint64, err error) Event { return Event{Kind: EventFailed, Seq: seq, Err: err} }

// Resync replaces the committed value with what the store holds.
func Resync(value []option.Option) Event { return Event{Kind: EventResync, Options: value} }

// SetOptions replaces the static candidate list.
func SetOptions(opts []option.Option) Event { return Event{Kind: EventSetOptions, Options: opts} }

// SetDisabled toggles the disabled flag.
func SetDisabled(v bool) Event { return Event{Kind: EventSetDisabled, Flag: v} }

// SetReadOnly toggles the read-only flag.
func SetReadOnly(v bool) Event { return Event{Kind: EventSetReadOnly, Flag: v} }

// Effect is a set of side effects requested by Transition.
type Effect uint8

const (
	// EffectCommit asks the host to write State.Value to the store.
	EffectCommit Effect = 1 << iota
	// EffectClose reports that the dropdown closed.
	EffectClose
	// EffectSearch asks the host to push State.Search to the debouncer.
	EffectSearch
	// EffectQuery asks the host to query the remote source for
	// State.Queried, tagging the answer with State.Seq.
	EffectQuery
	// EffectFocus asks the host to refocus the search input.
	EffectFocus
)

// Has reports whether all bits of f are set.
func (e Effect) Has(f Effect) bool {
	return e&f == f
}
