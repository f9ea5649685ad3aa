package combobox

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formbox/internal/option"
)

var (
	red  = option.Option{Label: "Red", Value: "red"}
	blue = option.Option{Label: "Blue", Value: "blue"}
	abc  = []option.Option{{Label: "A", Value: "a"}, {Label: "B", Value: "b"}, {Label: "C", Value: "c"}}
)

// run applies events in order and returns the final state plus the union of
// effects.
func run(s State, events ...Event) (State, Effect) {
	var all Effect
	for _, ev := range events {
		var eff Effect
		s, eff = Transition(s, ev)
		all |= eff
	}
	return s, all
}

func TestSingleSelectScenario(t *testing.T) {
	s := New(Config{Options: abc})
	require.Equal(t, -1, s.Highlight)
	require.False(t, s.Open)

	s, eff := Transition(s, Key(EventKeyDown))
	assert.True(t, s.Open)
	assert.Equal(t, 0, s.Highlight)
	assert.Equal(t, Effect(0), eff)

	s, eff = Transition(s, Key(EventKeyEnter))
	assert.Equal(t, []option.Option{abc[0]}, s.Value)
	assert.False(t, s.Open)
	assert.Equal(t, -1, s.Highlight)
	assert.True(t, eff.Has(EffectCommit|EffectClose))
	assert.False(t, eff.Has(EffectFocus))
}

func TestMultiSelectScenario(t *testing.T) {
	s := New(Config{Options: []option.Option{red, blue}, Multiple: true})

	s, _ = Transition(s, Key(EventFocus))
	require.True(t, s.Open)

	s, eff := Transition(s, Click(0))
	assert.Equal(t, []option.Option{red}, s.Value)
	assert.True(t, s.Open, "multi select stays open")
	assert.True(t, eff.Has(EffectCommit|EffectFocus))
	assert.False(t, eff.Has(EffectClose))

	s, _ = Transition(s, Click(1))
	assert.Equal(t, []option.Option{red, blue}, s.Value)

	s, eff = Transition(s, Remove("red"))
	assert.Equal(t, []option.Option{blue}, s.Value)
	assert.True(t, eff.Has(EffectCommit))
	assert.True(t, s.Open)
}

func TestMultiCommitClearsSearchAndStaysOpen(t *testing.T) {
	s := New(Config{Options: []option.Option{red, blue, {Label: "Dark Red", Value: "dark-red"}}, Multiple: true})

	s, eff := run(s, Type("dar"))
	require.True(t, eff.Has(EffectSearch))
	require.Equal(t, []string{"dark-red"}, values(s.Candidates))

	s, eff = Transition(s, Key(EventKeyEnter))
	assert.Equal(t, "", s.Search)
	assert.True(t, s.Open)
	assert.Len(t, s.Candidates, 3, "clearing the term restores the full list")
	assert.Equal(t, 0, s.Highlight)
	assert.True(t, eff.Has(EffectCommit|EffectSearch|EffectFocus))
	assert.Equal(t, []string{"dark-red"}, values(s.Value))
}

func TestSingleCommitClearsSearch(t *testing.T) {
	s := New(Config{Options: abc})
	s, _ = run(s, Type("b"), Key(EventKeyEnter))
	assert.Equal(t, []string{"b"}, values(s.Value))
	assert.Equal(t, "", s.Search)
	assert.False(t, s.Open)
	assert.Len(t, s.Candidates, 3)
}

func TestHighlightWraps(t *testing.T) {
	for n := 1; n <= 5; n++ {
		opts := make([]option.Option, n)
		for i := range opts {
			opts[i] = option.New("", string(rune('a'+i)))
		}
		for start := 0; start < n; start++ {
			s := New(Config{Options: opts})
			s, _ = Transition(s, Key(EventFocus))
			s.Highlight = start

			down := s
			up := s
			for i := 0; i < n; i++ {
				down, _ = Transition(down, Key(EventKeyDown))
				up, _ = Transition(up, Key(EventKeyUp))
			}
			assert.Equal(t, start, down.Highlight, "n=%d start=%d down", n, start)
			assert.Equal(t, start, up.Highlight, "n=%d start=%d up", n, start)
		}
	}
}

func TestArrowsFromNoHighlight(t *testing.T) {
	s := New(Config{Options: abc})
	s.Open = true

	down, _ := Transition(s, Key(EventKeyDown))
	assert.Equal(t, 0, down.Highlight)
	up, _ := Transition(s, Key(EventKeyUp))
	assert.Equal(t, 2, up.Highlight)
}

func TestEnterAndClickConverge(t *testing.T) {
	for _, multiple := range []bool{false, true} {
		s := New(Config{Options: abc, Multiple: multiple, Value: []option.Option{abc[2]}})
		s, _ = run(s, Key(EventFocus), Key(EventKeyDown))

		viaEnter, enterEff := Transition(s, Key(EventKeyEnter))
		viaClick, clickEff := Transition(s, Click(1))

		assert.Equal(t, viaEnter, viaClick, "multiple=%v", multiple)
		assert.Equal(t, enterEff, clickEff, "multiple=%v", multiple)
	}
}

func TestStaleHighlightNeverCommitsOutOfRange(t *testing.T) {
	s := New(Config{Options: abc})
	s, _ = Transition(s, Key(EventFocus))

	s.Highlight = 10
	clamped, eff := Transition(s, Key(EventKeyEnter))
	assert.True(t, eff.Has(EffectCommit))
	assert.Equal(t, []string{"c"}, values(clamped.Value))

	_, eff = Transition(s, Click(7))
	assert.Equal(t, Effect(0), eff)
	_, eff = Transition(s, Click(-1))
	assert.Equal(t, Effect(0), eff)
}

func TestZeroCandidates(t *testing.T) {
	s := New(Config{})
	s, _ = Transition(s, Key(EventKeyDown))
	require.True(t, s.Open)
	assert.Equal(t, -1, s.Highlight)

	for _, k := range []Kind{EventKeyDown, EventKeyUp, EventKeyEnter} {
		next, eff := Transition(s, Key(k))
		assert.Equal(t, s, next, "%s", k)
		assert.Equal(t, Effect(0), eff, "%s", k)
	}
	assert.Equal(t, EmptyNoOptions, s.EmptyKind())
}

func TestCloseEvents(t *testing.T) {
	for _, k := range []Kind{EventKeyEscape, EventKeyTab, EventDismiss, EventToggleOpen} {
		t.Run(k.String(), func(t *testing.T) {
			s := New(Config{Options: abc})
			s, _ = run(s, Key(EventFocus), Type("a"))
			require.Len(t, s.Candidates, 1)

			s, eff := Transition(s, Key(k))
			assert.False(t, s.Open)
			assert.Equal(t, -1, s.Highlight)
			assert.True(t, eff.Has(EffectClose|EffectSearch))
			assert.Equal(t, "", s.Search)
			assert.Len(t, s.Candidates, 3)
			assert.Empty(t, s.Value)
		})
	}
}

func TestToggleOpenFromClosed(t *testing.T) {
	s := New(Config{Options: abc})
	s, eff := Transition(s, Key(EventToggleOpen))
	assert.True(t, s.Open)
	assert.Equal(t, 0, s.Highlight)
	assert.Equal(t, Effect(0), eff)
}

func TestOpeningKeys(t *testing.T) {
	for _, k := range []Kind{EventFocus, EventKeyEnter, EventKeyDown, EventKeySpace} {
		s := New(Config{Options: abc})
		s, eff := Transition(s, Key(k))
		assert.True(t, s.Open, "%s", k)
		assert.Equal(t, 0, s.Highlight, "%s", k)
		assert.Empty(t, s.Value, "%s must not commit", k)
		assert.Equal(t, Effect(0), eff)
	}

	closed := New(Config{Options: abc})
	s, _ := Transition(closed, Key(EventKeyUp))
	assert.False(t, s.Open)
}

func TestDisabledAndReadOnlyNeverOpen(t *testing.T) {
	events := []Event{
		Key(EventFocus), Key(EventKeyDown), Key(EventKeyEnter), Key(EventKeySpace),
		Key(EventToggleOpen), Type("a"), Click(0), Remove("a"),
	}
	for _, cfg := range []Config{
		{Options: abc, Disabled: true, Value: abc[:1]},
		{Options: abc, ReadOnly: true, Value: abc[:1]},
	} {
		s := New(cfg)
		for _, ev := range events {
			next, eff := Transition(s, ev)
			assert.False(t, next.Open, "%s", ev.Kind)
			assert.Equal(t, Effect(0), eff, "%s", ev.Kind)
			assert.Equal(t, []string{"a"}, values(next.Value), "%s", ev.Kind)
		}
	}
}

func TestSetDisabledForcesClose(t *testing.T) {
	s := New(Config{Options: abc})
	s, _ = Transition(s, Key(EventFocus))

	s, eff := Transition(s, SetDisabled(true))
	assert.False(t, s.Open)
	assert.True(t, eff.Has(EffectClose))

	s, _ = Transition(s, SetDisabled(false))
	s, _ = Transition(s, Key(EventFocus))
	s, eff = Transition(s, SetReadOnly(true))
	assert.False(t, s.Open)
	assert.True(t, eff.Has(EffectClose))
}

func TestRemoveNeverChangesOpen(t *testing.T) {
	s := New(Config{Options: []option.Option{red, blue}, Multiple: true, Value: []option.Option{red, blue}})
	s, eff := Transition(s, Remove("red"))
	assert.False(t, s.Open)
	assert.True(t, eff.Has(EffectCommit))
	assert.Equal(t, []option.Option{blue}, s.Value)

	_, eff = Transition(s, Remove("missing"))
	assert.Equal(t, Effect(0), eff)
}

func TestResyncNormalizes(t *testing.T) {
	multi := New(Config{Multiple: true})
	multi, eff := Transition(multi, Resync([]option.Option{red, blue, red}))
	assert.Equal(t, []option.Option{red, blue}, multi.Value)
	assert.Equal(t, Effect(0), eff)

	single := New(Config{Value: []option.Option{red, blue}})
	assert.Equal(t, []option.Option{red}, single.Value)
}

func TestNoSearchIgnoresTyping(t *testing.T) {
	s := New(Config{Options: abc, NoSearch: true})
	s, eff := Transition(s, Type("b"))
	assert.False(t, s.Open)
	assert.Equal(t, "", s.Search)
	assert.Equal(t, Effect(0), eff)

	s, _ = run(s, Key(EventKeySpace), Key(EventKeyDown))
	s, eff = Transition(s, Key(EventKeySpace))
	assert.True(t, eff.Has(EffectCommit))
	assert.Equal(t, []string{"b"}, values(s.Value))
}

func TestSetOptionsRefilters(t *testing.T) {
	s := New(Config{Options: abc})
	s, _ = run(s, Type("b"))
	s, _ = Transition(s, SetOptions([]option.Option{{Label: "Bee", Value: "bee"}, {Label: "Cat", Value: "cat"}}))
	assert.Equal(t, []string{"bee"}, values(s.Candidates))
	assert.Equal(t, 0, s.Highlight)
}

func TestRemoteQuerySequencing(t *testing.T) {
	s := New(Config{Remote: true})
	assert.Empty(t, s.Candidates)

	s, eff := Populate(s)
	require.True(t, eff.Has(EffectQuery))
	assert.Equal(t, uint64(1), s.Seq)
	assert.True(t, s.Loading)
	assert.Equal(t, EmptyNone, s.EmptyKind())

	s, _ = Transition(s, Results(1, []option.Option{red, blue}))
	assert.False(t, s.Loading)
	assert.Len(t, s.Candidates, 2)

	s, eff = run(s, Type("r"), Type("re"))
	assert.True(t, eff.Has(EffectSearch))
	assert.False(t, eff.Has(EffectQuery), "typing alone never queries a remote source")
	assert.Len(t, s.Candidates, 2, "remote candidates wait for results")

	s, _ = Transition(s, Settled("re"))
	assert.Equal(t, uint64(2), s.Seq)
	s, _ = Transition(s, Settled("red"))
	assert.Equal(t, uint64(3), s.Seq)

	// The answer for "red" arrives before the answer for "re".
	s, _ = Transition(s, Results(3, []option.Option{red}))
	s, _ = Transition(s, Results(2, []option.Option{red, {Label: "Green", Value: "green"}}))
	assert.Equal(t, []option.Option{red}, s.Candidates)
	assert.False(t, s.Loading)
}

func TestSettledSameTextDoesNotRequery(t *testing.T) {
	s := New(Config{Remote: true})
	s, _ = Populate(s)
	s, eff := Transition(s, Settled(""))
	assert.False(t, eff.Has(EffectQuery))
	assert.Equal(t, uint64(1), s.Seq)

	static := New(Config{Options: abc})
	_, eff = Populate(static)
	assert.Equal(t, Effect(0), eff)
}

func TestRemoteFailureKeepsState(t *testing.T) {
	s := New(Config{Remote: true, Value: []option.Option{blue}})
	s, _ = Populate(s)
	s, _ = Transition(s, Results(1, []option.Option{red, blue}))
	s, _ = Transition(s, Settled("x"))

	boom := errors.New("boom")
	stale, _ := Transition(s, Failed(1, boom))
	assert.True(t, stale.Loading, "failure for an old query is ignored")
	assert.False(t, stale.Failed)

	s, eff := Transition(s, Failed(2, boom))
	assert.Equal(t, Effect(0), eff)
	assert.False(t, s.Loading)
	assert.True(t, s.Failed)
	assert.Equal(t, boom, s.Err)
	assert.Equal(t, []option.Option{red, blue}, s.Candidates)
	assert.Equal(t, []option.Option{blue}, s.Value)

	s, _ = run(s, Type("y"), Settled("y"))
	s, _ = Transition(s, Results(3, nil))
	assert.False(t, s.Failed)
	assert.Equal(t, EmptyNoMatches, s.EmptyKind())
}

func TestEmptyKind(t *testing.T) {
	cases := []struct {
		name  string
		state State
		want  EmptyKind
		msg   string
	}{
		{"Candidates", State{Candidates: abc}, EmptyNone, ""},
		{"Loading", State{Loading: true}, EmptyNone, ""},
		{"NoOptions", State{}, EmptyNoOptions, "No options available"},
		{"NoMatches", State{Search: "zz"}, EmptyNoMatches, "No results"},
		{"Error", State{Failed: true, Search: "zz"}, EmptyError, "Could not load options"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.state.EmptyKind()
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.msg, got.Message())
		})
	}
}

func TestHighlightedOption(t *testing.T) {
	s := New(Config{Options: abc})
	_, ok := s.HighlightedOption()
	assert.False(t, ok)

	s, _ = run(s, Key(EventFocus), Key(EventKeyDown))
	got, ok := s.HighlightedOption()
	assert.True(t, ok)
	assert.Equal(t, "b", got.Value)
	assert.False(t, s.Selected("b"))
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	s := New(Config{Options: []option.Option{red, blue}, Multiple: true, Value: []option.Option{red}})
	s, _ = Transition(s, Key(EventFocus))
	before := option.Clone(s.Value)

	_, _ = Transition(s, Click(1))
	_, _ = Transition(s, Remove("red"))
	assert.Equal(t, before, s.Value)
}

func values(opts []option.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}
