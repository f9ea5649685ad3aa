package combobox

import "formbox/internal/option"

// Transition applies ev to s and returns the next state with the effects the
// host must perform. s is not modified.
func Transition(s State, ev Event) (State, Effect) {
	switch ev.Kind {
	case EventSetDisabled:
		s.Disabled = ev.Flag
		return forceClose(s)
	case EventSetReadOnly:
		s.ReadOnly = ev.Flag
		return forceClose(s)
	case EventResync:
		s.Value = normalizeValue(ev.Options, s.Multiple)
		return s, 0
	case EventSetOptions:
		return setOptions(s, ev.Options), 0
	case EventSettled:
		return settle(s, ev.Text)
	case EventResults:
		if !s.Remote || ev.Seq != s.Seq {
			return s, 0
		}
		s.Loading = false
		s.Failed = false
		s.Err = nil
		return setCandidates(s, option.Dedupe(option.Clone(ev.Options))), 0
	case EventFailed:
		if !s.Remote || ev.Seq != s.Seq {
			return s, 0
		}
		s.Loading = false
		s.Failed = true
		s.Err = ev.Err
		return s, 0
	}

	if !s.Interactive() {
		return s, 0
	}

	switch ev.Kind {
	case EventFocus:
		if !s.Open {
			return openDropdown(s), 0
		}
	case EventKeyDown:
		if !s.Open {
			return openDropdown(s), 0
		}
		return move(s, 1), 0
	case EventKeyUp:
		if s.Open {
			return move(s, -1), 0
		}
	case EventKeyEnter:
		if !s.Open {
			return openDropdown(s), 0
		}
		return commit(s, clampHighlight(s))
	case EventKeySpace:
		if !s.Open {
			return openDropdown(s), 0
		}
		if s.NoSearch {
			return commit(s, clampHighlight(s))
		}
	case EventKeyEscape, EventKeyTab, EventDismiss:
		if s.Open {
			return closeDropdown(s)
		}
	case EventToggleOpen:
		if s.Open {
			return closeDropdown(s)
		}
		return openDropdown(s), 0
	case EventClick:
		if s.Open {
			return commit(s, ev.Index)
		}
	case EventRemove:
		if !s.Selected(ev.Value) {
			return s, 0
		}
		s.Value = s.Policy().Remove(s.Value, ev.Value)
		return s, EffectCommit
	case EventType:
		if s.NoSearch {
			return s, 0
		}
		var eff Effect
		if ev.Text != s.Search {
			eff |= EffectSearch
		}
		s.Search = ev.Text
		if !s.Open {
			s = openDropdown(s)
		}
		if !s.Remote {
			s = refilter(s)
		}
		return s, eff
	}
	return s, 0
}

// Populate issues the initial remote query for the empty term. It is a no-op
// for static sources.
func Populate(s State) (State, Effect) {
	return Transition(s, Settled(""))
}

func openDropdown(s State) State {
	s.Open = true
	if len(s.Candidates) > 0 {
		s.Highlight = 0
	} else {
		s.Highlight = -1
	}
	return s
}

// closeDropdown hides the dropdown and drops the search term, restoring the
// unfiltered list.
func closeDropdown(s State) (State, Effect) {
	eff := EffectClose
	s, cleared := clearSearch(s)
	if cleared {
		eff |= EffectSearch
	}
	s.Open = false
	s.Highlight = -1
	return s, eff
}

func forceClose(s State) (State, Effect) {
	if !s.Open || s.Interactive() {
		return s, 0
	}
	return closeDropdown(s)
}

func move(s State, delta int) State {
	n := len(s.Candidates)
	if n == 0 {
		s.Highlight = -1
		return s
	}
	if s.Highlight < 0 || s.Highlight >= n {
		if delta > 0 {
			s.Highlight = 0
		} else {
			s.Highlight = n - 1
		}
		return s
	}
	s.Highlight = (s.Highlight + delta + n) % n
	return s
}

func clampHighlight(s State) int {
	if s.Highlight < 0 {
		return -1
	}
	if s.Highlight >= len(s.Candidates) {
		return len(s.Candidates) - 1
	}
	return s.Highlight
}

// commit applies the selection policy to the candidate at idx. Enter and
// click both land here.
func commit(s State, idx int) (State, Effect) {
	if idx < 0 || idx >= len(s.Candidates) {
		return s, 0
	}
	chosen := s.Candidates[idx]
	policy := s.Policy()
	s.Value = policy.Commit(s.Value, chosen)
	eff := EffectCommit

	if !policy.KeepOpen() {
		next, closeEff := closeDropdown(s)
		return next, eff | closeEff
	}

	before := s.Candidates
	s, cleared := clearSearch(s)
	if cleared {
		eff |= EffectSearch
	}
	if option.SameValues(before, s.Candidates) {
		s.Highlight = idx
	} else if len(s.Candidates) > 0 {
		s.Highlight = 0
	} else {
		s.Highlight = -1
	}
	return s, eff | EffectFocus
}

func clearSearch(s State) (State, bool) {
	if s.Search == "" {
		return s, false
	}
	s.Search = ""
	if !s.Remote {
		s = refilter(s)
	}
	return s, true
}

func settle(s State, text string) (State, Effect) {
	if !s.Remote {
		return s, 0
	}
	if s.populated && text == s.Queried {
		return s, 0
	}
	s.populated = true
	s.Seq++
	s.Queried = text
	s.Loading = true
	s.Failed = false
	s.Err = nil
	return s, EffectQuery
}

func setOptions(s State, opts []option.Option) State {
	opts = option.Dedupe(option.Clone(opts))
	if s.Remote {
		return setCandidates(s, opts)
	}
	s.Static = opts
	return refilter(s)
}

func refilter(s State) State {
	return setCandidates(s, option.Apply(s.Match, s.Static, s.Search))
}

// setCandidates replaces the list and resets the highlight when it changed.
func setCandidates(s State, next []option.Option) State {
	changed := !option.SameValues(s.Candidates, next)
	s.Candidates = next
	switch {
	case !s.Open || len(next) == 0:
		s.Highlight = -1
	case changed:
		s.Highlight = 0
	case s.Highlight >= len(next):
		s.Highlight = len(next) - 1
	}
	return s
}
