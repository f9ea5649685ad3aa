// Package selection defines how a committed choice changes a combobox value.
// Single replaces the value and closes the dropdown; Multi toggles membership
// and keeps it open.
package selection

import "formbox/internal/option"

// Policy turns a chosen option into the next committed value.
type Policy interface {
	// Commit returns the value after choosing chosen.
	Commit(current []option.Option, chosen option.Option) []option.Option
	// Remove drops the option with the given value.
	Remove(current []option.Option, value string) []option.Option
	// KeepOpen reports whether the dropdown stays open after a commit.
	KeepOpen() bool
	// Encode converts the value into what the form store holds.
	Encode(current []option.Option) any
	// Normalize converts a stored value or field default into options.
	Normalize(v any) []option.Option
}

// For returns the policy for a field.
func For(multiple bool) Policy {
	if multiple {
		return Multi{}
	}
	return Single{}
}

// Single holds at most one option.
type Single struct{}

// Commit replaces the value with chosen.
func (Single) Commit(_ []option.Option, chosen option.Option) []option.Option {
	return []option.Option{chosen}
}

// Remove clears the value when it matches.
func (Single) Remove(current []option.Option, value string) []option.Option {
	return remove(current, value)
}

// KeepOpen is false: a single-select commit closes the dropdown.
func (Single) KeepOpen() bool { return false }

// Encode returns *option.Option, or nil when nothing is chosen.
func (Single) Encode(current []option.Option) any {
	if len(current) == 0 {
		return (*option.Option)(nil)
	}
	chosen := current[0]
	return &chosen
}

// Normalize keeps the first decoded option.
func (Single) Normalize(v any) []option.Option {
	opts := option.Decode(v)
	if len(opts) == 0 {
		return nil
	}
	return opts[:1]
}

// Multi holds an ordered set of options keyed by value.
type Multi struct{}

// Commit toggles chosen: removed when present, appended otherwise.
func (Multi) Commit(current []option.Option, chosen option.Option) []option.Option {
	if option.Contains(current, chosen.Value) {
		return remove(current, chosen.Value)
	}
	next := make([]option.Option, 0, len(current)+1)
	next = append(next, current...)
	return append(next, chosen)
}

// Remove drops the matching option, keeping the order of the rest.
func (Multi) Remove(current []option.Option, value string) []option.Option {
	return remove(current, value)
}

// KeepOpen is true: the user keeps picking.
func (Multi) KeepOpen() bool { return true }

// Encode returns a non-nil []option.Option.
func (Multi) Encode(current []option.Option) any {
	out := make([]option.Option, len(current))
	copy(out, current)
	return out
}

// Normalize decodes and drops duplicate values.
func (Multi) Normalize(v any) []option.Option {
	return option.Dedupe(option.Decode(v))
}

func remove(current []option.Option, value string) []option.Option {
	out := make([]option.Option, 0, len(current))
	for _, o := range current {
		if o.Value != value {
			out = append(out, o)
		}
	}
	return out
}
