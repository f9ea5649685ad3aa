// Package option holds the candidate model shared by the combobox engine:
// a labeled, value-keyed Option plus the helpers used to compare, decode and
// filter them.
package option

import (
	"fmt"
	"strings"
)

// Option is a labeled candidate. Value is the identity key; Label is display
// text only.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// New builds an Option, falling back to the value when no label is given.
func New(label, value string) Option {
	if strings.TrimSpace(label) == "" {
		label = value
	}
	return Option{Label: label, Value: value}
}

// Display returns the label, or the value when the label is empty.
func (o Option) Display() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// Equal compares options by value. Labels never participate.
func Equal(a, b Option) bool {
	return a.Value == b.Value
}

// IndexOf returns the position of the option with the given value, or -1.
func IndexOf(opts []Option, value string) int {
	for i, o := range opts {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// Contains reports whether an option with the given value is present.
func Contains(opts []Option, value string) bool {
	return IndexOf(opts, value) >= 0
}

// Clone returns a copy of opts. A nil input stays nil.
func Clone(opts []Option) []Option {
	if opts == nil {
		return nil
	}
	out := make([]Option, len(opts))
	copy(out, opts)
	return out
}

// Dedupe drops later options whose value was already seen, keeping order.
func Dedupe(opts []Option) []Option {
	if len(opts) == 0 {
		return opts
	}
	seen := make(map[string]struct{}, len(opts))
	out := make([]Option, 0, len(opts))
	for _, o := range opts {
		if _, ok := seen[o.Value]; ok {
			continue
		}
		seen[o.Value] = struct{}{}
		out = append(out, o)
	}
	return out
}

// SameValues reports whether both lists hold the same values in the same order.
func SameValues(a, b []Option) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}

// Labels returns the display text of each option.
func Labels(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Display()
	}
	return out
}

// JoinLabels joins display labels with ", ".
func JoinLabels(opts []Option) string {
	return strings.Join(Labels(opts), ", ")
}

// Decode converts loosely typed values (store contents, YAML defaults, JSON
// documents) into options. It accepts Option, *Option, []Option, strings,
// maps with label/value keys and slices of any of those. Unknown shapes
// decode to nil.
func Decode(v any) []Option {
	switch typed := v.(type) {
	case nil:
		return nil
	case Option:
		return []Option{typed}
	case *Option:
		if typed == nil {
			return nil
		}
		return []Option{*typed}
	case []Option:
		return Clone(typed)
	case string:
		if typed == "" {
			return nil
		}
		return []Option{New("", typed)}
	case []string:
		out := make([]Option, 0, len(typed))
		for _, s := range typed {
			if s != "" {
				out = append(out, New("", s))
			}
		}
		return out
	case map[string]any:
		if o, ok := fromMap(typed); ok {
			return []Option{o}
		}
		return nil
	case []any:
		var out []Option
		for _, item := range typed {
			out = append(out, Decode(item)...)
		}
		return out
	default:
		return nil
	}
}

func fromMap(m map[string]any) (Option, bool) {
	value := pickString(m, "value", "id")
	if value == "" {
		return Option{}, false
	}
	return New(pickString(m, "label", "name"), value), true
}

func pickString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		raw, ok := m[k]
		if !ok || raw == nil {
			continue
		}
		switch v := raw.(type) {
		case string:
			if v != "" {
				return v
			}
		default:
			return fmt.Sprint(v)
		}
	}
	return ""
}
