package option

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match selects how a client-side list is narrowed by a search term.
type Match string

const (
	// MatchSubstring keeps options whose label contains the term, ignoring case.
	MatchSubstring Match = "substring"
	// MatchFuzzy keeps options whose label fuzzily matches the term, best first.
	MatchFuzzy Match = "fuzzy"
)

// ParseMatch normalizes a configured match mode. Unknown values fall back to
// substring matching.
func ParseMatch(raw string) Match {
	switch Match(strings.ToLower(strings.TrimSpace(raw))) {
	case MatchFuzzy:
		return MatchFuzzy
	default:
		return MatchSubstring
	}
}

// Filter returns the options whose label contains term, case-insensitively.
// An empty term returns the full list.
func Filter(opts []Option, term string) []Option {
	needle := strings.ToLower(term)
	if needle == "" {
		return Clone(opts)
	}
	out := make([]Option, 0, len(opts))
	for _, o := range opts {
		if strings.Contains(strings.ToLower(o.Display()), needle) {
			out = append(out, o)
		}
	}
	return out
}

// Rank returns the options that fuzzily match term ordered by match score.
// An empty or blank term returns the full list unchanged.
func Rank(opts []Option, term string) []Option {
	query := strings.TrimSpace(strings.ToLower(term))
	if query == "" || len(opts) == 0 {
		return Clone(opts)
	}
	targets := make([]string, len(opts))
	for i, o := range opts {
		targets[i] = strings.ToLower(o.Display())
	}
	matches := fuzzy.Find(query, targets)
	out := make([]Option, 0, len(matches))
	for _, match := range matches {
		if match.Index >= 0 && match.Index < len(opts) {
			out = append(out, opts[match.Index])
		}
	}
	return out
}

// Apply narrows opts with the given match mode.
func Apply(m Match, opts []Option, term string) []Option {
	if m == MatchFuzzy {
		return Rank(opts, term)
	}
	return Filter(opts, term)
}
