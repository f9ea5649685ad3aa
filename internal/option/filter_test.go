package option

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var colors = []Option{
	{Label: "Red", Value: "red"},
	{Label: "Dark Red", Value: "dark-red"},
	{Label: "Blue", Value: "blue"},
	{Label: "Green", Value: "green"},
}

func TestFilter(t *testing.T) {
	t.Run("EmptyTermReturnsAll", func(t *testing.T) {
		if diff := cmp.Diff(colors, Filter(colors, "")); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("CaseInsensitiveSubstring", func(t *testing.T) {
		want := []Option{colors[0], colors[1], colors[3]}
		if diff := cmp.Diff(want, Filter(colors, "RE")); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("NoMatches", func(t *testing.T) {
		got := Filter(colors, "purple")
		if len(got) != 0 {
			t.Errorf("expected no matches, got %v", got)
		}
	})

	t.Run("DoesNotAliasInput", func(t *testing.T) {
		got := Filter(colors, "")
		got[0].Label = "changed"
		if colors[0].Label != "Red" {
			t.Error("Filter must not return the caller's backing array")
		}
	})
}

func TestRank(t *testing.T) {
	t.Run("FuzzyMatchesSkipLetters", func(t *testing.T) {
		got := Rank(colors, "drd")
		if len(got) != 1 || got[0].Value != "dark-red" {
			t.Fatalf("expected only dark-red, got %v", got)
		}
	})

	t.Run("BlankTermReturnsAll", func(t *testing.T) {
		if got := Rank(colors, "  "); len(got) != len(colors) {
			t.Errorf("expected %d options, got %d", len(colors), len(got))
		}
	})
}

func TestParseMatch(t *testing.T) {
	if ParseMatch(" Fuzzy ") != MatchFuzzy {
		t.Error("expected fuzzy")
	}
	if ParseMatch("regex") != MatchSubstring {
		t.Error("unknown modes fall back to substring")
	}
}
