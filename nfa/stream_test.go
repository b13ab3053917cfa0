package nfa

import (
	"slices"
	"testing"
)

func collectStream[S comparable, K comparable](c *Compiled[S, K], seq []S) []MatchState {
	var out []MatchState
	StreamSearch(c, slices.Values(seq), func(m MatchState) bool {
		out = append(out, m)
		return true
	})
	return out
}

func TestStreamSearchFindsEachNonOverlappingLiteral(t *testing.T) {
	c := CompileStream[rune, string](Literal[rune, string]('a'))
	matches := collectStream(c, []rune("banana"))

	var spans [][2]int
	for _, m := range matches {
		s, e, _ := m.Span(0)
		spans = append(spans, [2]int{s, e})
	}
	want := [][2]int{{1, 2}, {3, 4}, {5, 6}}
	if len(spans) != len(want) {
		t.Fatalf("spans = %v, want %v", spans, want)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("spans = %v, want %v", spans, want)
		}
	}
}

func TestStreamSearchFindsMultiSymbolMatches(t *testing.T) {
	p := Seq[rune, string](Literal[rune, string]('a'), Literal[rune, string]('b'))
	c := CompileStream[rune, string](p)
	matches := collectStream(c, []rune("ababab"))

	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
	for i, m := range matches {
		s, e, _ := m.Span(0)
		wantStart := i * 2
		if s != wantStart || e != wantStart+2 {
			t.Errorf("match %d span = (%d,%d), want (%d,%d)", i, s, e, wantStart, wantStart+2)
		}
	}
}

func TestStreamSearchNoMatch(t *testing.T) {
	c := CompileStream[rune, string](Literal[rune, string]('z'))
	matches := collectStream(c, []rune("abc"))
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0", len(matches))
	}
}

func TestStreamSearchYieldFalseStopsEarly(t *testing.T) {
	c := CompileStream[rune, string](Literal[rune, string]('a'))
	var seen int
	StreamSearch(c, slices.Values([]rune("aaaa")), func(m MatchState) bool {
		seen++
		return false
	})
	if seen != 1 {
		t.Errorf("yield stopping false should halt after the first match, got %d", seen)
	}
}
