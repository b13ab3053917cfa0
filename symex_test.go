package symex

import (
	"errors"
	"slices"
	"testing"
)

func TestMatchRequiresMatchAtStart(t *testing.T) {
	p := Literal[rune, string]('a')
	if _, ok := Match(p, slices.Values([]rune("ba")), false); ok {
		t.Error("Match should not search past the first symbol")
	}
	if _, ok := Match(p, slices.Values([]rune("ab")), false); !ok {
		t.Error("Match should succeed when the pattern matches at the start")
	}
}

func TestSearchFindsMatchNotAtStart(t *testing.T) {
	p := Literal[rune, string]('a')
	res, ok := Search(p, slices.Values([]rune("bba")))
	if !ok {
		t.Fatal("expected Search to find the later match")
	}
	if start, end := res.WholeSpan(); start != 2 || end != 3 {
		t.Errorf("span = (%d,%d), want (2,3)", start, end)
	}
}

func TestResultGroupLookup(t *testing.T) {
	a := Literal[rune, string]('a')
	b := Literal[rune, string]('b')
	p := Seq[rune, string](Group[rune, string](a, "first"), Group[rune, string](b, "second"))

	res, ok := Match(p, slices.Values([]rune("ab")), false)
	if !ok {
		t.Fatal("expected match")
	}

	start, end, err := res.Span("first")
	if err != nil || start != 0 || end != 1 {
		t.Errorf("Span(first) = (%d,%d,%v), want (0,1,nil)", start, end, err)
	}
	start, end, err = res.Span("second")
	if err != nil || start != 1 || end != 2 {
		t.Errorf("Span(second) = (%d,%d,%v), want (1,2,nil)", start, end, err)
	}

	if !res.Contains("first") || !res.Contains("second") {
		t.Error("expected both groups to be present")
	}
	if res.Contains("third") {
		t.Error("unused key should not be present")
	}

	keys := res.Keys()
	if len(keys) != 2 || keys[0] != "first" || keys[1] != "second" {
		t.Errorf("Keys() = %v, want [first second]", keys)
	}
}

func TestResultMissingKeyError(t *testing.T) {
	p := Literal[rune, string]('a')
	res, ok := Match(p, slices.Values([]rune("a")), false)
	if !ok {
		t.Fatal("expected match")
	}
	if _, _, err := res.Span("nope"); !errors.Is(err, ErrMissingKey) {
		t.Errorf("Span on unused key = %v, want ErrMissingKey", err)
	}
}

func TestResultGroupEqualsWholeWhenGroupWrapsEntirePattern(t *testing.T) {
	a := Literal[rune, string]('a')
	b := Literal[rune, string]('b')
	p := Group[rune, string](Seq[rune, string](a, b), "g")

	res, ok := Match(p, slices.Values([]rune("ab")), false)
	if !ok {
		t.Fatal("expected match")
	}
	gStart, gEnd, err := res.Span("g")
	if err != nil {
		t.Fatalf("Span(g): %v", err)
	}
	wStart, wEnd := res.WholeSpan()
	if gStart != wStart || gEnd != wEnd {
		t.Errorf("group span (%d,%d) != whole span (%d,%d)", gStart, gEnd, wStart, wEnd)
	}
}

func TestFindAllNonOverlapping(t *testing.T) {
	p := Seq[rune, string](Literal[rune, string]('a'), Literal[rune, string]('b'))
	seq := []rune("ababab")

	var spans [][2]int
	for res := range FindAll(p, seq) {
		s, e := res.WholeSpan()
		spans = append(spans, [2]int{s, e})
	}
	want := [][2]int{{0, 2}, {2, 4}, {4, 6}}
	if len(spans) != len(want) {
		t.Fatalf("spans = %v, want %v", spans, want)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("spans = %v, want %v", spans, want)
		}
	}
}

func TestFindAllAdvancesPastEmptyMatch(t *testing.T) {
	// Star(Literal('z')) matches the empty string everywhere; FindAll
	// must still terminate by advancing one symbol past each empty match.
	p := Star[rune, string](Literal[rune, string]('z'))
	seq := []rune("abc")

	count := 0
	for range FindAll(p, seq) {
		count++
		if count > 10 {
			t.Fatal("FindAll did not terminate on an empty-match pattern")
		}
	}
	if count != len(seq)+1 {
		t.Errorf("count = %d, want %d (one empty match per position, including the end)", count, len(seq)+1)
	}
}

func TestFindAllStreamMatchesFindAll(t *testing.T) {
	p := Literal[rune, string]('a')
	seq := []rune("banana")

	var fromFindAll, fromStream [][2]int
	for res := range FindAll(p, seq) {
		s, e := res.WholeSpan()
		fromFindAll = append(fromFindAll, [2]int{s, e})
	}
	for res := range FindAllStream(p, slices.Values(seq)) {
		s, e := res.WholeSpan()
		fromStream = append(fromStream, [2]int{s, e})
	}
	if len(fromFindAll) != len(fromStream) {
		t.Fatalf("FindAll found %v, FindAllStream found %v", fromFindAll, fromStream)
	}
	for i := range fromFindAll {
		if fromFindAll[i] != fromStream[i] {
			t.Errorf("FindAll found %v, FindAllStream found %v", fromFindAll, fromStream)
		}
	}
}

func TestResultShiftRejectsPathTracking(t *testing.T) {
	p := Literal[rune, string]('a')
	res, ok := Match(p, slices.Values([]rune("a")), true)
	if !ok {
		t.Fatal("expected match")
	}
	if _, err := res.Shift(3); !errors.Is(err, ErrPathTracked) {
		t.Errorf("Shift on a path-tracked match = %v, want ErrPathTracked", err)
	}
}

func TestResultShiftTranslatesIndices(t *testing.T) {
	p := Literal[rune, string]('a')
	res, ok := Match(p, slices.Values([]rune("a")), false)
	if !ok {
		t.Fatal("expected match")
	}
	shifted, err := res.Shift(5)
	if err != nil {
		t.Fatalf("Shift: %v", err)
	}
	if start, end := shifted.WholeSpan(); start != 5 || end != 6 {
		t.Errorf("shifted span = (%d,%d), want (5,6)", start, end)
	}
}

func TestIsPrimeStyledPredicate(t *testing.T) {
	// A pattern over a non-character alphabet: Symbol is bool ("is this
	// index prime?"), built from an external isPrime predicate rather
	// than equality against a literal.
	isPrime := func(n int) bool {
		if n < 2 {
			return false
		}
		for d := 2; d*d <= n; d++ {
			if n%d == 0 {
				return false
			}
		}
		return true
	}
	primes := make([]bool, 0, 5)
	for i := 0; i < 5; i++ {
		primes = append(primes, isPrime(i))
	}

	prime := Predicate[bool, string](func(b bool) any { return b })
	notPrime := Predicate[bool, string](func(b bool) any { return !b })
	p := Seq[bool, string](Star[bool, string](notPrime), Plus[bool, string](prime), Star[bool, string](notPrime))

	res, ok := Match(p, slices.Values(primes), false)
	if !ok {
		t.Fatal("expected match")
	}
	start, end := res.WholeSpan()
	if start != 0 || end != len(primes) {
		t.Errorf("span = (%d,%d), want (0,%d)", start, end, len(primes))
	}
}
