package symex

import (
	"slices"
	"testing"
)

// BenchmarkPathologicalQuestionChain exercises spec.md section 8's
// polynomial non-explosion property: Question(Literal("a")) repeated N
// times followed by Literal("a") repeated N times, applied to "a" * N.
// A backtracking engine is exponential here; this engine's thread count
// is bounded by the compiled program size, so it stays polynomial.
func BenchmarkPathologicalQuestionChain(b *testing.B) {
	const n = 100
	a := Literal[rune, string]('a')

	parts := make([]Pattern[rune, string], 0, 2*n)
	for i := 0; i < n; i++ {
		parts = append(parts, Question[rune, string](a))
	}
	for i := 0; i < n; i++ {
		parts = append(parts, a)
	}
	p := Seq[rune, string](parts...)

	input := make([]rune, n)
	for i := range input {
		input[i] = 'a'
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := Match(p, slices.Values(input), false); !ok {
			b.Fatal("expected match")
		}
	}
}
