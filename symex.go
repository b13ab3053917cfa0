// Package symex implements a regular-expression engine over arbitrary
// symbol streams: instead of matching characters, it matches a sequence
// of values of any comparable type S against atomic predicates, composed
// with the usual regex algebra (concatenation, alternation, Kleene star,
// bounded repetition, capture groups). See nfa.Pattern for the algebra
// and DESIGN.md for how it is compiled and executed.
package symex

import (
	"iter"
	"slices"

	"github.com/coregx/symex/nfa"
)

// Pattern is a compiled-or-compilable node of the pattern algebra: the
// thing [Predicate], [Any], [Literal], [Seq], [Either], [Star], [Plus],
// [Question], [Group], and [Rep] build, and [Match]/[Search]/[FindAll]
// consume.
type Pattern[S comparable, K comparable] = nfa.Pattern[S, K]

// Opt configures quantifier greediness; see [Lazy].
type Opt = nfa.Opt

// Lazy makes a quantifier non-greedy: it prefers matching fewer symbols.
func Lazy() Opt { return nfa.Lazy() }

// Predicate builds a pattern that consumes one symbol iff f returns a
// truthy value for it (nil and false are falsy, everything else truthy).
func Predicate[S comparable, K comparable](f func(S) any) Pattern[S, K] {
	return nfa.Predicate[S, K](f)
}

// Any builds a pattern that consumes any single symbol.
func Any[S comparable, K comparable]() Pattern[S, K] {
	return nfa.Any[S, K]()
}

// Literal builds a pattern that consumes exactly one symbol equal to x.
func Literal[S comparable, K comparable](x S) Pattern[S, K] {
	return nfa.Literal[S, K](x)
}

// Either builds a pattern matching a or b, with a taking priority when
// both could match.
func Either[S comparable, K comparable](a, b Pattern[S, K]) Pattern[S, K] {
	return nfa.Either(a, b)
}

// Seq builds a pattern matching each of xs in order.
func Seq[S comparable, K comparable](xs ...Pattern[S, K]) Pattern[S, K] {
	return nfa.Seq(xs...)
}

// Star builds a pattern matching x zero or more times.
func Star[S comparable, K comparable](x Pattern[S, K], opts ...Opt) Pattern[S, K] {
	return nfa.Star(x, opts...)
}

// Plus builds a pattern matching x one or more times.
func Plus[S comparable, K comparable](x Pattern[S, K], opts ...Opt) Pattern[S, K] {
	return nfa.Plus(x, opts...)
}

// Question builds a pattern matching x zero or one time.
func Question[S comparable, K comparable](x Pattern[S, K], opts ...Opt) Pattern[S, K] {
	return nfa.Question(x, opts...)
}

// Group builds a capturing pattern: the span x consumes is recorded
// under key and retrievable from the Result returned by Match/Search.
func Group[S comparable, K comparable](x Pattern[S, K], key K) Pattern[S, K] {
	return nfa.Group(x, key)
}

// Rep builds a pattern matching x at least mn and, if mx is non-nil, at
// most *mx times. Returns an error if mn < 0 or mx is non-nil and < mn.
func Rep[S comparable, K comparable](x Pattern[S, K], mn int, mx *int, opts ...Opt) (Pattern[S, K], error) {
	return nfa.Rep[S, K](x, mn, mx, opts...)
}

// MustRep is like [Rep] but panics instead of returning an error.
func MustRep[S comparable, K comparable](x Pattern[S, K], mn int, mx *int, opts ...Opt) Pattern[S, K] {
	return nfa.MustRep[S, K](x, mn, mx, opts...)
}

// Match runs p against the whole of seq, requiring the match to start at
// the first symbol (it does not search for a later start). keepPath
// enables path tracking (see Result.Path). ok is false if no match was
// found by the time seq is exhausted.
func Match[S comparable, K comparable](p Pattern[S, K], seq iter.Seq[S], keepPath bool) (Result[K], bool) {
	c := nfa.Compile(p)
	state, ok := drive(c, seq, keepPath)
	if !ok {
		return Result[K]{}, false
	}
	return newResult(c, state), true
}

// Search runs p against seq, trying successively later start positions
// within a single pass — a lazy Any()* prefix ahead of p — and returning
// the highest-priority match found. The prefix sits outside p's
// whole-match capture, so the reported span starts where p actually
// matched, not at the beginning of seq. Path tracking is not available
// through Search; use [Match] directly against a tail of seq if needed.
func Search[S comparable, K comparable](p Pattern[S, K], seq iter.Seq[S]) (Result[K], bool) {
	c := nfa.CompileSearch(p)
	state, ok := drive(c, seq, false)
	if !ok {
		return Result[K]{}, false
	}
	return newResult(c, state), true
}

func drive[S comparable, K comparable](c *nfa.Compiled[S, K], seq iter.Seq[S], keepPath bool) (nfa.MatchState, bool) {
	vm := nfa.NewVM(c, keepPath)
	vm.Reset()
	vm.EpsilonClosure()
	state, ok := vm.Accepting()
	vm.Cutoff()
	for x := range seq {
		if !vm.IsAlive() {
			break
		}
		vm.Feed(x)
		vm.EpsilonClosure()
		if s, found := vm.Accepting(); found {
			state, ok = s, true
		}
		vm.Cutoff()
	}
	return state, ok
}

// FindAll yields every non-overlapping match of p in seq, left to right,
// by repeatedly calling [Search] against successive tails of seq and
// shifting the result back into whole-sequence coordinates. An
// empty-width match advances the next search start by one symbol rather
// than looping forever on it.
func FindAll[S comparable, K comparable](p Pattern[S, K], seq []S) iter.Seq[Result[K]] {
	return func(yield func(Result[K]) bool) {
		offset := 0
		for offset <= len(seq) {
			res, ok := Search(p, slices.Values(seq[offset:]))
			if !ok {
				return
			}
			shifted, err := res.Shift(offset)
			if err != nil {
				return
			}
			if !yield(shifted) {
				return
			}
			start, end := shifted.WholeSpan()
			if start == end {
				offset = end + 1
			} else {
				offset = end
			}
		}
	}
}

// FindAllStream yields every non-overlapping match of p over seq in a
// single forward pass, without requiring seq to be indexable or
// replayable — the streaming counterpart to [FindAll], grounded on
// refo's finditer_alt. Path tracking is not available through
// FindAllStream.
func FindAllStream[S comparable, K comparable](p Pattern[S, K], seq iter.Seq[S]) iter.Seq[Result[K]] {
	return func(yield func(Result[K]) bool) {
		c := nfa.CompileStream(p)
		nfa.StreamSearch(c, seq, func(state nfa.MatchState) bool {
			return yield(newResult(c, state))
		})
	}
}
