package symex

import (
	"fmt"

	"github.com/coregx/symex/nfa"
)

// Result is a read-only view over one successful match: the whole-match
// span plus whatever capture groups the pattern recorded, keyed by the
// caller's own key type K. Spec section 4.4's span/start/end/group/
// contains/keys/offset/get_path operations all live here.
type Result[K comparable] struct {
	groups []K
	index  map[K]int
	state  nfa.MatchState
}

func newResult[S comparable, K comparable](c *nfa.Compiled[S, K], state nfa.MatchState) Result[K] {
	groups := c.Groups()
	index := make(map[K]int, len(groups))
	for _, k := range groups {
		idx, _ := c.SlotFor(k)
		index[k] = idx
	}
	return Result[K]{groups: groups, index: index, state: state}
}

// WholeSpan returns the (start, end) indices the whole pattern consumed.
func (r Result[K]) WholeSpan() (start, end int) {
	start, end, _ = r.state.Span(0)
	return start, end
}

// WholeStart returns the index the whole match started at.
func (r Result[K]) WholeStart() int {
	start, _ := r.WholeSpan()
	return start
}

// WholeEnd returns the index one past the whole match's last symbol.
func (r Result[K]) WholeEnd() int {
	_, end := r.WholeSpan()
	return end
}

// Span returns the (start, end) indices recorded for key. It returns
// ErrMissingKey if key was never used in the pattern, or if the group it
// names was never entered on the winning thread (e.g. the losing side of
// an Either, or an iteration a Star never reached).
func (r Result[K]) Span(key K) (start, end int, err error) {
	idx, ok := r.index[key]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %v", ErrMissingKey, key)
	}
	start, end, ok = r.state.Span(idx)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %v", ErrMissingKey, key)
	}
	return start, end, nil
}

// Start returns the start index of key's group.
func (r Result[K]) Start(key K) (int, error) {
	start, _, err := r.Span(key)
	return start, err
}

// End returns the end index of key's group.
func (r Result[K]) End(key K) (int, error) {
	_, end, err := r.Span(key)
	return end, err
}

// Group is an alias of Span, named to match spec's get_group operation.
func (r Result[K]) Group(key K) (start, end int, err error) {
	return r.Span(key)
}

// Contains reports whether key's group was recorded on the winning
// thread, without erroring when it was not.
func (r Result[K]) Contains(key K) bool {
	idx, ok := r.index[key]
	if !ok {
		return false
	}
	_, _, ok = r.state.Span(idx)
	return ok
}

// Keys returns the group keys actually recorded on this match, in the
// order they first appear in the pattern.
func (r Result[K]) Keys() []K {
	var out []K
	for _, k := range r.groups {
		if r.Contains(k) {
			out = append(out, k)
		}
	}
	return out
}

// Shift returns a copy of r with every recorded index moved by delta —
// how [FindAll] translates a tail search's local indices back into
// whole-sequence coordinates. It returns ErrPathTracked if r carries a
// recorded path, since a path's predicate values carry no index of
// their own to shift.
func (r Result[K]) Shift(delta int) (Result[K], error) {
	if _, ok := r.state.Path(); ok {
		return Result[K]{}, ErrPathTracked
	}
	return Result[K]{groups: r.groups, index: r.index, state: r.state.Shift(delta)}, nil
}

// Path returns the predicate return values recorded along the winning
// thread's consumed transitions, in order. ok is false unless path
// tracking was requested for this match.
func (r Result[K]) Path() ([]any, bool) {
	return r.state.Path()
}
