package nfa

import "iter"

// CompileStream compiles p for a single-pass streaming search: spec
// section 4.3's documented (non-mandatory) finditer_alt construction,
// Star(Star(Any(), Lazy()) + wholeWrap(p)). Unlike [Compile] it does not
// require an indexable sequence — see [StreamSearch].
func CompileStream[S comparable, K comparable](p Pattern[S, K]) *Compiled[S, K] {
	b := newBuilder[S]()
	g := newGroupRegistry[K]()
	accept := b.addAccept()

	outer := b.addSplit()
	body := compileStreamBody(b, g, p, outer)
	b.patchSplit(outer, body, accept)

	numSlots := (len(g.order) + 1) * 2
	return &Compiled[S, K]{
		prog:   b.build(outer, numSlots),
		groups: append([]K(nil), g.order...),
		index:  g.index,
	}
}

// compileStreamBody compiles Star(Any(), Lazy()) + wholeWrap(p), i.e. one
// iteration's non-greedy any-symbol prefix followed by the whole-match
// wrapped pattern, both continuing at cont (the outer loop-back point).
func compileStreamBody[S comparable, K comparable](b *builder[S], g *groupRegistry[K], p Pattern[S, K], cont int32) int32 {
	whole := wrapWhole(b, g, p, cont)
	split := b.addSplit()
	anyAtom := b.addAtom(func(S) any { return true }, split)
	b.patchSplit(split, whole, anyAtom) // lazy Star(Any()): prefer exit (whole) over looping (anyAtom)
	return split
}

// StreamSearch drives c (built by [CompileStream]) over seq, calling
// yield for each finalized, non-overlapping match in order. yield
// returning false stops the search early.
//
// Grounded on refo/match.py's finditer_alt: the VM is driven once across
// the whole stream; a candidate accept is held until either a longer
// match at the same start position supersedes it, or an accept starting
// at a new position proves the held one final.
func StreamSearch[S comparable, K comparable](c *Compiled[S, K], seq iter.Seq[S], yield func(MatchState) bool) {
	vm := NewVM(c, false)
	vm.Reset()
	vm.EpsilonClosure()
	vm.Cutoff()

	var held *MatchState
	for x := range seq {
		if !vm.IsAlive() {
			break
		}
		vm.Feed(x)
		vm.EpsilonClosure()
		if state, ok := vm.Accepting(); ok {
			switch {
			case held == nil:
				held = &state
			case held.wholeStart() == state.wholeStart() && held.wholeEnd() < state.wholeEnd():
				held = &state
			case held.wholeStart() != state.wholeStart():
				if !yield(*held) {
					return
				}
				held = &state
			}
		}
		vm.Cutoff()
	}
	if held != nil {
		yield(*held)
	}
}
