package nfa

// Compiled is a pattern's compiled instruction program together with the
// registry mapping user group keys to capture slots, ready to drive with
// a [VM].
type Compiled[S comparable, K comparable] struct {
	prog   *program[S]
	groups []K
	index  map[K]int
}

// Groups returns the user-supplied capture group keys present in the
// compiled pattern, in order of first appearance.
func (c *Compiled[S, K]) Groups() []K {
	return append([]K(nil), c.groups...)
}

// SlotFor returns the capture slot pair index (not yet doubled) for a
// user key. ok is false if key never appeared in the compiled pattern.
func (c *Compiled[S, K]) SlotFor(key K) (int, bool) {
	idx, ok := c.index[key]
	return idx, ok
}

// NumSlots reports the total number of (start, end) index pairs recorded
// per thread, including the always-present whole-match pair at index 0.
func (c *Compiled[S, K]) NumSlots() int {
	return c.prog.numSlots / 2
}

// Compile turns a pattern into a ready-to-run program, wrapping it with
// an outer whole-match capture. spec section 3 describes the whole-match
// group as a reserved key distinct from any user key; this module
// realizes that by reserving capture slot 0 for it directly in the
// compiler, bypassing the K-keyed group registry entirely, rather than
// threading a sentinel K value through the public API (see DESIGN.md,
// Open Question 1).
func Compile[S comparable, K comparable](p Pattern[S, K]) *Compiled[S, K] {
	b := newBuilder[S]()
	g := newGroupRegistry[K]()
	accept := b.addAccept()
	entry := wrapWhole(b, g, p, accept)
	numSlots := (len(g.order) + 1) * 2
	return &Compiled[S, K]{
		prog:   b.build(entry, numSlots),
		groups: append([]K(nil), g.order...),
		index:  g.index,
	}
}

// wrapWhole compiles p with an outer Save(wholeStart)/Save(wholeEnd) pair
// around it. Group keys handed to [Group] by the caller start at slot
// index 1 (groupRegistry.slotFor never returns 0), so slots 0/1 are
// always free for the whole match.
func wrapWhole[S comparable, K comparable](b *builder[S], g *groupRegistry[K], p Pattern[S, K], cont int32) int32 {
	ctx := &compileCtx[S, K]{b: b, groups: g}
	end := b.addSave(wholeEndSlot, cont)
	code := p.compile(ctx, end)
	return b.addSave(wholeStartSlot, code)
}

// CompileSearch turns p into a ready-to-run program for spec section 4.3's
// search: a lazy Any()* prefix lets the match start anywhere, but unlike
// [Compile] that prefix sits outside the whole-match Save pair, so
// wholeStart reports where p itself began rather than always 0. Mirrors
// the prefix-outside-the-wrap construction nfa/stream.go's
// compileStreamBody already uses for the streaming driver.
func CompileSearch[S comparable, K comparable](p Pattern[S, K]) *Compiled[S, K] {
	b := newBuilder[S]()
	g := newGroupRegistry[K]()
	accept := b.addAccept()
	whole := wrapWhole(b, g, p, accept)
	ctx := &compileCtx[S, K]{b: b, groups: g}
	prefix := Star[S, K](Any[S, K](), Lazy())
	entry := prefix.compile(ctx, whole)
	numSlots := (len(g.order) + 1) * 2
	return &Compiled[S, K]{
		prog:   b.build(entry, numSlots),
		groups: append([]K(nil), g.order...),
		index:  g.index,
	}
}

const (
	wholeStartSlot = 0
	wholeEndSlot   = 1
)
