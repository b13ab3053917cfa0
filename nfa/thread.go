package nfa

// sharedCaptures is the backing store a cowCaptures may share with other
// threads until one of them writes to it.
type sharedCaptures struct {
	data []int
	refs int
}

// cowCaptures implements copy-on-write capture slots. Adapted from
// coregx-coregex's nfa/pikevm.go cowCaptures/sharedCaptures, generalized
// from "two ints per regexp capture group" to "two ints per symex group
// slot" — the same trade-off applies here: during epsilon closure a
// Split clones a thread on every branch, and most clones never reach a
// Save before dying, so sharing until first write avoids the deep copy
// spec section 5 otherwise charges per clone.
type cowCaptures struct {
	shared *sharedCaptures
}

func newCaptures(numSlots int) cowCaptures {
	if numSlots == 0 {
		return cowCaptures{}
	}
	data := make([]int, numSlots)
	for i := range data {
		data[i] = -1
	}
	return cowCaptures{shared: &sharedCaptures{data: data, refs: 1}}
}

func (c cowCaptures) clone() cowCaptures {
	if c.shared == nil {
		return cowCaptures{}
	}
	c.shared.refs++
	return cowCaptures{shared: c.shared}
}

func (c cowCaptures) update(slot, value int) cowCaptures {
	if c.shared == nil || slot < 0 || slot >= len(c.shared.data) {
		return c
	}
	if c.shared.refs > 1 {
		c.shared.refs--
		data := make([]int, len(c.shared.data))
		copy(data, c.shared.data)
		data[slot] = value
		return cowCaptures{shared: &sharedCaptures{data: data, refs: 1}}
	}
	c.shared.data[slot] = value
	return c
}

func (c cowCaptures) snapshot() []int {
	if c.shared == nil {
		return nil
	}
	dst := make([]int, len(c.shared.data))
	copy(dst, c.shared.data)
	return dst
}

// thread is one logical execution path through the instruction graph:
// its own program counter, capture state, and (optionally) recorded
// path. There is no per-thread input index field because spec section 3
// pins it as a single value shared by every live thread at any instant —
// that is VM.pos, not a per-thread field.
type thread[S any] struct {
	pc   int32
	caps cowCaptures
	path []any
}

func clonePath(p []any) []any {
	if p == nil {
		return nil
	}
	out := make([]any, len(p))
	copy(out, p)
	return out
}

func appendPath(p []any, v any) []any {
	out := make([]any, len(p)+1)
	copy(out, p)
	out[len(p)] = v
	return out
}
