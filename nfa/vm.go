package nfa

import (
	"github.com/coregx/symex/internal/conv"
	"github.com/coregx/symex/internal/sparse"
)

// MatchState is a snapshot of an accepting thread's capture state plus,
// if path tracking was enabled, its recorded path. It is the "state"
// spec section 4.4 describes a Match as a read-only view over.
type MatchState struct {
	caps []int
	path []any
	has  bool
}

// Span returns the (start, end) input indices recorded for the group at
// the given slot index (0 is always the whole match; see Compiled.
// SlotFor for user group indices). ok is false if either boundary was
// never recorded on the winning thread's trace.
func (m MatchState) Span(slot int) (start, end int, ok bool) {
	i := slot * 2
	if m.caps == nil || i+1 >= len(m.caps) {
		return 0, 0, false
	}
	start, end = m.caps[i], m.caps[i+1]
	if start < 0 || end < 0 {
		return 0, 0, false
	}
	return start, end, true
}

// Path returns the recorded predicate return values along the winning
// thread's consumed transitions. ok is false when path tracking was not
// enabled for the VM that produced this state.
func (m MatchState) Path() (path []any, ok bool) {
	if !m.has {
		return nil, false
	}
	return m.path, true
}

// Shift returns a copy of m with every recorded index moved by delta.
// Pure by design (spec's Design Notes section prefers shift(delta) over
// a mutating offset) — [FindAll] uses it to translate a tail search's
// local indices back into whole-sequence coordinates.
func (m MatchState) Shift(delta int) MatchState {
	caps := make([]int, len(m.caps))
	for i, v := range m.caps {
		if v < 0 {
			caps[i] = -1
		} else {
			caps[i] = v + delta
		}
	}
	return MatchState{caps: caps, path: m.path, has: m.has}
}

func (m MatchState) wholeStart() int { return m.caps[wholeStartSlot] }
func (m MatchState) wholeEnd() int   { return m.caps[wholeEndSlot] }

// VM is a Thompson NFA simulator executing a compiled [program] against a
// stream of symbols, maintaining threads in strict priority order. It is
// single-threaded and synchronous (spec section 5): every method must be
// called to completion before the next.
type VM[S comparable] struct {
	prog    *program[S]
	hasPath bool
	pos     int

	threads  []thread[S]
	work     []thread[S] // scratch worklist, reused across EpsilonClosure calls
	seen     *sparse.Set // instructions visited this epsilon round (cycle guard)
	admitted *sparse.Set // pcs already admitted into the current new-thread list
}

// NewVM creates a VM ready to drive c's program. keepPath enables path
// tracking: every Atom step's truthy predicate return value is recorded.
func NewVM[S comparable, K comparable](c *Compiled[S, K], keepPath bool) *VM[S] {
	capacity := len(c.prog.insts)
	if capacity < 16 {
		capacity = 16
	}
	n := conv.IntToUint32(capacity)
	return &VM[S]{
		prog:     c.prog,
		hasPath:  keepPath,
		seen:     sparse.New(n),
		admitted: sparse.New(n),
	}
}

// Reset drops all threads and creates one initial thread at the
// program's entry instruction with empty capture state and index 0.
func (vm *VM[S]) Reset() {
	vm.pos = 0
	var path []any
	if vm.hasPath {
		path = []any{}
	}
	vm.threads = append(vm.threads[:0], thread[S]{
		pc:   vm.prog.entry,
		caps: newCaptures(vm.prog.numSlots),
		path: path,
	})
}

func (vm *VM[S]) idle(pc int32) bool {
	k := vm.prog.at(pc).kind
	return k == kindAtom || k == kindAccept
}

// admit appends t to list iff it is alive and no previously admitted
// thread in this round occupies the same pc — the rule spec section 4.2
// names as what bounds thread count by instruction count.
func (vm *VM[S]) admit(list []thread[S], t thread[S]) []thread[S] {
	if t.pc < 0 {
		return list
	}
	if vm.admitted.Contains(uint32(t.pc)) {
		return list
	}
	vm.admitted.Insert(uint32(t.pc))
	return append(list, t)
}

// EpsilonClosure drives every thread to an idle pc (Atom or Accept),
// following Split and Save instructions until none remain. The worklist
// is seeded from the current threads in reverse so that, once popped
// back off a stack, their original priority order is preserved; Split
// pushes its sibling before itself so the original thread keeps higher
// priority at pop time.
func (vm *VM[S]) EpsilonClosure() {
	vm.work = append(vm.work[:0], vm.threads...)
	for i, j := 0, len(vm.work)-1; i < j; i, j = i+1, j-1 {
		vm.work[i], vm.work[j] = vm.work[j], vm.work[i]
	}
	vm.seen.Clear()
	vm.admitted.Clear()
	newThreads := vm.threads[:0]

	for len(vm.work) > 0 {
		t := vm.work[len(vm.work)-1]
		vm.work = vm.work[:len(vm.work)-1]

		if vm.idle(t.pc) {
			newThreads = vm.admit(newThreads, t)
			continue
		}
		if vm.seen.Contains(uint32(t.pc)) {
			continue
		}
		vm.seen.Insert(uint32(t.pc))

		in := vm.prog.at(t.pc)
		switch in.kind {
		case kindSplit:
			sibling := thread[S]{pc: in.split, caps: t.caps.clone(), path: clonePath(t.path)}
			t.pc = in.succ
			vm.work = append(vm.work, sibling, t)
		case kindSave:
			t.caps = t.caps.update(in.slot, vm.pos)
			t.pc = in.succ
			vm.work = append(vm.work, t)
		}
	}
	vm.threads = newThreads
}

// Feed consumes one symbol. Precondition: every thread is idle (callers
// always follow EpsilonClosure with Feed, never the reverse). Threads
// whose predicate rejects x, or that were sitting at Accept, die; the
// rest advance past their Atom and are admitted into the next round.
func (vm *VM[S]) Feed(x S) {
	vm.pos++
	prev := vm.threads
	vm.admitted.Clear()
	newThreads := vm.work[:0]

	for _, t := range prev {
		in := vm.prog.at(t.pc)
		if in.kind == kindAccept {
			continue
		}
		val := in.pred(x)
		if !Truthy(val) {
			continue
		}
		if vm.hasPath {
			t.path = appendPath(t.path, val)
		}
		t.pc = in.succ
		newThreads = vm.admit(newThreads, t)
	}
	vm.work = prev[:0]
	vm.threads = newThreads
}

// Accepting returns the capture state of the highest-priority accepting
// thread, if any.
func (vm *VM[S]) Accepting() (MatchState, bool) {
	for _, t := range vm.threads {
		if vm.prog.at(t.pc).kind == kindAccept {
			return MatchState{caps: t.caps.snapshot(), path: clonePath(t.path), has: vm.hasPath}, true
		}
	}
	return MatchState{}, false
}

// Cutoff truncates the thread list at the highest-priority accepting
// thread, discarding it and everything lower priority: any match a
// lower-priority thread could produce is dominated by the accept already
// recorded, and any longer match must come from a thread still ahead of
// it in priority.
func (vm *VM[S]) Cutoff() {
	for i, t := range vm.threads {
		if vm.prog.at(t.pc).kind == kindAccept {
			vm.threads = vm.threads[:i]
			return
		}
	}
}

// IsAlive reports whether any thread remains — whether feeding more
// symbols could still produce a higher-priority match.
func (vm *VM[S]) IsAlive() bool {
	return len(vm.threads) != 0
}
