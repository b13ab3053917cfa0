// Package nfa implements the compiler and Thompson-style virtual machine at
// the core of symex: it turns a [Pattern] algebra tree into a small
// instruction graph and executes that graph against a stream of caller
// supplied symbols, one at a time.
//
// The package never inspects a symbol itself; every atomic test is a
// predicate function supplied by the caller. This is the part of the
// module with real algorithmic content — compilation, epsilon closure,
// thread priority, and submatch capture. The facade in the root package
// wraps it for ergonomic top-level use.
package nfa

import "fmt"

// instKind identifies the variant of a compiled instruction. The set is
// closed: Atom, Split, Save, Accept are the only four variants a symbol
// stream regex needs (there is no separate epsilon-only instruction
// because Save already carries an epsilon edge, and there is no byte
// alphabet to produce a dead/fail state for).
type instKind uint8

const (
	kindAtom instKind = iota
	kindSplit
	kindSave
	kindAccept
)

func (k instKind) String() string {
	switch k {
	case kindAtom:
		return "Atom"
	case kindSplit:
		return "Split"
	case kindSave:
		return "Save"
	case kindAccept:
		return "Accept"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// invalidPC marks an instruction index that has not been resolved yet (or
// "no target"). Instructions are addressed by position in program.insts,
// an arena, rather than by pointer — this is what lets the compiler refer
// to a node (e.g. a Star's loop-back Split) before its successor exists.
const invalidPC int32 = -1

// predicate is the atomic test a caller supplies for one Atom instruction.
// It returns a falsy value (nil or bool false) to reject a symbol, or a
// truthy value to accept it; the truthy value is recorded on the match
// path when path tracking is enabled. See [Truthy].
type predicate[S any] func(S) any

// inst is one node of the compiled instruction graph. Which fields are
// meaningful is determined entirely by kind; this mirrors the tagged
// record described in spec section 3 rather than a family of interfaces,
// since the variant set is fixed and dispatch is a small switch.
type inst[S any] struct {
	kind instKind

	// Atom
	pred predicate[S]
	succ int32 // Atom: next on accept. Split: higher-priority branch.

	// Split
	split int32 // lower-priority branch

	// Save
	slot int // capture slot index written with the current input index
}

// program is the read-only, arena-backed instruction graph produced by
// the compiler. It may contain cycles (Star/Plus/unbounded Repetition
// loop back through a Split) and shared suffixes; identity of a node is
// its index, which is exactly what the admission rule and the epsilon
// closure's "seen" set key off of.
type program[S any] struct {
	insts []inst[S]
	entry int32
	// numSlots is the total number of capture slots, i.e. 2*(number of
	// groups including the always-present whole-match group at index 0).
	numSlots int
}

func (p *program[S]) at(pc int32) *inst[S] {
	return &p.insts[pc]
}

// builder accumulates instructions into an arena. Split nodes are
// frequently allocated before their targets are known (a Star's loop
// body refers back to its own Split), so the builder exposes patch
// methods that mutate an already-allocated instruction in place once its
// target is compiled.
type builder[S any] struct {
	insts []inst[S]
}

func newBuilder[S any]() *builder[S] {
	return &builder[S]{insts: make([]inst[S], 0, 16)}
}

func (b *builder[S]) addAtom(pred predicate[S], succ int32) int32 {
	idx := int32(len(b.insts))
	b.insts = append(b.insts, inst[S]{kind: kindAtom, pred: pred, succ: succ})
	return idx
}

func (b *builder[S]) addAccept() int32 {
	idx := int32(len(b.insts))
	b.insts = append(b.insts, inst[S]{kind: kindAccept})
	return idx
}

// addSplit allocates a Split node with both targets left unresolved. Use
// patchSplit once the branch entry points are known.
func (b *builder[S]) addSplit() int32 {
	idx := int32(len(b.insts))
	b.insts = append(b.insts, inst[S]{kind: kindSplit, succ: invalidPC, split: invalidPC})
	return idx
}

func (b *builder[S]) patchSplit(idx int32, succ, split int32) {
	b.insts[idx].succ = succ
	b.insts[idx].split = split
}

func (b *builder[S]) addSave(slot int, succ int32) int32 {
	idx := int32(len(b.insts))
	b.insts = append(b.insts, inst[S]{kind: kindSave, slot: slot, succ: succ})
	return idx
}

// build freezes the arena into a program with the given entry point and
// slot count.
func (b *builder[S]) build(entry int32, numSlots int) *program[S] {
	return &program[S]{insts: b.insts, entry: entry, numSlots: numSlots}
}

// len reports how many instructions have been allocated so far.
func (b *builder[S]) len() int {
	return len(b.insts)
}
