// Package sparse provides a sparse set data structure for efficient
// membership testing over a bounded range of small integers.
//
// Adapted from coregx-coregex's internal/sparse package, where it tracks
// visited NFA state IDs during Thompson simulation. Here it plays the
// same role for a different alphabet: the "seen" set spec section 4.2
// requires inside one do_epsilon_transitions round, keyed by compiled
// instruction index instead of byte-NFA state ID.
package sparse

// Set is a set of uint32 values supporting O(1) insert, membership test,
// and clear. It maintains a sparse array (value -> dense index) and a
// dense array (the values themselves, in insertion order), which is what
// makes Clear O(1): it just resets the live count, leaving both arrays'
// contents stale until overwritten by the next round's inserts.
type Set struct {
	sparse []uint32
	dense  []uint32
	size   uint32
}

// New creates a Set that can hold values in [0, capacity).
func New(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, capacity),
	}
}

// Insert adds value to the set. A no-op if already present.
// Panics if value >= capacity, the same bounded-universe contract as the
// teacher's NewSparseSet.
func (s *Set) Insert(value uint32) {
	if s.Contains(value) {
		return
	}
	idx := s.size
	s.dense[idx] = value
	s.sparse[value] = idx
	s.size++
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Clear empties the set in O(1) time.
func (s *Set) Clear() {
	s.size = 0
}

// Len reports the number of elements currently in the set.
func (s *Set) Len() int {
	return int(s.size)
}
