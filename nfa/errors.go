package nfa

import "errors"

// ErrInvalidRepetition is the sentinel wrapped by [Rep] when asked to
// build an ill-formed bound (mn < 0, or a finite mx below mn). This is
// the "pattern construction error" class of spec section 7 — a caller
// bug, signalled at construction rather than at match time.
var ErrInvalidRepetition = errors.New("nfa: invalid repetition bounds")
