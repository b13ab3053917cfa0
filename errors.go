package symex

import "errors"

// ErrMissingKey is returned by [Result.Span]/[Result.Start]/[Result.End]/
// [Result.Group] when the requested group key was never recorded on the
// winning thread — spec section 7's "missing-key lookup on Match" error
// class.
var ErrMissingKey = errors.New("symex: group key not present in match")

// ErrPathTracked is returned by [Result.Shift] when the match carries a
// recorded path — spec section 9 hoists refo's silent
// `assert "path" not in self.state` inside offset into this explicit
// invalid-operation error.
var ErrPathTracked = errors.New("symex: shift is invalid on a path-tracked match")
