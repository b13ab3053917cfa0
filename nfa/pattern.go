package nfa

import "fmt"

// Truthy reports whether a predicate's return value counts as a match.
// nil and the boolean false are falsy; every other value, including the
// boolean true, zero numbers, and empty strings, is truthy. This mirrors
// spec's "falsy no-match / truthy value" contract at the granularity Go's
// type system can express without reflecting into every possible numeric
// or container type the way Python's truthiness does.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// Pattern is one node of the pattern algebra described in spec section 6.
// It is a sealed interface: the only implementations are the constructors
// in this file ([Predicate], [Any], [Literal], [Seq], [Either], [Star],
// [Plus], [Question], [Group], [Rep]). compile is continuation-passing,
// exactly the contract spec section 4.1 names: _compile(cont) returns the
// entry instruction of a subgraph whose out-edges terminate at cont.
type Pattern[S comparable, K comparable] interface {
	fmt.Stringer

	compile(ctx *compileCtx[S, K], cont int32) int32
}

type compileCtx[S comparable, K comparable] struct {
	b       *builder[S]
	groups  *groupRegistry[K]
	scratch bool // registration-only pass: Seq compiles its elements left to right
}

// groupRegistry assigns each distinct group key a stable integer index in
// the order first seen. Index 0 is reserved for the whole match and is
// never handed out here — see wrapWhole in compile.go — which is how
// this module satisfies spec's "reserved key distinct from any user key"
// without needing a sentinel value of the generic key type K.
type groupRegistry[K comparable] struct {
	index map[K]int
	order []K
}

func newGroupRegistry[K comparable]() *groupRegistry[K] {
	return &groupRegistry[K]{index: make(map[K]int)}
}

func (g *groupRegistry[K]) slotFor(key K) int {
	if idx, ok := g.index[key]; ok {
		return idx
	}
	idx := len(g.order) + 1
	g.order = append(g.order, key)
	g.index[key] = idx
	return idx
}

// ---- Predicate / Any / Literal ----

type predicateNode[S comparable, K comparable] struct {
	f     predicate[S]
	label string
}

// Predicate builds a pattern that consumes one symbol iff f returns a
// truthy value for it (see [Truthy]).
func Predicate[S comparable, K comparable](f func(S) any) Pattern[S, K] {
	return &predicateNode[S, K]{f: f, label: "Predicate(...)"}
}

func (n *predicateNode[S, K]) compile(ctx *compileCtx[S, K], cont int32) int32 {
	return ctx.b.addAtom(n.f, cont)
}

func (n *predicateNode[S, K]) String() string { return n.label }

// Any builds a pattern that consumes any single symbol.
func Any[S comparable, K comparable]() Pattern[S, K] {
	return &predicateNode[S, K]{
		f:     func(S) any { return true },
		label: "Any()",
	}
}

// Literal builds a pattern that consumes exactly one symbol equal to x.
func Literal[S comparable, K comparable](x S) Pattern[S, K] {
	return &predicateNode[S, K]{
		f:     func(y S) any { return x == y },
		label: fmt.Sprintf("Literal(%v)", x),
	}
}

// ---- Disjunction / Concatenation ----

type disjunctionNode[S comparable, K comparable] struct {
	a, b Pattern[S, K]
}

// Either builds a pattern matching a or b, with a taking priority: if
// both could match, the thread descended from a wins leftmost-first
// ambiguity resolution (spec section 4.1/4.2).
func Either[S comparable, K comparable](a, b Pattern[S, K]) Pattern[S, K] {
	return &disjunctionNode[S, K]{a: a, b: b}
}

func (n *disjunctionNode[S, K]) compile(ctx *compileCtx[S, K], cont int32) int32 {
	succ := n.a.compile(ctx, cont)
	split := n.b.compile(ctx, cont)
	idx := ctx.b.addSplit()
	ctx.b.patchSplit(idx, succ, split)
	return idx
}

func (n *disjunctionNode[S, K]) String() string {
	return "(" + n.a.String() + " | " + n.b.String() + ")"
}

type concatenationNode[S comparable, K comparable] struct {
	xs []Pattern[S, K]
}

// Seq builds a pattern matching each of xs in order. Concatenation of a
// Seq with another Seq flattens, matching the associativity spec.md
// section 4.1 requires of Concatenation's `+`.
func Seq[S comparable, K comparable](xs ...Pattern[S, K]) Pattern[S, K] {
	flat := make([]Pattern[S, K], 0, len(xs))
	for _, x := range xs {
		if c, ok := x.(*concatenationNode[S, K]); ok {
			flat = append(flat, c.xs...)
		} else {
			flat = append(flat, x)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &concatenationNode[S, K]{xs: flat}
}

func (n *concatenationNode[S, K]) compile(ctx *compileCtx[S, K], cont int32) int32 {
	// The elements compile right to left, which would register their
	// group keys last-first. A left-to-right pass into a discarded
	// scratch builder registers them first, in order of appearance.
	if ctx.scratch {
		for _, x := range n.xs {
			x.compile(ctx, cont)
		}
		return cont
	}
	pre := &compileCtx[S, K]{b: newBuilder[S](), groups: ctx.groups, scratch: true}
	for _, x := range n.xs {
		x.compile(pre, invalidPC)
	}
	code := cont
	for i := len(n.xs) - 1; i >= 0; i-- {
		code = n.xs[i].compile(ctx, code)
	}
	return code
}

func (n *concatenationNode[S, K]) String() string {
	s := "("
	for i, x := range n.xs {
		if i > 0 {
			s += " + "
		}
		s += x.String()
	}
	return s + ")"
}

// ---- Star / Plus / Question ----

// option configures greediness of a quantifier; the zero value is
// greedy, matching spec's default (greedy=true on every quantifier
// constructor).
type option struct {
	lazy bool
}

// Opt is a functional option for the quantifier constructors ([Star],
// [Plus], [Question], [Rep]).
type Opt func(*option)

// Lazy makes a quantifier non-greedy: the shorter match is preferred.
func Lazy() Opt {
	return func(o *option) { o.lazy = true }
}

func resolveOpts(opts []Opt) option {
	var o option
	for _, f := range opts {
		f(&o)
	}
	return o
}

type starNode[S comparable, K comparable] struct {
	x      Pattern[S, K]
	greedy bool
}

// Star builds a pattern matching x zero or more times. Greedy by
// default; pass [Lazy] to prefer fewer repetitions.
func Star[S comparable, K comparable](x Pattern[S, K], opts ...Opt) Pattern[S, K] {
	o := resolveOpts(opts)
	return &starNode[S, K]{x: x, greedy: !o.lazy}
}

func (n *starNode[S, K]) compile(ctx *compileCtx[S, K], cont int32) int32 {
	split := ctx.b.addSplit()
	x := n.x.compile(ctx, split)
	if n.greedy {
		ctx.b.patchSplit(split, x, cont)
	} else {
		ctx.b.patchSplit(split, cont, x)
	}
	return split
}

func (n *starNode[S, K]) String() string {
	if n.greedy {
		return n.x.String() + "*"
	}
	return n.x.String() + "*?"
}

type plusNode[S comparable, K comparable] struct {
	x      Pattern[S, K]
	greedy bool
}

// Plus builds a pattern matching x one or more times. Greedy by default;
// pass [Lazy] to prefer fewer repetitions after the mandatory first one.
func Plus[S comparable, K comparable](x Pattern[S, K], opts ...Opt) Pattern[S, K] {
	o := resolveOpts(opts)
	return &plusNode[S, K]{x: x, greedy: !o.lazy}
}

func (n *plusNode[S, K]) compile(ctx *compileCtx[S, K], cont int32) int32 {
	split := ctx.b.addSplit()
	x := n.x.compile(ctx, split)
	if n.greedy {
		ctx.b.patchSplit(split, x, cont)
	} else {
		ctx.b.patchSplit(split, cont, x)
	}
	return x
}

func (n *plusNode[S, K]) String() string {
	if n.greedy {
		return n.x.String() + "+"
	}
	return n.x.String() + "+?"
}

type questionNode[S comparable, K comparable] struct {
	x      Pattern[S, K]
	greedy bool
}

// Question builds a pattern matching x zero or one time. Greedy by
// default (prefers matching x); pass [Lazy] to prefer skipping it.
func Question[S comparable, K comparable](x Pattern[S, K], opts ...Opt) Pattern[S, K] {
	o := resolveOpts(opts)
	return &questionNode[S, K]{x: x, greedy: !o.lazy}
}

func (n *questionNode[S, K]) compile(ctx *compileCtx[S, K], cont int32) int32 {
	xcode := n.x.compile(ctx, cont)
	idx := ctx.b.addSplit()
	if n.greedy {
		ctx.b.patchSplit(idx, xcode, cont)
	} else {
		ctx.b.patchSplit(idx, cont, xcode)
	}
	return idx
}

func (n *questionNode[S, K]) String() string {
	if n.greedy {
		return n.x.String() + "?"
	}
	return n.x.String() + "??"
}

// ---- Group ----

type groupNode[S comparable, K comparable] struct {
	x   Pattern[S, K]
	key K
}

// Group builds a capturing pattern: the span consumed by x is recorded
// under key and retrievable from the Result returned by Match/Search.
func Group[S comparable, K comparable](x Pattern[S, K], key K) Pattern[S, K] {
	return &groupNode[S, K]{x: x, key: key}
}

func (n *groupNode[S, K]) compile(ctx *compileCtx[S, K], cont int32) int32 {
	idx := ctx.groups.slotFor(n.key)
	startSlot, endSlot := idx*2, idx*2+1
	end := ctx.b.addSave(endSlot, cont)
	code := n.x.compile(ctx, end)
	return ctx.b.addSave(startSlot, code)
}

func (n *groupNode[S, K]) String() string {
	return fmt.Sprintf("Group(%s, %v)", n.x.String(), n.key)
}

// ---- Repetition ----

type repetitionNode[S comparable, K comparable] struct {
	x      Pattern[S, K]
	mn     int
	mx     *int // nil means unbounded
	greedy bool
}

// Rep builds a pattern matching x at least mn and, if mx is non-nil, at
// most *mx times (mx nil means unbounded, spec's `p * (mn, None)`).
// Returns an error if mn < 0 or (mx != nil && *mx < mn), the
// construction-time error class spec section 7 requires.
func Rep[S comparable, K comparable](x Pattern[S, K], mn int, mx *int, opts ...Opt) (Pattern[S, K], error) {
	if mn < 0 {
		return nil, fmt.Errorf("%w: mn=%d must be >= 0", ErrInvalidRepetition, mn)
	}
	if mx != nil && *mx < mn {
		return nil, fmt.Errorf("%w: mx=%d must be >= mn=%d", ErrInvalidRepetition, *mx, mn)
	}
	o := resolveOpts(opts)
	return &repetitionNode[S, K]{x: x, mn: mn, mx: mx, greedy: !o.lazy}, nil
}

// MustRep is like [Rep] but panics instead of returning an error.
func MustRep[S comparable, K comparable](x Pattern[S, K], mn int, mx *int, opts ...Opt) Pattern[S, K] {
	p, err := Rep[S, K](x, mn, mx, opts...)
	if err != nil {
		panic("nfa: " + err.Error())
	}
	return p
}

func (n *repetitionNode[S, K]) quantOpts() []Opt {
	if !n.greedy {
		return []Opt{Lazy()}
	}
	return nil
}

func (n *repetitionNode[S, K]) compile(ctx *compileCtx[S, K], cont int32) int32 {
	code := cont
	if n.mx != nil {
		q := Question[S, K](n.x, n.quantOpts()...)
		for i := 0; i < *n.mx-n.mn; i++ {
			code = q.compile(ctx, code)
		}
	} else {
		code = Star[S, K](n.x, n.quantOpts()...).compile(ctx, code)
	}
	for i := 0; i < n.mn; i++ {
		code = n.x.compile(ctx, code)
	}
	return code
}

func (n *repetitionNode[S, K]) String() string {
	if n.mx == nil {
		if n.mn == 0 {
			return "(" + n.x.String() + ")*"
		}
		return fmt.Sprintf("(%s)*{%d,}", n.x.String(), n.mn)
	}
	if n.mn == *n.mx {
		return fmt.Sprintf("(%s)*%d", n.x.String(), n.mn)
	}
	return fmt.Sprintf("(%s)*{%d,%d}", n.x.String(), n.mn, *n.mx)
}
