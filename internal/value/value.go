// Package value implements the semantic domain: weak-head values with
// glued top-level unfolding, plus the evaluator (Eval/Force/ForceFull/
// Apply) and the quoter (Quote) that together realize spec.md §4.1.
//
// Values use De Bruijn *levels* (stable under descent into further
// binders); core terms use *indices* (stable under extension of the
// outer context). Eval translates index->level via environment
// lookup; Quote translates level->index via the current context size.
package value

import (
	"fmt"

	"github.com/sunholo/minitt/internal/ast"
	"github.com/sunholo/minitt/internal/core"
)

// Value is a semantic value: the result of weak-head evaluation.
type Value interface {
	fmt.Stringer
	isValue()
}

// Elim is one eliminator stacked on a neutral's spine: an argument
// value together with the icitness it was applied at.
type Elim struct {
	Arg  Value
	Icit ast.Icit
}

// Env is the environment of values bound for variables in scope, used
// by Eval to resolve indices. Extend must never mutate the receiver's
// backing array, so that a closure capturing env still sees the
// bindings it captured after a sibling binder extends the same env.
type Env []Value

// Extend returns env with v appended as the newest (innermost)
// binding. The capacity is clipped to len(env), so append always
// allocates a new backing array and copies the parent's values into
// it; the parent's array is never written, and it is not shared.
func (env Env) Extend(v Value) Env {
	return append(env[:len(env):len(env)], v)
}

// Rigid is a neutral whose head is a bound variable (by De Bruijn
// level, stable under descent) applied to a spine. Cannot reduce.
type Rigid struct {
	Level int
	Spine []Elim
}

func (r *Rigid) isValue() {}
func (r *Rigid) String() string {
	return spineString(fmt.Sprintf("#%d", r.Level), r.Spine)
}

// Flex is a neutral whose head is an unsolved metavariable applied to
// a spine. May become reducible once the meta is solved.
type Flex struct {
	Meta  int
	Spine []Elim
}

func (f *Flex) isValue() {}
func (f *Flex) String() string {
	return spineString(fmt.Sprintf("?%d", f.Meta), f.Spine)
}

// Glued is a top-level reference applied to a spine. It carries both
// the unreduced representation (TopID/Spine, displayed by name) and a
// lazy, memoized thunk for the fully-unfolded value of the head
// definition. Approximate conversion compares (TopID, Spine); full
// conversion forces the thunk.
type Glued struct {
	TopID   int
	TopName string
	Spine   []Elim

	unfold func() Value
	cached Value
	forced bool
}

// NewGlued constructs a glued top value. unfold computes the
// definition's value on first demand and is memoized thereafter.
func NewGlued(id int, name string, spine []Elim, unfold func() Value) *Glued {
	return &Glued{TopID: id, TopName: name, Spine: spine, unfold: unfold}
}

func (g *Glued) isValue() {}
func (g *Glued) String() string {
	return spineString(g.TopName, g.Spine)
}

// Unfold returns the memoized, fully-evaluated definition value (the
// head only, spine not yet re-applied). A glued top with no unfold
// thunk (a postulate, spec.md §6: "assume") has nothing to unfold and
// folds to itself — it remains a rigid head forever.
func (g *Glued) Unfold() Value {
	if g.unfold == nil {
		return g
	}
	if !g.forced {
		g.cached = g.unfold()
		g.forced = true
	}
	return g.cached
}

// Lambda is a closure: a captured environment plus a core-syntax body
// under one new binder.
type Lambda struct {
	Name string
	Icit ast.Icit
	Env  Env
	Body core.Term
}

func (l *Lambda) isValue() {}
func (l *Lambda) String() string {
	return fmt.Sprintf("(λ%s. <closure>)", l.Name)
}

// Pi is a dependent function type: a domain value plus a codomain
// closure (captured environment + core body).
type Pi struct {
	Name   string
	Icit   ast.Icit
	Domain Value
	Env    Env
	Body   core.Term
}

func (p *Pi) isValue() {}
func (p *Pi) String() string {
	return fmt.Sprintf("((%s : %s) -> <closure>)", p.Name, p.Domain)
}

// U is the universe (type-in-type: U : U).
type U struct{}

func (u *U) isValue()        {}
func (u *U) String() string { return "U" }

func spineString(head string, spine []Elim) string {
	s := head
	for _, e := range spine {
		if e.Icit == ast.Impl {
			s = fmt.Sprintf("(%s {%s})", s, e.Arg)
		} else {
			s = fmt.Sprintf("(%s %s)", s, e.Arg)
		}
	}
	return s
}

// Globals is the read side of the top-level context, as seen by the
// evaluator. Kept as an interface here (rather than depending on the
// concrete top-level context type) to avoid an import cycle: the
// concrete implementation lives in internal/elaborate, which already
// depends on this package for Value.
type Globals interface {
	// TopDef returns the evaluated definition value for id and true,
	// or (nil, false) if id names a postulate (assume) with no body.
	TopDef(id int) (Value, bool)
	// TopName returns the display name for id.
	TopName(id int) string
}
