package elaborate

import (
	"github.com/sunholo/minitt/internal/ast"
	"github.com/sunholo/minitt/internal/value"
)

// Origin records how a local variable entered the context: freshly
// bound by a lambda/Pi binder, or definitionally equal to some value
// via a local `let` (spec.md §3.4(iv)).
type Origin int

const (
	Bound Origin = iota
	Defined
)

// Ctx is the local context threaded through elaboration: the value
// environment (for the evaluator), the types of in-scope variables,
// their names, and their binding origin (spec.md §3.4). It is
// extended by value (never mutated) on descent into a binder and the
// caller's own copy is restored on ascent simply by not using the
// extended one any further.
type Ctx struct {
	Env     value.Env
	Types   []value.Value
	Names   []string
	Origins []Origin
}

// NewCtx returns the empty top-level local context.
func NewCtx() *Ctx {
	return &Ctx{}
}

// Size is the current context length: the count of in-scope
// variables, and the next De Bruijn level to invent under a binder.
func (c *Ctx) Size() int { return len(c.Env) }

// Bind extends the context with a fresh bound variable of type ty,
// represented in the environment by a rigid neutral at the new level.
func (c *Ctx) Bind(name string, ty value.Value) *Ctx {
	return &Ctx{
		Env:     c.Env.Extend(&value.Rigid{Level: c.Size()}),
		Types:   append(append([]value.Value{}, c.Types...), ty),
		Names:   append(append([]string{}, c.Names...), name),
		Origins: append(append([]Origin{}, c.Origins...), Bound),
	}
}

// Define extends the context with a local let-binding whose value is
// already known.
func (c *Ctx) Define(name string, ty, val value.Value) *Ctx {
	return &Ctx{
		Env:     c.Env.Extend(val),
		Types:   append(append([]value.Value{}, c.Types...), ty),
		Names:   append(append([]string{}, c.Names...), name),
		Origins: append(append([]Origin{}, c.Origins...), Defined),
	}
}

// Lookup finds name, searching innermost-first, and returns its De
// Bruijn index and type.
func (c *Ctx) Lookup(name string) (index int, ty value.Value, ok bool) {
	for i := len(c.Names) - 1; i >= 0; i-- {
		if c.Names[i] == name {
			return c.Size() - 1 - i, c.Types[i], true
		}
	}
	return 0, nil, false
}

// BoundLevels returns the levels of every Bound (not Defined) variable
// in scope, outermost first. This is the scope a freshly-created
// metavariable is applied to (spec.md §4.4): only real bound
// variables are guaranteed distinct rigid neutrals, which is what the
// unifier's pattern condition needs.
func (c *Ctx) BoundLevels() []int {
	var levels []int
	for i, o := range c.Origins {
		if o == Bound {
			levels = append(levels, i)
		}
	}
	return levels
}

// Icit re-exports ast.Icit for callers that only import this package.
type Icit = ast.Icit

const (
	Expl = ast.Expl
	Impl = ast.Impl
)
