package elaborate

import (
	"github.com/sunholo/minitt/internal/ast"
	"github.com/sunholo/minitt/internal/core"
	"github.com/sunholo/minitt/internal/meta"
	"github.com/sunholo/minitt/internal/value"
)

// Elab bundles the two process-wide, single-writer structures the
// elaborator mutates as it runs (spec.md §5): the metacontext and the
// top-level context.
type Elab struct {
	Meta *meta.Ctx
	Top  *TopCtx

	// unifyFail records the specific reason the most recent failed
	// Unify/Convert call gave up inside the renaming-quote walk (occurs
	// check or scope escape), so unifyOrFail can report UNI002/UNI003
	// instead of the generic UNI001. Reset at the start of every
	// Unify/Convert entry point; nil means "no specific reason" (a
	// structural mismatch or a non-pattern spine).
	unifyFail *unifyFailure
}

// New returns a fresh elaborator with empty meta/top contexts.
func New() *Elab {
	return &Elab{Meta: &meta.Ctx{}, Top: NewTopCtx()}
}

func (e *Elab) eval(ctx *Ctx, t core.Term) value.Value {
	return value.Eval(e.Top, e.Meta, ctx.Env, t)
}

func (e *Elab) quote(ctx *Ctx, v value.Value, full bool) core.Term {
	return value.Quote(e.Top, e.Meta, ctx.Size(), v, full)
}

func (e *Elab) force(v value.Value) value.Value {
	return value.Force(e.Top, e.Meta, v)
}

func (e *Elab) forceFull(v value.Value) value.Value {
	return value.ForceFull(e.Top, e.Meta, v)
}

func (e *Elab) apply(f, arg value.Value, icit ast.Icit) value.Value {
	return value.Apply(e.Top, e.Meta, f, arg, icit)
}

// freshMetaType allocates the type for a to-be-created metavariable.
// Per spec.md §4.4, a fresh meta's own type is itself a fresh
// metavariable (sound only because of type-in-type); the regress
// bottoms out by giving that type-meta the universe as its type.
func (e *Elab) freshMetaType(ctx *Ctx) value.Value {
	tyID := e.Meta.Fresh(&value.U{})
	var v value.Value = &value.Flex{Meta: tyID}
	for _, lvl := range ctx.BoundLevels() {
		v = e.apply(v, &value.Rigid{Level: lvl}, ast.Expl)
	}
	return v
}

// freshMeta creates a new metavariable and returns its occurrence: the
// meta applied to every bound variable currently in scope (spec.md
// §4.4), both as a core term (for embedding in the elaborated output)
// and as the corresponding value.
func (e *Elab) freshMeta(ctx *Ctx) (core.Term, value.Value) {
	id := e.Meta.Fresh(e.freshMetaType(ctx))
	var term core.Term = &core.Meta{ID: id}
	var val value.Value = &value.Flex{Meta: id}
	for _, lvl := range ctx.BoundLevels() {
		term = &core.App{Func: term, Arg: &core.Var{Index: ctx.Size() - 1 - lvl, Name: ctx.Names[lvl]}, Icit: ast.Expl}
		val = e.apply(val, &value.Rigid{Level: lvl}, ast.Expl)
	}
	return term, val
}

// NormalizeTopEntry quotes a top-level declaration's definition to its
// full normal form (every glued top unfolded), for `[normalize]`/
// `:normalize` reporting. Returns false if the declaration is a
// postulate with no definition to normalize.
func (e *Elab) NormalizeTopEntry(id int) (core.Term, bool) {
	entry := e.Top.Entry(id)
	if !entry.HasDef {
		return nil, false
	}
	return e.quote(NewCtx(), entry.Def, true), true
}

// freshMetaWithType is like freshMeta but records ty (a value already
// known to the caller, e.g. a Pi's domain) as the meta's type instead
// of inventing another meta for it.
func (e *Elab) freshMetaWithType(ctx *Ctx, ty value.Value) (core.Term, value.Value) {
	id := e.Meta.Fresh(ty)
	var term core.Term = &core.Meta{ID: id}
	var val value.Value = &value.Flex{Meta: id}
	for _, lvl := range ctx.BoundLevels() {
		term = &core.App{Func: term, Arg: &core.Var{Index: ctx.Size() - 1 - lvl, Name: ctx.Names[lvl]}, Icit: ast.Expl}
		val = e.apply(val, &value.Rigid{Level: lvl}, ast.Expl)
	}
	return term, val
}
