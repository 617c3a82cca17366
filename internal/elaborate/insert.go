package elaborate

import (
	"github.com/sunholo/minitt/internal/ast"
	"github.com/sunholo/minitt/internal/core"
	"github.com/sunholo/minitt/internal/value"
)

// insert applies fresh metavariables to (term, ty) for as long as ty's
// head (after forcing) is a Pi with an implicit binder, per spec.md
// §4.4's implicit-insertion rule. Used after infer() whenever the
// surrounding context expects an explicit application or a check
// against a non-implicit-function type.
func (e *Elab) insert(ctx *Ctx, term core.Term, ty value.Value) (core.Term, value.Value) {
	for {
		forced := e.force(ty)
		pi, ok := forced.(*value.Pi)
		if !ok || pi.Icit != ast.Impl {
			return term, forced
		}
		argTerm, argVal := e.freshMetaWithType(ctx, pi.Domain)
		term = &core.App{Func: term, Arg: argTerm, Icit: ast.Impl}
		ty = e.eval(&Ctx{Env: pi.Env.Extend(argVal)}, pi.Body)
	}
}

// insertUntilName is the named-implicit variant (spec.md §4.4): it
// inserts metas for implicit binders whose name doesn't match `name`,
// stopping (without inserting) once a matching binder is found. It
// reports a named-implicit error if the implicit prefix is exhausted
// without a match.
func (e *Elab) insertUntilName(ctx *Ctx, term core.Term, ty value.Value, name string, pos ast.Pos) (core.Term, value.Value, error) {
	for {
		forced := e.force(ty)
		pi, ok := forced.(*value.Pi)
		if !ok || pi.Icit != ast.Impl {
			return nil, nil, wrapNamedImplicitError(name, pos)
		}
		if pi.Name == name {
			return term, forced, nil
		}
		argTerm, argVal := e.freshMetaWithType(ctx, pi.Domain)
		term = &core.App{Func: term, Arg: argTerm, Icit: ast.Impl}
		ty = e.eval(&Ctx{Env: pi.Env.Extend(argVal)}, pi.Body)
	}
}
