// Package elaborate implements the semantic core of minitt: the
// conversion checker, the pattern unifier, and the bidirectional
// elaborator that together turn a raw syntax tree into core terms,
// growing a metacontext and a top-level context as they go (spec.md
// §4).
package elaborate

import (
	"fmt"

	"github.com/sunholo/minitt/internal/ast"
	"github.com/sunholo/minitt/internal/core"
	"github.com/sunholo/minitt/internal/errors"
	"github.com/sunholo/minitt/internal/value"
)

func icitName(i ast.Icit) string {
	if i == ast.Impl {
		return "implicit"
	}
	return "explicit"
}

func wrapNamedImplicitError(name string, pos ast.Pos) error {
	return errors.Wrap(errors.NewNamedImplicitError(name, pos))
}

func wrapScopeError(name string, pos ast.Pos) error {
	return errors.Wrap(errors.NewScopeError(name, pos))
}

func wrapIcitError(expected, got ast.Icit, pos ast.Pos) error {
	return errors.Wrap(errors.NewIcitMismatchError(icitName(expected), icitName(got), pos))
}

// notAFunctionError reports that an application's head failed to
// force to a Pi type.
func (e *Elab) notAFunctionError(ctx *Ctx, got value.Value, pos ast.Pos) error {
	detail := fmt.Sprintf("expected a function type, got %s", e.quote(ctx, got, true))
	return errors.Wrap(errors.NewTypeMismatchError(detail, pos))
}

// unifyOrFail checks expected and got for convertibility (spec.md
// §4.2/§4.4: "infer and unify the inferred type against the expected
// type"), reporting a type-mismatch error (position pos) on failure.
func (e *Elab) unifyOrFail(ctx *Ctx, got, expected value.Value, pos ast.Pos) error {
	if e.Convert(ctx, got, expected) {
		return nil
	}
	if e.unifyFail != nil {
		switch e.unifyFail.Code {
		case errors.UNI002:
			return errors.Wrap(errors.NewOccursCheckError(e.unifyFail.Meta, pos))
		case errors.UNI003:
			return errors.Wrap(errors.NewScopeEscapeError(e.unifyFail.Meta, pos))
		}
	}
	detail := fmt.Sprintf("expected %s, got %s", e.quote(ctx, expected, true), e.quote(ctx, got, true))
	return errors.Wrap(errors.NewTypeMismatchError(detail, pos))
}

// Infer elaborates raw without an expected type, returning its core
// term and inferred type (spec.md §4.4 `infer`).
func (e *Elab) Infer(ctx *Ctx, raw ast.Raw) (core.Term, value.Value, error) {
	switch r := raw.(type) {
	case *ast.Var:
		if idx, ty, ok := ctx.Lookup(r.Name); ok {
			return &core.Var{Index: idx, Name: r.Name}, ty, nil
		}
		if id, ok := e.Top.Lookup(r.Name); ok {
			entry := e.Top.Entry(id)
			return &core.Top{ID: id, Name: r.Name}, entry.Type, nil
		}
		return nil, nil, wrapScopeError(r.Name, r.Pos)

	case *ast.Hole:
		// A bare hole's own type is itself a fresh meta (spec.md §4.4's
		// "fresh metavariable creation" regress, bottomed out by U).
		_, tyVal := e.freshMetaWithType(ctx, &value.U{})
		term, _ := e.freshMetaWithType(ctx, tyVal)
		return term, tyVal, nil

	case *ast.U:
		return &core.U{}, &value.U{}, nil

	case *ast.Pi:
		domTerm, err := e.Check(ctx, r.Type, &value.U{})
		if err != nil {
			return nil, nil, err
		}
		domVal := e.eval(ctx, domTerm)
		bodyCtx := ctx.Bind(r.Name, domVal)
		bodyTerm, err := e.Check(bodyCtx, r.Body, &value.U{})
		if err != nil {
			return nil, nil, err
		}
		return &core.Pi{Name: r.Name, Type: domTerm, Icit: r.Icit, Body: bodyTerm}, &value.U{}, nil

	case *ast.Lam:
		var domVal value.Value
		if r.Type != nil {
			domTerm, err := e.Check(ctx, r.Type, &value.U{})
			if err != nil {
				return nil, nil, err
			}
			domVal = e.eval(ctx, domTerm)
		} else {
			_, domVal = e.freshMetaWithType(ctx, &value.U{})
		}
		bodyCtx := ctx.Bind(r.Name, domVal)
		bodyTerm, bodyTy, err := e.Infer(bodyCtx, r.Body)
		if err != nil {
			return nil, nil, err
		}
		lamTerm := &core.Lam{Name: r.Name, Icit: r.Icit, Body: bodyTerm}
		piTyTerm := e.quote(bodyCtx, bodyTy, false)
		piTy := &value.Pi{Name: r.Name, Icit: r.Icit, Domain: domVal, Env: ctx.Env, Body: piTyTerm}
		return lamTerm, piTy, nil

	case *ast.Let:
		var declTy value.Value
		var valTerm core.Term
		var err error
		if r.Type != nil {
			tyTerm, tErr := e.Check(ctx, r.Type, &value.U{})
			if tErr != nil {
				return nil, nil, tErr
			}
			declTy = e.eval(ctx, tyTerm)
			valTerm, err = e.Check(ctx, r.Value, declTy)
			if err != nil {
				return nil, nil, err
			}
		} else {
			valTerm, declTy, err = e.Infer(ctx, r.Value)
			if err != nil {
				return nil, nil, err
			}
		}
		val := e.eval(ctx, valTerm)
		bodyCtx := ctx.Define(r.Name, declTy, val)
		bodyTerm, bodyTy, err := e.Infer(bodyCtx, r.Body)
		if err != nil {
			return nil, nil, err
		}
		tyTerm := e.quote(ctx, declTy, false)
		return &core.Let{Name: r.Name, Type: tyTerm, Value: valTerm, Body: bodyTerm}, bodyTy, nil

	case *ast.App:
		return e.inferApp(ctx, r)
	}
	panic(fmt.Sprintf("elaborate: unknown raw node %T", raw))
}

// inferApp infers the type of an application, handling positional
// application, the `!` suppress-insertion marker, and named implicit
// application `{name = t}` (spec.md §4.4).
func (e *Elab) inferApp(ctx *Ctx, r *ast.App) (core.Term, value.Value, error) {
	funcTerm, funcTy, err := e.Infer(ctx, r.Func)
	if err != nil {
		return nil, nil, err
	}

	if r.Name != "" {
		// Named implicit application: insert metas up to the matching
		// implicit binder, never suppressed by `!` (the marker only
		// affects ordinary insertion, not name-directed matching).
		funcTerm, funcTy, err = e.insertUntilName(ctx, funcTerm, funcTy, r.Name, r.Pos)
		if err != nil {
			return nil, nil, err
		}
		pi, ok := e.forceFull(funcTy).(*value.Pi)
		if !ok {
			return nil, nil, e.notAFunctionError(ctx, e.forceFull(funcTy), r.Pos)
		}
		argTerm, err := e.Check(ctx, r.Arg, pi.Domain)
		if err != nil {
			return nil, nil, err
		}
		argVal := e.eval(ctx, argTerm)
		resTy := e.eval(&Ctx{Env: pi.Env.Extend(argVal)}, pi.Body)
		return &core.App{Func: funcTerm, Arg: argTerm, Icit: ast.Impl}, resTy, nil
	}

	if r.Icit == ast.Expl && !r.Bang {
		// Ordinary explicit application: insert metas for any leading
		// implicit binders first (spec.md §4.4).
		funcTerm, funcTy = e.insert(ctx, funcTerm, funcTy)
	}

	pi, ok := e.forceFull(funcTy).(*value.Pi)
	if !ok {
		return nil, nil, e.notAFunctionError(ctx, e.forceFull(funcTy), r.Pos)
	}
	if pi.Icit != r.Icit {
		return nil, nil, wrapIcitError(pi.Icit, r.Icit, r.Pos)
	}
	argTerm, err := e.Check(ctx, r.Arg, pi.Domain)
	if err != nil {
		return nil, nil, err
	}
	argVal := e.eval(ctx, argTerm)
	resTy := e.eval(&Ctx{Env: pi.Env.Extend(argVal)}, pi.Body)
	return &core.App{Func: funcTerm, Arg: argTerm, Icit: r.Icit}, resTy, nil
}

// Check elaborates raw against expectedType (spec.md §4.4 `check`).
func (e *Elab) Check(ctx *Ctx, raw ast.Raw, expectedType value.Value) (core.Term, error) {
	forced := e.forceFull(expectedType)

	if lam, ok := raw.(*ast.Lam); ok {
		if pi, ok := forced.(*value.Pi); ok && pi.Icit == lam.Icit {
			bodyCtx := ctx.Bind(lam.Name, pi.Domain)
			codomain := e.eval(&Ctx{Env: pi.Env.Extend(bodyCtx.Env[bodyCtx.Size()-1])}, pi.Body)
			bodyTerm, err := e.Check(bodyCtx, lam.Body, codomain)
			if err != nil {
				return nil, err
			}
			return &core.Lam{Name: lam.Name, Icit: lam.Icit, Body: bodyTerm}, nil
		}
	}

	// Checking any raw against a function type with an implicit binder,
	// where raw is not itself a matching implicit lambda: insert an
	// implicit lambda and retry under it (spec.md §4.4).
	if pi, ok := forced.(*value.Pi); ok && pi.Icit == ast.Impl {
		if lam, ok := raw.(*ast.Lam); !ok || lam.Icit != ast.Impl {
			bodyCtx := ctx.Bind(pi.Name, pi.Domain)
			codomain := e.eval(&Ctx{Env: pi.Env.Extend(bodyCtx.Env[bodyCtx.Size()-1])}, pi.Body)
			bodyTerm, err := e.Check(bodyCtx, raw, codomain)
			if err != nil {
				return nil, err
			}
			return &core.Lam{Name: pi.Name, Icit: ast.Impl, Body: bodyTerm}, nil
		}
	}

	if let, ok := raw.(*ast.Let); ok {
		var declTy value.Value
		var valTerm core.Term
		var err error
		if let.Type != nil {
			tyTerm, tErr := e.Check(ctx, let.Type, &value.U{})
			if tErr != nil {
				return nil, tErr
			}
			declTy = e.eval(ctx, tyTerm)
			valTerm, err = e.Check(ctx, let.Value, declTy)
			if err != nil {
				return nil, err
			}
		} else {
			valTerm, declTy, err = e.Infer(ctx, let.Value)
			if err != nil {
				return nil, err
			}
		}
		val := e.eval(ctx, valTerm)
		bodyCtx := ctx.Define(let.Name, declTy, val)
		bodyTerm, err := e.Check(bodyCtx, let.Body, expectedType)
		if err != nil {
			return nil, err
		}
		tyTerm := e.quote(ctx, declTy, false)
		return &core.Let{Name: let.Name, Type: tyTerm, Value: valTerm, Body: bodyTerm}, nil
	}

	if _, ok := raw.(*ast.Hole); ok {
		term, _ := e.freshMetaWithType(ctx, expectedType)
		return term, nil
	}

	term, ty, err := e.Infer(ctx, raw)
	if err != nil {
		return nil, err
	}
	term, ty = e.insert(ctx, term, ty)
	if err := e.unifyOrFail(ctx, ty, expectedType, raw.Position()); err != nil {
		return nil, err
	}
	return term, nil
}
