package elaborate

import (
	"github.com/sunholo/minitt/internal/ast"
	"github.com/sunholo/minitt/internal/errors"
	"github.com/sunholo/minitt/internal/value"
)

// DeclResult records the outcome of elaborating one top-level
// declaration, including its (pass-through) annotation tags — the
// elaborator itself never interprets `[elaborate]`/`[normalize]`; it
// only carries them forward for the CLI/REPL to act on (spec.md §6).
type DeclResult struct {
	Name string
	Tags []string
	ID   int // top-level id, valid only if Err == nil
	Err  error
}

// ElaborateFile processes a parsed file's declarations in order
// (spec.md §4.4 "top-level elaboration"). A failing declaration is
// recorded in its DeclResult and does not stop the run: later
// declarations still elaborate, though any reference to the failed
// name will itself report a scope error, since the entry for it is
// never added to the top-level context (spec.md §7 "Propagation").
func (e *Elab) ElaborateFile(f *ast.File) []DeclResult {
	results := make([]DeclResult, 0, len(f.Decls))
	for _, d := range f.Decls {
		results = append(results, e.elaborateDecl(d))
	}
	return results
}

func (e *Elab) elaborateDecl(d *ast.Decl) DeclResult {
	res := DeclResult{Name: d.Name, Tags: d.Tags}

	ctx := NewCtx()
	metaFloor := e.Meta.Len()

	if d.Assume {
		tyTerm, err := e.Check(ctx, d.Type, &value.U{})
		if err != nil {
			res.Err = err
			return res
		}
		tyVal := e.eval(ctx, tyTerm)
		if err := e.checkNoUnsolvedMetas(metaFloor, d.Name, d.Pos); err != nil {
			res.Err = err
			return res
		}
		res.ID = e.Top.Add(d.Name, tyVal, tyTerm, nil, nil)
		return res
	}

	if d.Type != nil {
		tyTerm, err := e.Check(ctx, d.Type, &value.U{})
		if err != nil {
			res.Err = err
			return res
		}
		declTy := e.eval(ctx, tyTerm)
		bt, err := e.Check(ctx, d.Body, declTy)
		if err != nil {
			res.Err = err
			return res
		}
		if err := e.checkNoUnsolvedMetas(metaFloor, d.Name, d.Pos); err != nil {
			res.Err = err
			return res
		}
		bodyVal := e.eval(ctx, bt)
		res.ID = e.Top.Add(d.Name, declTy, tyTerm, bodyVal, bt)
		return res
	}

	bt, ty, err := e.Infer(ctx, d.Body)
	if err != nil {
		res.Err = err
		return res
	}
	if err := e.checkNoUnsolvedMetas(metaFloor, d.Name, d.Pos); err != nil {
		res.Err = err
		return res
	}
	bodyVal := e.eval(ctx, bt)
	tyTerm := e.quote(ctx, ty, false)
	res.ID = e.Top.Add(d.Name, ty, tyTerm, bodyVal, bt)
	return res
}

// checkNoUnsolvedMetas reports a HOLE001 error (spec.md §7 kind 6) if
// any metavariable created since metaFloor (the metacontext length
// when this declaration started) remains unsolved. Only this
// declaration's own metas are reported — an earlier failed
// declaration's leftover unsolved metas (if any) stay in the
// process-wide metacontext per spec.md §5 but must not be re-reported
// against every later declaration.
func (e *Elab) checkNoUnsolvedMetas(metaFloor int, declName string, pos ast.Pos) error {
	var ids []int
	for _, id := range e.Meta.Unsolved() {
		if id >= metaFloor {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return errors.Wrap(errors.NewUnsolvedMetaError(declName, ids, pos))
}
