package elaborate

import (
	"github.com/sunholo/minitt/internal/core"
	"github.com/sunholo/minitt/internal/errors"
	"github.com/sunholo/minitt/internal/value"
)

// unifyFailure records why solveMeta's renaming-quote walk gave up on
// a particular metavariable, distinguishing the two specialized
// unification error kinds (spec.md §7 kinds 7/8) from a plain
// structural mismatch.
type unifyFailure struct {
	Meta int
	Code string // errors.UNI002 or errors.UNI003
}

// Unify solves v1 = v2 by pattern unification (spec.md §4.3), possibly
// growing the metacontext with new solutions. A single solve commits
// nothing when it fails: Solve is only called once its renaming-quote
// walk has succeeded. Solutions already made earlier in the same call
// (for an earlier spine argument or a Pi domain) are not rolled back
// when a later part fails, so a failed Unify can leave them in place.
func (e *Elab) Unify(ctx *Ctx, v1, v2 value.Value) bool {
	e.unifyFail = nil
	return e.unifyVals(ctx.Size(), v1, v2)
}

func (e *Elab) unifyVals(size int, v1, v2 value.Value) bool {
	v1 = e.forceFull(v1)
	v2 = e.forceFull(v2)

	if lam1, ok := v1.(*value.Lambda); ok {
		body1 := e.apply(lam1, &value.Rigid{Level: size}, lam1.Icit)
		var body2 value.Value
		if lam2, ok2 := v2.(*value.Lambda); ok2 {
			body2 = e.apply(lam2, &value.Rigid{Level: size}, lam2.Icit)
		} else {
			body2 = e.apply(v2, &value.Rigid{Level: size}, lam1.Icit)
		}
		return e.unifyVals(size+1, body1, body2)
	}
	if lam2, ok := v2.(*value.Lambda); ok {
		body2 := e.apply(lam2, &value.Rigid{Level: size}, lam2.Icit)
		body1 := e.apply(v1, &value.Rigid{Level: size}, lam2.Icit)
		return e.unifyVals(size+1, body1, body2)
	}

	f1, isFlex1 := v1.(*value.Flex)
	f2, isFlex2 := v2.(*value.Flex)

	switch {
	case isFlex1 && isFlex2 && f1.Meta == f2.Meta:
		// Same flexible head: try pointwise spine unification first,
		// falling back to a pattern solve of either side.
		if len(f1.Spine) == len(f2.Spine) && e.unifySpine(size, f1.Spine, f2.Spine) {
			return true
		}
		return e.solveMeta(size, f1, v2) || e.solveMeta(size, f2, v1)

	case isFlex1 && isFlex2:
		// Different flexible heads: no equation to exploit structurally,
		// try a pattern solve of either side; fail if neither applies.
		// No postponing.
		return e.solveMeta(size, f1, v2) || e.solveMeta(size, f2, v1)

	case isFlex1:
		return e.solveMeta(size, f1, v2)

	case isFlex2:
		return e.solveMeta(size, f2, v1)
	}

	switch a := v1.(type) {
	case *value.Rigid:
		b, ok := v2.(*value.Rigid)
		if !ok || a.Level != b.Level || len(a.Spine) != len(b.Spine) {
			return false
		}
		return e.unifySpine(size, a.Spine, b.Spine)

	case *value.Glued:
		b, ok := v2.(*value.Glued)
		if !ok || a.TopID != b.TopID || len(a.Spine) != len(b.Spine) {
			return false
		}
		return e.unifySpine(size, a.Spine, b.Spine)

	case *value.Pi:
		b, ok := v2.(*value.Pi)
		if !ok {
			return false
		}
		if !e.unifyVals(size, a.Domain, b.Domain) {
			return false
		}
		codA := e.eval(&Ctx{Env: a.Env.Extend(&value.Rigid{Level: size})}, a.Body)
		codB := e.eval(&Ctx{Env: b.Env.Extend(&value.Rigid{Level: size})}, b.Body)
		return e.unifyVals(size+1, codA, codB)

	case *value.U:
		_, ok := v2.(*value.U)
		return ok
	}
	return false
}

func (e *Elab) unifySpine(size int, s1, s2 []value.Elim) bool {
	for i := range s1 {
		if s1[i].Icit != s2[i].Icit {
			return false
		}
		if !e.unifyVals(size, s1[i].Arg, s2[i].Arg) {
			return false
		}
	}
	return true
}

// solveMeta attempts `?m spine := rhs`. Returns false (without
// mutating the metacontext) if the spine is not a pattern, the meta
// occurs in rhs, or rhs mentions a variable outside the spine.
func (e *Elab) solveMeta(size int, fl *value.Flex, rhs value.Value) bool {
	renaming, argCount, ok := patternSpine(e, fl.Spine)
	if !ok {
		return false
	}

	st := &renameState{
		ren:       renaming,
		size:      argCount,
		argCount:  argCount,
		baseLevel: size,
		metaID:    fl.Meta,
	}
	body, ok := e.quoteRenamed(st, rhs)
	if !ok {
		return false
	}
	e.unifyFail = nil

	// Wrap body in argCount lambdas, outermost first, matching the
	// spine's own left-to-right (outermost-first) order.
	var names []string
	for i := 0; i < argCount; i++ {
		names = append(names, freshBinderName(i))
	}
	var solTerm core.Term = body
	for i := argCount - 1; i >= 0; i-- {
		solTerm = &core.Lam{Name: names[i], Icit: Expl, Body: solTerm}
	}
	solVal := value.Eval(e.Top, e.Meta, nil, solTerm)
	e.Meta.Solve(fl.Meta, solVal, solTerm)
	return true
}

func freshBinderName(i int) string {
	letters := "abcdefghijklmnopqrstuvwxyz"
	if i < len(letters) {
		return string(letters[i])
	}
	return "x"
}

// patternSpine checks the pattern condition: every spine argument
// forces to a distinct bound-variable-at-a-level (a bare rigid
// neutral with no further eliminators). Nonlinearity policy: repeated
// variables are allowed; the *innermost* (rightmost / last-written)
// occurrence wins the renaming (spec.md §4.3).
func patternSpine(e *Elab, spine []value.Elim) (map[int]int, int, bool) {
	ren := map[int]int{}
	for i, el := range spine {
		v := e.force(el.Arg)
		r, ok := v.(*value.Rigid)
		if !ok || len(r.Spine) != 0 {
			return nil, 0, false
		}
		ren[r.Level] = i
	}
	return ren, len(spine), true
}

// renameState drives the occurs-check renaming-quote walk of a
// candidate meta solution's right-hand side.
type renameState struct {
	ren       map[int]int // absolute level -> target binder position
	size      int         // current total binder count (argCount + walk depth)
	argCount  int
	baseLevel int // ctx size at the point Unify was invoked
	metaID    int
}

func (e *Elab) quoteRenamed(st *renameState, v value.Value) (core.Term, bool) {
	v = e.force(v) // approximate: does not unfold glued tops; a failed walk is not retried
	switch v := v.(type) {
	case *value.Rigid:
		pos, ok := st.ren[v.Level]
		if !ok {
			e.unifyFail = &unifyFailure{Meta: st.metaID, Code: errors.UNI003}
			return nil, false // scope escape
		}
		return e.quoteRenamedSpine(st, &core.Var{Index: st.size - 1 - pos}, v.Spine)

	case *value.Flex:
		if v.Meta == st.metaID {
			e.unifyFail = &unifyFailure{Meta: st.metaID, Code: errors.UNI002}
			return nil, false // occurs check
		}
		return e.quoteRenamedSpine(st, &core.Meta{ID: v.Meta}, v.Spine)

	case *value.Glued:
		return e.quoteRenamedSpine(st, &core.Top{ID: v.TopID, Name: v.TopName}, v.Spine)

	case *value.Lambda:
		lvl := st.baseLevel + (st.size - st.argCount)
		pos := st.size
		st.ren[lvl] = pos
		st.size++
		bodyVal := e.apply(v, &value.Rigid{Level: lvl}, v.Icit)
		bodyTerm, ok := e.quoteRenamed(st, bodyVal)
		st.size--
		delete(st.ren, lvl)
		if !ok {
			return nil, false
		}
		return &core.Lam{Name: v.Name, Icit: v.Icit, Body: bodyTerm}, true

	case *value.Pi:
		domTerm, ok := e.quoteRenamed(st, v.Domain)
		if !ok {
			return nil, false
		}
		lvl := st.baseLevel + (st.size - st.argCount)
		pos := st.size
		st.ren[lvl] = pos
		st.size++
		codVal := value.Eval(e.Top, e.Meta, v.Env.Extend(&value.Rigid{Level: lvl}), v.Body)
		codTerm, ok := e.quoteRenamed(st, codVal)
		st.size--
		delete(st.ren, lvl)
		if !ok {
			return nil, false
		}
		return &core.Pi{Name: v.Name, Type: domTerm, Icit: v.Icit, Body: codTerm}, true

	case *value.U:
		return &core.U{}, true
	}
	return nil, false
}

func (e *Elab) quoteRenamedSpine(st *renameState, head core.Term, spine []value.Elim) (core.Term, bool) {
	t := head
	for _, el := range spine {
		argTerm, ok := e.quoteRenamed(st, el.Arg)
		if !ok {
			return nil, false
		}
		t = &core.App{Func: t, Arg: argTerm, Icit: el.Icit}
	}
	return t, true
}
