package value

import (
	"github.com/sunholo/minitt/internal/ast"
	"github.com/sunholo/minitt/internal/core"
	"github.com/sunholo/minitt/internal/meta"
)

// Eval evaluates a core term to weak-head normal form under env.
// Evaluation never fails: ill-typed terms have been ruled out upstream
// by the elaborator (spec.md §4.1).
func Eval(g Globals, mctx *meta.Ctx, env Env, t core.Term) Value {
	switch t := t.(type) {
	case *core.Var:
		if t.Index < 0 || t.Index >= len(env) {
			panic("value: Eval: variable index out of range (elaborator invariant violated)")
		}
		// env is ordered outermost-first; index counts from the leaf.
		return env[len(env)-1-t.Index]

	case *core.Top:
		id, name := t.ID, t.Name
		if def, ok := g.TopDef(id); ok {
			return NewGlued(id, name, nil, func() Value { return def })
		}
		// Postulate (assume): no unfolding thunk, permanently rigid.
		return NewGlued(id, name, nil, nil)

	case *core.Meta:
		e := mctx.Lookup(t.ID)
		if e.Solved {
			return e.Value.(Value)
		}
		return &Flex{Meta: t.ID}

	case *core.App:
		f := Eval(g, mctx, env, t.Func)
		a := Eval(g, mctx, env, t.Arg)
		return Apply(g, mctx, f, a, t.Icit)

	case *core.Lam:
		return &Lambda{Name: t.Name, Icit: t.Icit, Env: env, Body: t.Body}

	case *core.Pi:
		dom := Eval(g, mctx, env, t.Type)
		return &Pi{Name: t.Name, Icit: t.Icit, Domain: dom, Env: env, Body: t.Body}

	case *core.Let:
		v := Eval(g, mctx, env, t.Value)
		return Eval(g, mctx, env.Extend(v), t.Body)

	case *core.U:
		return &U{}
	}
	panic("value: Eval: unknown core.Term")
}

// Apply beta-reduces f applied to arg at the given icitness: if f is a
// lambda closure, extends its environment and evaluates the body;
// otherwise extends the neutral head's spine.
func Apply(g Globals, mctx *meta.Ctx, f Value, arg Value, icit ast.Icit) Value {
	switch f := f.(type) {
	case *Lambda:
		return Eval(g, mctx, f.Env.Extend(arg), f.Body)
	case *Rigid:
		return &Rigid{Level: f.Level, Spine: appendElim(f.Spine, arg, icit)}
	case *Flex:
		return &Flex{Meta: f.Meta, Spine: appendElim(f.Spine, arg, icit)}
	case *Glued:
		// The new value shares f's head thunk: Unfold yields the head
		// definition only, and ForceFull re-applies the whole spine.
		var unfold func() Value
		if f.unfold != nil {
			unfold = f.Unfold
		}
		return NewGlued(f.TopID, f.TopName, appendElim(f.Spine, arg, icit), unfold)
	}
	panic("value: Apply: head is not a function value (elaborator invariant violated)")
}

func appendElim(spine []Elim, arg Value, icit ast.Icit) []Elim {
	out := make([]Elim, len(spine), len(spine)+1)
	copy(out, spine)
	return append(out, Elim{Arg: arg, Icit: icit})
}

// Force re-walks a flexible neutral whose head meta has since been
// solved, possibly recursively (a solution can itself mention another
// meta that has now been solved too). It does not unfold glued tops.
// Idempotent once the head stabilizes.
func Force(g Globals, mctx *meta.Ctx, v Value) Value {
	fl, ok := v.(*Flex)
	if !ok {
		return v
	}
	e := mctx.Lookup(fl.Meta)
	if !e.Solved {
		return v
	}
	head := e.Value.(Value)
	for _, el := range fl.Spine {
		head = Apply(g, mctx, head, el.Arg, el.Icit)
	}
	return Force(g, mctx, head)
}

// ForceFull behaves like Force but also unfolds glued tops, following
// every reduction available. Used only by the full conversion check.
func ForceFull(g Globals, mctx *meta.Ctx, v Value) Value {
	v = Force(g, mctx, v)
	gl, ok := v.(*Glued)
	if !ok || gl.unfold == nil {
		return v
	}
	head := gl.Unfold()
	for _, el := range gl.Spine {
		head = Apply(g, mctx, head, el.Arg, el.Icit)
	}
	return ForceFull(g, mctx, head)
}
