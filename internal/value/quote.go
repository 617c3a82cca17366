package value

import (
	"github.com/sunholo/minitt/internal/core"
	"github.com/sunholo/minitt/internal/meta"
)

// Quote converts a value back to a core term under a context of the
// given size (number of bindings currently in scope — the next fresh
// level to invent under a binder). full selects the unfolding policy:
// false keeps glued tops folded (quoting substitutes their core
// name, producing a small term); true unfolds everything, used by
// full conversion and by [normalize] reporting.
//
// Quoting a closure invents a fresh level, applies the closure to the
// corresponding rigid neutral, and recursively quotes the result,
// producing an index-based binder (spec.md §4.1).
func Quote(g Globals, mctx *meta.Ctx, size int, v Value, full bool) core.Term {
	if full {
		v = ForceFull(g, mctx, v)
	} else {
		v = Force(g, mctx, v)
	}

	switch v := v.(type) {
	case *Rigid:
		return quoteSpine(g, mctx, size, &core.Var{Index: size - v.Level - 1}, v.Spine, full)

	case *Flex:
		return quoteSpine(g, mctx, size, &core.Meta{ID: v.Meta}, v.Spine, full)

	case *Glued:
		return quoteSpine(g, mctx, size, &core.Top{ID: v.TopID, Name: v.TopName}, v.Spine, full)

	case *Lambda:
		bodyVal := Apply(g, mctx, v, &Rigid{Level: size}, v.Icit)
		return &core.Lam{Name: v.Name, Icit: v.Icit, Body: Quote(g, mctx, size+1, bodyVal, full)}

	case *Pi:
		domTerm := Quote(g, mctx, size, v.Domain, full)
		codVal := Eval(g, mctx, v.Env.Extend(&Rigid{Level: size}), v.Body)
		return &core.Pi{
			Name: v.Name,
			Type: domTerm,
			Icit: v.Icit,
			Body: Quote(g, mctx, size+1, codVal, full),
		}

	case *U:
		return &core.U{}
	}
	panic("value: Quote: unknown Value")
}

func quoteSpine(g Globals, mctx *meta.Ctx, size int, head core.Term, spine []Elim, full bool) core.Term {
	t := head
	for _, e := range spine {
		t = &core.App{Func: t, Arg: Quote(g, mctx, size, e.Arg, full), Icit: e.Icit}
	}
	return t
}
