package elaborate

import (
	"github.com/sunholo/minitt/internal/value"
)

// convResult is the outcome of an approximate comparison: definitely
// equal, definitely not equal, or inconclusive (fall back to full
// mode). See spec.md §4.2.
type convResult int

const (
	convEqual convResult = iota
	convNotEqual
	convUnknown
)

func worst(a, b convResult) convResult {
	if a == convNotEqual || b == convNotEqual {
		return convNotEqual
	}
	if a == convUnknown || b == convUnknown {
		return convUnknown
	}
	return convEqual
}

// Convert decides whether v1 and v2 are definitionally equal under a
// context of ctx.Size(). It tries the approximate check first and
// only falls back to the full check (which may invoke the unifier on
// flexible equations) when approximate mode is inconclusive.
func (e *Elab) Convert(ctx *Ctx, v1, v2 value.Value) bool {
	e.unifyFail = nil
	switch e.approxConvert(ctx.Size(), v1, v2) {
	case convEqual:
		return true
	case convNotEqual:
		return false
	default:
		return e.fullConvert(ctx.Size(), v1, v2)
	}
}

// approxConvert is the fast path (spec.md §4.2.1): it forces shallowly
// (never unfolding glued tops, never following solved metas past
// their head), and never solves metavariables.
func (e *Elab) approxConvert(size int, v1, v2 value.Value) convResult {
	v1 = e.force(v1)
	v2 = e.force(v2)

	// Eta for functions: whenever one side is a lambda, the other is
	// treated as `λx. other x` regardless of its own head shape.
	if lam1, ok := v1.(*value.Lambda); ok {
		body1 := e.apply(lam1, &value.Rigid{Level: size}, lam1.Icit)
		var body2 value.Value
		if lam2, ok2 := v2.(*value.Lambda); ok2 {
			body2 = e.apply(lam2, &value.Rigid{Level: size}, lam2.Icit)
		} else {
			body2 = e.apply(v2, &value.Rigid{Level: size}, lam1.Icit)
		}
		return e.approxConvert(size+1, body1, body2)
	}
	if lam2, ok := v2.(*value.Lambda); ok {
		body2 := e.apply(lam2, &value.Rigid{Level: size}, lam2.Icit)
		body1 := e.apply(v1, &value.Rigid{Level: size}, lam2.Icit)
		return e.approxConvert(size+1, body1, body2)
	}

	switch a := v1.(type) {
	case *value.Rigid:
		b, ok := v2.(*value.Rigid)
		if !ok {
			return convUnknown
		}
		if a.Level != b.Level {
			return convNotEqual
		}
		return e.approxSpine(size, a.Spine, b.Spine)

	case *value.Glued:
		b, ok := v2.(*value.Glued)
		if !ok {
			return convUnknown
		}
		if a.TopID != b.TopID {
			// Could still agree after unfolding both sides.
			return convUnknown
		}
		return e.approxSpine(size, a.Spine, b.Spine)

	case *value.Flex:
		// Flexible heads never settle anything in approximate mode.
		return convUnknown

	case *value.Pi:
		b, ok := v2.(*value.Pi)
		if !ok {
			// A flexible or glued other side might still turn into a
			// Pi once solved/unfolded; only a shape that can never
			// become one (Rigid, U) is a definite mismatch here.
			switch v2.(type) {
			case *value.Flex, *value.Glued:
				return convUnknown
			default:
				return convNotEqual
			}
		}
		dom := e.approxConvert(size, a.Domain, b.Domain)
		if dom == convNotEqual {
			return convNotEqual
		}
		codA := e.eval(&Ctx{Env: a.Env.Extend(&value.Rigid{Level: size})}, a.Body)
		codB := e.eval(&Ctx{Env: b.Env.Extend(&value.Rigid{Level: size})}, b.Body)
		cod := e.approxConvert(size+1, codA, codB)
		return worst(dom, cod)

	case *value.U:
		if _, ok := v2.(*value.U); ok {
			return convEqual
		}
		switch v2.(type) {
		case *value.Flex, *value.Glued:
			return convUnknown
		default:
			return convNotEqual
		}
	}

	if _, ok := v2.(*value.Flex); ok {
		return convUnknown
	}
	return convNotEqual
}

func (e *Elab) approxSpine(size int, s1, s2 []value.Elim) convResult {
	if len(s1) != len(s2) {
		return convUnknown
	}
	res := convEqual
	for i := range s1 {
		if s1[i].Icit != s2[i].Icit {
			return convNotEqual
		}
		res = worst(res, e.approxConvert(size, s1[i].Arg, s2[i].Arg))
		if res == convNotEqual {
			return convNotEqual
		}
	}
	return res
}

// fullConvert is the fallback (spec.md §4.2.2): it forces fully
// (unfolding glued tops, following solved metas), and delegates any
// equation whose head is still flexible to the unifier rather than
// resolving it here.
func (e *Elab) fullConvert(size int, v1, v2 value.Value) bool {
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
		return e.fullConvert(size+1, body1, body2)
	}
	if lam2, ok := v2.(*value.Lambda); ok {
		body2 := e.apply(lam2, &value.Rigid{Level: size}, lam2.Icit)
		body1 := e.apply(v1, &value.Rigid{Level: size}, lam2.Icit)
		return e.fullConvert(size+1, body1, body2)
	}

	if isFlexValue(v1) || isFlexValue(v2) {
		return e.unifyVals(size, v1, v2)
	}

	switch a := v1.(type) {
	case *value.Rigid:
		b, ok := v2.(*value.Rigid)
		if !ok || a.Level != b.Level || len(a.Spine) != len(b.Spine) {
			return false
		}
		return e.fullSpine(size, a.Spine, b.Spine)

	case *value.Glued: // only postulates remain Glued after forceFull
		b, ok := v2.(*value.Glued)
		if !ok || a.TopID != b.TopID || len(a.Spine) != len(b.Spine) {
			return false
		}
		return e.fullSpine(size, a.Spine, b.Spine)

	case *value.Pi:
		b, ok := v2.(*value.Pi)
		if !ok {
			return false
		}
		if !e.fullConvert(size, a.Domain, b.Domain) {
			return false
		}
		codA := e.eval(&Ctx{Env: a.Env.Extend(&value.Rigid{Level: size})}, a.Body)
		codB := e.eval(&Ctx{Env: b.Env.Extend(&value.Rigid{Level: size})}, b.Body)
		return e.fullConvert(size+1, codA, codB)

	case *value.U:
		_, ok := v2.(*value.U)
		return ok
	}
	return false
}

func (e *Elab) fullSpine(size int, s1, s2 []value.Elim) bool {
	for i := range s1 {
		if s1[i].Icit != s2[i].Icit {
			return false
		}
		if !e.fullConvert(size, s1[i].Arg, s2[i].Arg) {
			return false
		}
	}
	return true
}

func isFlexValue(v value.Value) bool {
	_, ok := v.(*value.Flex)
	return ok
}
