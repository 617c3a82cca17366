package elaborate_test

import (
	"strings"
	"testing"

	"github.com/sunholo/minitt/internal/elaborate"
	"github.com/sunholo/minitt/internal/errors"
	"github.com/sunholo/minitt/internal/parser"
)

// runFile parses and elaborates src against a fresh Elab, failing the
// test immediately if any declaration errors.
func runFile(t *testing.T, src string) (*elaborate.Elab, []elaborate.DeclResult) {
	t.Helper()
	f, errs := parser.ParseFile("t.stt", src)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	e := elaborate.New()
	results := e.ElaborateFile(f)
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("decl %s: %v", r.Name, r.Err)
		}
	}
	return e, results
}

func TestIdentityWithImplicitInsertion(t *testing.T) {
	src := `
id : {A : U} -> A -> A = \{A} x. x

two = id U
`
	_, results := runFile(t, src)
	if len(results) != 2 {
		t.Fatalf("want 2 decls, got %d", len(results))
	}
}

func TestLetAndAnnotatedDecl(t *testing.T) {
	src := `
id : {A : U} -> A -> A = \{A} x. x

const : {A : U} -> {B : U} -> A -> B -> A = \{A} {B} x y. x

idU : U -> U = let f = id in f {U}
`
	runFile(t, src)
}

func TestChurchNumeralsConvertByFullMode(t *testing.T) {
	src := `
Nat : U = (A : U) -> (A -> A) -> A -> A

zero : Nat = \A f x. x

suc : Nat -> Nat = \n A f x. f (n A f x)

one : Nat = suc zero

two : Nat = suc one

add : Nat -> Nat -> Nat = \n m A f x. n A f (m A f x)

oneplusone : Nat = add one one
`
	e, _ := runFile(t, src)

	opId, _ := e.Top.Lookup("oneplusone")
	twoId, _ := e.Top.Lookup("two")
	opVal := e.Top.Entry(opId).Def
	twoVal := e.Top.Entry(twoId).Def

	if !e.Convert(elaborate.NewCtx(), opVal, twoVal) {
		t.Fatalf("add one one should convert with two (same Church numeral)")
	}
}

func TestVectorStyleImplicitUnification(t *testing.T) {
	src := `
assume Nat : U
assume zero : Nat
assume Vec : Nat -> U -> U
assume vnil : {A : U} -> Vec zero A
assume vcons : {A : U} -> {n : Nat} -> A -> Vec n A -> Vec n A

v1 : Vec zero U = vcons Nat vnil
`
	runFile(t, src)
}

// TestNestedIdentitySelfApplication mirrors spec.md §8's idStress
// scenario: `id` applied to itself repeatedly, checked against its
// own polymorphic type — each application must insert and solve a
// fresh implicit meta whose domain is itself a Pi type, exercising
// the Pi-vs-flex branch of approximate conversion.
func TestNestedIdentitySelfApplication(t *testing.T) {
	const depth = 12
	var b strings.Builder
	b.WriteString("id : {A : U} -> A -> A = \\{A} x. x\n\n")
	b.WriteString("idChain : {A : U} -> A -> A = ")
	for i := 0; i < depth; i++ {
		b.WriteString("id ")
	}
	b.WriteString("id\n")
	runFile(t, b.String())
}

func TestAssumePostulateStaysRigid(t *testing.T) {
	src := `
assume Nat : U
assume zero : Nat

id : {A : U} -> A -> A = \{A} x. x

z : Nat = id zero
`
	runFile(t, src)
}

func TestScopeErrorPropagatesButLaterDeclsStillElaborate(t *testing.T) {
	src := `
bad = undefinedName

good : U = U
`
	f, errs := parser.ParseFile("t.stt", src)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	e := elaborate.New()
	results := e.ElaborateFile(f)
	if len(results) != 2 {
		t.Fatalf("want 2 decls, got %d", len(results))
	}
	if results[0].Err == nil {
		t.Fatalf("want scope error for `bad`")
	}
	rep, ok := errors.AsReport(results[0].Err)
	if !ok || rep.Code != errors.SCP001 {
		t.Fatalf("want SCP001, got %+v", rep)
	}
	if results[1].Err != nil {
		t.Fatalf("good should still elaborate: %v", results[1].Err)
	}
	if _, ok := e.Top.Lookup("good"); !ok {
		t.Fatalf("good should be registered in the top-level context")
	}
}

func TestIcitnessMismatchReported(t *testing.T) {
	src := `
id : {A : U} -> A -> A = \{A} x. x

bad = id! U
`
	f, _ := parser.ParseFile("t.stt", src)
	e := elaborate.New()
	results := e.ElaborateFile(f)
	rep, ok := errors.AsReport(results[1].Err)
	if !ok {
		t.Fatalf("want an error for `id! U` (bang suppresses insertion, U is not an implicit arg)")
	}
	if rep.Code != errors.ICIT001 {
		t.Fatalf("want ICIT001, got %s: %s", rep.Code, rep.Message)
	}
}

func TestUnsolvedMetaReported(t *testing.T) {
	src := `
bad = \x. x
`
	f, _ := parser.ParseFile("t.stt", src)
	e := elaborate.New()
	results := e.ElaborateFile(f)
	rep, ok := errors.AsReport(results[0].Err)
	if !ok {
		t.Fatalf("want an unsolved-meta error for an un-annotated lambda with no expected type")
	}
	if rep.Code != errors.HOLE001 {
		t.Fatalf("want HOLE001, got %s: %s", rep.Code, rep.Message)
	}
}

func TestNormalizeTopEntryUnfoldsGluedTops(t *testing.T) {
	e, results := runFile(t, `
id : {A : U} -> A -> A = \{A} x. x

two : U -> U = \x. id U
`)
	var id elaborate.DeclResult
	for _, r := range results {
		if r.Name == "two" {
			id = r
		}
	}
	full, ok := e.NormalizeTopEntry(id.ID)
	if !ok {
		t.Fatalf("want a definition to normalize")
	}
	if full == nil {
		t.Fatalf("want non-nil normal form")
	}
}

func TestHoleBecomesMetaAndGetsSolved(t *testing.T) {
	runFile(t, `
id : {A : U} -> A -> A = \{A} x. x

r : U = id {A = _} U
`)
}
