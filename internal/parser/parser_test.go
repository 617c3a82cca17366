package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sunholo/minitt/internal/ast"
)

// ignorePos drops position information before comparing raw trees:
// tests assert shape, not source coordinates.
var ignorePos = cmpopts.IgnoreFields(ast.Pos{}, "File", "Line", "Column")

func parseExprString(t *testing.T, src string) ast.Raw {
	t.Helper()
	f, errs := ParseFile("t.stt", "e = "+src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(f.Decls) != 1 {
		t.Fatalf("want 1 decl, got %d", len(f.Decls))
	}
	return f.Decls[0].Body
}

func TestParseVarAndApp(t *testing.T) {
	got := parseExprString(t, "f x y")
	want := &ast.App{
		Func: &ast.App{
			Func: &ast.Var{Name: "f"},
			Arg:  &ast.Var{Name: "x"},
			Icit: ast.Expl,
		},
		Arg:  &ast.Var{Name: "y"},
		Icit: ast.Expl,
	}
	if diff := cmp.Diff(want, got, ignorePos); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseImplicitAndNamedApp(t *testing.T) {
	got := parseExprString(t, "f {a} {n = b}")
	want := &ast.App{
		Func: &ast.App{
			Func: &ast.Var{Name: "f"},
			Arg:  &ast.Var{Name: "a"},
			Icit: ast.Impl,
		},
		Arg:  &ast.Var{Name: "b"},
		Icit: ast.Impl,
		Name: "n",
	}
	if diff := cmp.Diff(want, got, ignorePos); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBangSuppressesNothingStructurally(t *testing.T) {
	got := parseExprString(t, "f! a")
	want := &ast.App{
		Func: &ast.Var{Name: "f"},
		Arg:  &ast.Var{Name: "a"},
		Icit: ast.Expl,
		Bang: true,
	}
	if diff := cmp.Diff(want, got, ignorePos); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLambdaMultiParam(t *testing.T) {
	got := parseExprString(t, `\x y. x`)
	want := &ast.Lam{
		Name: "x", Icit: ast.Expl,
		Body: &ast.Lam{
			Name: "y", Icit: ast.Expl,
			Body: &ast.Var{Name: "x"},
		},
	}
	if diff := cmp.Diff(want, got, ignorePos); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseImplicitLambda(t *testing.T) {
	got := parseExprString(t, `\{A} x. x`)
	want := &ast.Lam{
		Name: "A", Icit: ast.Impl,
		Body: &ast.Lam{
			Name: "x", Icit: ast.Expl,
			Body: &ast.Var{Name: "x"},
		},
	}
	if diff := cmp.Diff(want, got, ignorePos); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDependentPi(t *testing.T) {
	got := parseExprString(t, "(x : U) -> x")
	want := &ast.Pi{
		Name: "x", Type: &ast.U{}, Icit: ast.Expl,
		Body: &ast.Var{Name: "x"},
	}
	if diff := cmp.Diff(want, got, ignorePos); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseImplicitPi(t *testing.T) {
	got := parseExprString(t, "{A : U} -> A -> A")
	want := &ast.Pi{
		Name: "A", Type: &ast.U{}, Icit: ast.Impl,
		Body: &ast.Pi{
			Name: "_", Type: &ast.Var{Name: "A"}, Icit: ast.Expl,
			Body: &ast.Var{Name: "A"},
		},
	}
	if diff := cmp.Diff(want, got, ignorePos); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNonDependentArrowRightAssoc(t *testing.T) {
	got := parseExprString(t, "U -> U -> U")
	want := &ast.Pi{
		Name: "_", Type: &ast.U{}, Icit: ast.Expl,
		Body: &ast.Pi{
			Name: "_", Type: &ast.U{}, Icit: ast.Expl,
			Body: &ast.U{},
		},
	}
	if diff := cmp.Diff(want, got, ignorePos); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLetWithAnnotation(t *testing.T) {
	got := parseExprString(t, "let x : U = U in x")
	want := &ast.Let{
		Name: "x", Type: &ast.U{}, Value: &ast.U{},
		Body: &ast.Var{Name: "x"},
	}
	if diff := cmp.Diff(want, got, ignorePos); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHole(t *testing.T) {
	got := parseExprString(t, "_")
	if _, ok := got.(*ast.Hole); !ok {
		t.Fatalf("want *ast.Hole, got %T", got)
	}
}

func TestParseDeclForms(t *testing.T) {
	src := `
[elaborate]
id : {A : U} -> A -> A = \{A} x. x

assume Nat : U

two = U
`
	f, errs := ParseFile("t.stt", src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(f.Decls) != 3 {
		t.Fatalf("want 3 decls, got %d", len(f.Decls))
	}
	if f.Decls[0].Name != "id" || len(f.Decls[0].Tags) != 1 || f.Decls[0].Tags[0] != "elaborate" {
		t.Fatalf("decl 0 mismatch: %+v", f.Decls[0])
	}
	if !f.Decls[1].Assume || f.Decls[1].Name != "Nat" {
		t.Fatalf("decl 1 mismatch: %+v", f.Decls[1])
	}
	if f.Decls[2].Name != "two" || f.Decls[2].Type != nil {
		t.Fatalf("decl 2 mismatch: %+v", f.Decls[2])
	}
}

func TestParseErrorRecoveryContinuesToNextDecl(t *testing.T) {
	src := `
bad = )

good = U
`
	f, errs := ParseFile("t.stt", src)
	if len(errs) == 0 {
		t.Fatalf("expected at least one error")
	}
	found := false
	for _, d := range f.Decls {
		if d.Name == "good" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected recovery to still parse the `good` declaration, got decls: %+v", f.Decls)
	}
}
