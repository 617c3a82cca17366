// Package ast defines the raw surface syntax produced by the external
// parser: variables, applications with icitness, lambdas, dependent
// function types, let bindings, the universe, and holes.
package ast

import (
	"fmt"
	"strings"
)

// Icit marks whether an argument or binder is explicit or implicit.
type Icit int

const (
	Expl Icit = iota
	Impl
)

func (i Icit) String() string {
	if i == Impl {
		return "implicit"
	}
	return "explicit"
}

// Pos is a position in a source file.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a source range.
type Span struct {
	Start Pos
	End   Pos
}

// Node is the base interface for raw syntax nodes.
type Node interface {
	String() string
	Position() Pos
}

// Raw is the interface for raw expression nodes.
type Raw interface {
	Node
	rawNode()
}

// Var is a reference to a name (bound or top-level; resolved during
// elaboration, not by the parser).
type Var struct {
	Name string
	Pos  Pos
}

func (v *Var) String() string { return v.Name }
func (v *Var) Position() Pos  { return v.Pos }
func (v *Var) rawNode()       {}

// Hole is the `_` placeholder, elaborated into a fresh metavariable.
type Hole struct {
	Pos Pos
}

func (h *Hole) String() string { return "_" }
func (h *Hole) Position() Pos  { return h.Pos }
func (h *Hole) rawNode()       {}

// U is the universe former `U`.
type U struct {
	Pos Pos
}

func (u *U) String() string { return "U" }
func (u *U) Position() Pos  { return u.Pos }
func (u *U) rawNode()       {}

// App is function application, either positional (Name == "") or a
// named implicit application `f {name = t}`.
type App struct {
	Func Raw
	Arg  Raw
	Icit Icit
	Name string // non-empty for named implicit application
	Bang bool   // trailing `!`: suppress implicit insertion at this node
	Pos  Pos
}

func (a *App) String() string {
	if a.Name != "" {
		return fmt.Sprintf("(%s {%s = %s})", a.Func, a.Name, a.Arg)
	}
	if a.Icit == Impl {
		return fmt.Sprintf("(%s {%s})", a.Func, a.Arg)
	}
	return fmt.Sprintf("(%s %s)", a.Func, a.Arg)
}
func (a *App) Position() Pos { return a.Pos }
func (a *App) rawNode()      {}

// Lam is a lambda abstraction, optionally type-annotated.
type Lam struct {
	Name string
	Type Raw // optional domain annotation
	Icit Icit
	Body Raw
	Pos  Pos
}

func (l *Lam) String() string {
	if l.Icit == Impl {
		return fmt.Sprintf("(λ{%s}. %s)", l.Name, l.Body)
	}
	return fmt.Sprintf("(λ%s. %s)", l.Name, l.Body)
}
func (l *Lam) Position() Pos { return l.Pos }
func (l *Lam) rawNode()      {}

// Pi is a dependent function type `(x:A) -> B`.
type Pi struct {
	Name string
	Type Raw
	Icit Icit
	Body Raw
	Pos  Pos
}

func (p *Pi) String() string {
	if p.Name == "_" || p.Name == "" {
		return fmt.Sprintf("(%s -> %s)", p.Type, p.Body)
	}
	if p.Icit == Impl {
		return fmt.Sprintf("({%s : %s} -> %s)", p.Name, p.Type, p.Body)
	}
	return fmt.Sprintf("((%s : %s) -> %s)", p.Name, p.Type, p.Body)
}
func (p *Pi) Position() Pos { return p.Pos }
func (p *Pi) rawNode()      {}

// Let is a local let binding with optional type annotation.
type Let struct {
	Name  string
	Type  Raw // optional
	Value Raw
	Body  Raw
	Pos   Pos
}

func (l *Let) String() string {
	return fmt.Sprintf("(let %s = %s in %s)", l.Name, l.Value, l.Body)
}
func (l *Let) Position() Pos { return l.Pos }
func (l *Let) rawNode()      {}

// Declaration annotation tags.
const (
	TagElaborate = "elaborate"
	TagNormalize = "normalize"
)

// Decl is one top-level declaration.
type Decl struct {
	Name   string
	Type   Raw // nil when the declaration omits its type annotation
	Body   Raw // nil for Assume
	Assume bool
	Tags   []string // e.g. "elaborate", "normalize"
	Pos    Pos
}

func (d *Decl) String() string {
	var b strings.Builder
	for _, t := range d.Tags {
		fmt.Fprintf(&b, "[%s]\n", t)
	}
	if d.Assume {
		fmt.Fprintf(&b, "assume %s : %s", d.Name, d.Type)
		return b.String()
	}
	if d.Type != nil {
		fmt.Fprintf(&b, "%s : %s = %s", d.Name, d.Type, d.Body)
	} else {
		fmt.Fprintf(&b, "%s = %s", d.Name, d.Body)
	}
	return b.String()
}
func (d *Decl) Position() Pos { return d.Pos }

// File is a whole parsed source file: an ordered list of declarations.
type File struct {
	Path  string
	Decls []*Decl
}
