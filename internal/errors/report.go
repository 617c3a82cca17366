// Package errors is the canonical structured error type for minitt,
// covering the eight error kinds of spec.md §7: parse, scope, named-
// implicit, icitness mismatch, type mismatch, unsolved metavariable,
// occurs check, and scope escape.
package errors

import (
	"encoding/json"
	"errors"

	"github.com/sunholo/minitt/internal/ast"
)

// Report is the canonical structured error type. All error builders
// return *Report, which can be wrapped as a ReportError to travel
// through ordinary Go error returns while staying recoverable via
// errors.As.
type Report struct {
	Schema  string         `json:"schema"` // always "minitt.error/v1"
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Pos     *ast.Pos       `json:"pos,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`
}

// Fix is an optional suggested remedy attached to a Report.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// ReportError wraps a Report as an error.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	if e.Rep.Pos != nil {
		return e.Rep.Pos.String() + ": " + e.Rep.Code + ": " + e.Rep.Message
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// Wrap wraps a Report as an error.
func Wrap(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON renders the report deterministically.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newReport(phase, code, msg string, pos ast.Pos) *Report {
	p := pos
	return &Report{Schema: "minitt.error/v1", Code: code, Phase: phase, Message: msg, Pos: &p}
}

// NewParseError builds a PAR001 report (spec.md §7 kind 1).
func NewParseError(msg string, pos ast.Pos) *Report {
	return newReport("parser", PAR001, msg, pos)
}

// NewScopeError builds a SCP001 report (kind 2: name not bound).
func NewScopeError(name string, pos ast.Pos) *Report {
	r := newReport("elaborate", SCP001, "unbound name: "+name, pos)
	r.Data = map[string]any{"name": name}
	return r
}

// NewNamedImplicitError builds an IMP001 report (kind 3).
func NewNamedImplicitError(name string, pos ast.Pos) *Report {
	r := newReport("elaborate", IMP001, "no implicit argument named "+name+" in the expected implicit prefix", pos)
	r.Data = map[string]any{"name": name}
	return r
}

// NewIcitMismatchError builds an ICIT001 report (kind 4).
func NewIcitMismatchError(expected, got string, pos ast.Pos) *Report {
	r := newReport("elaborate", ICIT001, "icitness mismatch: expected "+expected+" argument, got "+got, pos)
	r.Data = map[string]any{"expected": expected, "got": got}
	return r
}

// NewTypeMismatchError builds a UNI001 report (kind 5).
func NewTypeMismatchError(detail string, pos ast.Pos) *Report {
	return newReport("unify", UNI001, "type mismatch: "+detail, pos)
}

// NewUnsolvedMetaError builds a HOLE001 report (kind 6), listing the
// unsolved meta ids closing out a declaration.
func NewUnsolvedMetaError(declName string, ids []int, pos ast.Pos) *Report {
	r := newReport("elaborate", HOLE001, "unsolved metavariables in declaration "+declName, pos)
	r.Data = map[string]any{"decl": declName, "metas": ids}
	return r
}

// NewOccursCheckError builds a UNI002 report (kind 7: occurs check).
func NewOccursCheckError(meta int, pos ast.Pos) *Report {
	r := newReport("unify", UNI002, "occurs check failed: metavariable occurs in its own solution", pos)
	r.Data = map[string]any{"meta": meta}
	return r
}

// NewScopeEscapeError builds a UNI003 report (kind 8: scope escape).
func NewScopeEscapeError(meta int, pos ast.Pos) *Report {
	r := newReport("unify", UNI003, "scope error: solution mentions a variable outside the metavariable's spine", pos)
	r.Data = map[string]any{"meta": meta}
	return r
}
