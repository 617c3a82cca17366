package elaborate

import (
	"github.com/sunholo/minitt/internal/core"
	"github.com/sunholo/minitt/internal/value"
)

// TopEntry is one top-level declaration (spec.md §3.5): its numeric
// id, declared type, optional definition, and the quoted core forms
// for both (used by the REPL/CLI for printing, never by the
// evaluator, which works from the Value fields directly).
type TopEntry struct {
	ID       int
	Name     string
	Type     value.Value
	TypeTerm core.Term
	HasDef   bool
	Def      value.Value // nil when HasDef is false (a postulate)
	DefTerm  core.Term
}

// TopCtx is the append-only top-level context. It implements
// value.Globals so the evaluator can look names up without depending
// on this package.
type TopCtx struct {
	entries []TopEntry
	index   map[string]int
}

// NewTopCtx returns an empty top-level context.
func NewTopCtx() *TopCtx {
	return &TopCtx{index: map[string]int{}}
}

// Lookup finds a top-level name and its id.
func (tc *TopCtx) Lookup(name string) (id int, ok bool) {
	id, ok = tc.index[name]
	return
}

// Entry returns the entry for id.
func (tc *TopCtx) Entry(id int) TopEntry { return tc.entries[id] }

// Add appends a new top-level declaration, returning its id. def/defTerm
// are nil for a postulate.
func (tc *TopCtx) Add(name string, ty value.Value, tyTerm core.Term, def value.Value, defTerm core.Term) int {
	id := len(tc.entries)
	tc.entries = append(tc.entries, TopEntry{
		ID: id, Name: name, Type: ty, TypeTerm: tyTerm,
		HasDef: def != nil, Def: def, DefTerm: defTerm,
	})
	tc.index[name] = id
	return id
}

// TopDef implements value.Globals.
func (tc *TopCtx) TopDef(id int) (value.Value, bool) {
	e := tc.entries[id]
	return e.Def, e.HasDef
}

// TopName implements value.Globals.
func (tc *TopCtx) TopName(id int) string { return tc.entries[id].Name }
