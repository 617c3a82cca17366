// Package meta implements the metacontext: a growable, dense, append-
// only table of metavariable entries indexed by creation order. Each
// entry is either unsolved (carries the meta's closed type) or solved
// (carries its closed solution). Solutions are monotone: once solved,
// an entry is never unsolved and its solution never changes.
package meta

import "fmt"

// Entry is one metavariable's state in the metacontext.
//
// Value/Term hold the closed solution once solved; they are typed as
// `any` here to avoid an import cycle with internal/value and
// internal/core (both of which depend on meta for Ctx). Callers type-
// assert to *value.Value / core.Term.
type Entry struct {
	Solved bool
	Type   any // value.Value — the meta's own (closed) type
	Value  any // value.Value — solution, once solved
	Term   any // core.Term — quoted solution, once solved
}

// Ctx is the metacontext: a dense, single-writer table of meta
// entries. The zero value is ready to use.
type Ctx struct {
	entries []Entry
}

// Fresh allocates a new unsolved meta with the given type and returns
// its id. Ids are assigned in creation order and never reused.
func (c *Ctx) Fresh(ty any) int {
	id := len(c.entries)
	c.entries = append(c.entries, Entry{Type: ty})
	return id
}

// Lookup returns the entry for id. Panics on an out-of-range id: that
// is an invariant violation (a dangling meta reference), not a normal
// failure mode (spec.md §4.1, "forcing a dangling meta id is fatal").
func (c *Ctx) Lookup(id int) Entry {
	if id < 0 || id >= len(c.entries) {
		panic(fmt.Sprintf("meta: lookup of unknown metavariable ?%d", id))
	}
	return c.entries[id]
}

// Solve records a solution for id. It is an invariant violation to
// solve an already-solved meta (monotonicity, spec.md §3.3/§3.6).
func (c *Ctx) Solve(id int, val, term any) {
	e := c.Lookup(id)
	if e.Solved {
		panic(fmt.Sprintf("meta: ?%d solved twice", id))
	}
	e.Solved = true
	e.Value = val
	e.Term = term
	c.entries[id] = e
}

// Len reports how many metas have been created so far.
func (c *Ctx) Len() int { return len(c.entries) }

// Unsolved returns the ids of every meta that has no solution yet, in
// creation order. Used when a declaration closes with holes left open
// (spec.md §7, error kind 6).
func (c *Ctx) Unsolved() []int {
	var ids []int
	for i, e := range c.entries {
		if !e.Solved {
			ids = append(ids, i)
		}
	}
	return ids
}
