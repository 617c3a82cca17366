// Package errors provides centralized error code definitions for
// minitt, following the eight error kinds of spec.md §7.
package errors

// Error code constants organized by phase.
const (
	// ============================================================
	// Parser errors (PAR###) — spec.md §7 kind 1
	// ============================================================

	// PAR001 indicates an unexpected token or malformed declaration.
	PAR001 = "PAR001"

	// ============================================================
	// Scope errors (SCP###) — kind 2
	// ============================================================

	// SCP001 indicates a name not bound in the local or top-level context.
	SCP001 = "SCP001"

	// ============================================================
	// Named-implicit errors (IMP###) — kind 3
	// ============================================================

	// IMP001 indicates a named implicit that does not appear in the
	// expected implicit prefix.
	IMP001 = "IMP001"

	// ============================================================
	// Icitness errors (ICIT###) — kind 4
	// ============================================================

	// ICIT001 indicates an explicit argument supplied where implicit
	// was expected, or vice versa, after insertion rules have run.
	ICIT001 = "ICIT001"

	// ============================================================
	// Unification errors (UNI###) — kinds 5, 7, 8
	// ============================================================

	// UNI001 indicates a unification failure between expected and
	// inferred types.
	UNI001 = "UNI001"

	// UNI002 indicates an occurs-check failure during meta solving
	// (a specialization of UNI001, per spec.md §7 kind 7).
	UNI002 = "UNI002"

	// UNI003 indicates a candidate solution mentions a variable not in
	// the meta's spine (scope escape, per spec.md §7 kind 8).
	UNI003 = "UNI003"

	// ============================================================
	// Elaboration errors (HOLE###) — kind 6
	// ============================================================

	// HOLE001 indicates a declaration closed with an unsolved meta.
	HOLE001 = "HOLE001"
)
