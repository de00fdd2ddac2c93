// Package eval implements the DO loop (§4.3): the per-step evaluator
// that classifies each cell in an array, looks ahead for enfix, gathers
// arguments per parameter class, and runs an Action's dispatcher inside
// a Frame. It also owns paths (§4.6), non-local unwind (§3.8, §7), and
// the halt/cancellation check (§5).
//
// Grounded on the teacher's hive/walker package: core.go's traversal
// loop (fetch-a-cell / classify-it / recurse-into-children) generalizes
// directly into the fetch/classify/gather-args/dispatch loop here; the
// teacher walks a fixed binary tree structure (NK/VK/LF/RI cells), we
// walk a self-modifying block of cells, but the shape — a driver loop
// plus a per-kind dispatch table — is the same. Non-local unwind is
// grounded on internal/repair's transaction.go: a begin/commit/rollback
// stack unwinding to a named savepoint is structurally a CATCH/TRAP
// stack unwinding to a named frame.
package eval
