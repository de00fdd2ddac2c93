// Package symbol implements the process-wide, case-preserving interning
// table (§3.5) that every ANY-WORD! and context key name resolves through.
//
// Symbols are canonical: two words spelled the same (compared
// case-insensitively) share one ID, so binding comparisons and keylist
// lookups are integer compares rather than string compares. Built-in
// words used by the evaluator and natives get stable, well-known IDs
// (the SYM_XXX constants); words interned at load time get IDs assigned
// on first sight and keep them for the life of the process, mirroring
// the teacher's index package (hive/index: a process-local map from a
// composite string key to a compact integer, reused here for word
// spellings instead of registry key paths).
package symbol
