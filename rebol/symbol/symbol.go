package symbol

import "strings"

// ID is a process-wide canonical symbol identifier. The zero value
// (IDNone) never names a real symbol.
type ID uint32

const IDNone ID = 0

// Well-known built-in symbols get stable IDs assigned at init time so
// the evaluator and natives can compare against them directly instead
// of re-interning a spelling on every lookup.
const (
	SymNone ID = iota
	SymSelf
	SymReturn
	SymLocal
	SymElse
	SymThen
	SymTrue
	SymFalse
	symBuiltinCount
)

var builtinSpellings = [...]string{
	SymNone:   "",
	SymSelf:   "self",
	SymReturn: "return",
	SymLocal:  "local",
	SymElse:   "else",
	SymThen:   "then",
	SymTrue:   "true",
	SymFalse:  "false",
}

// Table is the interning table. The zero Table is not usable; use New.
type Table struct {
	byName map[string]ID // case-folded spelling -> id
	names  []string      // id -> canonical (case-preserving) spelling
}

// New creates a Table pre-seeded with the built-in symbol set.
func New() *Table {
	t := &Table{
		byName: make(map[string]ID, 256),
		names:  make([]string, symBuiltinCount, 256),
	}
	for id, name := range builtinSpellings {
		if id == int(SymNone) {
			continue
		}
		t.names[id] = name
		t.byName[foldCase(name)] = ID(id)
	}
	return t
}

// Intern returns the canonical ID for name, allocating a fresh one if
// this spelling has never been seen. Comparison for interning purposes
// is case-insensitive; the first spelling seen is kept as the display
// form (case-preserving per §3.5).
func (t *Table) Intern(name string) ID {
	key := foldCase(name)
	if id, ok := t.byName[key]; ok {
		return id
	}
	id := ID(len(t.names))
	t.names = append(t.names, name)
	t.byName[key] = id
	return id
}

// Lookup returns the ID for name without interning it, and false if
// this spelling has never been seen.
func (t *Table) Lookup(name string) (ID, bool) {
	id, ok := t.byName[foldCase(name)]
	return id, ok
}

// Spelling returns the canonical (case-preserving) spelling for id.
func (t *Table) Spelling(id ID) string {
	if int(id) >= len(t.names) {
		return ""
	}
	return t.names[id]
}

// Equal reports whether a and b are the same interned symbol.
func Equal(a, b ID) bool { return a == b }

func foldCase(s string) string { return strings.ToLower(s) }
