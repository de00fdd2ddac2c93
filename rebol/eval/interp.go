package eval

import (
	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
)

// Interp is the process-wide evaluator state threaded through every Do
// call: the symbol table every word resolves through, the halt
// checker (§5), and the two always-present root contexts (§6 "a
// module's exports are added to the lib context").
type Interp struct {
	Symbols *symbol.Table
	Halt    Halted

	// System is the `system` object: boot configuration, console state,
	// the catalog of loaded modules.
	System *context.Context
	// Lib is where every loaded module's exports land, and the context
	// top-level script words resolve against by default.
	Lib *context.Context

	// catchStack holds the labels currently reachable by THROW, nested
	// outward-to-inward (§7 "unwinding to the nearest ... CATCH keyed by
	// a throw label").
	catchStack []catchFrame
}

type catchFrame struct {
	label symbol.ID
	any   bool // catches any throw regardless of label (CATCH without /name)
}

// New builds an Interp over the given Lib/System contexts with no halt
// source attached (callers wanting Ctrl-C support pass a Halted backed
// by an atomic flag or channel select, per boot.Options).
func New(symbols *symbol.Table, lib, system *context.Context) *Interp {
	return &Interp{Symbols: symbols, Halt: NeverHalt, Lib: lib, System: system}
}

func (it *Interp) halted() bool {
	if it.Halt == nil {
		return false
	}
	return it.Halt()
}
