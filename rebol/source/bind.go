package source

import (
	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// GatherSetWords walks cells deeply and appends every SET-WORD! target
// (including SET-BLOCK! word targets) that ctx does not yet define,
// with a null value, so top-level assignments in a loaded script have a
// variable slot to write into before the script runs.
func GatherSetWords(cells []value.Cell, ctx *context.Context) error {
	for i := range cells {
		c := cells[i]
		inner, _ := c.Unwrap()
		switch inner.BaseKind() {
		case value.KindSetWord:
			sym := symbol.ID(inner.Extra.Bits)
			if ctx.IndexOf(sym) < 0 {
				if err := ctx.Append(sym, value.Null()); err != nil {
					return err
				}
			}
		case value.KindSetBlock:
			for _, tgt := range arrayCells(inner) {
				ti, _ := tgt.Unwrap()
				if ti.BaseKind() != value.KindWord && ti.BaseKind() != value.KindSetWord {
					continue
				}
				sym := symbol.ID(ti.Extra.Bits)
				if ctx.IndexOf(sym) < 0 {
					if err := ctx.Append(sym, value.Null()); err != nil {
						return err
					}
				}
			}
		case value.KindBlock, value.KindGroup:
			if err := GatherSetWords(arrayCells(inner), ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// BindDeep binds every word-family cell in cells (recursing into
// blocks, groups, and paths) against chain, in place on the loaded
// series. Binding is value-semantic per cell (§3.6), but a loaded block
// that has not yet been handed to user code is this package's to
// rewrite: load-time binding is what makes a script's words resolve at
// all.
func BindDeep(cells []value.Cell, chain context.Chain) {
	for i := range cells {
		c := cells[i]
		inner, depth := c.Unwrap()
		switch inner.BaseKind() {
		case value.KindWord, value.KindSetWord, value.KindGetWord:
			sym := symbol.ID(inner.Extra.Bits)
			if ctx, idx, ok := chain.Resolve(sym); ok {
				cells[i] = value.Requote(inner.Bind(ctx, int32(idx)), depth)
			}
		case value.KindBlock, value.KindGroup, value.KindPath,
			value.KindSetPath, value.KindGetPath, value.KindSetBlock:
			BindDeep(arrayCells(inner), chain)
		}
	}
}

func arrayCells(c value.Cell) []value.Cell {
	s := c.Series()
	if s == nil {
		return nil
	}
	return s.Cells[c.Payload.Index:]
}
