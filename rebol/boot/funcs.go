package boot

import (
	"github.com/rhencke/rebol-sub017/rebol/action"
	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/eval"
	"github.com/rhencke/rebol-sub017/rebol/source"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// parseSpec turns a FUNC/METHOD spec block into a paramlist (§3.7):
//
//	word        normal parameter
//	'word       soft-quoted parameter
//	:word       hard-quoted parameter
//	/word       refinement; a following block gives it one argument
//	word [...]  typeset (recorded only as presence; checking is by kind)
//	"..."       description, skipped
//	<local>     everything after is a local
//	return:     return slot
func (rt *Runtime) parseSpec(cells []value.Cell) (*context.Keylist, error) {
	var keys []context.Key
	locals := false
	for i := 0; i < len(cells); i++ {
		c := cells[i]
		inner, depth := c.Unwrap()
		switch {
		case inner.BaseKind() == value.KindString:
			continue // description
		case inner.BaseKind() == value.KindTag:
			if textOf(inner) == "local" {
				locals = true
			}
			continue
		case inner.BaseKind() == value.KindBlock:
			continue // typeset for the preceding parameter
		case inner.BaseKind() == value.KindSetWord:
			keys = append(keys, context.Key{Sym: symbol.ID(inner.Extra.Bits), Class: context.ClassReturn})
		case inner.BaseKind() == value.KindRefinement:
			key := context.Key{Sym: symbol.ID(inner.Extra.Bits), Bits: context.BitRefinement}
			if i+1 < len(cells) {
				if peek, _ := cells[i+1].Unwrap(); peek.BaseKind() == value.KindBlock {
					key.Bits |= context.BitRefineArg
				}
			}
			keys = append(keys, key)
		case inner.BaseKind() == value.KindGetWord:
			keys = append(keys, context.Key{Sym: symbol.ID(inner.Extra.Bits), Class: context.ClassHardQuote})
		case inner.BaseKind() == value.KindWord && depth > 0:
			keys = append(keys, context.Key{Sym: symbol.ID(inner.Extra.Bits), Class: context.ClassSoftQuote})
		case inner.BaseKind() == value.KindWord:
			class := context.ClassNormal
			if locals {
				class = context.ClassLocal
			}
			keys = append(keys, context.Key{Sym: symbol.ID(inner.Extra.Bits), Class: class})
		default:
			return nil, ErrBadSpec
		}
	}
	return context.NewKeylist(keys...), nil
}

// makeFunc builds a FUNC or METHOD action, wrapped hijackable so every
// reference (specializations included) observes a later HIJACK (§4.4).
func (rt *Runtime) makeFunc(label string, spec, body value.Cell, method bool) (value.Cell, error) {
	if spec.BaseKind() != value.KindBlock || body.BaseKind() != value.KindBlock {
		return value.Null(), ErrBadSpec
	}
	pl, err := rt.parseSpec(cellsOf(spec))
	if err != nil {
		return value.Null(), err
	}
	bodySeries := &value.Series{Cells: append([]value.Cell(nil), cellsOf(body)...)}

	run := func(b *value.Series, f *context.Frame) (context.Signal, error) {
		return rt.runBody(b, f, method)
	}
	inner := action.NewInterpreted(label, pl, bodySeries, rt.Lib, method, run)
	hij := action.NewHijackable(inner)
	return value.AggregateCell(value.KindAction, hij, 0), nil
}

// runBody executes an interpreted function's body in frame f. The body
// is deep-copied and bound fresh per call: against the frame first,
// then (for METHOD) the derived context the call came through (§4.5),
// leaving every other word on its definition-time binding. RETURN is a
// throw the body-runner itself catches.
func (rt *Runtime) runBody(body *value.Series, f *context.Frame, method bool) (context.Signal, error) {
	cells := copyDeepCells(body.Cells)
	chain := context.Chain{&f.Context}
	if method && f.Derived != nil {
		chain = append(chain, f.Derived)
	}
	source.BindDeep(cells, chain)

	out, err := eval.DoBlock(rt.It, cells, f)
	if err != nil {
		return context.SignalNormal, err
	}
	if out.Thrown {
		if out.Value.BaseKind() == value.KindWord && symbol.ID(out.Value.Extra.Bits) == symbol.SymReturn {
			f.Out = out.ThrownValue
			return context.SignalNormal, nil
		}
		f.Out = out.Value
		f.ThrownValue = out.ThrownValue
		return context.SignalThrown, nil
	}
	f.Out = out.Value
	return context.SignalNormal, nil
}

// copyDeepCells copies cells, cloning every nested array series so that
// per-call binding never leaks into the shared body or across recursive
// activations (words are value-semantic w.r.t. binding, §3.6).
func copyDeepCells(cells []value.Cell) []value.Cell {
	out := append([]value.Cell(nil), cells...)
	for i := range out {
		inner, depth := out[i].Unwrap()
		switch inner.BaseKind() {
		case value.KindBlock, value.KindGroup, value.KindPath,
			value.KindSetPath, value.KindGetPath, value.KindSetBlock:
			s := inner.Series()
			if s == nil {
				continue
			}
			ns := &value.Series{Cells: copyDeepCells(s.Cells)}
			nc := value.AggregateCell(inner.BaseKind(), ns, inner.Payload.Index)
			nc.Flags |= out[i].Flags & value.FlagNewline
			out[i] = value.Requote(nc, depth)
		}
	}
	return out
}
