package eval

import (
	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

func symBitsOf(c value.Cell) symbol.ID { return symbol.ID(c.Extra.Bits) }

// refinementCall carries the refinements a path-style invocation named
// at the call site (`foo/bar/baz`), in call-site order, so callAction
// can gather their arguments in that order rather than paramlist order
// (§4.3 "partial refinement reordering is computed before argument
// gathering").
type refinementCall struct {
	syms []symbol.ID

	// derived carries the object context an action-valued path step was
	// fetched through, so METHOD bodies can resolve against it (§4.5).
	derived *context.Context
}

// callAction builds a Frame for disp, gathers its arguments starting at
// arr[idx], runs it, and returns the result plus the index just past
// the last cell consumed.
//
// Gathering happens in two passes: positional parameters first, in
// paramlist order, then refinement arguments in call-site order (§4.3
// "its own arguments (if any) are gathered in the order the refinements
// appear in the call site"). An active argless refinement's slot holds
// the refinement-word itself; an active arg-taking refinement's slot
// holds the gathered value; an inactive refinement's slot holds null.
func callAction(it *Interp, disp context.Dispatcher, arr []value.Cell, idx int, refs *refinementCall, caller *context.Frame, label string) (Outcome, int, error) {
	f := context.NewFrame(disp, caller, label)
	if refs != nil {
		f.Derived = refs.derived
	}
	pl := disp.Paramlist()

	next := idx
	for i, key := range pl.Keys {
		switch {
		case key.Class == context.ClassReturn || key.Class == context.ClassLocal:
			f.Values[i] = value.Null()
		case key.Bits.Has(context.BitRefinement):
			f.Values[i] = value.Null()
		default:
			var (
				arg value.Cell
				err error
			)
			arg, next, err = gatherOne(it, key, arr, next, caller, false)
			if err != nil {
				return Outcome{}, next, err
			}
			f.Values[i] = arg
		}
	}

	if refs != nil {
		for _, sym := range refs.syms {
			i := pl.IndexOf(sym)
			if i < 0 || !pl.Keys[i].Bits.Has(context.BitRefinement) {
				return Outcome{}, next, ErrBadRefine
			}
			if pl.Keys[i].Bits.Has(context.BitRefineArg) {
				var (
					arg value.Cell
					err error
				)
				arg, next, err = gatherOne(it, pl.Keys[i], arr, next, caller, false)
				if err != nil {
					return Outcome{}, next, err
				}
				f.Values[i] = arg
			} else {
				f.Values[i] = value.WordCell(value.KindRefinement, uint64(sym))
			}
		}
	}

	out, err := runFrame(disp, f)
	return out, next, err
}

// runFrame dispatches a fully gathered frame and folds the dispatcher's
// Signal into an Outcome (§4.3 "Output conventions").
func runFrame(disp context.Dispatcher, f *context.Frame) (Outcome, error) {
	sig, err := disp.Dispatch(f)
	if err != nil {
		return Outcome{}, err
	}
	switch sig {
	case context.SignalInvisible:
		return Outcome{Value: f.Out, Invisible: true}, nil
	case context.SignalThrown:
		return Outcome{Value: f.Out, Thrown: true, ThrownValue: f.ThrownValue}, nil
	default:
		return Outcome{Value: f.Out}, nil
	}
}

// gatherOne consumes exactly the cells one parameter needs, per its
// class (§4.3 "Argument gathering"). enfixRight marks the gather as
// filling an enfixed action's right-hand argument, where lookahead is
// suppressed entirely so `1 + 2 * 3` completes `+` before `*` sees a
// left value (the strict left-to-right rule of §8 scenario 1).
func gatherOne(it *Interp, key context.Key, arr []value.Cell, idx int, caller *context.Frame, enfixRight bool) (value.Cell, int, error) {
	switch key.Class {
	case context.ClassHardQuote:
		if idx >= len(arr) || arr[idx].IsEnd() {
			if key.Bits.Has(context.BitEndable) {
				return value.Null(), idx, nil
			}
			return value.Cell{}, idx, ErrEndOfInput
		}
		return arr[idx], idx + 1, nil

	case context.ClassSoftQuote:
		if idx >= len(arr) || arr[idx].IsEnd() {
			if key.Bits.Has(context.BitEndable) {
				return value.Null(), idx, nil
			}
			return value.Cell{}, idx, ErrEndOfInput
		}
		c := arr[idx]
		bk := c.BaseKind()
		if bk == value.KindGroup || bk == value.KindGetWord || bk == value.KindGetPath {
			out, next, err := stepInArg(it, arr, idx, caller)
			return out.Value, next, err
		}
		return c, idx + 1, nil

	case context.ClassModal:
		// The `@` modal marker surfaces from the lexer as a one-level
		// quote on the argument cell: quoted means hard-quote, plain
		// means gather normally (§4.3 "modal (`@value`)").
		if idx < len(arr) && !arr[idx].IsEnd() && arr[idx].Quoted() {
			return arr[idx].Dequote(), idx + 1, nil
		}
		return gatherEvaluated(it, arr, idx, caller, enfixRight)

	case context.ClassTight:
		return gatherTight(it, arr, idx, caller)

	default: // ClassNormal
		if key.Bits.Has(context.BitVariadic) {
			// A variadic parameter receives the caller's position as a
			// VARARGS! view; the function TAKEs further cells on demand.
			return varargsCell(arr, idx), idx, nil
		}
		if key.Bits.Has(context.BitSkippable) {
			if idx >= len(arr) || arr[idx].IsEnd() {
				return value.Null(), idx, nil
			}
		}
		if key.Bits.Has(context.BitEndable) && (idx >= len(arr) || arr[idx].IsEnd()) {
			return value.Null(), idx, nil
		}
		return gatherEvaluated(it, arr, idx, caller, enfixRight)
	}
}

func gatherEvaluated(it *Interp, arr []value.Cell, idx int, caller *context.Frame, enfixRight bool) (value.Cell, int, error) {
	if idx >= len(arr) || arr[idx].IsEnd() {
		return value.Cell{}, idx, ErrEndOfInput
	}
	if enfixRight {
		out, next, err := primaryStep(it, arr, idx, caller)
		if err != nil {
			return value.Cell{}, next, err
		}
		return out.Value, next, nil
	}
	out, next, err := stepInArg(it, arr, idx, caller)
	if err != nil {
		return value.Cell{}, next, err
	}
	return out.Value, next, nil
}

// gatherTight behaves like normal argument-gathering but does not allow
// a following enfix operator to steal the value before it is handed to
// this parameter (§4.3 "tight: like normal but does not let a following
// enfix steal the value").
func gatherTight(it *Interp, arr []value.Cell, idx int, caller *context.Frame) (value.Cell, int, error) {
	if idx >= len(arr) || arr[idx].IsEnd() {
		return value.Cell{}, idx, ErrEndOfInput
	}
	out, next, err := primaryStep(it, arr, idx, caller)
	if err != nil {
		return value.Cell{}, next, err
	}
	return out.Value, next, nil
}

// varargsCell wraps the caller's current array position as a VARARGS!
// value (§4.3 "variadic: pass the caller's frame position").
func varargsCell(arr []value.Cell, idx int) value.Cell {
	s := &value.Series{Cells: arr}
	return value.AggregateCell(value.KindVarargs, s, int32(idx))
}
