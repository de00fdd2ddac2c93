package eval

import (
	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// DoBlock evaluates every expression in arr in order and returns the
// result of the last one (§4.3 "output is whatever was last produced,
// or null if nothing was"). Invisible results (§3.2) do not update the
// running "last produced" value.
func DoBlock(it *Interp, arr []value.Cell, caller *context.Frame) (Outcome, error) {
	out := Outcome{Value: value.Null()}
	idx := 0
	for idx < len(arr) {
		if arr[idx].IsEnd() {
			break
		}
		if it.halted() {
			return Outcome{}, ErrHalted
		}
		step, next, err := Step(it, arr, idx, caller)
		if err != nil {
			return Outcome{}, err
		}
		if step.Thrown {
			return step, nil
		}
		if !step.Invisible {
			out = step
		}
		idx = next
	}
	return out, nil
}

// dispatcherOf extracts the callable behind an ACTION! cell, or nil if
// c does not hold one.
func dispatcherOf(c value.Cell) context.Dispatcher {
	if c.BaseKind() != value.KindAction {
		return nil
	}
	d, _ := c.Payload.Node.(context.Dispatcher)
	return d
}

// Step runs one primary expression starting at idx (§4.3's numbered
// algorithm) and then performs enfix lookahead (§4.3 point 3) before
// returning. The returned index is where the NEXT expression begins.
func Step(it *Interp, arr []value.Cell, idx int, caller *context.Frame) (Outcome, int, error) {
	primary, next, err := primaryStep(it, arr, idx, caller)
	if err != nil || primary.Thrown {
		return primary, next, err
	}
	return enfixLookahead(it, arr, next, primary, caller, false)
}

// stepInArg is Step for argument-gathering positions: deferring enfix
// operators do not fire here, so they can instead consume the completed
// enclosing expression at the statement level (§4.3 "defer").
func stepInArg(it *Interp, arr []value.Cell, idx int, caller *context.Frame) (Outcome, int, error) {
	primary, next, err := primaryStep(it, arr, idx, caller)
	if err != nil || primary.Thrown {
		return primary, next, err
	}
	return enfixLookahead(it, arr, next, primary, caller, true)
}

// primaryStep implements §4.3 steps 1-2: classify the current cell and
// produce its primary value, without yet considering enfix.
func primaryStep(it *Interp, arr []value.Cell, idx int, caller *context.Frame) (Outcome, int, error) {
	if idx >= len(arr) || arr[idx].IsEnd() {
		return Outcome{Value: value.Null()}, idx, nil
	}
	c := arr[idx]

	// Any quoted value (of any base kind) evaluates by stripping one
	// level of escape, never by acting on the underlying kind (§3.3,
	// §4.3 "lit-word: output the dequoted word" generalizes to any
	// quoted cell).
	if c.Quoted() {
		return Outcome{Value: c.Dequote()}, idx + 1, nil
	}

	switch c.BaseKind() {
	case value.KindWord:
		return evalWord(it, c, idx, arr, caller)

	case value.KindSetWord:
		return evalSetWord(it, c, idx, arr, caller)

	case value.KindSetBlock:
		return evalSetBlock(it, c, idx, arr, caller)

	case value.KindGetWord:
		v, ok := context.Lookup(c)
		if !ok {
			return Outcome{}, idx, ErrNotBound
		}
		return Outcome{Value: v}, idx + 1, nil

	case value.KindGroup:
		inner := groupCells(c)
		out, err := DoBlock(it, inner, caller)
		if err != nil {
			return Outcome{}, idx, err
		}
		if out.Thrown {
			return out, idx + 1, nil
		}
		return Outcome{Value: out.Value}, idx + 1, nil

	case value.KindPath, value.KindGetPath:
		return evalPath(it, c, idx, arr, caller)

	case value.KindSetPath:
		return evalSetPath(it, c, idx, arr, caller)

	default:
		// Inert kind: integer, text, binary, tag, date, block, etc. A
		// BLOCK! cell is data, not code, until explicitly DO'd (§4.3
		// "block: output the block as-is").
		return Outcome{Value: c}, idx + 1, nil
	}
}

// groupCells returns the cell slice a GROUP!/BLOCK!-family cell views,
// starting at its Payload.Index.
func groupCells(c value.Cell) []value.Cell {
	s := c.Series()
	if s == nil {
		return nil
	}
	return s.Cells[c.Payload.Index:]
}

func evalWord(it *Interp, c value.Cell, idx int, arr []value.Cell, caller *context.Frame) (Outcome, int, error) {
	v, ok := context.Lookup(c)
	if !ok {
		return Outcome{}, idx, ErrNotBound
	}
	if v.IsNull() {
		return Outcome{}, idx, ErrNoValue
	}
	disp := dispatcherOf(v)
	if disp == nil {
		return Outcome{Value: v}, idx + 1, nil
	}
	if v.Flags.Has(value.FlagEnfixed) {
		// An enfixed action encountered with nothing yet produced to its
		// left: error, per §4.3.
		return Outcome{}, idx, ErrNoLeftArg
	}
	return callAction(it, disp, arr, idx+1, nil, caller, wordLabel(it, c))
}

func evalSetWord(it *Interp, c value.Cell, idx int, arr []value.Cell, caller *context.Frame) (Outcome, int, error) {
	rhs, next, err := stepInArg(it, arr, idx+1, caller)
	if err != nil {
		return rhs, next, err
	}
	if rhs.Thrown {
		return rhs, next, nil
	}
	if rhs.Value.IsVoid() {
		return Outcome{}, next, ErrVoidAssign
	}
	if err := context.Poke(c, rhs.Value); err != nil {
		return Outcome{}, next, err
	}
	return Outcome{Value: rhs.Value}, next, nil
}

// evalSetBlock implements SET-BLOCK! multi-return destructuring (§4.3,
// §8 scenario 4): `[a b]: 10 20` evaluates one expression per target
// while expressions remain; once the stream runs dry the last value is
// replicated into the remaining targets, so `[a b]: <thing>` sets both
// to <thing>.
func evalSetBlock(it *Interp, c value.Cell, idx int, arr []value.Cell, caller *context.Frame) (Outcome, int, error) {
	targets := groupCells(c)
	if len(targets) == 0 {
		return Outcome{}, idx, ErrMultiReturnArity
	}

	rhs, next, err := stepInArg(it, arr, idx+1, caller)
	if err != nil {
		return rhs, next, err
	}
	if rhs.Thrown {
		return rhs, next, nil
	}
	last := rhs.Value
	if err := assignTarget(targets[0], last); err != nil {
		return Outcome{}, next, err
	}

	for _, tgt := range targets[1:] {
		if tgt.IsEnd() {
			break
		}
		if next < len(arr) && !arr[next].IsEnd() {
			more, after, serr := stepInArg(it, arr, next, caller)
			if serr != nil {
				return more, after, serr
			}
			if more.Thrown {
				return more, after, nil
			}
			last, next = more.Value, after
		}
		if err := assignTarget(tgt, last); err != nil {
			return Outcome{}, next, err
		}
	}
	return Outcome{Value: last}, next, nil
}

func assignTarget(tgt value.Cell, v value.Cell) error {
	if v.IsVoid() {
		return ErrVoidAssign
	}
	switch tgt.BaseKind() {
	case value.KindWord, value.KindSetWord:
		return context.Poke(tgt, v)
	case value.KindBlank:
		return nil // `_` target discards the value
	default:
		return ErrMultiReturnArity
	}
}

func evalSetPath(it *Interp, c value.Cell, idx int, arr []value.Cell, caller *context.Frame) (Outcome, int, error) {
	rhs, next, err := stepInArg(it, arr, idx+1, caller)
	if err != nil {
		return rhs, next, err
	}
	if rhs.Thrown {
		return rhs, next, nil
	}
	if err := SetPath(it, c, rhs.Value, caller); err != nil {
		return Outcome{}, next, err
	}
	return Outcome{Value: rhs.Value}, next, nil
}

func wordLabel(it *Interp, c value.Cell) string {
	return it.Symbols.Spelling(symBitsOf(c))
}
