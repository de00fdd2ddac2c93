package eval

import (
	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// enfixLookahead implements §4.3 point 3: after a primary value is
// produced, repeatedly check whether the next cell is a word bound to
// an enfixed action, and if so invoke it with the primary value as its
// left-hand (first) argument. There is no precedence table (§9); defer
// and postpone are the only two bits the evaluator consults to resolve
// a run of enfix operators.
//
// inArg marks lookahead performed while gathering an argument for some
// enclosing call. A deferring enfix (THEN, ELSE) refuses to run there:
// it waits for the whole enclosing expression to complete and takes
// that result instead, which is what lets `if c [a] else [b]` hand IF's
// result to ELSE rather than letting ELSE steal the bare `[a]` block
// mid-gather (§4.3 "Enfix and deferral").
func enfixLookahead(it *Interp, arr []value.Cell, idx int, primary Outcome, caller *context.Frame, inArg bool) (Outcome, int, error) {
	for {
		if idx >= len(arr) || arr[idx].IsEnd() {
			return primary, idx, nil
		}
		c := arr[idx]
		if c.BaseKind() != value.KindWord || c.Quoted() {
			return primary, idx, nil
		}
		v, ok := context.Lookup(c)
		if !ok || !v.Flags.Has(value.FlagEnfixed) {
			return primary, idx, nil
		}
		disp := dispatcherOf(v)
		if disp == nil {
			return primary, idx, nil
		}

		if inArg && v.Flags.Has(value.FlagEnfixDefer) {
			return primary, idx, nil
		}
		if v.Flags.Has(value.FlagEnfixPostpone) && inArg {
			// Postponing enfix runs only after the enclosing expression
			// completes; bubble the value out to the statement level.
			return primary, idx, nil
		}

		out, next, err := callEnfix(it, disp, arr, idx+1, primary.Value, caller, wordLabel(it, c))
		if err != nil || out.Thrown {
			return out, next, err
		}
		primary, idx = out, next
	}
}

// callEnfix builds a frame for an enfixed action, supplying leftVal as
// its first positional parameter's argument and gathering the rest
// starting at arr[idx]. Right-hand arguments are gathered without
// lookahead (enfixRight), so a later enfix operator picks up this
// call's completed result instead of stealing the raw right operand —
// strict left-to-right, §8 scenario 1.
func callEnfix(it *Interp, disp context.Dispatcher, arr []value.Cell, idx int, leftVal value.Cell, caller *context.Frame, label string) (Outcome, int, error) {
	f := context.NewFrame(disp, caller, label)
	pl := disp.Paramlist()

	next := idx
	filledLeft := false
	for i, key := range pl.Keys {
		if key.Class == context.ClassReturn || key.Class == context.ClassLocal || key.Bits.Has(context.BitRefinement) {
			f.Values[i] = value.Null()
			continue
		}
		if !filledLeft {
			f.Values[i] = leftVal
			filledLeft = true
			continue
		}
		var err error
		f.Values[i], next, err = gatherOne(it, key, arr, next, caller, true)
		if err != nil {
			return Outcome{}, next, err
		}
	}

	out, err := runFrame(disp, f)
	return out, next, err
}
