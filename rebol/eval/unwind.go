package eval

import (
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// PushCatch registers a catcher for label (or any=true for every label)
// for the duration of the caller's block evaluation (§3.8, §7).
func (it *Interp) PushCatch(label symbol.ID, any bool) {
	it.catchStack = append(it.catchStack, catchFrame{label: label, any: any})
}

// PopCatch removes the most recently pushed catcher; callers must pop
// exactly the frame they pushed, even when unwinding through an error.
func (it *Interp) PopCatch() {
	if n := len(it.catchStack); n > 0 {
		it.catchStack = it.catchStack[:n-1]
	}
}

// Catches reports whether a throw labeled sym would be caught by the
// innermost pushed catcher. The THROW native and CatchBlock do not
// consult it.
func (it *Interp) Catches(sym symbol.ID) bool {
	if len(it.catchStack) == 0 {
		return false
	}
	top := it.catchStack[len(it.catchStack)-1]
	return top.any || top.label == sym
}

// Throw builds the Outcome a THROW native returns: Value carries the
// label (as a WORD! cell so MOLD/err messages can name it), ThrownValue
// carries the payload (§4.3 "Output conventions... thrown").
func Throw(label value.Cell, payload value.Cell) Outcome {
	return Outcome{Value: label, Thrown: true, ThrownValue: payload}
}

// CatchBlock runs body, and if it throws with a label this catcher
// accepts, returns the payload as a normal (non-thrown) Outcome instead
// of letting it keep propagating — the CATCH native's core logic,
// factored out so user-defined catch-like combinators can reuse it.
func CatchBlock(it *Interp, label symbol.ID, any bool, run func() (Outcome, error)) (Outcome, error) {
	it.PushCatch(label, any)
	defer it.PopCatch()

	out, err := run()
	if err != nil || !out.Thrown {
		return out, err
	}
	if any || symBitsOf(out.Value) == label {
		return Outcome{Value: out.ThrownValue}, nil
	}
	return out, nil
}

// TrapBlock runs body and converts an uncaught Go error — including a
// raised *value.ErrorValue — into a normal Outcome carrying the error
// as an ERROR! value, the TRAP native's core logic (§3.8 "Errors are
// first-class values: they can be stored, inspected, and re-raised").
// A thrown (non-error) signal still propagates past TrapBlock unchanged:
// invisible expressions and TRAP alike never absorb a throw, only a
// raised error (§7 "Invisible expressions cannot 'absorb' errors").
func TrapBlock(run func() (Outcome, error)) (Outcome, error) {
	out, err := run()
	if err == nil {
		return out, nil
	}
	if ev, ok := err.(*value.ErrorValue); ok {
		return Outcome{Value: value.Cell{Kind: value.KindError, Flags: value.FlagFirstIsNode, Payload: value.Payload{Node: ev}}}, nil
	}
	return Outcome{}, err
}
