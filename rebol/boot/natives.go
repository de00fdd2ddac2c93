package boot

import (
	"fmt"

	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/eval"
	"github.com/rhencke/rebol-sub017/rebol/mold"
	"github.com/rhencke/rebol-sub017/rebol/source"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

func (rt *Runtime) registerControl() {
	rt.register("if", 0, []context.Key{rt.arg("condition"), rt.arg("branch")},
		func(f *context.Frame) (context.Signal, error) {
			if !f.Values[0].Truthy() {
				f.Out = value.Null()
				return context.SignalNormal, nil
			}
			out, err := rt.runBlockCell(f, f.Values[1])
			if err != nil {
				return context.SignalNormal, err
			}
			return finish(f, out)
		})

	rt.register("either", 0, []context.Key{rt.arg("condition"), rt.arg("true-branch"), rt.arg("false-branch")},
		func(f *context.Frame) (context.Signal, error) {
			branch := f.Values[2]
			if f.Values[0].Truthy() {
				branch = f.Values[1]
			}
			out, err := rt.runBlockCell(f, branch)
			if err != nil {
				return context.SignalNormal, err
			}
			return finish(f, out)
		})

	// ELSE defers: it waits for the completed expression on its left
	// rather than stealing a mid-gather value (§4.3 "Enfix and
	// deferral" — this is what makes `if c [a] else [b]` work).
	rt.register("else", value.FlagEnfixed|value.FlagEnfixDefer,
		[]context.Key{rt.arg("left"), rt.arg("branch")},
		func(f *context.Frame) (context.Signal, error) {
			if !f.Values[0].IsNull() {
				f.Out = f.Values[0]
				return context.SignalNormal, nil
			}
			out, err := rt.runBlockCell(f, f.Values[1])
			if err != nil {
				return context.SignalNormal, err
			}
			return finish(f, out)
		})

	rt.register("then", value.FlagEnfixed|value.FlagEnfixDefer,
		[]context.Key{rt.arg("left"), rt.arg("branch")},
		func(f *context.Frame) (context.Signal, error) {
			if f.Values[0].IsNull() {
				f.Out = value.Null()
				return context.SignalNormal, nil
			}
			out, err := rt.runBlockCell(f, f.Values[1])
			if err != nil {
				return context.SignalNormal, err
			}
			return finish(f, out)
		})

	rt.register("also", value.FlagEnfixed|value.FlagEnfixDefer,
		[]context.Key{rt.arg("left"), rt.arg("branch")},
		func(f *context.Frame) (context.Signal, error) {
			if _, err := rt.runBlockCell(f, f.Values[1]); err != nil {
				return context.SignalNormal, err
			}
			f.Out = f.Values[0]
			return context.SignalNormal, nil
		})

	// ELIDE evaluates its argument for side effects and vanishes from
	// the expression stream (§3.2 "invisible", §8 scenario 2).
	rt.register("elide", 0, []context.Key{rt.arg("discarded")},
		func(f *context.Frame) (context.Signal, error) {
			f.Out = value.Null()
			return context.SignalInvisible, nil
		})

	rt.register("comment", 0, []context.Key{rt.argHard("ignored")},
		func(f *context.Frame) (context.Signal, error) {
			f.Out = value.Null()
			return context.SignalInvisible, nil
		})

	rt.register("reduce", 0, []context.Key{rt.arg("block")},
		func(f *context.Frame) (context.Signal, error) {
			cells := cellsOf(f.Values[0])
			result := value.NewArraySeries(len(cells))
			idx := 0
			for idx < len(cells) {
				out, next, err := eval.Step(rt.It, cells, idx, f)
				if err != nil {
					return context.SignalNormal, err
				}
				if out.Thrown {
					return finish(f, out)
				}
				if !out.Invisible {
					if out.Value.IsNull() {
						return context.SignalNormal, value.NewError("script", "need-non-null",
							"cannot put null in a block").AsError()
					}
					result.Cells = append(result.Cells, out.Value)
				}
				idx = next
			}
			f.Out = blockCell(result)
			return context.SignalNormal, nil
		})

	rt.register("compose", 0, []context.Key{rt.arg("block")},
		func(f *context.Frame) (context.Signal, error) {
			cells := cellsOf(f.Values[0])
			result := value.NewArraySeries(len(cells))
			for _, c := range cells {
				if c.BaseKind() != value.KindGroup || c.Quoted() {
					result.Cells = append(result.Cells, c)
					continue
				}
				out, err := rt.runBlockCell(f, c)
				if err != nil {
					return context.SignalNormal, err
				}
				if out.Thrown {
					return finish(f, out)
				}
				if !out.Value.IsNull() {
					result.Cells = append(result.Cells, out.Value)
				}
			}
			f.Out = blockCell(result)
			return context.SignalNormal, nil
		})

	rt.register("do", 0, []context.Key{rt.arg("source")},
		func(f *context.Frame) (context.Signal, error) {
			return rt.doValue(f, f.Values[0])
		})

	rt.register("reeval", 0, []context.Key{rt.argHard("value")},
		func(f *context.Frame) (context.Signal, error) {
			out, err := eval.DoBlock(rt.It, []value.Cell{f.Values[0]}, f)
			if err != nil {
				return context.SignalNormal, err
			}
			return finish(f, out)
		})

	rt.register("set", 0, []context.Key{rt.arg("target"), rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			if err := context.Poke(f.Values[0], f.Values[1]); err != nil {
				return context.SignalNormal, err
			}
			f.Out = f.Values[1]
			return context.SignalNormal, nil
		})

	rt.register("get", 0, []context.Key{rt.arg("source")},
		func(f *context.Frame) (context.Signal, error) {
			v, ok := context.Lookup(f.Values[0])
			if !ok {
				return context.SignalNormal, eval.ErrNotBound
			}
			f.Out = v
			return context.SignalNormal, nil
		})

	rt.register("catch", 0, []context.Key{rt.arg("block"), rt.refineArg("name", context.ClassHardQuote)},
		func(f *context.Frame) (context.Signal, error) {
			label := symbol.IDNone
			anyLabel := true
			if name := f.Values[1]; !name.IsNull() {
				label = symbol.ID(name.Extra.Bits)
				anyLabel = false
			}
			out, err := eval.CatchBlock(rt.It, label, anyLabel, func() (eval.Outcome, error) {
				return rt.runBlockCell(f, f.Values[0])
			})
			if err != nil {
				return context.SignalNormal, err
			}
			return finish(f, out)
		})

	rt.register("throw", 0, []context.Key{rt.arg("value"), rt.refineArg("name", context.ClassHardQuote)},
		func(f *context.Frame) (context.Signal, error) {
			label := value.WordCell(value.KindWord, uint64(symbol.IDNone))
			if name := f.Values[1]; !name.IsNull() {
				label = value.WordCell(value.KindWord, name.Extra.Bits)
			}
			f.Out = label
			f.ThrownValue = f.Values[0]
			return context.SignalThrown, nil
		})

	rt.register("trap", 0, []context.Key{rt.arg("block")},
		func(f *context.Frame) (context.Signal, error) {
			out, err := eval.TrapBlock(func() (eval.Outcome, error) {
				return rt.runBlockCell(f, f.Values[0])
			})
			if err != nil {
				return context.SignalNormal, err
			}
			if out.Thrown {
				return finish(f, out)
			}
			// TRAP returns the error on failure, null on success
			// (the trapped body's value is discarded).
			if out.Value.IsError() {
				f.Out = out.Value
			} else {
				f.Out = value.Null()
			}
			return context.SignalNormal, nil
		})

	rt.register("attempt", 0, []context.Key{rt.arg("block")},
		func(f *context.Frame) (context.Signal, error) {
			out, err := rt.runBlockCell(f, f.Values[0])
			if err != nil {
				f.Out = value.Null()
				return context.SignalNormal, nil
			}
			return finish(f, out)
		})

	rt.register("fail", 0, []context.Key{rt.arg("reason")},
		func(f *context.Frame) (context.Signal, error) {
			reason := f.Values[0]
			if reason.IsError() {
				return context.SignalNormal, reason.AsError()
			}
			return context.SignalNormal,
				value.NewError("script", "fail", mold.Form(rt.Syms, reason)).AsError()
		})

	rt.register("loop", 0, []context.Key{rt.arg("count"), rt.arg("body")},
		func(f *context.Frame) (context.Signal, error) {
			n := f.Values[0].AsInteger()
			last := eval.Outcome{Value: value.Null()}
			for i := int64(0); i < n; i++ {
				out, stop, err := rt.loopStep(f, f.Values[1])
				if err != nil {
					return context.SignalNormal, err
				}
				if stop {
					return finish(f, out)
				}
				last = out
			}
			return finish(f, last)
		})

	rt.register("while", 0, []context.Key{rt.arg("condition"), rt.arg("body")},
		func(f *context.Frame) (context.Signal, error) {
			last := eval.Outcome{Value: value.Null()}
			for {
				if rt.It.Halt != nil && rt.It.Halt() {
					return context.SignalNormal, eval.ErrHalted
				}
				cond, err := rt.runBlockCell(f, f.Values[0])
				if err != nil {
					return context.SignalNormal, err
				}
				if cond.Thrown {
					return finish(f, cond)
				}
				if !cond.Value.Truthy() {
					return finish(f, last)
				}
				out, stop, err := rt.loopStep(f, f.Values[1])
				if err != nil {
					return context.SignalNormal, err
				}
				if stop {
					return finish(f, out)
				}
				last = out
			}
		})

	rt.register("break", 0, nil,
		func(f *context.Frame) (context.Signal, error) {
			f.Out = value.WordCell(value.KindWord, uint64(rt.Syms.Intern("break")))
			f.ThrownValue = value.Null()
			return context.SignalThrown, nil
		})

	rt.register("continue", 0, nil,
		func(f *context.Frame) (context.Signal, error) {
			f.Out = value.WordCell(value.KindWord, uint64(rt.Syms.Intern("continue")))
			f.ThrownValue = value.Null()
			return context.SignalThrown, nil
		})

	rt.register("return", 0, []context.Key{rt.argEnd("value")},
		func(f *context.Frame) (context.Signal, error) {
			f.Out = value.WordCell(value.KindWord, uint64(symbol.SymReturn))
			f.ThrownValue = f.Values[0]
			return context.SignalThrown, nil
		})

	rt.register("all", 0, []context.Key{rt.arg("block")},
		func(f *context.Frame) (context.Signal, error) {
			cells := cellsOf(f.Values[0])
			last := value.Null()
			idx := 0
			for idx < len(cells) {
				out, next, err := eval.Step(rt.It, cells, idx, f)
				if err != nil {
					return context.SignalNormal, err
				}
				if out.Thrown {
					return finish(f, out)
				}
				if !out.Invisible {
					if !out.Value.Truthy() {
						f.Out = value.Null()
						return context.SignalNormal, nil
					}
					last = out.Value
				}
				idx = next
			}
			f.Out = last
			return context.SignalNormal, nil
		})

	rt.register("any", 0, []context.Key{rt.arg("block")},
		func(f *context.Frame) (context.Signal, error) {
			cells := cellsOf(f.Values[0])
			idx := 0
			for idx < len(cells) {
				out, next, err := eval.Step(rt.It, cells, idx, f)
				if err != nil {
					return context.SignalNormal, err
				}
				if out.Thrown {
					return finish(f, out)
				}
				if !out.Invisible && out.Value.Truthy() {
					f.Out = out.Value
					return context.SignalNormal, nil
				}
				idx = next
			}
			f.Out = value.Null()
			return context.SignalNormal, nil
		})

	rt.register("uneval", 0, []context.Key{rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			f.Out = f.Values[0].Uneval()
			return context.SignalNormal, nil
		})

	rt.register("dequote", 0, []context.Key{rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			f.Out = f.Values[0].Dequote()
			return context.SignalNormal, nil
		})

	rt.register("quoted?", 0, []context.Key{rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			f.Out = value.Logic(f.Values[0].Quoted())
			return context.SignalNormal, nil
		})

	rt.register("lit", 0, []context.Key{rt.argHard("value")},
		func(f *context.Frame) (context.Signal, error) {
			f.Out = f.Values[0]
			return context.SignalNormal, nil
		})

	rt.register("opt", 0, []context.Key{rt.argEnd("value")},
		func(f *context.Frame) (context.Signal, error) {
			if f.Values[0].IsBlank() {
				f.Out = value.Null()
			} else {
				f.Out = f.Values[0]
			}
			return context.SignalNormal, nil
		})

	rt.register("try", 0, []context.Key{rt.argEnd("value")},
		func(f *context.Frame) (context.Signal, error) {
			if f.Values[0].IsNull() {
				f.Out = value.Blank()
			} else {
				f.Out = f.Values[0]
			}
			return context.SignalNormal, nil
		})

	rt.register("print", 0, []context.Key{rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			v := f.Values[0]
			if v.BaseKind() == value.KindBlock && !v.Quoted() {
				out, err := rt.runBlockCell(f, v)
				if err != nil {
					return context.SignalNormal, err
				}
				if out.Thrown {
					return finish(f, out)
				}
				v = out.Value
			}
			fmt.Fprintln(rt.out, mold.Form(rt.Syms, v))
			f.Out = value.Null()
			return context.SignalNormal, nil
		})

	rt.register("probe", 0, []context.Key{rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			fmt.Fprintln(rt.out, mold.Mold(rt.Syms, f.Values[0]))
			f.Out = f.Values[0]
			return context.SignalNormal, nil
		})

	rt.register("mold", 0, []context.Key{rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			f.Out = rt.stringCell(value.KindString, mold.Mold(rt.Syms, f.Values[0]))
			return context.SignalNormal, nil
		})

	rt.register("form", 0, []context.Key{rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			f.Out = rt.stringCell(value.KindString, mold.Form(rt.Syms, f.Values[0]))
			return context.SignalNormal, nil
		})

	rt.register("load", 0, []context.Key{rt.arg("source")},
		func(f *context.Frame) (context.Signal, error) {
			res, err := source.Load([]byte(textOf(f.Values[0])), rt.Syms)
			if err != nil {
				return context.SignalNormal, err
			}
			f.Out = blockCell(res.Body)
			return context.SignalNormal, nil
		})

	rt.register("type-of", 0, []context.Key{rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			name := f.Values[0].BaseKind().String()
			f.Out = value.WordCell(value.KindWord, uint64(rt.Syms.Intern(name)))
			return context.SignalNormal, nil
		})

	rt.register("protect", 0, []context.Key{rt.arg("series")},
		func(f *context.Frame) (context.Signal, error) {
			if s := f.Values[0].Series(); s != nil {
				s.Protect()
			}
			f.Out = f.Values[0]
			return context.SignalNormal, nil
		})

	rt.register("freeze", 0, []context.Key{rt.arg("series")},
		func(f *context.Frame) (context.Signal, error) {
			if s := f.Values[0].Series(); s != nil {
				s.Protect()
				s.FreezeDeep()
			}
			f.Out = f.Values[0]
			return context.SignalNormal, nil
		})

	rt.register("recycle", 0, nil,
		func(f *context.Frame) (context.Signal, error) {
			if err := rt.GC.Recycle(); err != nil {
				return context.SignalNormal, err
			}
			f.Out = value.Null()
			return context.SignalNormal, nil
		})
}

// doValue is DO's per-kind behavior: blocks and groups run, strings
// load-then-run, actions dispatch with no arguments, frames re-dispatch
// their phase (§2 item 7 "the DO loop and its variants").
func (rt *Runtime) doValue(f *context.Frame, v value.Cell) (context.Signal, error) {
	switch v.BaseKind() {
	case value.KindBlock, value.KindGroup:
		out, err := rt.runBlockCell(f, v)
		if err != nil {
			return context.SignalNormal, err
		}
		return finish(f, out)
	case value.KindString:
		res, err := source.LoadAndBind([]byte(textOf(v)), rt.Syms, rt.Lib)
		if err != nil {
			return context.SignalNormal, err
		}
		out, err := eval.DoBlock(rt.It, res.Body.Cells, f)
		if err != nil {
			return context.SignalNormal, err
		}
		return finish(f, out)
	case value.KindAction:
		disp, ok := v.Payload.Node.(context.Dispatcher)
		if !ok {
			return context.SignalNormal, ErrNotAnAction
		}
		inner := context.NewFrame(disp, f, disp.Label())
		sig, err := disp.Dispatch(inner)
		f.Out = inner.Out
		f.ThrownValue = inner.ThrownValue
		return sig, err
	case value.KindFrame:
		inner, ok := v.Payload.Node.(*context.Frame)
		if !ok {
			return context.SignalNormal, ErrNotAnAction
		}
		sig, err := inner.Phase.Dispatch(inner)
		f.Out = inner.Out
		f.ThrownValue = inner.ThrownValue
		return sig, err
	default:
		f.Out = v
		return context.SignalNormal, nil
	}
}

// loopStep runs a loop body once, translating BREAK/CONTINUE throws
// into loop control. stop=true means the loop should end now with out.
func (rt *Runtime) loopStep(f *context.Frame, body value.Cell) (eval.Outcome, bool, error) {
	out, err := rt.runBlockCell(f, body)
	if err != nil {
		return eval.Outcome{}, false, err
	}
	if out.Thrown && out.Value.BaseKind() == value.KindWord {
		switch rt.spellingOf(out.Value) {
		case "break":
			return eval.Outcome{Value: value.Null()}, true, nil
		case "continue":
			return eval.Outcome{Value: value.Null()}, false, nil
		}
	}
	if out.Thrown {
		return out, true, nil
	}
	return out, false, nil
}
