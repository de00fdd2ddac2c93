package boot

import (
	"github.com/rhencke/rebol-sub017/rebol/action"
	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/eval"
	"github.com/rhencke/rebol-sub017/rebol/source"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

func (rt *Runtime) registerActions() {
	rt.register("func", 0, []context.Key{rt.arg("spec"), rt.arg("body")},
		func(f *context.Frame) (context.Signal, error) {
			out, err := rt.makeFunc("", f.Values[0], f.Values[1], false)
			if err != nil {
				return context.SignalNormal, err
			}
			f.Out = out
			return context.SignalNormal, nil
		})

	rt.register("method", 0, []context.Key{rt.arg("spec"), rt.arg("body")},
		func(f *context.Frame) (context.Signal, error) {
			out, err := rt.makeFunc("", f.Values[0], f.Values[1], true)
			if err != nil {
				return context.SignalNormal, err
			}
			f.Out = out
			return context.SignalNormal, nil
		})

	rt.register("does", 0, []context.Key{rt.arg("body")},
		func(f *context.Frame) (context.Signal, error) {
			empty := blockCell(value.NewArraySeries(0))
			out, err := rt.makeFunc("", empty, f.Values[0], false)
			if err != nil {
				return context.SignalNormal, err
			}
			f.Out = out
			return context.SignalNormal, nil
		})

	rt.register("specialize", 0, []context.Key{rt.arg("target"), rt.arg("spec")},
		func(f *context.Frame) (context.Signal, error) {
			inner := dispatcherIn(f.Values[0])
			if inner == nil {
				return context.SignalNormal, ErrNotAnAction
			}
			fixed, err := rt.evalPairs(f, f.Values[1], inner.Paramlist())
			if err != nil {
				return context.SignalNormal, err
			}
			pl := inner.Paramlist()
			var visible []context.Key
			for i, key := range pl.Keys {
				if _, pinned := fixed[i]; !pinned {
					visible = append(visible, key)
				}
			}
			sp := action.Specialize(inner.Label(), inner, context.NewKeylist(visible...), fixed)
			f.Out = value.AggregateCell(value.KindAction, sp, 0)
			return context.SignalNormal, nil
		})

	rt.register("adapt", 0, []context.Key{rt.arg("target"), rt.arg("prelude")},
		func(f *context.Frame) (context.Signal, error) {
			inner := dispatcherIn(f.Values[0])
			if inner == nil {
				return context.SignalNormal, ErrNotAnAction
			}
			prelude := &value.Series{Cells: append([]value.Cell(nil), cellsOf(f.Values[1])...)}
			ad := action.Adapt(inner.Label(), inner, prelude,
				func(p *value.Series, inF *context.Frame) error {
					cells := copyDeepCells(p.Cells)
					// The prelude sees the frame partially filled and
					// may overwrite arguments (§4.4 ADAPT).
					source.BindDeep(cells, context.Chain{&inF.Context})
					out, err := eval.DoBlock(rt.It, cells, inF)
					if err != nil {
						return err
					}
					if out.Thrown {
						return eval.ErrNoCatcher
					}
					return nil
				})
			f.Out = value.AggregateCell(value.KindAction, ad, 0)
			return context.SignalNormal, nil
		})

	rt.register("enclose", 0, []context.Key{rt.arg("target"), rt.arg("outer")},
		func(f *context.Frame) (context.Signal, error) {
			inner := dispatcherIn(f.Values[0])
			outer := dispatcherIn(f.Values[1])
			if inner == nil || outer == nil {
				return context.SignalNormal, ErrNotAnAction
			}
			en := action.Enclose(inner.Label(), inner,
				func(inF *context.Frame) (context.Signal, error) {
					// The outer action receives the fully built frame
					// as its single argument and decides whether and
					// how to run the inner (§4.4 ENCLOSE).
					outerF := context.NewFrame(outer, inF.Caller, outer.Label())
					if len(outerF.Values) > 0 {
						outerF.Values[0] = value.Cell{Kind: value.KindFrame,
							Flags:   value.FlagFirstIsNode,
							Payload: value.Payload{Node: inF}}
					}
					sig, err := outer.Dispatch(outerF)
					inF.Out = outerF.Out
					inF.ThrownValue = outerF.ThrownValue
					return sig, err
				})
			f.Out = value.AggregateCell(value.KindAction, en, 0)
			return context.SignalNormal, nil
		})

	rt.register("augment", 0, []context.Key{rt.arg("target"), rt.arg("spec")},
		func(f *context.Frame) (context.Signal, error) {
			inner := dispatcherIn(f.Values[0])
			if inner == nil {
				return context.SignalNormal, ErrNotAnAction
			}
			extraPl, err := rt.parseSpec(cellsOf(f.Values[1]))
			if err != nil {
				return context.SignalNormal, err
			}
			aug, err := action.Augment(inner.Label(), inner, extraPl.Keys)
			if err != nil {
				return context.SignalNormal, err
			}
			f.Out = value.AggregateCell(value.KindAction, aug, 0)
			return context.SignalNormal, nil
		})

	rt.register("chain", 0, []context.Key{rt.arg("pipeline")},
		func(f *context.Frame) (context.Signal, error) {
			var steps []context.Dispatcher
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
				d := dispatcherIn(out.Value)
				if d == nil {
					return context.SignalNormal, ErrNotAnAction
				}
				steps = append(steps, d)
				idx = next
			}
			if len(steps) == 0 {
				return context.SignalNormal, ErrNotAnAction
			}
			ch := action.Chain(steps[0].Label(), steps)
			f.Out = value.AggregateCell(value.KindAction, ch, 0)
			return context.SignalNormal, nil
		})

	rt.register("reskin", 0, []context.Key{rt.arg("target"), rt.arg("spec")},
		func(f *context.Frame) (context.Signal, error) {
			inner := dispatcherIn(f.Values[0])
			if inner == nil {
				return context.SignalNormal, ErrNotAnAction
			}
			pl, err := rt.parseSpec(cellsOf(f.Values[1]))
			if err != nil {
				return context.SignalNormal, err
			}
			if pl.Len() != inner.Paramlist().Len() {
				return context.SignalNormal, action.ErrParamlistMismatch
			}
			f.Out = value.AggregateCell(value.KindAction,
				action.Reskin(inner.Label(), inner, pl), 0)
			return context.SignalNormal, nil
		})

	rt.register("hijack", 0, []context.Key{rt.arg("target"), rt.arg("replacement")},
		func(f *context.Frame) (context.Signal, error) {
			tgt := f.Values[0]
			if tgt.BaseKind() == value.KindWord {
				v, ok := context.Lookup(tgt)
				if !ok {
					return context.SignalNormal, eval.ErrNotBound
				}
				tgt = v
			}
			hij, ok := tgt.Payload.Node.(*action.Hijacked)
			if !ok {
				return context.SignalNormal, ErrNotHijackable
			}
			repl := dispatcherIn(f.Values[1])
			if repl == nil {
				return context.SignalNormal, ErrNotAnAction
			}
			old := hij.Current()
			if err := hij.Hijack(repl); err != nil {
				return context.SignalNormal, err
			}
			f.Out = value.AggregateCell(value.KindAction, old.(value.Node), 0)
			return context.SignalNormal, nil
		})

	rt.register("applique", 0, []context.Key{rt.arg("target"), rt.arg("spec")},
		func(f *context.Frame) (context.Signal, error) {
			disp := dispatcherIn(f.Values[0])
			if disp == nil {
				return context.SignalNormal, ErrNotAnAction
			}
			fixed, err := rt.evalPairs(f, f.Values[1], disp.Paramlist())
			if err != nil {
				return context.SignalNormal, err
			}
			inner := context.NewFrame(disp, f, disp.Label())
			for i := range inner.Values {
				if v, ok := fixed[i]; ok {
					inner.Values[i] = v
				} else {
					inner.Values[i] = value.Null()
				}
			}
			sig, err := disp.Dispatch(inner)
			f.Out = inner.Out
			f.ThrownValue = inner.ThrownValue
			return sig, err
		})

	rt.register("match", 0, []context.Key{rt.arg("type"), rt.argEnd("value")},
		func(f *context.Frame) (context.Signal, error) {
			name, ok := rt.typeName(f.Values[0])
			if !ok {
				return context.SignalNormal, ErrBadMake
			}
			if f.Values[1].BaseKind().String() == name {
				f.Out = f.Values[1]
			} else {
				f.Out = value.Null()
			}
			return context.SignalNormal, nil
		})
}

// dispatcherIn unwraps an ACTION! cell to its dispatcher, or nil.
func dispatcherIn(c value.Cell) context.Dispatcher {
	if c.BaseKind() != value.KindAction {
		return nil
	}
	d, _ := c.Payload.Node.(context.Dispatcher)
	return d
}

// currentDispatcher resolves an action cell past its hijack indirection
// for snapshotting; non-hijackable actions return their dispatcher.
func currentDispatcher(c value.Cell) context.Dispatcher {
	if h, ok := c.Payload.Node.(*action.Hijacked); ok {
		return h.Current()
	}
	return dispatcherIn(c)
}

// evalPairs reads a [param: expr ...] block, evaluating each expr and
// keying the result by the parameter's index in pl.
func (rt *Runtime) evalPairs(f *context.Frame, spec value.Cell, pl *context.Keylist) (map[int]value.Cell, error) {
	fixed := make(map[int]value.Cell)
	cells := cellsOf(spec)
	idx := 0
	for idx < len(cells) {
		if cells[idx].BaseKind() != value.KindSetWord {
			return nil, ErrBadSpec
		}
		sym := symbol.ID(cells[idx].Extra.Bits)
		slot := pl.IndexOf(sym)
		if slot < 0 {
			return nil, action.ErrNotSpecializable
		}
		out, next, err := eval.Step(rt.It, cells, idx+1, f)
		if err != nil {
			return nil, err
		}
		fixed[slot] = out.Value
		idx = next
	}
	return fixed, nil
}
