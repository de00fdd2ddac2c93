package boot

import (
	"unicode/utf8"

	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/eval"
	"github.com/rhencke/rebol-sub017/rebol/source"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

func (rt *Runtime) registerSeries() {
	rt.register("copy", 0, []context.Key{rt.arg("value"), rt.refine("deep")},
		func(f *context.Frame) (context.Signal, error) {
			f.Out = rt.copyValue(f.Values[0], !f.Values[1].IsNull())
			return context.SignalNormal, nil
		})

	rt.register("append", 0, []context.Key{rt.arg("series"), rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			s := f.Values[0].Series()
			if s == nil {
				return context.SignalNormal, errNotSeries(f.Values[0])
			}
			if s.Protected() {
				return context.SignalNormal, value.NewError("access", "protected",
					"series is protected from modification").AsError()
			}
			if s.Cells != nil || f.Values[0].BaseKind() == value.KindBlock {
				if err := s.Append(f.Values[1]); err != nil {
					return context.SignalNormal, err
				}
			} else {
				s.Bytes = append(s.Bytes, []byte(textOf(f.Values[1]))...)
				if s.Text {
					s.CPLen = utf8.RuneCount(s.Bytes)
				}
			}
			f.Out = f.Values[0]
			return context.SignalNormal, nil
		})

	rt.register("pick", 0, []context.Key{rt.arg("series"), rt.arg("index")},
		func(f *context.Frame) (context.Signal, error) {
			f.Out = pickAt(f.Values[0], int(f.Values[1].AsInteger()))
			return context.SignalNormal, nil
		})

	rt.register("poke", 0, []context.Key{rt.arg("series"), rt.arg("index"), rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			s := f.Values[0].Series()
			if s == nil || s.Cells == nil {
				return context.SignalNormal, errNotSeries(f.Values[0])
			}
			if s.Protected() {
				return context.SignalNormal, value.NewError("access", "protected",
					"series is protected from modification").AsError()
			}
			i := int(f.Values[0].Payload.Index) + int(f.Values[1].AsInteger()) - 1
			if i < 0 || i >= len(s.Cells) {
				return context.SignalNormal, value.NewError("script", "out-of-range",
					"index out of range").AsError()
			}
			s.Cells[i] = f.Values[2]
			f.Out = f.Values[2]
			return context.SignalNormal, nil
		})

	ordinal := func(name string, n int) {
		rt.register(name, 0, []context.Key{rt.arg("series")},
			func(f *context.Frame) (context.Signal, error) {
				f.Out = pickAt(f.Values[0], n)
				return context.SignalNormal, nil
			})
	}
	ordinal("first", 1)
	ordinal("second", 2)
	ordinal("third", 3)

	rt.register("last", 0, []context.Key{rt.arg("series")},
		func(f *context.Frame) (context.Signal, error) {
			if s := f.Values[0].Series(); s != nil {
				f.Out = pickAt(f.Values[0], s.Len()-int(f.Values[0].Payload.Index))
			} else {
				f.Out = value.Null()
			}
			return context.SignalNormal, nil
		})

	rt.register("length-of", 0, []context.Key{rt.arg("series")},
		func(f *context.Frame) (context.Signal, error) {
			s := f.Values[0].Series()
			if s == nil {
				return context.SignalNormal, errNotSeries(f.Values[0])
			}
			f.Out = value.Integer(int64(s.Len() - int(f.Values[0].Payload.Index)))
			return context.SignalNormal, nil
		})

	rt.register("next", 0, []context.Key{rt.arg("series")},
		func(f *context.Frame) (context.Signal, error) {
			c := f.Values[0]
			if s := c.Series(); s != nil && int(c.Payload.Index) < s.Len() {
				c.Payload.Index++
			}
			f.Out = c
			return context.SignalNormal, nil
		})

	rt.register("select", 0, []context.Key{rt.arg("series"), rt.arg("key")},
		func(f *context.Frame) (context.Signal, error) {
			// Missing keys are a normal outcome, not an error (§7
			// "Locally handled: ... SELECT returns null").
			f.Out = selectIn(f.Values[0], f.Values[1])
			return context.SignalNormal, nil
		})

	rt.register("make", 0, []context.Key{rt.arg("type"), rt.arg("spec")},
		func(f *context.Frame) (context.Signal, error) {
			out, err := rt.makeValue(f, f.Values[0], f.Values[1])
			if err != nil {
				return context.SignalNormal, err
			}
			f.Out = out
			return context.SignalNormal, nil
		})

	// AS aliases a series under another kind without copying; the
	// source auto-locks so mutation through one view cannot silently
	// invalidate the other's invariants (§3.4 "Ownership and aliasing").
	rt.register("as", 0, []context.Key{rt.arg("type"), rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			kind, ok := rt.kindForWord(f.Values[0])
			if !ok {
				return context.SignalNormal, ErrBadMake
			}
			v := f.Values[1]
			s := v.Series()
			if s == nil {
				return context.SignalNormal, errNotSeries(v)
			}
			s.Protect()
			s.FreezeDeep()
			out := v
			out.Kind = kind
			f.Out = out
			return context.SignalNormal, nil
		})

	rt.register("to", 0, []context.Key{rt.arg("type"), rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			out, err := rt.toValue(f.Values[0], f.Values[1])
			if err != nil {
				return context.SignalNormal, err
			}
			f.Out = out
			return context.SignalNormal, nil
		})

	rt.register("in", 0, []context.Key{rt.arg("object"), rt.argHard("word")},
		func(f *context.Frame) (context.Signal, error) {
			ctx, ok := f.Values[0].Payload.Node.(*context.Context)
			if !ok {
				return context.SignalNormal, ErrBadMake
			}
			sym := symbol.ID(f.Values[1].Extra.Bits)
			idx := ctx.IndexOf(sym)
			if idx < 0 {
				f.Out = value.Null()
				return context.SignalNormal, nil
			}
			f.Out = f.Values[1].Bind(ctx, int32(idx))
			return context.SignalNormal, nil
		})
}

// copyValue implements COPY: series copy (optionally deep), action
// snapshot (a hijackable action copies to its current dispatcher, so
// the copy keeps the pre-hijack behavior, §8 scenario 6).
func (rt *Runtime) copyValue(v value.Cell, deep bool) value.Cell {
	if v.BaseKind() == value.KindAction {
		if cur := currentDispatcher(v); cur != nil {
			return value.AggregateCell(value.KindAction, cur.(value.Node), 0)
		}
		return v
	}
	s := v.Series()
	if s == nil {
		return v
	}
	ns := &value.Series{Text: s.Text, CPLen: s.CPLen}
	if s.Cells != nil {
		if deep {
			ns.Cells = copyDeepCells(s.Cells[v.Payload.Index:])
		} else {
			ns.Cells = append([]value.Cell(nil), s.Cells[v.Payload.Index:]...)
		}
	} else {
		ns.Bytes = append([]byte(nil), s.Bytes...)
	}
	out := v
	out.Payload.Node = ns
	out.Payload.Index = 0
	return out
}

func pickAt(v value.Cell, n int) value.Cell {
	s := v.Series()
	if s == nil || n < 1 {
		return value.Null()
	}
	if s.Cells != nil {
		i := int(v.Payload.Index) + n - 1
		if i >= len(s.Cells) {
			return value.Null()
		}
		return s.Cells[i]
	}
	i := int(v.Payload.Index) + n - 1
	if i >= len(s.Bytes) {
		return value.Null()
	}
	if s.Text {
		runes := []rune(string(s.Bytes))
		if i >= len(runes) {
			return value.Null()
		}
		return value.Char(runes[i])
	}
	return value.Integer(int64(s.Bytes[i]))
}

func selectIn(v value.Cell, key value.Cell) value.Cell {
	if ctx, ok := v.Payload.Node.(*context.Context); ok {
		got, found := ctx.Get(symbol.ID(key.Extra.Bits))
		if !found {
			return value.Null()
		}
		return got
	}
	s := v.Series()
	if s == nil || s.Cells == nil {
		return value.Null()
	}
	cells := s.Cells[v.Payload.Index:]
	step := 1
	if v.BaseKind() == value.KindMap {
		step = 2
	}
	for i := 0; i+1 < len(cells); i += step {
		if value.Equal(cells[i], key) {
			return cells[i+1]
		}
	}
	return value.Null()
}

// makeValue implements MAKE for the constructible types. Unsupported
// type/spec pairs fail; nothing is guessed (§9 "treat the enumerated
// conversions ... as the contract and fail everything else").
func (rt *Runtime) makeValue(f *context.Frame, typ, spec value.Cell) (value.Cell, error) {
	name, ok := rt.typeName(typ)
	if !ok {
		return value.Null(), ErrBadMake
	}
	switch name {
	case "object!":
		return rt.makeObject(f, spec)
	case "map!":
		return rt.makeMap(f, spec)
	case "error!":
		return rt.makeError(spec)
	case "block!":
		n := 0
		if spec.BaseKind() == value.KindInteger {
			n = int(spec.AsInteger())
		}
		return blockCell(value.NewArraySeries(n)), nil
	case "text!":
		return rt.stringCell(value.KindString, textOf(spec)), nil
	case "binary!":
		s := &value.Series{}
		return value.AggregateCell(value.KindBinary, s, 0), nil
	case "bitset!":
		s := &value.Series{Bytes: make([]byte, 32)}
		return value.AggregateCell(value.KindBitset, s, 0), nil
	default:
		return value.Null(), ErrBadMake
	}
}

// makeObject builds an object from a spec block: its set-words become
// keys, the block runs bound to the new context, and SELF is implicit
// (§4.5 "Objects have an implicit SELF unless created selfless").
func (rt *Runtime) makeObject(f *context.Frame, spec value.Cell) (value.Cell, error) {
	if spec.BaseKind() != value.KindBlock {
		return value.Null(), ErrBadMake
	}
	ctx := context.New(context.NewKeylist(), false)
	objCell := value.Cell{Kind: value.KindObject, Flags: value.FlagFirstIsNode,
		Payload: value.Payload{Node: ctx}}
	if err := ctx.Append(symbol.SymSelf, objCell); err != nil {
		return value.Null(), err
	}

	cells := copyDeepCells(cellsOf(spec))
	if err := source.GatherSetWords(cells, ctx); err != nil {
		return value.Null(), err
	}
	source.BindDeep(cells, context.Chain{ctx})
	out, err := eval.DoBlock(rt.It, cells, f)
	if err != nil {
		return value.Null(), err
	}
	if out.Thrown {
		return value.Null(), eval.ErrNoCatcher
	}
	return objCell, nil
}

func (rt *Runtime) makeMap(f *context.Frame, spec value.Cell) (value.Cell, error) {
	if spec.BaseKind() != value.KindBlock {
		return value.Null(), ErrBadMake
	}
	s := &value.Series{Cells: append([]value.Cell(nil), cellsOf(spec)...)}
	return value.AggregateCell(value.KindMap, s, 0), nil
}

// makeError reads a [type: 'script id: 'my-id message: "..."] spec.
func (rt *Runtime) makeError(spec value.Cell) (value.Cell, error) {
	if spec.BaseKind() != value.KindBlock {
		return value.Null(), ErrBadMake
	}
	ev := &value.ErrorValue{Category: "user", ID: "custom"}
	cells := cellsOf(spec)
	for i := 0; i+1 < len(cells); i += 2 {
		if cells[i].BaseKind() != value.KindSetWord {
			return value.Null(), ErrBadMake
		}
		val := cells[i+1]
		inner, _ := val.Unwrap()
		switch rt.Syms.Spelling(symbol.ID(cells[i].Extra.Bits)) {
		case "type":
			ev.Category = rt.spellingOf(inner)
		case "id":
			ev.ID = rt.spellingOf(inner)
		case "message":
			ev.Message = textOf(inner)
		case "arg1":
			ev.Arg1 = inner
		case "arg2":
			ev.Arg2 = inner
		case "arg3":
			ev.Arg3 = inner
		}
	}
	return value.Cell{Kind: value.KindError, Flags: value.FlagFirstIsNode,
		Payload: value.Payload{Node: ev}}, nil
}

// toValue implements the enumerated TO conversions; everything else
// fails (§9).
func (rt *Runtime) toValue(typ, v value.Cell) (value.Cell, error) {
	name, ok := rt.typeName(typ)
	if !ok {
		return value.Null(), ErrBadMake
	}
	switch name {
	case "integer!":
		switch v.BaseKind() {
		case value.KindInteger:
			return v, nil
		case value.KindDecimal:
			return value.Integer(int64(v.AsDecimal())), nil
		case value.KindChar:
			return value.Integer(int64(v.AsChar())), nil
		case value.KindLogic:
			if v.AsLogic() {
				return value.Integer(1), nil
			}
			return value.Integer(0), nil
		}
	case "decimal!":
		if n, ok := numOf(v); ok {
			return value.Decimal(n), nil
		}
	case "text!":
		switch v.BaseKind() {
		case value.KindString, value.KindFile, value.KindEmail, value.KindURL,
			value.KindTag, value.KindIssue:
			return rt.stringCell(value.KindString, textOf(v)), nil
		case value.KindBinary:
			return rt.stringCell(value.KindString, string(bytesOfCell(v))), nil
		case value.KindWord, value.KindSetWord, value.KindGetWord, value.KindRefinement:
			return rt.stringCell(value.KindString, rt.spellingOf(v)), nil
		}
	case "binary!":
		switch v.BaseKind() {
		case value.KindBinary:
			return v, nil
		case value.KindString:
			s := &value.Series{Bytes: append([]byte(nil), bytesOfCell(v)...)}
			return value.AggregateCell(value.KindBinary, s, 0), nil
		}
	case "word!":
		switch v.BaseKind() {
		case value.KindWord, value.KindSetWord, value.KindGetWord, value.KindRefinement:
			return value.WordCell(value.KindWord, v.Extra.Bits), nil
		case value.KindString:
			return value.WordCell(value.KindWord, uint64(rt.Syms.Intern(textOf(v)))), nil
		}
	case "block!":
		if v.BaseKind() == value.KindGroup {
			out := v
			out.Kind = value.KindBlock
			return out, nil
		}
	}
	return value.Null(), ErrBadMake
}

// typeName resolves a datatype argument (the self-valued words bound by
// registerDatatypes) to its spelling.
func (rt *Runtime) typeName(typ value.Cell) (string, bool) {
	if typ.BaseKind() != value.KindWord {
		return "", false
	}
	return rt.spellingOf(typ), true
}

// kindForWord maps a datatype word to its Kind.
func (rt *Runtime) kindForWord(typ value.Cell) (value.Kind, bool) {
	name, ok := rt.typeName(typ)
	if !ok {
		return 0, false
	}
	for k := value.Kind(1); k < value.KindNull; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

func bytesOfCell(c value.Cell) []byte {
	if s := c.Series(); s != nil {
		return s.Bytes
	}
	return nil
}

func errNotSeries(c value.Cell) error {
	return value.NewError("script", "expect-arg",
		"operation needs a series, got "+c.BaseKind().String()).AsError()
}
