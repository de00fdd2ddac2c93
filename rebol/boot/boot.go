package boot

import (
	"io"

	"github.com/rhencke/rebol-sub017/rebol/action"
	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/eval"
	"github.com/rhencke/rebol-sub017/rebol/gc"
	"github.com/rhencke/rebol-sub017/rebol/logger"
	"github.com/rhencke/rebol-sub017/rebol/source"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// Runtime is one booted interpreter instance: single-threaded, owning
// its symbol table, contexts, and collector (§5 "Shared resources ...
// Mutation is serialized by being single-threaded").
type Runtime struct {
	Syms   *symbol.Table
	Lib    *context.Context
	System *context.Context
	It     *eval.Interp
	GC     *gc.Collector

	out  io.Writer
	opts Options
}

// Boot builds a Runtime with the full native set registered in lib.
func Boot(opts Options) (*Runtime, error) {
	opts = opts.withDefaults()

	syms := symbol.New()
	lib := context.New(context.NewKeylist(), true)
	system := context.New(context.NewKeylist(), true)

	it := eval.New(syms, lib, system)
	it.Halt = opts.Halt

	rt := &Runtime{
		Syms:   syms,
		Lib:    lib,
		System: system,
		It:     it,
		GC:     gc.New(),
		out:    opts.Out,
		opts:   opts,
	}

	rt.GC.AddRoot(func(visit func(value.Node)) {
		visit(rt.Lib)
		visit(rt.System)
	})

	rt.registerDatatypes()
	rt.registerControl()
	rt.registerMath()
	rt.registerSeries()
	rt.registerActions()
	rt.registerParse()
	rt.registerPorts()

	if err := rt.initSystem(); err != nil {
		return nil, err
	}
	logger.Debug("interpreter booted", "words", lib.Keylist.Len())
	return rt, nil
}

// Do loads, binds, and runs script source against lib, returning the
// final value. An uncaught throw surfaces as ErrNoCatcher; a raised
// error surfaces as the *value.ErrorValue it carries (§7).
func (rt *Runtime) Do(src []byte) (value.Cell, error) {
	res, err := source.LoadAndBind(src, rt.Syms, rt.Lib)
	if err != nil {
		return value.Null(), err
	}
	out, err := eval.DoBlock(rt.It, res.Body.Cells, nil)
	if err != nil {
		return value.Null(), err
	}
	if out.Thrown {
		return value.Null(), eval.ErrNoCatcher
	}
	return out.Value, nil
}

// DoText is Do over a string.
func (rt *Runtime) DoText(src string) (value.Cell, error) { return rt.Do([]byte(src)) }

// initSystem populates the system object (§6: boot configuration,
// console state, catalog of loaded modules).
func (rt *Runtime) initSystem() error {
	fields := []struct {
		name string
		val  value.Cell
	}{
		{"version", rt.stringCell(value.KindString, "0.1.0")},
		{"console-width", value.Integer(int64(rt.opts.ConsoleWidth))},
		{"modules", blockCell(value.NewArraySeries(0))},
	}
	for _, f := range fields {
		if err := rt.System.Append(rt.Syms.Intern(f.name), f.val); err != nil {
			return err
		}
	}
	return rt.Lib.Append(rt.Syms.Intern("system"),
		value.Cell{Kind: value.KindObject, Flags: value.FlagFirstIsNode,
			Payload: value.Payload{Node: rt.System}})
}

// register installs a native action in lib under name. Enfix and
// defer/postpone behavior live on the stored cell's flags, since enfix
// is a property of the binding, not the word (§4.3).
func (rt *Runtime) register(name string, flags value.Flags, keys []context.Key, fn action.NativeFunc) {
	pl := context.NewKeylist(keys...)
	nat := action.NewNative(name, pl, fn)
	cell := value.AggregateCell(value.KindAction, nat, 0)
	cell.Flags |= flags
	if err := rt.Lib.Append(rt.Syms.Intern(name), cell); err != nil {
		panic("boot: duplicate native " + name)
	}
}

// registerDatatypes binds the datatype words (integer!, object!, ...)
// to themselves so MAKE and MATCH can take them as ordinary arguments.
func (rt *Runtime) registerDatatypes() {
	names := []string{
		"blank!", "logic!", "integer!", "decimal!", "percent!", "money!",
		"char!", "pair!", "tuple!", "time!", "date!", "binary!", "text!",
		"file!", "email!", "url!", "tag!", "issue!", "bitset!", "word!",
		"block!", "group!", "path!", "map!", "object!", "error!", "port!",
		"frame!", "action!",
	}
	for _, n := range names {
		sym := rt.Syms.Intern(n)
		if err := rt.Lib.Append(sym, value.WordCell(value.KindWord, uint64(sym))); err != nil {
			panic("boot: duplicate datatype " + n)
		}
	}
}

// --- parameter spec helpers ---

func (rt *Runtime) arg(name string) context.Key {
	return context.Key{Sym: rt.Syms.Intern(name), Class: context.ClassNormal}
}

func (rt *Runtime) argTight(name string) context.Key {
	return context.Key{Sym: rt.Syms.Intern(name), Class: context.ClassTight}
}

func (rt *Runtime) argHard(name string) context.Key {
	return context.Key{Sym: rt.Syms.Intern(name), Class: context.ClassHardQuote}
}

func (rt *Runtime) argSoft(name string) context.Key {
	return context.Key{Sym: rt.Syms.Intern(name), Class: context.ClassSoftQuote}
}

func (rt *Runtime) argEnd(name string) context.Key {
	return context.Key{Sym: rt.Syms.Intern(name), Class: context.ClassNormal, Bits: context.BitEndable}
}

func (rt *Runtime) refine(name string) context.Key {
	return context.Key{Sym: rt.Syms.Intern(name), Bits: context.BitRefinement}
}

func (rt *Runtime) refineArg(name string, class context.ParamClass) context.Key {
	return context.Key{Sym: rt.Syms.Intern(name), Class: class,
		Bits: context.BitRefinement | context.BitRefineArg}
}

// --- shared native helpers ---

// runBlockCell evaluates the cells behind a BLOCK!/GROUP! argument.
func (rt *Runtime) runBlockCell(f *context.Frame, c value.Cell) (eval.Outcome, error) {
	return eval.DoBlock(rt.It, cellsOf(c), f)
}

// finish folds a block-evaluation Outcome into a dispatcher result.
func finish(f *context.Frame, out eval.Outcome) (context.Signal, error) {
	if out.Thrown {
		f.Out = out.Value
		f.ThrownValue = out.ThrownValue
		return context.SignalThrown, nil
	}
	f.Out = out.Value
	return context.SignalNormal, nil
}

func cellsOf(c value.Cell) []value.Cell {
	s := c.Series()
	if s == nil {
		return nil
	}
	return s.Cells[c.Payload.Index:]
}

func blockCell(s *value.Series) value.Cell {
	return value.AggregateCell(value.KindBlock, s, 0)
}

func (rt *Runtime) stringCell(kind value.Kind, text string) value.Cell {
	s := &value.Series{Bytes: []byte(text), Text: true}
	return value.AggregateCell(kind, s, 0)
}

func textOf(c value.Cell) string {
	if s := c.Series(); s != nil {
		return string(s.Bytes)
	}
	return ""
}

func (rt *Runtime) spellingOf(c value.Cell) string {
	return rt.Syms.Spelling(symbol.ID(c.Extra.Bits))
}
