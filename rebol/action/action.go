package action

import (
	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// NativeFunc is a dispatcher implemented in Go rather than interpreted
// REBOL, the equivalent of a C native's dispatcher function pointer
// (§3.7 "Dispatcher is a C function that takes a frame").
type NativeFunc func(f *context.Frame) (context.Signal, error)

// Base is the common state every concrete Action (native, interpreted,
// or composite) embeds: its paramlist, a display label, and the
// Details array composite actions stash auxiliary cells in (§3.7).
// Grounded on hive/merge/strategy.Base, which every write Strategy
// embeds for its shared hive/allocator/index references.
type Base struct {
	Paramlist_ *context.Keylist
	Label_     string
	Details    []value.Cell

	mark bool
}

func (b *Base) Paramlist() *context.Keylist { return b.Paramlist_ }
func (b *Base) Label() string               { return b.Label_ }
func (b *Base) Marked() bool                { return b.mark }
func (b *Base) SetMark(v bool)              { b.mark = v }

func (b *Base) Trace(fn func(value.Node)) {
	if b.Paramlist_ != nil {
		fn(b.Paramlist_)
	}
	for i := range b.Details {
		if n := b.Details[i].Payload.Node; n != nil {
			fn(n)
		}
	}
}

// Native is an Action whose dispatcher is a Go function: the leaf case,
// never wrapping another Action (§3.7 "Body is a block ... or unused
// (for natives)").
type Native struct {
	Base
	Fn NativeFunc
}

// NewNative builds a Native action with the given paramlist and body.
func NewNative(label string, paramlist *context.Keylist, fn NativeFunc) *Native {
	return &Native{Base: Base{Paramlist_: paramlist, Label_: label}, Fn: fn}
}

func (n *Native) Dispatch(f *context.Frame) (context.Signal, error) { return n.Fn(f) }

// Interpreted is an Action whose body is a block of REBOL code (a
// FUNCTION!/FUNC/METHOD value). Its dispatcher is supplied by the
// evaluator (rebol/eval.RunBody) rather than stored here, since running
// a body requires the evaluator's full machinery; Interpreted only
// carries the data the evaluator needs.
type Interpreted struct {
	Base
	Body *value.Series // BLOCK! series holding the function's code

	// DefinitionContext is the single context FUNC binds its body's
	// free words against. Methods instead resolve dynamically per call
	// (§4.5) and ignore this field, using the call site's derived chain.
	DefinitionContext *context.Context

	// Method, when true, marks this as created by METHOD rather than
	// FUNC: word lookups in the body resolve against the call-site's
	// derived context chain instead of DefinitionContext (§4.5, §9 open
	// question, decided in SPEC_FULL.md §"OPEN QUESTION DECISIONS").
	Method bool

	// Run is supplied by rebol/eval at construction time (it cannot be
	// supplied here without eval importing action, which would cycle
	// back through action importing eval for the body-runner type, so
	// action declares the shape and eval fills it in).
	Run func(body *value.Series, f *context.Frame) (context.Signal, error)
}

func (i *Interpreted) Dispatch(f *context.Frame) (context.Signal, error) {
	return i.Run(i.Body, f)
}

// NewInterpreted builds a FUNC/METHOD action. run is the evaluator's
// body-execution entry point, threaded in at construction to avoid an
// import cycle between action and eval.
func NewInterpreted(label string, paramlist *context.Keylist, body *value.Series, defCtx *context.Context, method bool, run func(*value.Series, *context.Frame) (context.Signal, error)) *Interpreted {
	return &Interpreted{
		Base:              Base{Paramlist_: paramlist, Label_: label},
		Body:              body,
		DefinitionContext: defCtx,
		Method:            method,
		Run:               run,
	}
}
