package action

import (
	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// Specialized wraps Inner, pre-filling some of its parameters. Its own
// paramlist hides the filled slots (§4.4 "SPECIALIZE fills some
// parameter slots ... the outer action's paramlist hides those slots").
type Specialized struct {
	Base
	Inner context.Dispatcher
	// Fixed maps an index in Inner's paramlist to the value SPECIALIZE
	// pinned there.
	Fixed map[int]value.Cell
}

// Specialize builds a Specialized action. visibleParamlist must already
// have the fixed slots removed/hidden by the caller (the evaluator
// builds it from inner's paramlist minus the keys present in fixed).
func Specialize(label string, inner context.Dispatcher, visibleParamlist *context.Keylist, fixed map[int]value.Cell) *Specialized {
	return &Specialized{Base: Base{Paramlist_: visibleParamlist, Label_: label}, Inner: inner, Fixed: fixed}
}

func (s *Specialized) Dispatch(f *context.Frame) (context.Signal, error) {
	inner := context.NewFrame(s.Inner, f.Caller, s.Label_)
	visible := 0
	for i := range inner.Values {
		if v, ok := s.Fixed[i]; ok {
			inner.Values[i] = v
			continue
		}
		inner.Values[i] = f.Values[visible]
		visible++
	}
	sig, err := s.Inner.Dispatch(inner)
	f.Out = inner.Out
	f.ThrownValue = inner.ThrownValue
	return sig, err
}

// Adapted wraps Inner with a prelude that runs before the inner
// dispatcher sees the frame, and may overwrite arguments (§4.4 "ADAPT
// prepends a prelude block that runs with the frame partially filled").
type Adapted struct {
	Base
	Inner   context.Dispatcher
	Prelude *value.Series
	// RunPrelude is threaded in from rebol/eval the same way
	// Interpreted.Run is, to avoid an import cycle.
	RunPrelude func(prelude *value.Series, f *context.Frame) error
}

func Adapt(label string, inner context.Dispatcher, prelude *value.Series, runPrelude func(*value.Series, *context.Frame) error) *Adapted {
	return &Adapted{Base: Base{Paramlist_: inner.Paramlist(), Label_: label}, Inner: inner, Prelude: prelude, RunPrelude: runPrelude}
}

func (a *Adapted) Dispatch(f *context.Frame) (context.Signal, error) {
	if err := a.RunPrelude(a.Prelude, f); err != nil {
		return context.SignalNormal, err
	}
	f.Rephase(a.Inner)
	return a.Inner.Dispatch(f)
}

// Enclosed wraps Inner in an outer action that receives the fully built
// frame and decides whether and how to invoke the inner (§4.4 "ENCLOSE
// wraps the inner action in an outer action that receives the fully
// built frame").
type Enclosed struct {
	Base
	Inner   context.Dispatcher
	Outer NativeFunc // runs with access to Inner via closure capture
}

func Enclose(label string, inner context.Dispatcher, outer NativeFunc) *Enclosed {
	return &Enclosed{Base: Base{Paramlist_: inner.Paramlist(), Label_: label}, Inner: inner, Outer: outer}
}

func (e *Enclosed) Dispatch(f *context.Frame) (context.Signal, error) { return e.Outer(f) }

// Chained runs a sequence of actions, piping each result into the next
// as its sole argument (§4.4 CHAIN).
type Chained struct {
	Base
	Steps []context.Dispatcher
}

func Chain(label string, steps []context.Dispatcher) *Chained {
	first := steps[0]
	return &Chained{Base: Base{Paramlist_: first.Paramlist(), Label_: label}, Steps: steps}
}

func (c *Chained) Dispatch(f *context.Frame) (context.Signal, error) {
	first := context.NewFrame(c.Steps[0], f.Caller, c.Label_)
	copy(first.Values, f.Values)
	sig, err := c.Steps[0].Dispatch(first)
	if err != nil || sig == context.SignalThrown {
		f.Out, f.ThrownValue = first.Out, first.ThrownValue
		return sig, err
	}
	prev := first.Out
	for _, step := range c.Steps[1:] {
		next := context.NewFrame(step, f.Caller, c.Label_)
		if len(next.Values) > 0 {
			next.Values[0] = prev
		}
		sig, err = step.Dispatch(next)
		if err != nil || sig == context.SignalThrown {
			f.Out, f.ThrownValue = next.Out, next.ThrownValue
			return sig, err
		}
		prev = next.Out
	}
	f.Out = prev
	return context.SignalNormal, nil
}

// Hijacked atomically swaps in a replacement dispatcher for an existing
// Action, so every reference (the original value, specializations built
// on it, in-flight frames not yet past their dispatch call) observes
// the new behavior (§4.4 HIJACK). Unlike the other composites, Hijack
// mutates the target in place rather than returning a new Action: the
// whole point is that existing references keep working.
type Hijacked struct {
	Base
	target  *hijackTarget
}

// hijackTarget is the indirection every reference to a hijackable
// action actually points through, so swapping Current is visible to
// all holders without rewriting their cells.
type hijackTarget struct {
	Current context.Dispatcher
}

// NewHijackable wraps original behind an indirection cell so it can
// later be hijacked; callers that never HIJACK never need it.
func NewHijackable(original context.Dispatcher) *Hijacked {
	return &Hijacked{Base: Base{Paramlist_: original.Paramlist(), Label_: original.Label()}, target: &hijackTarget{Current: original}}
}

func (h *Hijacked) Dispatch(f *context.Frame) (context.Signal, error) {
	return h.target.Current.Dispatch(f)
}

// Current returns the dispatcher h presently delegates to. COPY uses it
// to snapshot pre-hijack behavior: a copy taken before a HIJACK keeps
// running the original.
func (h *Hijacked) Current() context.Dispatcher { return h.target.Current }

// Hijack replaces the dispatcher h currently delegates to. It returns
// ErrParamlistMismatch, leaving h unchanged, when the replacement's
// paramlist length differs from the current one (§4.4).
func (h *Hijacked) Hijack(replacement context.Dispatcher) error {
	if !paramlistCompatible(h.target.Current.Paramlist(), replacement.Paramlist()) {
		return ErrParamlistMismatch
	}
	h.target.Current = replacement
	h.Base.Paramlist_ = replacement.Paramlist()
	return nil
}

func paramlistCompatible(a, b *context.Keylist) bool {
	return a.Len() == b.Len()
}

// Reskinned rewrites a target's parameter type declarations without
// changing behavior. Dispatch copies the gathered arguments into a
// fresh frame for Inner as they are; no type checking against the
// inner action's parameters is performed on entry.
type Reskinned struct {
	Base
	Inner context.Dispatcher
}

func Reskin(label string, inner context.Dispatcher, newParamlist *context.Keylist) *Reskinned {
	return &Reskinned{Base: Base{Paramlist_: newParamlist, Label_: label}, Inner: inner}
}

func (r *Reskinned) Dispatch(f *context.Frame) (context.Signal, error) {
	inner := context.NewFrame(r.Inner, f.Caller, r.Label_)
	copy(inner.Values, f.Values)
	sig, err := r.Inner.Dispatch(inner)
	f.Out, f.ThrownValue = inner.Out, inner.ThrownValue
	return sig, err
}

// Augment adds new (necessarily local/hidden-until-adapted) parameters
// to inner's visible paramlist without changing its behavior; the
// result must be further ADAPTed or ENCLOSEd to make use of them
// (§4.4 AUGMENT).
func Augment(label string, inner context.Dispatcher, extra []context.Key) (*Reskinned, error) {
	pl := inner.Paramlist()
	for _, k := range extra {
		if pl.IndexOf(k.Sym) >= 0 {
			return nil, ErrAugmentConflict
		}
	}
	next := pl
	for _, k := range extra {
		next = next.Extend(k)
	}
	return Reskin(label, inner, next), nil
}
