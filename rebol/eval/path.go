package eval

import (
	"strings"

	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// PathHook is the per-kind "picker" a value answers to when it appears
// as the head of a path step (§4.6). It returns the picked value and,
// when that value lives in an aggregate slot (object slot, series
// index), a Valid Reference describing where. The path walkers in this
// package use only the value; SetPath writes the final container
// directly.
type PathHook func(head value.Cell, picker value.Cell) (result value.Cell, ref Reference, err error)

// Reference is the "the result lives in the containing aggregate at
// this slot" signal a path hook returns instead of a value (§4.6,
// §4.3 SignalReference).
type Reference struct {
	Context *context.Context
	Index   int
	Series  *value.Series
	SerIdx  int32
	Valid   bool
}

// hooks maps a base Kind to its path dispatch. Populated by init() in
// this package for the kinds the core itself understands (object,
// block index, map); other kinds are added through RegisterHook.
var hooks = map[value.Kind]PathHook{}

// RegisterHook installs (or replaces) the path dispatch for kind,
// letting collaborators (PORT!, GOB!) extend path picking without the
// core importing them (§1 "layered on top... without extending the
// core").
func RegisterHook(kind value.Kind, hook PathHook) { hooks[kind] = hook }

func init() {
	hooks[value.KindObject] = objectHook
	hooks[value.KindBlock] = seriesIndexHook
	hooks[value.KindMap] = mapHook
}

// evalPath implements §4.6: walk a path's steps left to right, calling
// each step's value's hook with the next step as picker. A path whose
// final resolved value is an action invokes it, with refinements named
// by trailing path steps filling refinement slots in the order given.
func evalPath(it *Interp, c value.Cell, idx int, arr []value.Cell, caller *context.Frame) (Outcome, int, error) {
	steps := pathSteps(c)
	if len(steps) == 0 {
		return Outcome{Value: value.Null()}, idx, nil
	}

	head, err := resolveHead(it, steps[0], caller)
	if err != nil {
		return Outcome{}, idx, err
	}

	var refs refinementCall
	cur := head
	i := 1
	for i < len(steps) {
		step := steps[i]
		// Once an action is in hand, every remaining step names a
		// refinement (`foo/z/y ...` — the segments lex as words, §4.6
		// "refinements in the path fill the refinement slots in the
		// order given").
		if dispatcherOf(cur) != nil {
			if step.BaseKind() != value.KindWord && step.BaseKind() != value.KindRefinement {
				return Outcome{}, idx, ErrBadRefine
			}
			refs.syms = append(refs.syms, symBitsOf(step))
			i++
			continue
		}
		if ctx, ok := cur.Payload.Node.(*context.Context); ok && cur.BaseKind() == value.KindObject {
			refs.derived = ctx
		}
		hook, ok := hooks[cur.BaseKind()]
		if !ok {
			return Outcome{}, idx, ErrNotAnAction
		}
		picker, perr := resolveStep(it, step, caller)
		if perr != nil {
			return Outcome{}, idx, perr
		}
		result, _, herr := hook(cur, picker)
		if herr != nil {
			return Outcome{}, idx, herr
		}
		cur = result
		i++
	}

	disp := dispatcherOf(cur)
	if disp == nil {
		if len(refs.syms) > 0 {
			return Outcome{}, idx, ErrNotAnAction
		}
		return Outcome{Value: cur}, idx + 1, nil
	}
	return callAction(it, disp, arr, idx+1, &refs, caller, pathLabel(it, steps))
}

// pathLabel renders the called path's words for error reporting; a
// computed step shows as its kind name.
func pathLabel(it *Interp, steps []value.Cell) string {
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		switch s.BaseKind() {
		case value.KindWord, value.KindGetWord, value.KindRefinement:
			parts = append(parts, it.Symbols.Spelling(symBitsOf(s)))
		default:
			parts = append(parts, s.BaseKind().String())
		}
	}
	return strings.Join(parts, "/")
}

// SetPath implements SET-PATH!: walk identically to evalPath but finish
// with a POKE into the final container rather than an invoke (§4.6).
func SetPath(it *Interp, c value.Cell, v value.Cell, caller *context.Frame) error {
	steps := pathSteps(c)
	if len(steps) == 0 {
		return ErrNotAnAction
	}
	head, err := resolveHead(it, steps[0], caller)
	if err != nil {
		return err
	}
	if len(steps) == 1 {
		return context.Poke(steps[0], v)
	}
	cur := head
	for i := 1; i < len(steps)-1; i++ {
		hook, ok := hooks[cur.BaseKind()]
		if !ok {
			return ErrNotAnAction
		}
		picker, perr := resolveStep(it, steps[i], caller)
		if perr != nil {
			return perr
		}
		result, _, herr := hook(cur, picker)
		if herr != nil {
			return herr
		}
		cur = result
	}
	last := steps[len(steps)-1]
	if cur.BaseKind() == value.KindObject {
		ctx := cur.Payload.Node.(*context.Context)
		return ctx.Set(symBitsOf(last), v)
	}
	return pokeSeriesIndex(cur, last, v)
}

// pathSteps returns the step cells of a path/get-path/set-path value.
func pathSteps(c value.Cell) []value.Cell {
	s := c.Series()
	if s == nil {
		return nil
	}
	return s.Cells[c.Payload.Index:]
}

// resolveHead fetches the path's first step: a WORD! head is looked up
// (it is the variable the walk starts from), a GROUP! head evaluates.
func resolveHead(it *Interp, step value.Cell, caller *context.Frame) (value.Cell, error) {
	switch step.BaseKind() {
	case value.KindWord, value.KindGetWord:
		v, ok := context.Lookup(step)
		if !ok {
			return value.Cell{}, ErrNotBound
		}
		return v, nil
	default:
		return resolveStep(it, step, caller)
	}
}

// resolveStep evaluates a GROUP! step and fetches a GET-WORD! step
// (§4.6 "Paths may contain GROUP! steps (evaluated) and GET-WORD! steps
// (fetched)"); any other step is used verbatim (a WORD! step names a
// key rather than evaluating to one, matching object/map picking).
func resolveStep(it *Interp, step value.Cell, caller *context.Frame) (value.Cell, error) {
	switch step.BaseKind() {
	case value.KindGroup:
		out, err := DoBlock(it, groupCells(step), caller)
		if err != nil {
			return value.Cell{}, err
		}
		return out.Value, nil
	case value.KindGetWord:
		v, ok := context.Lookup(step)
		if !ok {
			return value.Cell{}, ErrNotBound
		}
		return v, nil
	default:
		// A WORD! step names a key rather than evaluating to one,
		// matching object/map picking.
		return step, nil
	}
}

func objectHook(head value.Cell, picker value.Cell) (value.Cell, Reference, error) {
	ctx, ok := head.Payload.Node.(*context.Context)
	if !ok {
		return value.Cell{}, Reference{}, ErrNotAnAction
	}
	sym := symbol.ID(picker.Extra.Bits)
	v, found := ctx.Get(sym)
	if !found {
		return value.Null(), Reference{}, nil
	}
	return v, Reference{Context: ctx, Index: ctx.IndexOf(sym), Valid: true}, nil
}

func mapHook(head value.Cell, picker value.Cell) (value.Cell, Reference, error) {
	// Maps are key/value pairs stored as a flat cell series on the same
	// Series a block uses; picking walks pairs looking for an equal key.
	s := head.Series()
	if s == nil {
		return value.Null(), Reference{}, nil
	}
	for i := 0; i+1 < len(s.Cells); i += 2 {
		if value.Equal(s.Cells[i], picker) {
			return s.Cells[i+1], Reference{Series: s, SerIdx: int32(i + 1), Valid: true}, nil
		}
	}
	return value.Null(), Reference{}, nil
}

func seriesIndexHook(head value.Cell, picker value.Cell) (value.Cell, Reference, error) {
	s := head.Series()
	if s == nil || picker.BaseKind() != value.KindInteger {
		return value.Null(), Reference{}, nil
	}
	i := head.Payload.Index + int32(picker.AsInteger()) - 1
	if i < 0 || int(i) >= len(s.Cells) {
		return value.Null(), Reference{}, nil
	}
	return s.Cells[i], Reference{Series: s, SerIdx: i, Valid: true}, nil
}

func pokeSeriesIndex(head value.Cell, picker value.Cell, v value.Cell) error {
	s := head.Series()
	if s == nil || picker.BaseKind() != value.KindInteger {
		return ErrNotAnAction
	}
	if s.Protected() {
		return context.ErrProtected
	}
	i := head.Payload.Index + int32(picker.AsInteger()) - 1
	if i < 0 || int(i) >= len(s.Cells) {
		return ErrNotAnAction
	}
	s.Cells[i] = v
	return nil
}
