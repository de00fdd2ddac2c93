// Package api is the embedding interface (§6 "API surface"): callers
// pass a mixture of source fragments and Value handles and the session
// runs them as if they were user code. Handle types wrap internal cells
// so embedders never touch cell layout, and entry points recover from
// misuse instead of faulting the host.
package api

import (
	"fmt"

	"github.com/rhencke/rebol-sub017/rebol/boot"
	"github.com/rhencke/rebol-sub017/rebol/eval"
	"github.com/rhencke/rebol-sub017/rebol/gc"
	"github.com/rhencke/rebol-sub017/rebol/source"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// Session is one embedded interpreter plus the retained-handle list the
// GC treats as a root (§4.2 "the API-handle list").
type Session struct {
	rt      *boot.Runtime
	retained map[*Value]struct{}
}

// Value is an opaque handle over a cell. A released handle is dead;
// using it returns ErrReleased rather than corrupting the session.
type Value struct {
	cell     value.Cell
	sess     *Session
	released bool
}

// New boots a session.
func New(opts boot.Options) (*Session, error) {
	rt, err := boot.Boot(opts)
	if err != nil {
		return nil, err
	}
	s := &Session{rt: rt, retained: make(map[*Value]struct{})}
	rt.GC.AddRoot(func(visit func(value.Node)) {
		for v := range s.retained {
			if n := v.cell.Payload.Node; n != nil {
				visit(n)
			}
		}
	})
	return s, nil
}

// Runtime exposes the underlying runtime for embedders that need to go
// beyond the handle surface.
func (s *Session) Runtime() *boot.Runtime { return s.rt }

// Run splices fragments — strings are lexed as source, *Value handles
// are inserted as pre-built cells — and evaluates the result, returning
// a retained handle on the product (§6: "callers pass a mixture of
// literal source fragments and REBVAL pointers ... the API runs the
// fragment as if it were user code").
func (s *Session) Run(parts ...any) (v *Value, err error) {
	// Misuse of a handle from a foreign caller must not fault the
	// session; surface it as an error instead.
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = fmt.Errorf("api: run failed: %v", r)
		}
	}()

	cells, err := s.splice(parts)
	if err != nil {
		return nil, err
	}
	out, err := eval.DoBlock(s.rt.It, cells, nil)
	if err != nil {
		return nil, err
	}
	if out.Thrown {
		return nil, eval.ErrNoCatcher
	}
	return s.retain(out.Value), nil
}

// Value is Run under its historical name.
func (s *Session) Value(parts ...any) (*Value, error) { return s.Run(parts...) }

// Elide runs the fragment and discards its product.
func (s *Session) Elide(parts ...any) error {
	v, err := s.Run(parts...)
	if err != nil {
		return err
	}
	return v.Release()
}

// Did runs the fragment and reports the result's conditional truth.
func (s *Session) Did(parts ...any) (bool, error) {
	v, err := s.Run(parts...)
	if err != nil {
		return false, err
	}
	defer v.Release()
	return v.cell.Truthy(), nil
}

// Unbox runs the fragment and extracts an INTEGER! result.
func (s *Session) Unbox(parts ...any) (int64, error) {
	v, err := s.Run(parts...)
	if err != nil {
		return 0, err
	}
	defer v.Release()
	if v.cell.BaseKind() != value.KindInteger {
		return 0, ErrNotAnInteger
	}
	return v.cell.AsInteger(), nil
}

// Spell runs the fragment and extracts the spelling of a word or the
// text of a string.
func (s *Session) Spell(parts ...any) (string, error) {
	v, err := s.Run(parts...)
	if err != nil {
		return "", err
	}
	defer v.Release()
	c := v.cell
	switch c.BaseKind() {
	case value.KindWord, value.KindSetWord, value.KindGetWord, value.KindRefinement:
		return s.rt.Syms.Spelling(symbol.ID(c.Extra.Bits)), nil
	case value.KindString, value.KindFile, value.KindEmail, value.KindURL,
		value.KindTag, value.KindIssue:
		if ser := c.Series(); ser != nil {
			return string(ser.Bytes), nil
		}
		return "", nil
	default:
		return "", ErrNotSpellable
	}
}

// Handle wraps a native resource with a cleaner the GC runs on sweep
// when the handle becomes unreachable (§4.2 "handles ... cleaners run
// before the pool is released").
func (s *Session) Handle(resource any, clean func()) *Value {
	h := &handleNode{resource: resource, clean: clean}
	c := value.Cell{Kind: value.KindHandle, Flags: value.FlagFirstIsNode,
		Payload: value.Payload{Node: h}}
	s.rt.GC.RegisterCleaner(h, h)
	return s.retain(c)
}

// Release drops the session's retention of v. The cell may still be
// live through other references; only the API root lets go.
func (v *Value) Release() error {
	if v.released {
		return ErrReleased
	}
	v.released = true
	delete(v.sess.retained, v)
	return nil
}

// Manage re-retains a released handle.
func (v *Value) Manage() error {
	if v.sess == nil {
		return ErrReleased
	}
	v.released = false
	v.sess.retained[v] = struct{}{}
	return nil
}

// Unmanage is Release under the historical name pair.
func (v *Value) Unmanage() error { return v.Release() }

// Repossess releases the handle and hands the raw cell to the caller,
// who takes over keeping its nodes reachable.
func (v *Value) Repossess() (value.Cell, error) {
	if v.released {
		return value.Cell{}, ErrReleased
	}
	c := v.cell
	_ = v.Release()
	return c, nil
}

// Cell returns the handle's cell without releasing.
func (v *Value) Cell() (value.Cell, error) {
	if v.released {
		return value.Cell{}, ErrReleased
	}
	return v.cell, nil
}

func (s *Session) retain(c value.Cell) *Value {
	v := &Value{cell: c, sess: s}
	s.retained[v] = struct{}{}
	return v
}

func (s *Session) splice(parts []any) ([]value.Cell, error) {
	var cells []value.Cell
	for _, part := range parts {
		switch p := part.(type) {
		case string:
			res, err := source.LoadAndBind([]byte(p), s.rt.Syms, s.rt.Lib)
			if err != nil {
				return nil, err
			}
			cells = append(cells, res.Body.Cells...)
		case *Value:
			if p.released {
				return nil, ErrReleased
			}
			cells = append(cells, p.cell)
		case value.Cell:
			cells = append(cells, p)
		default:
			return nil, fmt.Errorf("%w: %T", ErrBadFragment, part)
		}
	}
	return cells, nil
}

type handleNode struct {
	mark     bool
	resource any
	clean    func()
}

func (h *handleNode) Marked() bool              { return h.mark }
func (h *handleNode) SetMark(v bool)            { h.mark = v }
func (h *handleNode) Trace(fn func(value.Node)) {}

// Clean implements gc.Cleaner; it must not allocate (§4.2).
func (h *handleNode) Clean() {
	if h.clean != nil {
		h.clean()
	}
}

var _ gc.Cleaner = (*handleNode)(nil)
