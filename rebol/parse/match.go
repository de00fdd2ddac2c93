package parse

import (
	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// DoBlockFunc is threaded in from rebol/eval (DoBlock) so this package
// can evaluate `do`/`:(expr)` rule elements and bound rule words without
// importing eval, which would cycle back through eval's own tests
// exercising PARSE. Matching against a live evaluator is the whole
// point of §4.7 ("PARSE shares the evaluator's binding model").
type DoBlockFunc func(cells []value.Cell, caller *context.Frame) (value.Cell, error)

// Cursor is the position parse.Match advances through. Exactly one of
// Block or Text is non-nil: block rules walk Cells by index, string/
// binary rules walk codepoints (Text holds the decoded rune slice so
// backtracking is cheap positional arithmetic, §3.4's bookmark idea
// simplified to an eager decode for the matcher's lifetime).
type Cursor struct {
	Block []value.Cell
	Text  []rune
	Pos   int
}

func (c Cursor) AtEnd() bool {
	if c.Block != nil {
		return c.Pos >= len(c.Block)
	}
	return c.Pos >= len(c.Text)
}

func (c Cursor) Len() int {
	if c.Block != nil {
		return len(c.Block)
	}
	return len(c.Text)
}

// Matcher runs compiled Rules against a Cursor, accumulating captures
// and honoring ACCEPT/RETURN early exit (§4.7).
type Matcher struct {
	Do      DoBlockFunc
	Syms    *symbol.Table
	Caller  *context.Frame
	Capture map[string]value.Cell

	accepted    bool
	acceptValue value.Cell
}

// Match attempts r against cur, returning the advanced cursor on
// success or ok=false on failure (§4.7 "Return is the input series on
// success, null on failure").
func (m *Matcher) Match(r *Rule, cur Cursor) (Cursor, bool, error) {
	if m.accepted {
		return cur, true, nil
	}
	switch r.Op {
	case OpEnd:
		return cur, cur.AtEnd(), nil

	case OpFail:
		return cur, false, nil

	case OpSkip:
		if cur.AtEnd() {
			return cur, false, nil
		}
		cur.Pos++
		return cur, true, nil

	case OpLiteral:
		return m.matchLiteral(r, cur)

	case OpNot:
		_, ok, err := m.Match(r.Sub, cur)
		if err != nil {
			return cur, false, err
		}
		return cur, !ok, nil

	case OpAhead:
		_, ok, err := m.Match(r.Sub, cur)
		return cur, ok, err

	case OpSome, OpAny, OpWhile:
		count := 0
		next := cur
		for {
			advanced, ok, err := m.Match(r.Sub, next)
			if err != nil {
				return cur, false, err
			}
			if !ok || advanced.Pos == next.Pos {
				break
			}
			next = advanced
			count++
		}
		if r.Op == OpSome && count == 0 {
			return cur, false, nil
		}
		return next, true, nil

	case OpTo, OpThru:
		next := cur
		for {
			if _, ok, err := m.Match(r.Sub, next); err != nil {
				return cur, false, err
			} else if ok {
				if r.Op == OpThru {
					advanced, _, _ := m.Match(r.Sub, next)
					next = advanced
				}
				return next, true, nil
			}
			if next.AtEnd() {
				return cur, false, nil
			}
			next.Pos++
		}

	case OpInto:
		if cur.AtEnd() || cur.Block == nil {
			return cur, false, nil
		}
		elem := cur.Block[cur.Pos]
		if elem.BaseKind() != value.KindBlock {
			return cur, false, nil
		}
		s := elem.Series()
		inner := Cursor{Block: s.Cells[elem.Payload.Index:]}
		_, ok, err := m.Match(r.Sub, inner)
		if err != nil || !ok {
			return cur, false, err
		}
		cur.Pos++
		return cur, true, nil

	case OpCapture:
		start := cur
		advanced, ok, err := m.Match(r.Sub, cur)
		if err != nil || !ok {
			return cur, false, err
		}
		if m.Capture == nil {
			m.Capture = make(map[string]value.Cell)
		}
		if r.IsSet && advanced.Pos > start.Pos && start.Block != nil {
			m.Capture[r.Word] = start.Block[start.Pos]
		} else {
			m.Capture[r.Word] = sliceBetween(start, advanced)
		}
		return advanced, true, nil

	case OpComputed:
		v, err := m.Do([]value.Cell{r.Value}, m.Caller)
		if err != nil {
			return cur, false, err
		}
		inner, ok := compileValue(v, m.Syms)
		if !ok {
			return cur, false, nil
		}
		return m.Match(inner, cur)

	case OpDo:
		if _, err := m.Do([]value.Cell{r.Value}, m.Caller); err != nil {
			return cur, false, err
		}
		return cur, true, nil

	case OpSeq:
		next := cur
		for _, item := range r.Items {
			advanced, ok, err := m.Match(item, next)
			if err != nil {
				return cur, false, err
			}
			if !ok {
				return cur, false, nil
			}
			next = advanced
			if m.accepted {
				return next, true, nil
			}
		}
		return next, true, nil

	case OpAlt:
		for _, item := range r.Items {
			advanced, ok, err := m.Match(item, cur)
			if err != nil {
				return cur, false, err
			}
			if ok {
				return advanced, true, nil
			}
		}
		return cur, false, nil

	default:
		return cur, false, nil
	}
}

func (m *Matcher) matchLiteral(r *Rule, cur Cursor) (Cursor, bool, error) {
	if cur.AtEnd() {
		return cur, false, nil
	}
	if cur.Block != nil {
		if value.Equal(cur.Block[cur.Pos], r.Value) {
			cur.Pos++
			return cur, true, nil
		}
		return cur, false, nil
	}
	want := []rune(textOf(r.Value))
	if len(cur.Text)-cur.Pos < len(want) {
		return cur, false, nil
	}
	for i, ch := range want {
		if cur.Text[cur.Pos+i] != ch {
			return cur, false, nil
		}
	}
	cur.Pos += len(want)
	return cur, true, nil
}

// Accept records an ACCEPT/RETURN's value and short-circuits every
// enclosing Match call back to the top level (§4.7 "RETURN exits with a
// caller-chosen value").
func (m *Matcher) Accept(v value.Cell) { m.accepted = true; m.acceptValue = v }

func sliceBetween(start, end Cursor) value.Cell {
	if start.Block != nil {
		s := &value.Series{Cells: append([]value.Cell(nil), start.Block[start.Pos:end.Pos]...)}
		return value.AggregateCell(value.KindBlock, s, 0)
	}
	s := &value.Series{Bytes: []byte(string(start.Text[start.Pos:end.Pos])), Text: true}
	return value.AggregateCell(value.KindString, s, 0)
}

func textOf(c value.Cell) string {
	s := c.Series()
	if s == nil {
		return ""
	}
	return string(s.Bytes)
}

// compileValue turns a computed rule's runtime value back into a Rule,
// accepting a WORD!-bound sub-rule or a BLOCK! of rule elements.
func compileValue(v value.Cell, syms *symbol.Table) (*Rule, bool) {
	if v.BaseKind() == value.KindBlock {
		s := v.Series()
		r, err := Compile(s.Cells[v.Payload.Index:], syms)
		return r, err == nil
	}
	return &Rule{Op: OpLiteral, Value: v}, true
}
