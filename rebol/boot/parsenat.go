package boot

import (
	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/eval"
	"github.com/rhencke/rebol-sub017/rebol/parse"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// registerParse installs the PARSE native (§4.7): compile the rule
// block, run the matcher over the input, write captures into lib, and
// return the remaining input on success or null on failure.
func (rt *Runtime) registerParse() {
	rt.register("parse", 0, []context.Key{rt.arg("input"), rt.arg("rules")},
		func(f *context.Frame) (context.Signal, error) {
			input := f.Values[0]
			rules := f.Values[1]
			if rules.BaseKind() != value.KindBlock {
				return context.SignalNormal, ErrBadSpec
			}

			rule, err := parse.Compile(cellsOf(rules), rt.Syms)
			if err != nil {
				return context.SignalNormal, err
			}

			m := &parse.Matcher{
				Syms:   rt.Syms,
				Caller: f,
				Do: func(cells []value.Cell, caller *context.Frame) (value.Cell, error) {
					out, derr := eval.DoBlock(rt.It, cells, caller)
					if derr != nil {
						return value.Null(), derr
					}
					return out.Value, nil
				},
			}

			cur, ok := parseCursor(input)
			if !ok {
				return context.SignalNormal, errNotSeries(input)
			}
			end, matched, err := m.Match(rule, cur)
			if err != nil {
				return context.SignalNormal, err
			}
			if !matched {
				f.Out = value.Null()
				return context.SignalNormal, nil
			}

			// Captures (`copy word:` / `set word:`) are written by
			// spelling into lib, and only where lib already has a slot
			// of that name; the capture word's own binding is not
			// consulted, so function locals and object fields named in
			// a rule are not written.
			for name, captured := range m.Capture {
				sym, found := rt.Syms.Lookup(name)
				if !found {
					continue
				}
				if idx := rt.Lib.IndexOf(sym); idx >= 0 {
					rt.Lib.Values[idx] = captured
				}
			}

			f.Out = parseRemainder(input, end)
			return context.SignalNormal, nil
		})
}

// parseCursor views the input series as a match cursor.
func parseCursor(input value.Cell) (parse.Cursor, bool) {
	s := input.Series()
	if s == nil {
		return parse.Cursor{}, false
	}
	switch input.BaseKind() {
	case value.KindBlock, value.KindGroup:
		return parse.Cursor{Block: s.Cells[input.Payload.Index:]}, true
	case value.KindString, value.KindFile, value.KindEmail, value.KindURL,
		value.KindTag, value.KindIssue:
		return parse.Cursor{Text: []rune(string(s.Bytes))}, true
	case value.KindBinary:
		runes := make([]rune, len(s.Bytes))
		for i, b := range s.Bytes {
			runes[i] = rune(b)
		}
		return parse.Cursor{Text: runes}, true
	default:
		return parse.Cursor{}, false
	}
}

// parseRemainder rebuilds the input value advanced to the match end,
// PARSE's success result (§4.7, §8 scenario 5: a full match of "aaabbb"
// returns "").
func parseRemainder(input value.Cell, end parse.Cursor) value.Cell {
	if end.Block != nil {
		out := input
		out.Payload.Index += int32(end.Pos)
		return out
	}
	rest := string(end.Text[end.Pos:])
	s := &value.Series{Bytes: []byte(rest), Text: true}
	out := input
	out.Payload.Node = s
	out.Payload.Index = 0
	return out
}
