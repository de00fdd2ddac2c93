package parse

import (
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// keyword symbols recognized at compile time by their spelling; PARSE
// rules are not pre-bound to fixed IDs the way natives are, since rule
// vocabulary can be locally shadowed by `using` in real REBOL — this
// implementation keeps it simple and matches on spelling.
var keywordOps = map[string]Op{
	"some": OpSome, "any": OpAny, "while": OpWhile,
	"to": OpTo, "thru": OpThru, "into": OpInto,
	"skip": OpSkip, "end": OpEnd, "fail": OpFail,
	"not": OpNot, "ahead": OpAhead, "and": OpAhead,
}

// Compile parses a rule block into a Rule tree (§4.7). `|` at the top
// level splits alternatives; everything else in a run is an implicit
// sequence. syms resolves word cells to spellings for keyword matching.
func Compile(cells []value.Cell, syms *symbol.Table) (*Rule, error) {
	alts := splitAlternatives(cells, syms)
	if len(alts) == 1 {
		return compileSeq(alts[0], syms)
	}
	items := make([]*Rule, 0, len(alts))
	for _, alt := range alts {
		r, err := compileSeq(alt, syms)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return &Rule{Op: OpAlt, Items: items}, nil
}

func splitAlternatives(cells []value.Cell, syms *symbol.Table) [][]value.Cell {
	var alts [][]value.Cell
	start := 0
	for i, c := range cells {
		if c.BaseKind() == value.KindWord && wordName(c, syms) == "|" {
			alts = append(alts, cells[start:i])
			start = i + 1
		}
	}
	alts = append(alts, cells[start:])
	return alts
}

func compileSeq(cells []value.Cell, syms *symbol.Table) (*Rule, error) {
	items := make([]*Rule, 0, len(cells))
	for i := 0; i < len(cells); {
		r, consumed, err := compileOne(cells, i, syms)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
		i += consumed
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return &Rule{Op: OpSeq, Items: items}, nil
}

// compileOne compiles the rule element(s) starting at cells[i], folding
// in a trailing repetition/negation keyword's operand, and returns how
// many source cells it consumed.
func compileOne(cells []value.Cell, i int, syms *symbol.Table) (*Rule, int, error) {
	c := cells[i]

	if c.BaseKind() == value.KindWord {
		name := wordName(c, syms)
		if name == "copy" || name == "set" {
			if i+2 >= len(cells) {
				return nil, 0, errShortCapture
			}
			word := cells[i+1]
			sub, n, err := compileOne(cells, i+2, syms)
			if err != nil {
				return nil, 0, err
			}
			return &Rule{Op: OpCapture, Word: wordName(word, syms), IsSet: name == "set", Sub: sub}, 2 + n, nil
		}
		if op, ok := keywordOps[name]; ok {
			switch op {
			case OpSome, OpAny, OpWhile, OpTo, OpThru, OpInto, OpNot, OpAhead:
				if i+1 >= len(cells) {
					return nil, 0, errMissingOperand
				}
				sub, n, err := compileOne(cells, i+1, syms)
				if err != nil {
					return nil, 0, err
				}
				return &Rule{Op: op, Sub: sub}, 1 + n, nil
			default: // skip, end, fail take no operand
				return &Rule{Op: op}, 1, nil
			}
		}
		if name == "do" {
			if i+1 >= len(cells) {
				return nil, 0, errMissingOperand
			}
			return &Rule{Op: OpDo, Value: cells[i+1]}, 2, nil
		}
		// A plain word names a sub-rule (often another block) resolved
		// dynamically at match time, matching §4.7 "words in rules
		// resolve via their binding just as in normal code".
		return &Rule{Op: OpComputed, Value: c}, 1, nil
	}

	if c.BaseKind() == value.KindGroup {
		return &Rule{Op: OpComputed, Value: c}, 1, nil
	}

	if c.BaseKind() == value.KindBlock {
		s := c.Series()
		sub, err := Compile(s.Cells[c.Payload.Index:], syms)
		if err != nil {
			return nil, 0, err
		}
		return sub, 1, nil
	}

	return &Rule{Op: OpLiteral, Value: c}, 1, nil
}

func wordName(c value.Cell, syms *symbol.Table) string {
	return syms.Spelling(symbol.ID(c.Extra.Bits))
}

var (
	errShortCapture   = value.NewError("script", "parse-short-capture", "copy/set needs a word and a rule").AsError()
	errMissingOperand = value.NewError("script", "parse-missing-operand", "rule keyword needs an operand").AsError()
)
