package value

import "strings"

// Equal implements the default, case-insensitive, quote-transparent `=`
// comparison (§4.1). It sees through quoting on both sides and treats
// INTEGER!/DECIMAL! as equal when numerically equal.
func Equal(a, b Cell) bool {
	ai, _ := a.Unwrap()
	bi, _ := b.Unwrap()
	return equivalent(ai, bi)
}

func equivalent(a, b Cell) bool {
	ak, bk := a.BaseKind(), b.BaseKind()

	if ak == KindNull || bk == KindNull {
		return ak == bk
	}
	if ak == KindBlank && bk == KindBlank {
		return true
	}

	if isNumeric(ak) && isNumeric(bk) {
		return numericValue(a) == numericValue(b)
	}

	if ak != bk {
		return false
	}

	switch ak {
	case KindLogic:
		return a.AsLogic() == b.AsLogic()
	case KindChar:
		return a.AsChar() == b.AsChar()
	case KindWord, KindSetWord, KindGetWord, KindRefinement:
		return a.Extra.Bits == b.Extra.Bits // symbol IDs already fold case
	case KindString, KindFile, KindEmail, KindURL, KindTag, KindIssue:
		return strings.EqualFold(textOf(a), textOf(b))
	case KindBinary:
		return string(bytesOf(a)) == string(bytesOf(b))
	case KindBlock, KindGroup, KindPath, KindSetPath, KindGetPath, KindSetBlock:
		return equalArray(a, b, equivalent)
	default:
		return strictEqual(a, b)
	}
}

// StrictEqual implements `==`: case-sensitive, quoted-depth-sensitive,
// kind-sensitive (§4.1).
func StrictEqual(a, b Cell) bool {
	if a.Kind != b.Kind {
		return false
	}
	return strictEqual(a, b)
}

func strictEqual(a, b Cell) bool {
	switch a.BaseKind() {
	case KindInteger:
		return a.AsInteger() == b.AsInteger()
	case KindDecimal:
		return a.AsDecimal() == b.AsDecimal()
	case KindLogic:
		return a.AsLogic() == b.AsLogic()
	case KindChar:
		return a.AsChar() == b.AsChar()
	case KindBlank, KindNull:
		return true
	case KindWord, KindSetWord, KindGetWord, KindRefinement:
		return a.Extra.Bits == b.Extra.Bits
	case KindString, KindFile, KindEmail, KindURL, KindTag, KindIssue:
		return textOf(a) == textOf(b)
	case KindBinary:
		return string(bytesOf(a)) == string(bytesOf(b))
	case KindBlock, KindGroup, KindPath, KindSetPath, KindGetPath, KindSetBlock:
		return equalArray(a, b, StrictEqual)
	default:
		return a.Payload.Bits == b.Payload.Bits && a.Payload.Node == b.Payload.Node
	}
}

func equalArray(a, b Cell, cmp func(Cell, Cell) bool) bool {
	as, bs := a.Series(), b.Series()
	if as == nil || bs == nil {
		return as == bs
	}
	ae, be := as.Cells[a.Payload.Index:], bs.Cells[b.Payload.Index:]
	if len(ae) != len(be) {
		return false
	}
	for i := range ae {
		if !cmp(ae[i], be[i]) {
			return false
		}
	}
	return true
}

func isNumeric(k Kind) bool {
	return k == KindInteger || k == KindDecimal || k == KindPercent || k == KindMoney
}

func numericValue(c Cell) float64 {
	switch c.BaseKind() {
	case KindInteger:
		return float64(c.AsInteger())
	case KindPercent:
		// A percent's payload is its face value; 10% compares as 0.1.
		return c.AsDecimal() / 100
	default:
		return c.AsDecimal()
	}
}

func textOf(c Cell) string {
	s := c.Series()
	if s == nil {
		return ""
	}
	return string(s.Bytes)
}

func bytesOf(c Cell) []byte {
	s := c.Series()
	if s == nil {
		return nil
	}
	return s.Bytes
}

// Order returns -1, 0, or 1 comparing a and b, and ok=false for kinds
// with no natural order (§4.1).
func Order(a, b Cell) (cmp int, ok bool) {
	ak, bk := a.BaseKind(), b.BaseKind()
	switch {
	case isNumeric(ak) && isNumeric(bk):
		return compareFloat(numericValue(a), numericValue(b)), true
	case ak == KindString && bk == KindString:
		return compareString(strings.ToLower(textOf(a)), strings.ToLower(textOf(b))), true
	case ak == KindTime && bk == KindTime, ak == KindDate && bk == KindDate:
		return compareFloat(float64(a.Payload.Bits), float64(b.Payload.Bits)), true
	case ak == KindBinary && bk == KindBinary:
		return compareString(string(bytesOf(a)), string(bytesOf(b))), true
	default:
		return 0, false
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	return strings.Compare(a, b)
}
