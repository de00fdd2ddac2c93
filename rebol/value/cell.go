package value

import "math"

// Payload is the two-slot body of a cell (§3.1). Atomic kinds pack data
// into Bits; aggregate kinds use Node+Index.
type Payload struct {
	Node  Node
	Index int32
	Bits  uint64
}

// Extra is the cell's single extra slot (§3.1): for bindable kinds it
// holds a context/frame Node plus a variable index; for everything else
// it carries type-specific bits (e.g. a wrapped quote depth, refinement
// state).
type Extra struct {
	Binding Node
	Index   int32
	Bits    uint64
}

// Cell is the fixed-size tagged value every REBOL datum is represented
// by (§3.1). The zero Cell is a legal, fully-initialized end marker:
// uninitialized cells must never be observable (§4.1).
type Cell struct {
	Kind    Kind
	Flags   Flags
	Extra   Extra
	Payload Payload
}

// End returns a fresh end-of-array marker cell.
func End() Cell { return Cell{Kind: KindEnd, Flags: FlagEnd} }

// IsEnd reports whether c is an end-of-array marker.
func (c Cell) IsEnd() bool { return c.Kind == KindEnd }

// Null returns the "no value" cell (§3.2). Null cannot legally be
// stored inside a block; callers that need a placeholder use Blank.
func Null() Cell { return Cell{Kind: KindNull} }

// IsNull reports whether c is the null value.
func (c Cell) IsNull() bool { return c.Kind == KindNull }

// Blank returns the `_` placeholder value.
func Blank() Cell { return Cell{Kind: KindBlank} }

// IsBlank reports whether c is the blank placeholder.
func (c Cell) IsBlank() bool { return c.BaseKind() == KindBlank }

// Void returns a side-effect-only VOID! value (§3.2); unlike null it is
// a real value, but most assignment forms reject it.
func Void() Cell {
	return Cell{Kind: KindBlank, Extra: Extra{Bits: voidMarkerBit}}
}

const voidMarkerBit = 1 << 0

// IsVoid reports whether c is the distinguished void form of blank.
func (c Cell) IsVoid() bool {
	return c.BaseKind() == KindBlank && c.Extra.Bits&voidMarkerBit != 0
}

// BaseKind returns c's kind with any inline quote escape stripped.
func (c Cell) BaseKind() Kind {
	base, _ := c.Kind.Unescape()
	return base
}


// Integer returns an INTEGER! cell.
func Integer(v int64) Cell {
	return Cell{Kind: KindInteger, Payload: Payload{Bits: uint64(v)}}
}

// AsInteger reads c's inline integer payload (callers must check Kind).
func (c Cell) AsInteger() int64 { return int64(c.Payload.Bits) }

// Decimal returns a DECIMAL! cell.
func Decimal(v float64) Cell {
	return Cell{Kind: KindDecimal, Payload: Payload{Bits: math.Float64bits(v)}}
}

func (c Cell) AsDecimal() float64 { return math.Float64frombits(c.Payload.Bits) }

// Logic returns a LOGIC! cell.
func Logic(v bool) Cell {
	var b uint64
	if v {
		b = 1
	}
	return Cell{Kind: KindLogic, Payload: Payload{Bits: b}}
}

func (c Cell) AsLogic() bool { return c.Payload.Bits != 0 }

// Char returns a CHAR! cell holding a single Unicode codepoint.
func Char(r rune) Cell {
	return Cell{Kind: KindChar, Payload: Payload{Bits: uint64(r)}}
}

func (c Cell) AsChar() rune { return rune(c.Payload.Bits) }

// Truthy implements REBOL's conditional truth rule: everything is
// truthy except NULL, false, and blank-as-falsey contexts do not apply
// at this level (blank is truthy by default per §3.2; callers that need
// "blank is falsey" context apply that rule themselves).
func (c Cell) Truthy() bool {
	switch c.BaseKind() {
	case KindNull:
		return false
	case KindLogic:
		return c.AsLogic()
	default:
		return true
	}
}

// WordCell builds a WORD!-family cell (word/set-word/get-word/refinement)
// bound to nothing.
func WordCell(kind Kind, symBits uint64) Cell {
	return Cell{Kind: kind, Extra: Extra{Bits: symBits}}
}

// Bind returns a copy of c with its binding replaced. Words are
// value-semantic with respect to binding (§3.6): rebinding never
// mutates the source cell in place.
func (c Cell) Bind(ctx Node, index int32) Cell {
	c.Extra.Binding = ctx
	c.Extra.Index = index
	c.Flags |= FlagFirstIsNode
	return c
}

// Unbound reports whether c (a bindable kind) currently has no binding.
func (c Cell) Unbound() bool { return c.Extra.Binding == nil }

// AggregateCell builds an aggregate cell pointing at node, starting at
// index within it.
func AggregateCell(kind Kind, node Node, index int32) Cell {
	return Cell{Kind: kind, Flags: FlagFirstIsNode, Payload: Payload{Node: node, Index: index}}
}

// Series returns c's backing series, or nil if c is not series-backed
// (callers must check Kind.Aggregate() first for anything other than a
// best-effort lookup).
func (c Cell) Series() *Series {
	s, _ := c.Payload.Node.(*Series)
	return s
}
