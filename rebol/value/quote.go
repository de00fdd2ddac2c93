package value

// quoteWrapper is the wrapper Series used to escape a cell beyond
// MaxInlineQuoteDepth (§3.3): Cells[0] holds the fully-dequoted inner
// cell, and Payload.Index on the owning KindQuoted cell carries depth.
type quoteWrapper struct {
	Series
}

// QuoteDepth returns how many levels of quoting wrap c: 0 for an
// unquoted value.
func (c Cell) QuoteDepth() int {
	if base, depth := c.Kind.Unescape(); base != KindQuoted {
		return depth
	}
	return int(c.Payload.Index)
}

// Quoted reports whether c carries any escape depth at all (§3.3).
func (c Cell) Quoted() bool { return c.QuoteDepth() > 0 }

// Uneval adds exactly one level of quoting to c (§3.3, §8 invariant
// "uneval raises depth by exactly one").
func (c Cell) Uneval() Cell {
	depth := c.QuoteDepth() + 1

	if base, _ := c.Kind.Unescape(); base != KindQuoted {
		if escaped, ok := escape(base, depth); ok {
			c.Kind = escaped
			return c
		}
		// Depth exceeds the inline limit: allocate a wrapper node
		// holding the fully-unescaped inner cell.
		inner := c
		inner.Kind = base
		wrapper := &quoteWrapper{Series: Series{Cells: []Cell{inner}}}
		return Cell{
			Kind:    KindQuoted,
			Flags:   FlagFirstIsNode,
			Payload: Payload{Node: wrapper, Index: int32(depth)},
		}
	}

	// Already in wrapper form: just bump the depth counter, the inner
	// cell is untouched.
	c.Payload.Index = int32(depth)
	return c
}

// Dequote removes one level of quoting from c. Dequoting an unquoted
// value is a no-op (mirrors the source's permissive behavior at the
// lowest depth, documented rather than guessed: scripts routinely call
// dequote defensively without checking quoted? first).
func (c Cell) Dequote() Cell {
	depth := c.QuoteDepth()
	if depth == 0 {
		return c
	}

	if base, d := c.Kind.Unescape(); base != KindQuoted {
		if d == 1 {
			c.Kind = base
			return c
		}
		escaped, ok := escape(base, d-1)
		if !ok {
			panic("value: inline unescape produced invalid depth")
		}
		c.Kind = escaped
		return c
	}

	w := c.Payload.Node.(*quoteWrapper)
	if depth-1 == 0 {
		return w.Cells[0]
	}
	return Cell{
		Kind:    KindQuoted,
		Flags:   FlagFirstIsNode,
		Payload: Payload{Node: w, Index: int32(depth - 1)},
	}
}

// Unwrap returns the innermost, fully-dequoted form of c regardless of
// escape depth — used by generic actions that "see through quoting to
// the underlying type" (§3.3) while preserving depth on output via the
// caller re-wrapping with Requote.
func (c Cell) Unwrap() (inner Cell, depth int) {
	depth = c.QuoteDepth()
	if depth == 0 {
		return c, 0
	}
	if base, _ := c.Kind.Unescape(); base != KindQuoted {
		inner = c
		inner.Kind = base
		return inner, depth
	}
	w := c.Payload.Node.(*quoteWrapper)
	return w.Cells[0], depth
}

// Requote re-applies depth levels of quoting to inner, the inverse of
// Unwrap, so a generic action can preserve escape depth on its result.
func Requote(inner Cell, depth int) Cell {
	for i := 0; i < depth; i++ {
		inner = inner.Uneval()
	}
	return inner
}
