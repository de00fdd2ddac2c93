package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnevalDequoteRoundTrip(t *testing.T) {
	w := WordCell(KindWord, 5)
	for depth := 1; depth <= 6; depth++ {
		q := w
		for i := 0; i < depth; i++ {
			q = q.Uneval()
		}
		require.Equal(t, depth, q.QuoteDepth(), "depth %d", depth)
		require.True(t, q.Quoted())

		back := q
		for i := 0; i < depth; i++ {
			back = back.Dequote()
		}
		require.Equal(t, 0, back.QuoteDepth())
		require.Equal(t, w.Extra.Bits, back.Extra.Bits)
	}
}

func TestUnevalRaisesDepthByExactlyOne(t *testing.T) {
	c := Integer(9)
	require.Equal(t, 0, c.QuoteDepth())
	c = c.Uneval()
	require.Equal(t, 1, c.QuoteDepth())
	c = c.Uneval()
	require.Equal(t, 2, c.QuoteDepth())
}

func TestInlineLimitSpillsToWrapperNode(t *testing.T) {
	c := Integer(1)
	for i := 0; i < MaxInlineQuoteDepth; i++ {
		c = c.Uneval()
	}
	require.Equal(t, MaxInlineQuoteDepth, c.QuoteDepth())
	require.NotEqual(t, KindQuoted, c.BaseKind(), "depth within limit stays inline")

	c = c.Uneval()
	require.Equal(t, MaxInlineQuoteDepth+1, c.QuoteDepth())
	require.Equal(t, KindQuoted, c.BaseKind(), "depth past limit must allocate a wrapper")

	inner, depth := c.Unwrap()
	require.Equal(t, MaxInlineQuoteDepth+1, depth)
	require.Equal(t, KindInteger, inner.Kind)
	require.EqualValues(t, 1, inner.AsInteger())
}

func TestRequoteInvertsUnwrap(t *testing.T) {
	c := Integer(4).Uneval().Uneval().Uneval().Uneval().Uneval()
	inner, depth := c.Unwrap()
	back := Requote(inner, depth)

	require.Equal(t, c.QuoteDepth(), back.QuoteDepth())
	backInner, _ := back.Unwrap()
	require.EqualValues(t, 4, backInner.AsInteger())
}
