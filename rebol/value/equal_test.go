package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualSeesThroughQuoting(t *testing.T) {
	a := Integer(3)
	b := Integer(3).Uneval().Uneval()
	require.True(t, Equal(a, b))
	require.False(t, StrictEqual(a, b), "strict equality is quote-depth sensitive")
}

func TestEqualNumericCrossType(t *testing.T) {
	require.True(t, Equal(Integer(2), Decimal(2.0)))
	require.False(t, StrictEqual(Integer(2), Decimal(2.0)), "strict equality is kind sensitive")
}

func TestEqualStringCaseInsensitive(t *testing.T) {
	a := Cell{Kind: KindString, Flags: FlagFirstIsNode, Payload: Payload{Node: NewStringSeriesWith("Hello")}}
	b := Cell{Kind: KindString, Flags: FlagFirstIsNode, Payload: Payload{Node: NewStringSeriesWith("HELLO")}}
	require.True(t, Equal(a, b))
	require.False(t, StrictEqual(a, b))
}

func TestBlankEqualsBlank(t *testing.T) {
	require.True(t, Equal(Blank(), Blank()))
}

func TestOrderUndefinedForUnorderedKinds(t *testing.T) {
	_, ok := Order(Blank(), Blank())
	require.False(t, ok)

	cmp, ok := Order(Integer(1), Integer(2))
	require.True(t, ok)
	require.Equal(t, -1, cmp)
}

// NewStringSeriesWith is a small test helper building a ready-to-use
// string series from a Go string.
func NewStringSeriesWith(s string) *Series {
	ser := NewStringSeries(len(s))
	ser.Bytes = append(ser.Bytes, s...)
	ser.CPLen = len([]rune(s))
	return ser
}
