package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEndAndNull(t *testing.T) {
	require.True(t, End().IsEnd())
	require.True(t, Null().IsNull())
	require.False(t, Blank().IsNull())
	require.True(t, Blank().IsBlank())
}

func TestVoidIsDistinctFromBlank(t *testing.T) {
	v := Void()
	require.True(t, v.IsVoid())
	require.True(t, v.IsBlank()) // void is a variant of blank's base kind
	require.False(t, Blank().IsVoid())
}

func TestTruthy(t *testing.T) {
	require.False(t, Null().Truthy())
	require.False(t, Logic(false).Truthy())
	require.True(t, Logic(true).Truthy())
	require.True(t, Blank().Truthy())
	require.True(t, Integer(0).Truthy())
}

func TestIntegerRoundTrip(t *testing.T) {
	c := Integer(-42)
	require.Equal(t, KindInteger, c.Kind)
	require.EqualValues(t, -42, c.AsInteger())
}

func TestBindIsValueSemantic(t *testing.T) {
	orig := WordCell(KindWord, 7)
	require.True(t, orig.Unbound())

	ctx := &Series{}
	bound := orig.Bind(ctx, 3)

	require.True(t, orig.Unbound(), "binding must not mutate the source cell")
	require.False(t, bound.Unbound())
	require.EqualValues(t, 3, bound.Extra.Index)
}
