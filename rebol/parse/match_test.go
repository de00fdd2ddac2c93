package parse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

func word(syms *symbol.Table, spelling string) value.Cell {
	return value.WordCell(value.KindWord, uint64(syms.Intern(spelling)))
}

func str(text string) value.Cell {
	s := &value.Series{Bytes: []byte(text), Text: true}
	return value.AggregateCell(value.KindString, s, 0)
}

func compile(t *testing.T, syms *symbol.Table, cells ...value.Cell) *Rule {
	t.Helper()
	r, err := Compile(cells, syms)
	require.NoError(t, err)
	return r
}

func TestSomeRepetition(t *testing.T) {
	syms := symbol.New()
	// [some "a" some "b" end]
	r := compile(t, syms,
		word(syms, "some"), str("a"),
		word(syms, "some"), str("b"),
		word(syms, "end"))

	m := &Matcher{Syms: syms}
	_, ok, err := m.Match(r, Cursor{Text: []rune("aaabbb")})
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = m.Match(r, Cursor{Text: []rune("aaabbc")})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAnyMatchesZero(t *testing.T) {
	syms := symbol.New()
	r := compile(t, syms, word(syms, "any"), str("x"), word(syms, "end"))
	m := &Matcher{Syms: syms}
	_, ok, err := m.Match(r, Cursor{Text: []rune("")})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestToAndThru(t *testing.T) {
	syms := symbol.New()

	to := compile(t, syms, word(syms, "to"), str("b"))
	m := &Matcher{Syms: syms}
	cur, ok, err := m.Match(to, Cursor{Text: []rune("aaab")})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, cur.Pos, "to stops before the match")

	thru := compile(t, syms, word(syms, "thru"), str("b"))
	cur, ok, err = m.Match(thru, Cursor{Text: []rune("aaab")})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 4, cur.Pos, "thru advances through the match")
}

func TestAlternatives(t *testing.T) {
	syms := symbol.New()
	// ["cat" | "dog"]
	r := compile(t, syms, str("cat"), word(syms, "|"), str("dog"))
	m := &Matcher{Syms: syms}

	_, ok, _ := m.Match(r, Cursor{Text: []rune("dog")})
	require.True(t, ok)
	_, ok, _ = m.Match(r, Cursor{Text: []rune("cow")})
	require.False(t, ok)
}

func TestNotAndAhead(t *testing.T) {
	syms := symbol.New()
	m := &Matcher{Syms: syms}

	not := compile(t, syms, word(syms, "not"), str("x"), word(syms, "skip"))
	cur, ok, _ := m.Match(not, Cursor{Text: []rune("y")})
	require.True(t, ok)
	require.Equal(t, 1, cur.Pos, "not consumes nothing; skip consumes one")

	ahead := compile(t, syms, word(syms, "ahead"), str("y"), word(syms, "skip"))
	cur, ok, _ = m.Match(ahead, Cursor{Text: []rune("y")})
	require.True(t, ok)
	require.Equal(t, 1, cur.Pos)
}

func TestBlockInputLiterals(t *testing.T) {
	syms := symbol.New()
	r := compile(t, syms, value.Integer(1), value.Integer(2), word(syms, "end"))
	m := &Matcher{Syms: syms}
	_, ok, err := m.Match(r, Cursor{Block: []value.Cell{value.Integer(1), value.Integer(2)}})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIntoDescends(t *testing.T) {
	syms := symbol.New()
	inner := &value.Series{Cells: []value.Cell{value.Integer(5)}}
	input := []value.Cell{value.AggregateCell(value.KindBlock, inner, 0)}

	// [into [5] end]
	sub := &value.Series{Cells: []value.Cell{value.Integer(5)}}
	r := compile(t, syms,
		word(syms, "into"), value.AggregateCell(value.KindBlock, sub, 0),
		word(syms, "end"))
	m := &Matcher{Syms: syms}
	_, ok, err := m.Match(r, Cursor{Block: input})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCaptureCopy(t *testing.T) {
	syms := symbol.New()
	// [copy grabbed some "a" "b"]
	r := compile(t, syms,
		word(syms, "copy"), word(syms, "grabbed"),
		word(syms, "some"), str("a"),
		str("b"))
	m := &Matcher{Syms: syms}
	_, ok, err := m.Match(r, Cursor{Text: []rune("aab")})
	require.NoError(t, err)
	require.True(t, ok)

	captured, found := m.Capture["grabbed"]
	require.True(t, found)
	require.Equal(t, "aa", string(captured.Series().Bytes))
}

func TestFailAlwaysFails(t *testing.T) {
	syms := symbol.New()
	r := compile(t, syms, word(syms, "fail"))
	m := &Matcher{Syms: syms}
	_, ok, _ := m.Match(r, Cursor{Text: []rune("anything")})
	require.False(t, ok)
}

func TestComputedRuleViaDo(t *testing.T) {
	syms := symbol.New()
	// The computed step yields [ "a" ] as a sub-rule at match time.
	subRule := &value.Series{Cells: []value.Cell{str("a")}}
	group := value.AggregateCell(value.KindGroup, &value.Series{}, 0)

	r := compile(t, syms, group, word(syms, "end"))
	m := &Matcher{
		Syms: syms,
		Do: func(cells []value.Cell, caller *context.Frame) (value.Cell, error) {
			return value.AggregateCell(value.KindBlock, subRule, 0), nil
		},
	}
	_, ok, err := m.Match(r, Cursor{Text: []rune("a")})
	require.NoError(t, err)
	require.True(t, ok)
}
