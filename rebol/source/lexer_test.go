package source

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

func lexAll(t *testing.T, src string) ([]value.Cell, *symbol.Table) {
	t.Helper()
	syms := symbol.New()
	lx := NewLexer([]byte(src), syms)
	s, err := lx.ScanAll()
	require.NoError(t, err)
	return s.Cells, syms
}

func TestLexScalars(t *testing.T) {
	cases := []struct {
		src  string
		kind value.Kind
	}{
		{"42", value.KindInteger},
		{"-7", value.KindInteger},
		{"1.5", value.KindDecimal},
		{"10%", value.KindPercent},
		{"3x4", value.KindPair},
		{"1.2.3", value.KindTuple},
		{"10:30", value.KindTime},
		{"5-jan-2020", value.KindDate},
		{"$12.50", value.KindMoney},
		{`#"a"`, value.KindChar},
		{`"hello"`, value.KindString},
		{"%script.r", value.KindFile},
		{"<div>", value.KindTag},
		{"#issue", value.KindIssue},
		{"user@example.com", value.KindEmail},
		{"http://example.com", value.KindURL},
		{"_", value.KindBlank},
		{"word", value.KindWord},
		{"setme:", value.KindSetWord},
		{":getme", value.KindGetWord},
		{"/only", value.KindRefinement},
	}
	for _, tc := range cases {
		cells, _ := lexAll(t, tc.src)
		require.Len(t, cells, 1, "source %q", tc.src)
		require.Equal(t, tc.kind, cells[0].BaseKind(), "source %q", tc.src)
	}
}

func TestLexIntegerValues(t *testing.T) {
	cells, _ := lexAll(t, "1 -2 30")
	require.Len(t, cells, 3)
	require.EqualValues(t, 1, cells[0].AsInteger())
	require.EqualValues(t, -2, cells[1].AsInteger())
	require.EqualValues(t, 30, cells[2].AsInteger())
}

func TestLexNestedBlocksAndGroups(t *testing.T) {
	cells, _ := lexAll(t, "[1 (2 3) [4]]")
	require.Len(t, cells, 1)
	require.Equal(t, value.KindBlock, cells[0].BaseKind())

	inner := cells[0].Series().Cells
	require.Len(t, inner, 3)
	require.Equal(t, value.KindGroup, inner[1].BaseKind())
	require.Equal(t, value.KindBlock, inner[2].BaseKind())
}

func TestLexSetBlock(t *testing.T) {
	cells, _ := lexAll(t, "[a b]: 10")
	require.Len(t, cells, 2)
	require.Equal(t, value.KindSetBlock, cells[0].BaseKind())
}

func TestLexPaths(t *testing.T) {
	cells, syms := lexAll(t, "a/b/c obj/field: :x/y")
	require.Len(t, cells, 3)
	require.Equal(t, value.KindPath, cells[0].BaseKind())
	require.Equal(t, value.KindSetPath, cells[1].BaseKind())
	require.Equal(t, value.KindGetPath, cells[2].BaseKind())

	steps := cells[0].Series().Cells
	require.Len(t, steps, 3)
	require.Equal(t, "a", syms.Spelling(symbol.ID(steps[0].Extra.Bits)))
	require.Equal(t, "c", syms.Spelling(symbol.ID(steps[2].Extra.Bits)))
}

func TestLexQuotePrefix(t *testing.T) {
	cells, _ := lexAll(t, "'foo ''bar")
	require.Len(t, cells, 2)
	require.True(t, cells[0].Quoted())
	require.Equal(t, 1, cells[0].QuoteDepth())
	require.Equal(t, 2, cells[1].QuoteDepth())
	require.Equal(t, value.KindWord, cells[0].BaseKind())
}

func TestLexStringEscapes(t *testing.T) {
	cells, _ := lexAll(t, `"line^/tab^-caret^^quote^""`)
	require.Len(t, cells, 1)
	got := string(cells[0].Series().Bytes)
	require.Equal(t, "line\ntab\tcaret^quote\"", got)
}

func TestLexBracedStringNests(t *testing.T) {
	cells, _ := lexAll(t, "{outer {inner} tail}")
	require.Len(t, cells, 1)
	require.Equal(t, "outer {inner} tail", string(cells[0].Series().Bytes))
}

func TestLexBinaries(t *testing.T) {
	cells, _ := lexAll(t, "#{DEADBEEF} 2#{1111111100000000} 64#{aGk=}")
	require.Len(t, cells, 3)
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, cells[0].Series().Bytes)
	require.Equal(t, []byte{0xFF, 0x00}, cells[1].Series().Bytes)
	require.Equal(t, []byte("hi"), cells[2].Series().Bytes)
}

func TestLexComments(t *testing.T) {
	cells, _ := lexAll(t, "1 ; a comment\n2")
	require.Len(t, cells, 2)
	require.True(t, cells[1].Flags.Has(value.FlagNewline))
}

func TestLexOperators(t *testing.T) {
	cells, syms := lexAll(t, "1 + 2 <= 3")
	require.Len(t, cells, 5)
	require.Equal(t, "+", syms.Spelling(symbol.ID(cells[1].Extra.Bits)))
	require.Equal(t, "<=", syms.Spelling(symbol.ID(cells[3].Extra.Bits)))
}

func TestLexErrors(t *testing.T) {
	syms := symbol.New()
	for _, src := range []string{`"unterminated`, "[1 2", "#{XYZ}", "(a"} {
		lx := NewLexer([]byte(src), syms)
		_, err := lx.ScanAll()
		require.Error(t, err, "source %q", src)
	}
}

func TestLoadHeader(t *testing.T) {
	syms := symbol.New()
	res, err := Load([]byte(`REBOL [Title: "demo" Type: "script"] 1 2`), syms)
	require.NoError(t, err)
	require.NotNil(t, res.Header)
	require.Equal(t, "demo", res.Header.Title)
	require.Len(t, res.Body.Cells, 2)
}

func TestLoadWithoutHeader(t *testing.T) {
	syms := symbol.New()
	res, err := Load([]byte("1 2 3"), syms)
	require.NoError(t, err)
	require.Nil(t, res.Header)
	require.Len(t, res.Body.Cells, 3)
}

func TestNormalizeUTF16(t *testing.T) {
	// "hi" in UTF-16LE with BOM
	data := []byte{0xFF, 0xFE, 'h', 0, 'i', 0}
	out, err := Normalize(data)
	require.NoError(t, err)
	require.Equal(t, "hi", string(out))
}

func TestNormalizeLatin1Fallback(t *testing.T) {
	out, err := Normalize([]byte{'c', 0xE9}) // "cé" in Latin-1
	require.NoError(t, err)
	require.Equal(t, "cé", string(out))
}

func TestGatherSetWordsAndBind(t *testing.T) {
	syms := symbol.New()
	res, err := Load([]byte("a: 1 b: a"), syms)
	require.NoError(t, err)

	ctx := newTestContext()
	require.NoError(t, GatherSetWords(res.Body.Cells, ctx))
	require.GreaterOrEqual(t, ctx.Keylist.Len(), 2)

	BindDeep(res.Body.Cells, testChain(ctx))
	require.False(t, res.Body.Cells[0].Unbound(), "set-word should be bound")
	require.False(t, res.Body.Cells[3].Unbound(), "word should be bound")
}
