package mold

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhencke/rebol-sub017/rebol/source"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// TestMoldLoadRoundTrip checks load(mold(v)) == v for reloadable types
// (§6 "Value molding", §8 round-trips).
func TestMoldLoadRoundTrip(t *testing.T) {
	sources := []string{
		"42",
		"-17",
		"1.5",
		"10%",
		"$12.5",
		"3x4",
		"1.2.3",
		"10:30",
		`#"a"`,
		`"hello world"`,
		`"escape ^/ these ^- chars"`,
		"#{DEADBEEF}",
		"%file.txt",
		"<tag>",
		"#issue",
		"word",
		"setme:",
		":getme",
		"/only",
		"'quoted",
		"''doubly",
		"_",
		"[1 2 [3 4] (5)]",
		"a/b/c",
		"a/b:",
		":a/b",
		"[a b]:",
	}
	syms := symbol.New()
	for _, src := range sources {
		lx := source.NewLexer([]byte(src), syms)
		first, err := lx.ScanAll()
		require.NoError(t, err, "lex %q", src)
		require.Len(t, first.Cells, 1, "want a single value from %q", src)

		molded := Mold(syms, first.Cells[0])
		lx2 := source.NewLexer([]byte(molded), syms)
		second, err := lx2.ScanAll()
		require.NoError(t, err, "re-lex %q (molded from %q)", molded, src)
		require.Len(t, second.Cells, 1, "re-lex of %q", molded)

		require.True(t, value.StrictEqual(first.Cells[0], second.Cells[0]),
			"round trip failed: %q -> %q", src, molded)
	}
}

func TestFormStripsDelimiters(t *testing.T) {
	syms := symbol.New()
	lx := source.NewLexer([]byte(`"hi"`), syms)
	s, err := lx.ScanAll()
	require.NoError(t, err)
	require.Equal(t, "hi", Form(syms, s.Cells[0]))
	require.Equal(t, `"hi"`, Mold(syms, s.Cells[0]))
}

func TestMoldNullAndLogic(t *testing.T) {
	syms := symbol.New()
	require.Equal(t, "null", Mold(syms, value.Null()))
	require.Equal(t, "true", Mold(syms, value.Logic(true)))
	require.Equal(t, "_", Mold(syms, value.Blank()))
}

func TestMoldQuotedDepth(t *testing.T) {
	syms := symbol.New()
	c := value.Integer(5)
	for i := 0; i < 5; i++ {
		c = c.Uneval()
	}
	require.Equal(t, "'''''5", Mold(syms, c))
}

func TestMoldOptsLimit(t *testing.T) {
	syms := symbol.New()
	lx := source.NewLexer([]byte(`"aaaaaaaaaaaaaaaaaaaa"`), syms)
	s, err := lx.ScanAll()
	require.NoError(t, err)
	out := MoldOpts(syms, s.Cells[0], Options{Limit: 5})
	require.Equal(t, `"aaaa...`, out)
}
