package symbol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternIsCaseInsensitive(t *testing.T) {
	tbl := New()
	a := tbl.Intern("Append")
	b := tbl.Intern("APPEND")
	c := tbl.Intern("append")
	require.Equal(t, a, b)
	require.Equal(t, a, c)
}

func TestFirstSpellingWins(t *testing.T) {
	tbl := New()
	id := tbl.Intern("CamelCase")
	tbl.Intern("camelcase")
	require.Equal(t, "CamelCase", tbl.Spelling(id))
}

func TestBuiltinsPreseeded(t *testing.T) {
	tbl := New()
	id, ok := tbl.Lookup("return")
	require.True(t, ok)
	require.Equal(t, SymReturn, id)
	require.Equal(t, SymReturn, tbl.Intern("RETURN"))
}

func TestLookupDoesNotIntern(t *testing.T) {
	tbl := New()
	_, ok := tbl.Lookup("never-seen")
	require.False(t, ok)
	id := tbl.Intern("never-seen")
	got, ok := tbl.Lookup("never-seen")
	require.True(t, ok)
	require.Equal(t, id, got)
}
