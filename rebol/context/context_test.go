package context

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

func TestAppendRejectsDuplicates(t *testing.T) {
	syms := symbol.New()
	ctx := New(NewKeylist(), true)
	a := syms.Intern("a")

	require.NoError(t, ctx.Append(a, value.Integer(1)))
	require.ErrorIs(t, ctx.Append(a, value.Integer(2)), ErrDuplicateKey)

	got, ok := ctx.Get(a)
	require.True(t, ok)
	require.EqualValues(t, 1, got.AsInteger())
}

func TestSetRequiresExistingKey(t *testing.T) {
	syms := symbol.New()
	ctx := New(NewKeylist(), true)
	require.ErrorIs(t, ctx.Set(syms.Intern("missing"), value.Blank()), ErrNoSuchKey)
}

func TestProtectedContextRejectsWrites(t *testing.T) {
	syms := symbol.New()
	ctx := New(NewKeylist(), true)
	a := syms.Intern("a")
	require.NoError(t, ctx.Append(a, value.Integer(1)))

	ctx.Protect()
	require.ErrorIs(t, ctx.Set(a, value.Integer(2)), ErrProtected)
	require.ErrorIs(t, ctx.Append(syms.Intern("b"), value.Blank()), ErrProtected)
}

func TestKeylistExtendLeavesOriginalUntouched(t *testing.T) {
	syms := symbol.New()
	kl := NewKeylist(Key{Sym: syms.Intern("a")})
	kl2 := kl.Extend(Key{Sym: syms.Intern("b")})

	require.Equal(t, 1, kl.Len())
	require.Equal(t, 2, kl2.Len())
	require.Equal(t, -1, kl.IndexOf(syms.Intern("b")))
}

func TestLookupThroughBoundWord(t *testing.T) {
	syms := symbol.New()
	ctx := New(NewKeylist(), true)
	a := syms.Intern("a")
	require.NoError(t, ctx.Append(a, value.Integer(42)))

	word := value.WordCell(value.KindWord, uint64(a))
	bound := Bind(word, Chain{ctx}, a)
	got, ok := Lookup(bound)
	require.True(t, ok)
	require.EqualValues(t, 42, got.AsInteger())

	// get(w) == k.values[i] stays true after a write through Poke.
	require.NoError(t, Poke(bound, value.Integer(7)))
	got, _ = Lookup(bound)
	require.EqualValues(t, 7, got.AsInteger())
	direct, _ := ctx.Get(a)
	require.EqualValues(t, 7, direct.AsInteger())
}

func TestChainResolvesOutward(t *testing.T) {
	syms := symbol.New()
	inner := New(NewKeylist(), true)
	outer := New(NewKeylist(), true)
	a := syms.Intern("a")
	require.NoError(t, outer.Append(a, value.Integer(1)))
	require.NoError(t, inner.Append(a, value.Integer(2)))

	ctx, idx, ok := Chain{inner, outer}.Resolve(a)
	require.True(t, ok)
	require.Same(t, inner, ctx, "nearest context shadows")
	require.Zero(t, idx)
}

func TestDeriveSharesKeylist(t *testing.T) {
	syms := symbol.New()
	base := New(NewKeylist(), true)
	a := syms.Intern("a")
	require.NoError(t, base.Append(a, value.Integer(1)))

	derived := Derive(base)
	require.Same(t, base.Keylist, derived.Keylist)

	// Writes to the derived context do not touch the base.
	require.NoError(t, derived.Set(a, value.Integer(9)))
	got, _ := base.Get(a)
	require.EqualValues(t, 1, got.AsInteger())
}

type stubDispatcher struct {
	pl *Keylist
}

func (s *stubDispatcher) Paramlist() *Keylist { return s.pl }
func (s *stubDispatcher) Label() string       { return "stub" }
func (s *stubDispatcher) Dispatch(f *Frame) (Signal, error) {
	f.Out = value.Integer(99)
	return SignalNormal, nil
}

func TestFramePokeAndRephase(t *testing.T) {
	syms := symbol.New()
	pl := NewKeylist(Key{Sym: syms.Intern("x")})
	d := &stubDispatcher{pl: pl}
	f := NewFrame(d, nil, "call")

	require.Len(t, f.Values, 1)
	f.SetArgAt(0, value.Integer(5))
	require.EqualValues(t, 5, f.ArgAt(0).AsInteger())

	word := value.WordCell(value.KindWord, uint64(syms.Intern("x"))).Bind(f, 0)
	require.NoError(t, Poke(word, value.Integer(6)))
	require.EqualValues(t, 6, f.ArgAt(0).AsInteger())

	d2 := &stubDispatcher{pl: pl}
	f.Rephase(d2)
	require.Same(t, d2, f.Phase.(*stubDispatcher))
}
