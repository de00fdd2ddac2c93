package api

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhencke/rebol-sub017/rebol/boot"
)

func mustSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(boot.DefaultOptions())
	require.NoError(t, err)
	return s
}

func TestUnboxArithmetic(t *testing.T) {
	s := mustSession(t)
	n, err := s.Unbox("1 + 2 * 3")
	require.NoError(t, err)
	require.EqualValues(t, 9, n)
}

func TestDid(t *testing.T) {
	s := mustSession(t)
	ok, err := s.Did("1 < 2")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Did("2 < 1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSpell(t *testing.T) {
	s := mustSession(t)
	got, err := s.Spell("'hello")
	require.NoError(t, err)
	require.Equal(t, "hello", got)

	got, err = s.Spell(`"text value"`)
	require.NoError(t, err)
	require.Equal(t, "text value", got)
}

func TestValueSplicing(t *testing.T) {
	s := mustSession(t)
	ten, err := s.Run("10")
	require.NoError(t, err)

	n, err := s.Unbox("5 + ", ten)
	require.NoError(t, err)
	require.EqualValues(t, 15, n)
}

func TestReleaseInvalidatesHandle(t *testing.T) {
	s := mustSession(t)
	v, err := s.Run("42")
	require.NoError(t, err)

	require.NoError(t, v.Release())
	require.ErrorIs(t, v.Release(), ErrReleased)
	_, err = v.Cell()
	require.ErrorIs(t, err, ErrReleased)

	_, err = s.Run("1 + ", v)
	require.ErrorIs(t, err, ErrReleased)
}

func TestManageReinstates(t *testing.T) {
	s := mustSession(t)
	v, err := s.Run("7")
	require.NoError(t, err)
	require.NoError(t, v.Release())
	require.NoError(t, v.Manage())

	c, err := v.Cell()
	require.NoError(t, err)
	require.EqualValues(t, 7, c.AsInteger())
}

func TestRepossessReleases(t *testing.T) {
	s := mustSession(t)
	v, err := s.Run("3")
	require.NoError(t, err)

	c, err := v.Repossess()
	require.NoError(t, err)
	require.EqualValues(t, 3, c.AsInteger())
	_, err = v.Cell()
	require.ErrorIs(t, err, ErrReleased)
}

func TestHandleCleanerRunsOnRecycle(t *testing.T) {
	s := mustSession(t)
	cleaned := false
	h := s.Handle("resource", func() { cleaned = true })

	require.NoError(t, s.Runtime().GC.Recycle())
	require.False(t, cleaned, "retained handle must survive")

	require.NoError(t, h.Release())
	require.NoError(t, s.Runtime().GC.Recycle())
	require.True(t, cleaned, "released handle's cleaner runs on sweep")
}

func TestBadFragmentRejected(t *testing.T) {
	s := mustSession(t)
	_, err := s.Run(42)
	require.ErrorIs(t, err, ErrBadFragment)
}

func TestErrorsSurfaceNotPanic(t *testing.T) {
	s := mustSession(t)
	_, err := s.Run("no-such-word-here")
	require.Error(t, err)
}
