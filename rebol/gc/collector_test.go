package gc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhencke/rebol-sub017/rebol/value"
)

type fakeNode struct {
	mark     bool
	managed  bool
	children []value.Node
}

func (n *fakeNode) Marked() bool   { return n.mark }
func (n *fakeNode) SetMark(v bool) { n.mark = v }
func (n *fakeNode) Managed() bool  { return n.managed }
func (n *fakeNode) Trace(fn func(value.Node)) {
	for _, c := range n.children {
		fn(c)
	}
}

type fakeCleaner struct {
	cleaned bool
}

func (c *fakeCleaner) Clean() { c.cleaned = true }

func TestUnreachableNodeGetsCleaned(t *testing.T) {
	col := New()
	orphan := &fakeNode{managed: true}
	cl := &fakeCleaner{}
	col.RegisterCleaner(orphan, cl)

	require.NoError(t, col.Recycle())
	require.True(t, cl.cleaned)
}

func TestReachableNodeSurvives(t *testing.T) {
	col := New()
	root := &fakeNode{managed: true}
	child := &fakeNode{managed: true}
	root.children = []value.Node{child}

	cl := &fakeCleaner{}
	col.RegisterCleaner(child, cl)
	col.AddRoot(func(visit func(value.Node)) { visit(root) })

	require.NoError(t, col.Recycle())
	require.False(t, cl.cleaned, "a managed series reachable from any root survives")

	// A second cycle with the root gone collects it.
	root.children = nil
	require.NoError(t, col.Recycle())
	require.True(t, cl.cleaned)
}

func TestGuardKeepsUnmanagedAlive(t *testing.T) {
	col := New()
	underConstruction := &fakeNode{}
	cl := &fakeCleaner{}
	col.RegisterCleaner(underConstruction, cl)

	col.Guard(underConstruction)
	require.NoError(t, col.Recycle())
	require.False(t, cl.cleaned)

	col.Unguard(underConstruction)
	require.NoError(t, col.Recycle())
	require.True(t, cl.cleaned)
}

func TestDebugModePanicsOnUnmanagedEscape(t *testing.T) {
	col := New()
	col.DebugMode = true

	root := &fakeNode{managed: true}
	escaped := &fakeNode{managed: false}
	root.children = []value.Node{escaped}
	col.AddRoot(func(visit func(value.Node)) { visit(root) })

	require.Panics(t, func() { _ = col.Recycle() })
}

func TestCycleCollectsAsAUnit(t *testing.T) {
	col := New()
	a := &fakeNode{managed: true}
	b := &fakeNode{managed: true}
	a.children = []value.Node{b}
	b.children = []value.Node{a}

	clA, clB := &fakeCleaner{}, &fakeCleaner{}
	col.RegisterCleaner(a, clA)
	col.RegisterCleaner(b, clB)

	require.NoError(t, col.Recycle())
	require.True(t, clA.cleaned, "detached cycles collect as a unit")
	require.True(t, clB.cleaned)
}
