package series

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocFreeReuse(t *testing.T) {
	p := NewDefaultPool()

	ref, buf, err := p.Alloc(16, ClassString)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(buf), 16)

	require.NoError(t, p.Free(ref))
	require.Error(t, p.Free(ref), "double free must fail")

	ref2, buf2, err := p.Alloc(16, ClassString)
	require.NoError(t, err)
	require.Equal(t, ref, ref2, "same-class slab should be reused from the free list")
	for _, b := range buf2 {
		require.Zero(t, b, "reused slab must be zeroed")
	}
}

func TestGrowIsGeometricAndKeepsData(t *testing.T) {
	p := NewDefaultPool()
	ref, buf, err := p.Alloc(8, ClassBinary)
	require.NoError(t, err)
	copy(buf, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	grown, err := p.Grow(ref, 100)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(grown), 100)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, grown[:8])
}

func TestStatsTrackLiveBytes(t *testing.T) {
	p := NewDefaultPool()
	ref, buf, err := p.Alloc(64, ClassArray)
	require.NoError(t, err)

	s := p.StatsSnapshot()
	require.Equal(t, 1, s.Allocs)
	require.Equal(t, len(buf), s.LiveBytes)

	require.NoError(t, p.Free(ref))
	s = p.StatsSnapshot()
	require.Equal(t, 1, s.Frees)
	require.Zero(t, s.LiveBytes)
}

func TestSizeClassBoundaries(t *testing.T) {
	tbl := newSizeClassTable(DefaultConfig)
	cases := []struct {
		size int
	}{
		{1}, {8}, {16}, {17}, {255}, {256}, {1000}, {1 << 19},
	}
	for _, tc := range cases {
		class := tbl.classOf(tc.size)
		if class < tbl.numClasses() {
			require.GreaterOrEqual(t, tbl.capacityOf(class), tc.size,
				"class capacity must cover the request for size %d", tc.size)
		}
	}
}

func TestBadRefRejected(t *testing.T) {
	p := NewDefaultPool()
	_, err := p.Bytes(Ref(99))
	require.ErrorIs(t, err, ErrBadRef)
	_, err = p.Grow(Ref(0), 10)
	require.ErrorIs(t, err, ErrBadRef)
}
