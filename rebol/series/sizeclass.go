package series

import "math"

// SizeClassConfig controls the allocator's granularity/fragmentation
// tradeoff. DefaultConfig is tuned for the short words and small blocks
// that dominate real scripts.
type SizeClassConfig struct {
	Name string

	SmallMin       int // minimum allocation size, typically 8
	SmallMax       int // ceiling for linear increments
	SmallIncrement int // linear step size

	LargeMax     int     // ceiling before falling back to raw host allocation
	GrowthFactor float64 // exponential step beyond SmallMax
}

// DefaultConfig favors many small linear classes (REBOL series are
// overwhelmingly short words, small blocks and short strings) and
// logarithmic growth above that.
var DefaultConfig = SizeClassConfig{
	Name:           "default",
	SmallMin:       8,
	SmallMax:       256,
	SmallIncrement: 16,
	LargeMax:       1 << 20,
	GrowthFactor:   1.5,
}

type sizeClassTable struct {
	config     SizeClassConfig
	boundaries []int
}

func newSizeClassTable(cfg SizeClassConfig) *sizeClassTable {
	t := &sizeClassTable{config: cfg, boundaries: make([]int, 0, 64)}

	for size := cfg.SmallMin; size < cfg.SmallMax; size += cfg.SmallIncrement {
		t.boundaries = append(t.boundaries, size+cfg.SmallIncrement-1)
	}

	size := cfg.SmallMax
	for size < cfg.LargeMax {
		next := int(math.Ceil(float64(size) * cfg.GrowthFactor))
		if next <= size {
			next = size + 1
		}
		t.boundaries = append(t.boundaries, next-1)
		size = next
	}

	return t
}

// classOf returns the size class index for size, or len(boundaries) if
// size exceeds every class (falls back to a dedicated host allocation).
func (t *sizeClassTable) classOf(size int) int {
	lo, hi := 0, len(t.boundaries)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		if size <= t.boundaries[mid] {
			if mid == 0 || size > t.boundaries[mid-1] {
				return mid
			}
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	return len(t.boundaries)
}

// capacityOf returns the slab size a given class index actually provides.
func (t *sizeClassTable) capacityOf(class int) int {
	if class < 0 || class >= len(t.boundaries) {
		return -1
	}
	return t.boundaries[class] + 1
}

func (t *sizeClassTable) numClasses() int { return len(t.boundaries) }
