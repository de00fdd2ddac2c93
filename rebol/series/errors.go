package series

import "errors"

var (
	// ErrNoSpace indicates that no free slab large enough was found and growth failed.
	ErrNoSpace = errors.New("series: no free slab large enough")

	// ErrBadRef indicates an invalid or stale slab reference.
	ErrBadRef = errors.New("series: bad slab reference")

	// ErrGrowFail indicates that growing the pool failed (out of host memory).
	ErrGrowFail = errors.New("series: grow failed")

	// ErrNotFree indicates an attempt to free a slab that is not currently allocated.
	ErrNotFree = errors.New("series: expected allocated slab")

	// ErrFrozen indicates an attempt to mutate a protected or frozen-deep series.
	ErrFrozen = errors.New("series: series is protected")
)
