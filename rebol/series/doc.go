// Package series provides the size-classed, geometrically-growing node pool
// that backs every variable-length REBOL value: blocks, strings, binaries,
// contexts, actions, ports.
//
// # Overview
//
// Every non-atomic cell (§3.4 of the core's value model) points into a
// managed allocation rather than storing its payload inline. This package
// is the allocator for that managed storage: a segregated free-list design
// with small linear size classes for common small series (words, short
// strings) and logarithmic growth for large ones (big blocks, binaries).
//
// # Allocator interface
//
//   - Alloc(need, class): reserve a slab of at least need bytes
//   - Free(ref): return a slab to its free list for reuse
//   - Grow(ref, need): geometric resize of an existing slab in place when
//     possible, else relocate
//
// # Size classes
//
// Small allocations (8..256 bytes) use linear 16-byte increments; larger
// allocations grow by a 1.5x factor per class, same shape as a general
// purpose slab allocator, sized for the short words and small blocks that
// dominate real REBOL programs.
//
// # Thread safety
//
// A Pool is not safe for concurrent use; the evaluator is single-threaded
// (§5) and callers do not need to synchronize access externally.
package series
