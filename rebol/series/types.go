package series

// Ref is an opaque handle to a slab owned by a Pool. It stays valid across
// Grow (which may relocate the backing buffer) but is invalidated by Free.
type Ref uint32

// Class distinguishes the element discipline of the slab: arrays hold
// fixed-width element slots the owner casts back to cells; strings and
// binaries hold raw bytes.
type Class uint8

const (
	// ClassArray backs BLOCK!, GROUP!, PATH! and other element arrays.
	ClassArray Class = iota + 1
	// ClassString backs TEXT!/FILE!/URL!/TAG! UTF-8 byte buffers.
	ClassString
	// ClassBinary backs BINARY! byte buffers.
	ClassBinary
	// ClassKeylist backs context keylists (immutable, shared).
	ClassKeylist
	// ClassBitset backs BITSET! bit vectors.
	ClassBitset
)

// Allocator is the interface the value package's Node type uses for
// out-of-band storage. Small series keep their payload inline and never
// touch an Allocator at all.
type Allocator interface {
	// Alloc reserves a zeroed slab of at least need bytes for the given
	// class and returns a handle plus a byte view onto it.
	Alloc(need int, cls Class) (Ref, []byte, error)

	// Free returns a slab to its size class free list.
	Free(ref Ref) error

	// Grow resizes an existing slab to at least need bytes, relocating
	// if the current slab (or its free neighbors) cannot satisfy it in
	// place. It returns the (possibly new) byte view; Ref is unchanged.
	Grow(ref Ref, need int) ([]byte, error)

	// Bytes returns the current byte view for a live ref.
	Bytes(ref Ref) ([]byte, error)
}
