package value

import "github.com/rhencke/rebol-sub017/rebol/series"

// Node is anything the garbage collector can mark and trace: a Series,
// or (via the interface, satisfied structurally by the context/action/
// port packages without value importing them) a Context, Frame, Action
// or Port. This is the generic "node" of §2 item 2 and §4.2: the GC
// walks cells to nodes and nodes to their children without needing to
// know every concrete node type.
type Node interface {
	// Marked reports the current GC mark bit.
	Marked() bool
	// SetMark sets or clears the GC mark bit.
	SetMark(bool)
	// Trace invokes fn once for every child Node this node references
	// (array elements' aggregates, LINK, MISC, keylist, parent/owner
	// back-references) so the collector can walk the whole graph
	// generically (§4.2).
	Trace(fn func(Node))
}

// NodeFlags holds the per-series bits described in §3.4.
type NodeFlags uint16

const (
	SeriesManaged NodeFlags = 1 << iota
	SeriesFixedSize
	SeriesProtected
	SeriesFrozenDeep
	SeriesAutoLocked
	SeriesExternal
	SeriesLinkNeedsMark
	SeriesMiscNeedsMark
)

func (f NodeFlags) Has(mask NodeFlags) bool { return f&mask == mask }

// Series is the managed, variable-length allocation backing every
// aggregate cell kind except contexts/frames/actions/ports, which are
// their own node types with a richer shape (§3.6-§3.7). A Series holds
// either array elements (Cells) or raw bytes (Bytes for strings,
// binaries, and bitsets), never both.
type Series struct {
	flags NodeFlags
	mark  bool

	// Cells backs BLOCK!/GROUP!/PATH!-family series. Len is the logical
	// length; cap(Cells) may exceed it (geometric growth, §3.4).
	Cells []Cell

	// Bytes backs TEXT!/FILE!/URL!/TAG!/BINARY!/BITSET! series. For
	// strings this is UTF-8; Text distinguishes codepoint-indexed
	// series from byte-indexed ones, and CPLen/CPOff/CPIdx form the
	// "bookmark cache" that makes sequential codepoint indexing
	// amortized O(1) (§3.4).
	Bytes []byte
	Text  bool
	CPLen int // cached codepoint count, valid when Text
	CPOff int // byte offset of the last bookmarked codepoint index
	CPIdx int // codepoint index the bookmark corresponds to

	// Link and Misc are the two GC-traceable or raw slots every series
	// header carries (§3.4). Which discipline applies is recorded by
	// the SeriesLinkNeedsMark/SeriesMiscNeedsMark flags.
	Link Node
	Misc Node

	// pool-backed slabs are optional: small series (words, short
	// strings) are plain Go slices and ref is zero.
	pool *series.Pool
	ref  series.Ref
}

// NewArraySeries creates an empty, unmanaged array series with room for
// cap elements.
func NewArraySeries(cap int) *Series {
	return &Series{Cells: make([]Cell, 0, cap)}
}

// NewStringSeries creates an empty, unmanaged UTF-8 string series.
func NewStringSeries(capBytes int) *Series {
	return &Series{Bytes: make([]byte, 0, capBytes), Text: true}
}

// NewBinarySeries creates an empty, unmanaged binary series.
func NewBinarySeries(capBytes int) *Series {
	return &Series{Bytes: make([]byte, 0, capBytes)}
}

func (s *Series) Marked() bool   { return s.mark }
func (s *Series) SetMark(v bool) { s.mark = v }

func (s *Series) Trace(fn func(Node)) {
	for i := range s.Cells {
		if n := s.Cells[i].Payload.Node; n != nil {
			fn(n)
		}
		if n := s.Cells[i].Extra.Binding; n != nil {
			fn(n)
		}
	}
	if s.flags.Has(SeriesLinkNeedsMark) && s.Link != nil {
		fn(s.Link)
	}
	if s.flags.Has(SeriesMiscNeedsMark) && s.Misc != nil {
		fn(s.Misc)
	}
}

// Manage hands the series to the GC: from this point on, any cell
// referencing it keeps it alive (§3.4 "Lifecycle").
func (s *Series) Manage() { s.flags |= SeriesManaged }

// Managed reports whether Manage has been called.
func (s *Series) Managed() bool { return s.flags.Has(SeriesManaged) }

// Protect marks the series read-only; mutation attempts must fail
// rather than silently succeed (§5 "protected bit").
func (s *Series) Protect() { s.flags |= SeriesProtected }

// Protected reports whether the series is marked read-only.
func (s *Series) Protected() bool { return s.flags.Has(SeriesProtected) }

// FreezeDeep sets the frozen-deep flag on this series only; series
// reachable through it are not flagged. Mutation paths check Protected,
// so the flag alone does not block writes: FREEZE and AS call Protect
// as well (§3.4, §5).
func (s *Series) FreezeDeep() { s.flags |= SeriesFrozenDeep }

func (s *Series) FrozenDeep() bool { return s.flags.Has(SeriesFrozenDeep) }

// Len returns the logical element count: codepoints for strings, bytes
// for binaries, cells for arrays.
func (s *Series) Len() int {
	switch {
	case s.Cells != nil:
		return len(s.Cells)
	case s.Text:
		return s.CPLen
	default:
		return len(s.Bytes)
	}
}

// Append appends a cell to an array series, growing geometrically.
func (s *Series) Append(c Cell) error {
	if s.Protected() {
		return series.ErrFrozen
	}
	s.Cells = append(s.Cells, c)
	return nil
}
