package context

import (
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// ParamClass tags a keylist slot with the parameter-gathering discipline
// the evaluator uses for it (§3.7, §4.3). Ordinary object/module keys use
// ClassNormal and ignore the other bits; only action paramlists populate
// the richer classes.
type ParamClass uint8

const (
	ClassNormal ParamClass = iota
	ClassTight
	ClassSoftQuote
	ClassHardQuote
	ClassModal
	ClassOutput
	ClassLocal
	ClassReturn
)

// ParamBits carries the orthogonal per-parameter bits §3.7 lists
// alongside the class: endable, skippable, variadic, hidden.
type ParamBits uint8

const (
	BitEndable ParamBits = 1 << iota
	BitSkippable
	BitVariadic
	BitHidden
	BitRefinement

	// BitRefineArg marks a refinement that takes one argument: when the
	// call site names it, the gathered value is stored in the
	// refinement's own slot (`/z [integer!]` puts 20 in z's slot for
	// `foo/z 10 20`); without it an active refinement's slot holds the
	// refinement-word itself.
	BitRefineArg

	// BitOutput marks an <output> refinement whose value participates
	// in SET-BLOCK! multi-return destructuring (§4.3).
	BitOutput
)

func (b ParamBits) Has(mask ParamBits) bool { return b&mask == mask }

// Key is one slot in a Keylist: a symbol plus (for action paramlists) its
// parameter class and bits. Plain object keys leave Class/Bits zero.
type Key struct {
	Sym   symbol.ID
	Class ParamClass
	Bits  ParamBits
}

// Keylist is the immutable, shareable ordered set of keys underlying a
// Context or an action's paramlist (§3.6, §3.7). Multiple contexts
// (derived objects, specializations) may share one Keylist; callers
// never mutate a Keylist in place once other contexts reference it —
// they copy-on-write into a new one (mirrors the teacher's shared,
// read-only subkeys list).
type Keylist struct {
	Keys []Key
	mark bool
}

// NewKeylist builds an (initially unmanaged) Keylist from keys.
func NewKeylist(keys ...Key) *Keylist {
	return &Keylist{Keys: append([]Key(nil), keys...)}
}

func (k *Keylist) Marked() bool   { return k.mark }
func (k *Keylist) SetMark(v bool) { k.mark = v }

// Trace is a no-op: a Keylist holds only symbol IDs, never node
// references, so the GC's walk ends here (§4.2 "keylist" is traced from
// the owning Context, but a keylist itself has no children).
func (k *Keylist) Trace(fn func(value.Node)) {}

// IndexOf returns the slot index for sym, or -1 if absent.
func (k *Keylist) IndexOf(sym symbol.ID) int {
	for i, key := range k.Keys {
		if key.Sym == sym {
			return i
		}
	}
	return -1
}

// Len returns the number of keys.
func (k *Keylist) Len() int { return len(k.Keys) }

// Extend returns a new Keylist with key appended. The receiver is left
// untouched: existing contexts sharing it are unaffected (§3.6 keylists
// are shared and conceptually immutable once published).
func (k *Keylist) Extend(key Key) *Keylist {
	next := make([]Key, len(k.Keys), len(k.Keys)+1)
	copy(next, k.Keys)
	next = append(next, key)
	return &Keylist{Keys: next}
}
