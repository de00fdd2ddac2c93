package context

import (
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// Context is an object or module (§3.6): a Keylist plus one value.Cell
// per key, with an optional SELF slot and an optional meta object.
type Context struct {
	mark bool

	Keylist *Keylist
	Values  []value.Cell

	// Meta holds the context's metadata object (set via SET-META), nil
	// if none has been attached.
	Meta *Context

	// Selfless, when true, means this context was created without the
	// implicit SELF key (§4.5 "Objects have an implicit SELF unless
	// created selfless"); `make object!` contexts are not selfless.
	Selfless bool

	protected bool
}

// New builds a Context over keylist with one zero cell per key. New
// adds no SELF key itself, whatever selfless says: a caller that wants
// SELF appends it once the context exists (SELF must point at the
// context being constructed).
func New(keylist *Keylist, selfless bool) *Context {
	return &Context{
		Keylist:  keylist,
		Values:   make([]value.Cell, keylist.Len()),
		Selfless: selfless,
	}
}

func (c *Context) Marked() bool   { return c.mark }
func (c *Context) SetMark(v bool) { c.mark = v }

func (c *Context) Trace(fn func(value.Node)) {
	if c.Keylist != nil {
		fn(c.Keylist)
	}
	for i := range c.Values {
		if n := c.Values[i].Payload.Node; n != nil {
			fn(n)
		}
		if n := c.Values[i].Extra.Binding; n != nil {
			fn(n)
		}
	}
	if c.Meta != nil {
		fn(c.Meta)
	}
}

// Protect marks the context read-only (§5).
func (c *Context) Protect()        { c.protected = true }
func (c *Context) Protected() bool { return c.protected }

// IndexOf returns the slot index bound to sym, or -1.
func (c *Context) IndexOf(sym symbol.ID) int { return c.Keylist.IndexOf(sym) }

// Get returns the value at sym, or null plus false if the key is absent
// (§4.5 SELECT-style lookup: absent is a normal outcome, not an error).
func (c *Context) Get(sym symbol.ID) (value.Cell, bool) {
	i := c.IndexOf(sym)
	if i < 0 {
		return value.Null(), false
	}
	return c.Values[i], true
}

// Set writes v into the slot bound to sym. It fails if the context is
// protected or sym is absent.
func (c *Context) Set(sym symbol.ID, v value.Cell) error {
	if c.protected {
		return ErrProtected
	}
	i := c.IndexOf(sym)
	if i < 0 {
		return ErrNoSuchKey
	}
	c.Values[i] = v
	return nil
}

// Append adds a new key bound to v. It fails if sym is already present
// (§4.5 "Append to an object is permitted only for absent keys").
func (c *Context) Append(sym symbol.ID, v value.Cell) error {
	if c.protected {
		return ErrProtected
	}
	if c.IndexOf(sym) >= 0 {
		return ErrDuplicateKey
	}
	c.Keylist = c.Keylist.Extend(Key{Sym: sym})
	c.Values = append(c.Values, v)
	return nil
}

// Derive builds a new Context sharing base's Keylist and values by copy,
// the shape METHOD's dynamic dispatch resolves words against (§4.5
// "derived binding"): a derived object's own slots shadow the base
// object's for any key appended after derivation. Inherited slots are
// copied, so writes to either context do not show in the other.
func Derive(base *Context) *Context {
	values := make([]value.Cell, len(base.Values))
	copy(values, base.Values)
	return &Context{Keylist: base.Keylist, Values: values, Meta: base.Meta}
}
