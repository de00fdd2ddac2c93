package context

import (
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// Chain is a small vector of contexts searched outward, the mechanism
// §4.5/§9 describe for derived binding: "a small vector of context
// references searched outward". FUNC bodies are bound per call against
// a Chain holding only the call's frame (other words keep their
// definition-time binding); METHOD bodies also search the context the
// action was fetched through.
type Chain []*Context

// Resolve finds sym in the first context of the chain (searched
// outward) that defines it, returning the context and slot index.
func (c Chain) Resolve(sym symbol.ID) (*Context, int, bool) {
	for _, ctx := range c {
		if i := ctx.IndexOf(sym); i >= 0 {
			return ctx, i, true
		}
	}
	return nil, 0, false
}

// Bind produces a copy of word bound to the slot sym resolves to in
// chain, or word unchanged (still unbound) if no context in chain
// defines it — the caller is then responsible for surfacing a
// not-bound error at use time (§7 "surfaced: ... end-of-input", word
// lookup failures follow the same late-surfacing rule).
func Bind(word value.Cell, chain Chain, sym symbol.ID) value.Cell {
	ctx, idx, ok := chain.Resolve(sym)
	if !ok {
		return word
	}
	return word.Bind(ctx, int32(idx))
}

// Lookup fetches the value a bound word currently resolves to. Callers
// must check Unbound first; an unbound word has no variable to fetch
// from (§3.6 binding invariant).
func Lookup(word value.Cell) (value.Cell, bool) {
	ctx, ok := word.Extra.Binding.(*Context)
	if !ok || ctx == nil {
		if f, ok := word.Extra.Binding.(*Frame); ok {
			return f.Values[word.Extra.Index], true
		}
		return value.Null(), false
	}
	idx := int(word.Extra.Index)
	if idx < 0 || idx >= len(ctx.Values) {
		return value.Null(), false
	}
	return ctx.Values[idx], true
}

// Poke stores v into the slot a bound word resolves to (§3.6, used by
// SET-WORD!/SET and SET-PATH!'s final step, §4.6).
func Poke(word value.Cell, v value.Cell) error {
	idx := int(word.Extra.Index)
	switch b := word.Extra.Binding.(type) {
	case *Context:
		if idx < 0 || idx >= len(b.Values) {
			return ErrNoSuchKey
		}
		if b.protected {
			return ErrProtected
		}
		b.Values[idx] = v
		return nil
	case *Frame:
		if idx < 0 || idx >= len(b.Values) {
			return ErrNoSuchKey
		}
		if b.Protected() {
			return ErrProtected
		}
		b.Values[idx] = v
		return nil
	default:
		return ErrNoSuchKey
	}
}
