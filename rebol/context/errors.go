package context

import "errors"

var (
	// ErrDuplicateKey is returned by Append when a key already exists;
	// §4.5 "Append to an object is permitted only for absent keys".
	ErrDuplicateKey = errors.New("context: key already exists")

	// ErrNoSuchKey is returned by Context.Set when a symbol is not in
	// the context's keylist, and by Poke when a word's binding does not
	// lead to a slot.
	ErrNoSuchKey = errors.New("context: no such key")

	// ErrProtected is returned when a slot write targets a protected
	// context (§5 "protected bit").
	ErrProtected = errors.New("context: context is protected")
)
