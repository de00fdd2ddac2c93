package api

import "errors"

var (
	// ErrReleased is returned when a released handle is used.
	ErrReleased = errors.New("api: value handle already released")

	// ErrNotAnInteger is returned by Unbox for non-INTEGER! results.
	ErrNotAnInteger = errors.New("api: result is not an integer")

	// ErrNotSpellable is returned by Spell for kinds with no spelling.
	ErrNotSpellable = errors.New("api: result has no spelling")

	// ErrBadFragment is returned by Run for an argument that is neither
	// a source string nor a value handle.
	ErrBadFragment = errors.New("api: unsupported fragment type")
)
