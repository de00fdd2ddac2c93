package action

import "errors"

var (
	// ErrParamlistMismatch is returned by HIJACK/RESKIN when the
	// replacement dispatcher's paramlist is not call-compatible with the
	// target's (§4.4 "subject to paramlist compatibility rules").
	ErrParamlistMismatch = errors.New("action: paramlist incompatible with target")

	// ErrNotSpecializable is returned by SPECIALIZE when a refinement or
	// parameter name does not exist on the inner action.
	ErrNotSpecializable = errors.New("action: no such parameter")

	// ErrAugmentConflict is returned by AUGMENT when the new parameter
	// name collides with an existing one.
	ErrAugmentConflict = errors.New("action: augmented parameter already exists")
)
