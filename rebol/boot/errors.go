package boot

import "errors"

var (
	// ErrBadSpec is returned by FUNC/METHOD/AUGMENT/RESKIN for a spec
	// block the paramlist builder cannot interpret.
	ErrBadSpec = errors.New("boot: malformed function spec")

	// ErrNotAnAction is returned by the action combinators when their
	// target argument does not hold an ACTION!.
	ErrNotAnAction = errors.New("boot: argument is not an action")

	// ErrNotHijackable is returned by HIJACK when the target was not
	// created through the hijackable indirection (natives are fixed).
	ErrNotHijackable = errors.New("boot: target action cannot be hijacked")

	// ErrBadMake is returned by MAKE for an unsupported type/spec pair;
	// unlisted conversions fail rather than guess (§9 TO conversions).
	ErrBadMake = errors.New("boot: cannot make that type from that spec")
)
