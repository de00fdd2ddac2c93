package gc

import "errors"

// ErrUnmanagedEscape is the fatal-bug condition §4.2 calls out: "An
// unmanaged series that no one guards and the GC sees is a fatal bug."
// With DebugMode on, Recycle panics with it instead of silently
// ignoring the node; with DebugMode off the check is skipped.
var ErrUnmanagedEscape = errors.New("gc: unmanaged node reachable with no guard and not managed")
