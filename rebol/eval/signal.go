package eval

import "github.com/rhencke/rebol-sub017/rebol/value"

// Outcome is one step's (or one whole DO's) result: a value plus enough
// side information for the caller to tell a plain value apart from the
// non-value cases §3.2/§4.3 define (null, invisible, thrown).
type Outcome struct {
	Value value.Cell

	// Invisible marks a result that contributed nothing to the
	// enclosing expression (§3.2): the caller must act as if the call
	// producing it had not occurred.
	Invisible bool

	// Thrown marks a non-local exit in progress: Value holds the throw
	// label and ThrownValue its payload, both propagating up through
	// every enclosing Do call until a matching CATCH/TRAP intercepts it
	// (§3.8, §4.3 "Output conventions").
	Thrown      bool
	ThrownValue value.Cell
}

// Halted reports true once a halt request (Ctrl-C) has been observed.
// DoBlock polls it before each step, as do the WHILE native's loop and
// port WAIT; series growth does not poll it (§4.3 "Halt and
// cancellation", §5).
type Halted func() bool

// NeverHalt is the default Halted for embeddings that never
// deliver an external halt signal (e.g. a one-shot script run with no
// console attached).
func NeverHalt() bool { return false }
