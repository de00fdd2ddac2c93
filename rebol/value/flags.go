package value

// Flags carries the per-cell bits described in §3.1: mark/protect/newline/
// first-is-node/end, plus the enfix/eval-time bits the evaluator (§4.3)
// needs on action-valued cells.
type Flags uint16

const (
	// FlagFirstIsNode means Payload.Node is a managed node pointer the GC
	// must trace (§3.1).
	FlagFirstIsNode Flags = 1 << iota

	// FlagEnd marks the cell as an end-of-array sentinel rather than a
	// real value.
	FlagEnd

	// FlagNewline records that a line break preceded this cell in source,
	// so MOLD can reproduce the original layout (§6).
	FlagNewline

	// FlagProtected marks the cell (not its series) as read-only.
	FlagProtected

	// FlagEnfixed marks an ACTION! cell as callable only in enfix (infix)
	// position (§4.3).
	FlagEnfixed

	// FlagEnfixDefer and FlagEnfixPostpone are the two per-action bits
	// that replace an operator precedence table (§4.3 "Enfix and
	// deferral").
	FlagEnfixDefer
	FlagEnfixPostpone

	// FlagThrown marks the evaluator's output cell as holding a thrown
	// label rather than a normal result (§4.3 "Output conventions").
	FlagThrown

	// FlagInvisible marks a dispatcher result as having contributed no
	// value to the enclosing expression (§3.2, §4.3).
	FlagInvisible
)

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Set returns f with mask's bits set.
func (f Flags) Set(mask Flags) Flags { return f | mask }

// Clear returns f with mask's bits cleared.
func (f Flags) Clear(mask Flags) Flags { return f &^ mask }
