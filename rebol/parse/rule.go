package parse

import "github.com/rhencke/rebol-sub017/rebol/value"

// Op tags what kind of combinator a compiled Rule node is (§4.7 lists
// the full rule vocabulary: literals, some/any/while, to/thru, into,
// skip, end, fail, not, ahead/and, copy/set, computed :(expr), do).
type Op uint8

const (
	OpLiteral Op = iota // match one element equal to Value
	OpSome              // 1+ repetitions of Sub
	OpAny               // 0+ repetitions of Sub
	OpWhile             // alias of Any in this implementation
	OpTo                // advance to (not through) a match of Sub
	OpThru              // advance through a match of Sub
	OpInto              // descend into a BLOCK! element, match Sub against it
	OpSkip              // consume one element unconditionally
	OpEnd               // succeed only at end of input
	OpFail              // always fail
	OpNot               // succeed (consuming nothing) iff Sub fails
	OpAhead             // succeed (consuming nothing) iff Sub succeeds (alias: AND)
	OpCapture           // copy/set word: — Sub must match; bind result to Word
	OpComputed          // plain WORD! or GROUP! — inject a rule computed at match time
	OpDo                // evaluate an expression from the input stream
	OpSeq               // sequence of Items, all must match in order
	OpAlt               // Items are alternatives (|), first match wins
)

// Rule is one compiled PARSE rule node.
type Rule struct {
	Op    Op
	Value value.Cell   // literal to match (OpLiteral), expr cell (OpComputed/OpDo)
	Sub   *Rule        // the rule repeated/advanced-to/negated/captured
	Items []*Rule      // OpSeq/OpAlt children
	Word  string       // capture target name for OpCapture
	IsSet bool         // true for `set word:`, false for `copy word:`
}
