package value

// Kind identifies a cell's datatype (§3.1). Values below kindShift are
// "real" kinds; KindEnd (0) is never a legal user value. Values at or
// above kindShift encode an inline-quoted form of a real kind: depth*64
// + base, so a quoted word costs exactly as much as a word (§3.3).
type Kind uint16

const kindShift Kind = 64

// MaxInlineQuoteDepth is the deepest escape level a Kind can carry
// without allocating a wrapper node (§3.3).
const MaxInlineQuoteDepth = 3

const (
	// KindEnd marks the end of an array; it is never a user-observable value.
	KindEnd Kind = iota

	KindBlank // `_` placeholder, distinct from null (§3.2)

	KindLogic
	KindInteger
	KindDecimal
	KindPercent
	KindMoney
	KindChar
	KindPair
	KindTuple
	KindTime
	KindDate

	KindBinary
	KindString
	KindFile
	KindEmail
	KindURL
	KindTag
	KindIssue

	KindBitset
	KindVector // minimal stub: the VECTOR! extension is an out-of-core collaborator
	KindImage  // minimal stub: image codecs are out-of-core collaborators
	KindGob    // minimal stub: GOB! graphics are an out-of-core collaborator
	KindHandle

	KindWord
	KindSetWord
	KindGetWord
	KindRefinement

	KindBlock
	KindGroup
	KindPath
	KindSetPath
	KindGetPath
	KindSetBlock

	KindMap
	KindObject
	KindError
	KindPort
	KindFrame
	KindAction
	KindVarargs

	// KindQuoted is used only for escape depths beyond MaxInlineQuoteDepth:
	// the cell's Payload.Node points at a wrapper Series holding the inner
	// cell, and Payload.Index carries the depth.
	KindQuoted

	kindMaxReal
)

// KindNull is the sentinel "no value" kind (§3.1: "MAX | null"). It is
// not a real datatype: NULL cannot be stored inside a block.
const KindNull = kindMaxReal

// bindableKinds are the kinds whose Extra slot holds a binding rather
// than type-specific bits (§3.1).
var bindableKinds = map[Kind]bool{
	KindWord: true, KindSetWord: true, KindGetWord: true, KindRefinement: true,
	KindBlock: true, KindGroup: true, KindPath: true, KindSetPath: true, KindGetPath: true, KindSetBlock: true,
}

// Bindable reports whether cells of this kind carry a binding in Extra.
func (k Kind) Bindable() bool {
	base, _ := k.Unescape()
	return bindableKinds[base]
}

// Aggregate reports whether cells of this kind store a Node+Index payload
// rather than inline data.
func (k Kind) Aggregate() bool {
	switch base, _ := k.Unescape(); base {
	case KindBinary, KindString, KindFile, KindEmail, KindURL, KindTag, KindIssue,
		KindBitset, KindVector, KindImage, KindGob, KindHandle,
		KindBlock, KindGroup, KindPath, KindSetPath, KindGetPath, KindSetBlock,
		KindMap, KindObject, KindError, KindPort, KindFrame, KindAction, KindVarargs:
		return true
	default:
		return false
	}
}

// Unescape strips any inline quote encoding, returning the base kind and
// the escape depth (0 if k was not quoted inline). For the KindQuoted
// wrapper form it returns KindQuoted with depth 0; callers that need
// that depth must inspect the cell's Payload.Index.
func (k Kind) Unescape() (base Kind, depth int) {
	if k < kindShift {
		return k, 0
	}
	d := int(k / kindShift)
	b := k % kindShift
	return b, d
}

// escape re-applies an inline quote depth to a base kind. It returns ok=false
// if depth exceeds MaxInlineQuoteDepth, in which case the caller must use
// a KindQuoted wrapper node instead.
func escape(base Kind, depth int) (Kind, bool) {
	if depth <= 0 {
		return base, true
	}
	if depth > MaxInlineQuoteDepth {
		return 0, false
	}
	return base + Kind(depth)*kindShift, true
}

var kindNames = map[Kind]string{
	KindBlank: "blank!", KindLogic: "logic!", KindInteger: "integer!",
	KindDecimal: "decimal!", KindPercent: "percent!", KindMoney: "money!",
	KindChar: "char!", KindPair: "pair!", KindTuple: "tuple!",
	KindTime: "time!", KindDate: "date!", KindBinary: "binary!",
	KindString: "text!", KindFile: "file!", KindEmail: "email!",
	KindURL: "url!", KindTag: "tag!", KindIssue: "issue!",
	KindBitset: "bitset!", KindVector: "vector!", KindImage: "image!",
	KindGob: "gob!", KindHandle: "handle!", KindWord: "word!",
	KindSetWord: "set-word!", KindGetWord: "get-word!", KindRefinement: "refinement!",
	KindBlock: "block!", KindGroup: "group!", KindPath: "path!", KindSetBlock: "set-block!",
	KindSetPath: "set-path!", KindGetPath: "get-path!", KindMap: "map!",
	KindObject: "object!", KindError: "error!", KindPort: "port!",
	KindFrame: "frame!", KindAction: "action!", KindVarargs: "varargs!",
	KindNull: "null",
}

// String returns the mold-style type name ("integer!") for k's base kind.
func (k Kind) String() string {
	base, _ := k.Unescape()
	if name, ok := kindNames[base]; ok {
		return name
	}
	return "unknown!"
}
