// Package context implements the keylist-plus-values-array container
// described in §3.6: objects, modules, and frames are all one shape, a
// Context. A Frame (§3.6, §4.3) is a Context whose keylist is an action's
// paramlist and whose values are the caller's arguments, plus a Phase
// pointer and a caller link so composite actions (§4.4) can move the
// phase outward as each layer completes.
//
// Grounded on the teacher's hive/subkeys (child-name index) and
// hive/values (value-cell array per key) packages: a subkeys list paired
// with a values array is exactly a keylist paired with a values array,
// generalized from "registry key children" to "object/frame slots".
// Derived binding (§4.5) generalizes hive/link's parent-offset chase: a
// word looked up through a derived object walks the same kind of
// outward-chained reference hive/link follows from a key cell to its
// owning hive.
package context
