// Package action implements the (paramlist, body, dispatcher, details)
// triple described in §3.7: every callable REBOL value, native or
// user-defined, is one Action. SPECIALIZE, ADAPT, ENCLOSE, AUGMENT,
// CHAIN, RESKIN and HIJACK (§4.4) are all expressed as a new Action
// whose dispatcher wraps an inner Action's dispatcher — composition,
// not a parallel class hierarchy.
//
// Grounded on the teacher's hive/merge/strategy package: Strategy's
// three interchangeable write implementations (InPlace/Append/Hybrid),
// all satisfying one interface and sharing a Base that holds common
// state, is the same shape as composite-action dispatch: one
// Dispatcher interface, several wrapping implementations, a shared
// Base embedding the inner Action.
package action
