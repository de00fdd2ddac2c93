// Package gc implements the mark-and-sweep collector described in §4.2.
// It does not manage raw memory — the host Go runtime already does that
// — it enforces the interpreter's own reachability discipline: which
// series/contexts/frames/actions are "live" from the evaluator's point
// of view, and when a handle or port's cleaner callback must run (§4.2
// "Finalization order is defined only for handles").
//
// Grounded on hive/walker's traversal (the generic "reach children from
// a node" shape, here driving Node.Trace instead of NK/VK child links)
// and hive/dirty's flag-gated tracing of LINK/MISC (here generalized to
// SeriesLinkNeedsMark/SeriesMiscNeedsMark rather than OS-specific dirty
// page bits).
package gc
