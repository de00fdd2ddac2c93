// Package port implements PORT! (§6 "Ports"): an object with spec,
// scheme, actor, awake, state, data, and error fields whose scheme
// actor dispatches verbs (open, close, read, write, query, on-wake-up).
// Device-level I/O lives behind the Actor interface; the core never
// sees a socket or file descriptor.
//
// Events delivered to a port queue FIFO (§5 "Ordering") and are drained
// by Wait, which polls the halt flag and honors an advisory timeout
// (§5 "Cancellation").
package port
