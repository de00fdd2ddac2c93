package gc

import "github.com/rhencke/rebol-sub017/rebol/value"

// RootFunc supplies one source of GC roots: the data stack, the
// call-frame chain, the manual-tracking list, the symbol table's
// externally-visible handles, and global roots (system object, lib
// context, natives array) each register one (§4.2 "Roots").
type RootFunc func(visit func(value.Node))

// Cleaner is implemented by handle/port nodes that own a native
// resource needing explicit release when the collector determines they
// are unreachable (§4.2 "cleaners run before the pool is released;
// cleaners must not allocate").
type Cleaner interface {
	Clean()
}

// managed is satisfied by any Node that can report whether it has been
// handed to the collector yet (§3.4 "Lifecycle").
type managed interface {
	Managed() bool
}

// Collector walks the node graph from a set of registered roots and
// decides liveness; it never frees Go memory directly (the host runtime
// does that once nothing references a node), but it does run Cleaner
// callbacks for nodes that fall out of the live set, and it is the
// place DebugMode's invariant checks (§4.2, §8) are enforced.
type Collector struct {
	roots    []RootFunc
	cleaners map[value.Node]Cleaner
	guarded  map[value.Node]bool

	// DebugMode enables the "unmanaged series escaped" fatal check
	// (§4.2); production embeddings leave it off for speed, matching
	// the teacher's debug-vs-release asymmetry in validator.go.
	DebugMode bool
}

// New builds an empty Collector.
func New() *Collector {
	return &Collector{cleaners: make(map[value.Node]Cleaner), guarded: make(map[value.Node]bool)}
}

// AddRoot registers a root source. Called once per subsystem at boot
// (boot registers the system/lib contexts, rebol/api its retained
// handle list).
func (c *Collector) AddRoot(fn RootFunc) { c.roots = append(c.roots, fn) }

// Guard adds n to the manual-tracking list of unmanaged-but-guarded
// nodes (§4.2 Roots): a series under construction that is not yet
// reachable from any context but must survive a Recycle in between.
// Unguard removes it once the caller either calls Manage or discards it.
func (c *Collector) Guard(n value.Node)   { c.guarded[n] = true }
func (c *Collector) Unguard(n value.Node) { delete(c.guarded, n) }

// RegisterCleaner associates a Cleaner with n so Recycle can invoke it
// once n becomes unreachable (§4.2 handle finalization).
func (c *Collector) RegisterCleaner(n value.Node, cl Cleaner) { c.cleaners[n] = cl }

// Recycle performs one full mark-and-sweep pass: mark every node
// reachable from the registered roots, then run cleaners for any
// registered node that was not reached, and forget it (its Go memory is
// released whenever the host runtime next collects, since nothing in
// our graph still points to it once the cleaner releases the native
// resource).
//
// Recycle must never run while a cell is under partial construction
// (§4.2 "Recycle is never triggered during a cell's partial
// construction"); callers that build a cell either keep it rooted for
// the duration or call Guard/Unguard around the gap (see Guard).
func (c *Collector) Recycle() error {
	visited := make(map[value.Node]bool)
	var mark func(n value.Node)
	mark = func(n value.Node) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true
		if c.DebugMode {
			if m, ok := n.(managed); ok && !m.Managed() {
				if !c.guarded[n] {
					panic(ErrUnmanagedEscape)
				}
			}
		}
		n.SetMark(true)
		n.Trace(mark)
	}

	for _, root := range c.roots {
		root(mark)
	}
	for n := range c.guarded {
		mark(n)
	}

	for n, cl := range c.cleaners {
		if !visited[n] {
			cl.Clean()
			delete(c.cleaners, n)
		} else {
			n.SetMark(false) // reset for next cycle
		}
	}
	return nil
}
