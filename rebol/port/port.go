package port

import (
	"time"

	"github.com/rhencke/rebol-sub017/rebol/value"
)

// Verb names the operations a scheme actor understands.
type Verb string

const (
	VerbOpen   Verb = "open"
	VerbClose  Verb = "close"
	VerbRead   Verb = "read"
	VerbWrite  Verb = "write"
	VerbQuery  Verb = "query"
	VerbWakeUp Verb = "on-wake-up"
)

// Actor is a scheme's behavior: one dispatch point for every verb,
// mirroring how an ACTION! cell dispatches a frame (§6 "The scheme's
// actor is an action that dispatches verbs").
type Actor interface {
	Act(p *Port, verb Verb, arg value.Cell) (value.Cell, error)
}

// Event is one queued notification for a port.
type Event struct {
	Kind string
	Data value.Cell
}

// Port is the PORT! node (§6): spec plus scheme linkage plus the FIFO
// event queue WAIT drains.
type Port struct {
	mark bool

	Scheme string
	Actor  Actor

	Spec  value.Cell // scheme-specific open spec (a FILE!, a URL!, an object)
	Awake value.Cell // user AWAKE handler action, dispatched per event
	State value.Cell
	Data  value.Cell
	Err   value.Cell

	// AutoClose holds the port's auto-close mark. Nothing in the
	// evaluator's unwind reads it: a port is not closed when an error
	// unwinds past it.
	AutoClose bool

	events []Event
	opened bool
}

func (p *Port) Marked() bool   { return p.mark }
func (p *Port) SetMark(v bool) { p.mark = v }

func (p *Port) Trace(fn func(value.Node)) {
	for _, c := range [...]value.Cell{p.Spec, p.Awake, p.State, p.Data, p.Err} {
		if n := c.Payload.Node; n != nil {
			fn(n)
		}
	}
}

// Opened reports whether the port is currently open.
func (p *Port) Opened() bool { return p.opened }

// Post enqueues an event; ordering is strictly FIFO per port (§5).
func (p *Port) Post(e Event) { p.events = append(p.events, e) }

// Pending reports whether any event is queued.
func (p *Port) Pending() bool { return len(p.events) > 0 }

// Take dequeues the oldest event.
func (p *Port) Take() (Event, bool) {
	if len(p.events) == 0 {
		return Event{}, false
	}
	e := p.events[0]
	p.events = p.events[1:]
	return e, true
}

// Cell wraps p as a PORT! value.
func (p *Port) Cell() value.Cell {
	return value.Cell{Kind: value.KindPort, Flags: value.FlagFirstIsNode,
		Payload: value.Payload{Node: p}}
}

// FromCell extracts the Port behind a PORT! cell, or nil.
func FromCell(c value.Cell) *Port {
	p, _ := c.Payload.Node.(*Port)
	return p
}

// Maker builds a port for a scheme from its open spec.
type Maker func(spec value.Cell) (*Port, error)

var schemes = map[string]Maker{}

// Register installs a scheme by name. Collaborator packages (the file
// device, a future network device) register themselves at init; the
// core dispatches by name and never learns what is behind the actor.
func Register(name string, mk Maker) { schemes[name] = mk }

// Open resolves the scheme by name, builds the port, and runs the
// actor's open verb.
func Open(scheme string, spec value.Cell) (*Port, error) {
	mk, ok := schemes[scheme]
	if !ok {
		return nil, ErrNoScheme
	}
	p, err := mk(spec)
	if err != nil {
		return nil, err
	}
	if _, err := p.Actor.Act(p, VerbOpen, value.Null()); err != nil {
		return nil, err
	}
	p.opened = true
	return p, nil
}

// Close runs the close verb and marks the port closed. Closing a
// closed port is a no-op, matching the tolerant teardown unwinding
// needs (§7).
func (p *Port) Close() error {
	if !p.opened {
		return nil
	}
	p.opened = false
	_, err := p.Actor.Act(p, VerbClose, value.Null())
	return err
}

// Wait returns the first port in ports with a pending event, polling
// until timeout expires (advisory, §5) or halted reports true. A nil
// return means timeout or halt with nothing ready.
func Wait(ports []*Port, timeout time.Duration, halted func() bool) *Port {
	deadline := time.Now().Add(timeout)
	for {
		for _, p := range ports {
			if p.Pending() {
				return p
			}
		}
		if halted != nil && halted() {
			return nil
		}
		if timeout >= 0 && time.Now().After(deadline) {
			return nil
		}
		time.Sleep(time.Millisecond)
	}
}
