package boot

import (
	"io"

	"github.com/rhencke/rebol-sub017/rebol/eval"
)

const (
	DefaultConsoleWidth = 80
)

// Options controls interpreter boot.
type Options struct {
	// Halt is polled before each DoBlock step, in WHILE loops and by
	// port WAIT; series growth does not poll it (§5). nil means never
	// halted.
	Halt eval.Halted

	// Out receives PRINT/PROBE output. Default: io.Discard, so library
	// embeddings never write to the host's stdout by accident.
	Out io.Writer

	// SearchPaths are the directories module loading consults, in order.
	SearchPaths []string

	// ConsoleWidth is published as system/console-width; MOLD does not
	// read it. Default: 80
	ConsoleWidth int
}

// DefaultOptions returns sensible defaults for embedding.
func DefaultOptions() Options {
	return Options{
		Halt:         eval.NeverHalt,
		Out:          io.Discard,
		ConsoleWidth: DefaultConsoleWidth,
	}
}

func (o Options) withDefaults() Options {
	if o.Halt == nil {
		o.Halt = eval.NeverHalt
	}
	if o.Out == nil {
		o.Out = io.Discard
	}
	if o.ConsoleWidth <= 0 {
		o.ConsoleWidth = DefaultConsoleWidth
	}
	return o
}
