package boot

import (
	"os"
	"time"

	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/port"
	_ "github.com/rhencke/rebol-sub017/rebol/port/file" // registers the file scheme
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// registerPorts installs the PORT! verbs (§6 "Ports"). READ and WRITE
// take either an open PORT! or a FILE! (opening and closing a one-shot
// file port around the operation).
func (rt *Runtime) registerPorts() {
	rt.register("open", 0, []context.Key{rt.arg("spec")},
		func(f *context.Frame) (context.Signal, error) {
			p, err := port.Open(schemeFor(f.Values[0]), f.Values[0])
			if err != nil {
				return context.SignalNormal, err
			}
			f.Out = p.Cell()
			return context.SignalNormal, nil
		})

	rt.register("close", 0, []context.Key{rt.arg("port")},
		func(f *context.Frame) (context.Signal, error) {
			p := port.FromCell(f.Values[0])
			if p == nil {
				return context.SignalNormal, port.ErrNotOpen
			}
			if err := p.Close(); err != nil {
				return context.SignalNormal, err
			}
			f.Out = value.Null()
			return context.SignalNormal, nil
		})

	rt.register("read", 0, []context.Key{rt.arg("source")},
		func(f *context.Frame) (context.Signal, error) {
			out, err := rt.portVerb(f.Values[0], port.VerbRead, value.Null())
			if err != nil {
				return context.SignalNormal, err
			}
			f.Out = out
			return context.SignalNormal, nil
		})

	rt.register("write", 0, []context.Key{rt.arg("destination"), rt.arg("data")},
		func(f *context.Frame) (context.Signal, error) {
			out, err := rt.portVerb(f.Values[0], port.VerbWrite, f.Values[1])
			if err != nil {
				return context.SignalNormal, err
			}
			f.Out = out
			return context.SignalNormal, nil
		})

	rt.register("query", 0, []context.Key{rt.arg("port")},
		func(f *context.Frame) (context.Signal, error) {
			p := port.FromCell(f.Values[0])
			if p == nil {
				return context.SignalNormal, port.ErrNotOpen
			}
			out, err := p.Actor.Act(p, port.VerbQuery, value.Null())
			if err != nil {
				return context.SignalNormal, err
			}
			f.Out = out
			return context.SignalNormal, nil
		})

	rt.register("wait", 0, []context.Key{rt.arg("ports"), rt.refineArg("timeout", context.ClassNormal)},
		func(f *context.Frame) (context.Signal, error) {
			var ports []*port.Port
			switch f.Values[0].BaseKind() {
			case value.KindPort:
				ports = []*port.Port{port.FromCell(f.Values[0])}
			case value.KindBlock:
				for _, c := range cellsOf(f.Values[0]) {
					if p := port.FromCell(c); p != nil {
						ports = append(ports, p)
					}
				}
			default:
				return context.SignalNormal, port.ErrBadSpec
			}
			timeout := time.Duration(-1)
			if t := f.Values[1]; !t.IsNull() {
				if n, ok := numOf(t); ok {
					timeout = time.Duration(n * float64(time.Second))
				}
			}
			ready := port.Wait(ports, timeout, rt.It.Halt)
			if ready == nil {
				f.Out = value.Null()
				return context.SignalNormal, nil
			}
			ready.Take()
			f.Out = ready.Cell()
			return context.SignalNormal, nil
		})

	rt.register("delete", 0, []context.Key{rt.arg("target")},
		func(f *context.Frame) (context.Signal, error) {
			if f.Values[0].BaseKind() != value.KindFile {
				return context.SignalNormal, port.ErrBadSpec
			}
			if err := os.Remove(textOf(f.Values[0])); err != nil {
				return context.SignalNormal, err
			}
			f.Out = value.Null()
			return context.SignalNormal, nil
		})
}

// portVerb runs verb against an open port, or opens a transient file
// port around the operation when given a FILE!.
func (rt *Runtime) portVerb(target value.Cell, verb port.Verb, arg value.Cell) (value.Cell, error) {
	if p := port.FromCell(target); p != nil {
		if !p.Opened() {
			return value.Null(), port.ErrNotOpen
		}
		return p.Actor.Act(p, verb, arg)
	}
	if target.BaseKind() != value.KindFile && target.BaseKind() != value.KindURL {
		return value.Null(), port.ErrBadSpec
	}
	p, err := port.Open(schemeFor(target), target)
	if err != nil {
		return value.Null(), err
	}
	defer p.Close()
	return p.Actor.Act(p, verb, arg)
}

func schemeFor(spec value.Cell) string {
	if spec.BaseKind() == value.KindURL {
		text := textOf(spec)
		for i := 0; i+2 < len(text); i++ {
			if text[i] == ':' {
				return text[:i]
			}
		}
	}
	return "file"
}
