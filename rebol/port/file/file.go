// Package file is the file-device PORT! scheme: the one concrete device
// the core ships, sitting exactly one layer outside the port contract
// (§6 "the core does not know about sockets or file descriptors" — this
// package is the layer that does).
package file

import (
	"io"
	"os"

	"github.com/rhencke/rebol-sub017/rebol/port"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

func init() {
	port.Register("file", Make)
}

// Make builds an unopened file port from a FILE! spec.
func Make(spec value.Cell) (*port.Port, error) {
	if spec.BaseKind() != value.KindFile && spec.BaseKind() != value.KindString {
		return nil, port.ErrBadSpec
	}
	return &port.Port{Scheme: "file", Actor: &actor{}, Spec: spec}, nil
}

type actor struct {
	f *os.File
}

func (a *actor) Act(p *port.Port, verb port.Verb, arg value.Cell) (value.Cell, error) {
	switch verb {
	case port.VerbOpen:
		f, err := os.OpenFile(specPath(p.Spec), os.O_RDWR|os.O_CREATE, 0o644)
		if err != nil {
			return value.Null(), err
		}
		a.f = f
		p.Post(port.Event{Kind: "open"})
		return p.Cell(), nil

	case port.VerbClose:
		if a.f == nil {
			return value.Null(), nil
		}
		err := a.f.Close()
		a.f = nil
		return value.Null(), err

	case port.VerbRead:
		if a.f == nil {
			return value.Null(), port.ErrNotOpen
		}
		if _, err := a.f.Seek(0, io.SeekStart); err != nil {
			return value.Null(), err
		}
		data, err := io.ReadAll(a.f)
		if err != nil {
			return value.Null(), err
		}
		p.Post(port.Event{Kind: "read"})
		return binaryCell(data), nil

	case port.VerbWrite:
		if a.f == nil {
			return value.Null(), port.ErrNotOpen
		}
		data := argBytes(arg)
		if err := a.f.Truncate(0); err != nil {
			return value.Null(), err
		}
		if _, err := a.f.Seek(0, io.SeekStart); err != nil {
			return value.Null(), err
		}
		if _, err := a.f.Write(data); err != nil {
			return value.Null(), err
		}
		// Durability matches the write verb's contract: buffers reach
		// the device before the verb returns.
		if err := fdatasync(a.f); err != nil {
			return value.Null(), err
		}
		p.Post(port.Event{Kind: "wrote"})
		return value.Integer(int64(len(data))), nil

	case port.VerbQuery:
		if a.f == nil {
			return value.Null(), port.ErrNotOpen
		}
		info, err := a.f.Stat()
		if err != nil {
			return value.Null(), err
		}
		return value.Integer(info.Size()), nil

	default:
		return value.Null(), nil
	}
}

func specPath(spec value.Cell) string {
	if s := spec.Series(); s != nil {
		return string(s.Bytes)
	}
	return ""
}

func argBytes(arg value.Cell) []byte {
	if s := arg.Series(); s != nil {
		return s.Bytes
	}
	return nil
}

func binaryCell(data []byte) value.Cell {
	s := &value.Series{Bytes: data}
	return value.AggregateCell(value.KindBinary, s, 0)
}
