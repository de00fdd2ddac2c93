package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhencke/rebol-sub017/rebol/port"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

func fileSpec(path string) value.Cell {
	s := &value.Series{Bytes: []byte(path), Text: true}
	return value.AggregateCell(value.KindFile, s, 0)
}

func strCell(text string) value.Cell {
	s := &value.Series{Bytes: []byte(text), Text: true}
	return value.AggregateCell(value.KindString, s, 0)
}

func TestOpenWriteReadClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	p, err := port.Open("file", fileSpec(path))
	require.NoError(t, err)
	require.True(t, p.Opened())

	n, err := p.Actor.Act(p, port.VerbWrite, strCell("hello port"))
	require.NoError(t, err)
	require.EqualValues(t, 10, n.AsInteger())

	got, err := p.Actor.Act(p, port.VerbRead, value.Null())
	require.NoError(t, err)
	require.Equal(t, "hello port", string(got.Series().Bytes))

	size, err := p.Actor.Act(p, port.VerbQuery, value.Null())
	require.NoError(t, err)
	require.EqualValues(t, 10, size.AsInteger())

	require.NoError(t, p.Close())
	require.NoError(t, p.Close(), "closing a closed port is a no-op")
}

func TestWriteIsDurable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "durable.bin")
	p, err := port.Open("file", fileSpec(path))
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Actor.Act(p, port.VerbWrite, strCell("synced"))
	require.NoError(t, err)

	// Visible through the OS after the verb returns.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "synced", string(data))
}

func TestEventsQueueFIFO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.txt")
	p, err := port.Open("file", fileSpec(path))
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Actor.Act(p, port.VerbWrite, strCell("x"))
	require.NoError(t, err)

	e1, ok := p.Take()
	require.True(t, ok)
	require.Equal(t, "open", e1.Kind)
	e2, ok := p.Take()
	require.True(t, ok)
	require.Equal(t, "wrote", e2.Kind)
}

func TestWaitReturnsReadyPort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wait.txt")
	p, err := port.Open("file", fileSpec(path))
	require.NoError(t, err)
	defer p.Close()

	ready := port.Wait([]*port.Port{p}, 0, nil)
	require.Same(t, p, ready, "open event is already queued")
}

func TestBadSpecRejected(t *testing.T) {
	_, err := Make(value.Integer(5))
	require.ErrorIs(t, err, port.ErrBadSpec)
}

func TestUnknownSchemeRejected(t *testing.T) {
	_, err := port.Open("carrier-pigeon", fileSpec("x"))
	require.ErrorIs(t, err, port.ErrNoScheme)
}
