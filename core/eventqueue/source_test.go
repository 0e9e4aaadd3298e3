package eventqueue_test

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventloop/core/eventqueue"
)

// fakeSignals captures the channel registered by a SignalSource.
type fakeSignals struct {
	ch      chan<- os.Signal
	sigs    []os.Signal
	stopped bool
}

func (f *fakeSignals) option() eventqueue.SignalOption {
	return eventqueue.WithSignalNotifier(
		func(c chan<- os.Signal, sigs ...os.Signal) {
			f.ch = c
			f.sigs = sigs
		},
		func(chan<- os.Signal) { f.stopped = true },
	)
}

func TestSignalSource_DefaultQuit(t *testing.T) {
	t.Parallel()

	fake := &fakeSignals{}
	src := eventqueue.NewSignalSource(fake.option())
	assert.ElementsMatch(t, []os.Signal{os.Interrupt, syscall.SIGTERM}, fake.sigs)

	q := eventqueue.New()
	require.NoError(t, src.Pump(context.Background(), q))
	assert.Equal(t, 0, q.Len(), "pump without signals is a no-op")

	fake.ch <- syscall.SIGTERM
	require.NoError(t, src.Pump(context.Background(), q))

	evt, ok := q.Poll()
	require.True(t, ok)
	assert.Equal(t, eventqueue.EventQuit, evt.Name())
	assert.Equal(t, 128+int(syscall.SIGTERM), evt.Arg(0).Int(0))

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
	assert.True(t, fake.stopped)
}

func TestSignalSource_CustomMapping(t *testing.T) {
	t.Parallel()

	fake := &fakeSignals{}
	src := eventqueue.NewSignalSource(
		fake.option(),
		eventqueue.WithSignals(syscall.SIGINT),
		eventqueue.WithSignalEvent(syscall.SIGHUP, eventqueue.EventRestart),
	)
	assert.ElementsMatch(t, []os.Signal{syscall.SIGINT, syscall.SIGHUP}, fake.sigs)

	fake.ch <- syscall.SIGHUP
	fake.ch <- syscall.SIGINT

	q := eventqueue.New()
	require.NoError(t, src.Pump(context.Background(), q))

	var names []string
	for evt, err := range q.Drain() {
		require.NoError(t, err)
		names = append(names, evt.Name())
	}
	assert.Equal(t, []string{eventqueue.EventRestart, eventqueue.EventQuit}, names)
}

// TestDispatcher_SignalTerminates drives a signal through a full cycle.
func TestDispatcher_SignalTerminates(t *testing.T) {
	t.Parallel()

	fake := &fakeSignals{}
	src := eventqueue.NewSignalSource(fake.option())
	_, d := newDispatcher(t, eventqueue.WithSource(src))

	fake.ch <- os.Interrupt
	out, err := d.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, eventqueue.Quit, out.Status)
	assert.Equal(t, 128+int(syscall.SIGINT), out.Code)
}

func TestDispatcher_SourcesPumpedBeforeDrain(t *testing.T) {
	t.Parallel()

	var order []string
	first := eventqueue.SourceFunc(func(ctx context.Context, q *eventqueue.Queue) error {
		order = append(order, "pump")
		return q.Push("input", "a")
	})

	q := eventqueue.New()
	require.NoError(t, q.Push("queued"))
	d := eventqueue.NewDispatcher(q,
		eventqueue.WithSource(first, nil),
		eventqueue.WithFallbackHandler(func(ctx context.Context, evt eventqueue.Event) error {
			order = append(order, evt.Name())
			return nil
		}),
	)

	_, err := d.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"pump", "queued", "input"}, order)
}

func TestDispatcher_SourceFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("device unplugged")
	failing := eventqueue.SourceFunc(func(context.Context, *eventqueue.Queue) error { return boom })
	healthy := eventqueue.SourceFunc(func(ctx context.Context, q *eventqueue.Queue) error { return q.Push("ok") })

	q, d := newDispatcher(t, eventqueue.WithSource(failing, healthy))

	_, err := d.RunCycle(context.Background())
	assert.ErrorIs(t, err, eventqueue.ErrSourceFailed)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, q.Len(), "healthy sources still pumped, nothing dispatched")
}
