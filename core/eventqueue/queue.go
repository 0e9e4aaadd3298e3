package eventqueue

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/eventloop/core/logger"
)

// queued pairs an event with its insertion sequence number.
// Drain uses the sequence to bound a pass to events present when it began.
type queued struct {
	evt Event
	seq uint64
}

// Queue is an unbounded FIFO of pending events with a single consumer.
// Push is safe from any goroutine; Drain is not reentrant.
type Queue struct {
	mu      sync.Mutex
	events  []queued
	nextSeq uint64
	notify  chan struct{}

	draining atomic.Bool
	logger   *slog.Logger
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithQueueLogger configures structured logging for queue operations.
func WithQueueLogger(l *slog.Logger) QueueOption {
	return func(q *Queue) {
		if l != nil {
			q.logger = l
		}
	}
}

// New creates an empty queue.
//
// Example:
//
//	q := eventqueue.New()
//	_ = q.Push("keypressed", "escape")
func New(opts ...QueueOption) *Queue {
	q := &Queue{
		notify: make(chan struct{}, 1),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push validates and appends a new event to the tail of the queue.
// On error the queue is left untouched.
func (q *Queue) Push(name string, args ...any) error {
	evt, err := NewEvent(name, args...)
	if err != nil {
		q.logger.Debug("event rejected", logger.Event(name), logger.Error(err))
		return err
	}
	q.append(evt)
	return nil
}

// PushEvent appends an already constructed event.
func (q *Queue) PushEvent(evt Event) error {
	if evt.IsZero() {
		return invalidArgument("event is zero")
	}
	q.append(evt)
	return nil
}

func (q *Queue) append(evt Event) {
	q.mu.Lock()
	q.events = append(q.events, queued{evt: evt, seq: q.nextSeq})
	q.nextSeq++
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Poll removes and returns the head of the queue.
// The boolean is false when the queue is empty.
func (q *Queue) Poll() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked(^uint64(0))
}

// popLocked removes the head if its sequence is below limit.
func (q *Queue) popLocked(limit uint64) (Event, bool) {
	if len(q.events) == 0 || q.events[0].seq >= limit {
		return Event{}, false
	}
	head := q.events[0]
	q.events[0] = queued{}
	q.events = q.events[1:]
	if len(q.events) == 0 {
		q.events = nil
	}
	return head.evt, true
}

// Wait removes and returns the head of the queue, blocking until an event
// is pushed or ctx is done.
func (q *Queue) Wait(ctx context.Context) (Event, error) {
	for {
		if evt, ok := q.Poll(); ok {
			return evt, nil
		}
		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-q.notify:
		}
	}
}

// Drain returns a lazy FIFO sequence over the events queued when iteration
// starts. Each event is removed from the queue as it is yielded.
//
// Events pushed while the pass is running are not visited; they stay queued
// for the next Drain. Stopping early leaves unvisited events queued.
// Starting a second pass while one is running yields a single
// ErrConcurrentAccess and removes nothing.
//
// Example:
//
//	for evt, err := range q.Drain() {
//	    if err != nil {
//	        return err
//	    }
//	    handle(evt)
//	}
func (q *Queue) Drain() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		if !q.draining.CompareAndSwap(false, true) {
			yield(Event{}, ErrConcurrentAccess)
			return
		}
		defer q.draining.Store(false)

		q.mu.Lock()
		limit := q.nextSeq
		q.mu.Unlock()

		for {
			q.mu.Lock()
			evt, ok := q.popLocked(limit)
			q.mu.Unlock()
			if !ok {
				return
			}
			if !yield(evt, nil) {
				return
			}
		}
	}
}

// Clear discards all queued events and returns how many were dropped.
func (q *Queue) Clear() int {
	q.mu.Lock()
	n := len(q.events)
	q.events = nil
	q.mu.Unlock()

	if n > 0 {
		q.logger.Debug("queue cleared", logger.Count("discarded", n))
	}
	return n
}
