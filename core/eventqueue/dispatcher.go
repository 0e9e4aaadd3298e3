package eventqueue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/eventloop/core/logger"
)

// State is the dispatcher's position in the quit protocol.
type State uint32

const (
	// Running accepts and dispatches events.
	Running State = iota
	// QuitPending lasts while the quit handler runs.
	QuitPending
	// Terminated is final; the host must stop running cycles.
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case QuitPending:
		return "quit_pending"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", uint32(s))
	}
}

// Dispatcher drains a Queue once per cycle and routes each event to the
// handler registered under its name. It owns the quit and restart protocols.
type Dispatcher struct {
	queue *Queue

	mu             sync.RWMutex
	handlers       map[string]HandlerFunc
	quitHandler    QuitHandlerFunc
	restartHandler RestartHandlerFunc
	fallback       func(context.Context, Event) error
	middleware     []Middleware
	sources        []Source
	final          Outcome

	logger *slog.Logger

	inCycle atomic.Bool
	state   atomic.Uint32

	cycles      atomic.Uint64
	dispatched  atomic.Int64
	discarded   atomic.Int64
	failed      atomic.Int64
	lastCycleAt atomic.Int64
}

// DispatcherStats provides counters for observability and debugging.
type DispatcherStats struct {
	Cycles      uint64
	Dispatched  int64
	Discarded   int64
	Failed      int64
	Pending     int
	State       State
	LastCycleAt time.Time
}

// NewDispatcher creates a dispatcher consuming q.
//
// Example:
//
//	q := eventqueue.New()
//	d := eventqueue.NewDispatcher(q,
//	    eventqueue.WithLogger(log),
//	    eventqueue.WithHandler("keypressed", onKey),
//	)
//	d.HandleQuit(func(ctx context.Context, code int) (eventqueue.QuitDecision, error) {
//	    return eventqueue.Proceed, nil
//	})
func NewDispatcher(q *Queue, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		queue:    q,
		handlers: make(map[string]HandlerFunc),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Queue returns the queue this dispatcher drains.
func (d *Dispatcher) Queue() *Queue { return d.queue }

// RegisterHandler sets the handler for name, replacing any previous one.
// quit and restart have dedicated setters and are rejected here.
func (d *Dispatcher) RegisterHandler(name string, fn HandlerFunc) error {
	if name == "" {
		return invalidArgument("handler name is empty")
	}
	if fn == nil {
		return invalidArgument("handler for %q is nil", name)
	}
	if name == EventQuit || name == EventRestart {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}

	d.mu.Lock()
	d.handlers[name] = fn
	d.mu.Unlock()
	return nil
}

// UnregisterHandler removes the handler for name. Events with that name
// are then discarded or sent to the fallback handler.
func (d *Dispatcher) UnregisterHandler(name string) {
	d.mu.Lock()
	delete(d.handlers, name)
	d.mu.Unlock()
}

// HandleQuit sets the quit handler. Nil removes it, making every quit final.
func (d *Dispatcher) HandleQuit(fn QuitHandlerFunc) {
	d.mu.Lock()
	d.quitHandler = fn
	d.mu.Unlock()
}

// HandleRestart sets the restart handler. Nil removes it.
func (d *Dispatcher) HandleRestart(fn RestartHandlerFunc) {
	d.mu.Lock()
	d.restartHandler = fn
	d.mu.Unlock()
}

// RequestQuit enqueues a quit event. The optional code defaults to 0.
func (d *Dispatcher) RequestQuit(code ...int) error {
	switch len(code) {
	case 0:
		return d.queue.Push(EventQuit)
	case 1:
		return d.queue.Push(EventQuit, code[0])
	default:
		return invalidArgument("quit takes at most one exit code, got %d", len(code))
	}
}

// RequestRestart enqueues a restart event.
func (d *Dispatcher) RequestRestart() error {
	return d.queue.Push(EventRestart)
}

// State returns the current quit-protocol state.
func (d *Dispatcher) State() State { return State(d.state.Load()) }

// ExitCode returns the code of the accepted quit, or 0.
func (d *Dispatcher) ExitCode() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.final.Code
}

// RunCycle pumps the sources, drains the queue and dispatches every event.
//
// Delivery is at most once. Each event is removed from the queue before its
// handler runs and is never replayed, even when the handler fails.
//
// A handler error stops the cycle and is returned as *HandlerError. Only
// the failing event and those before it are consumed. Events not yet
// visited stay queued: Clear drops them (abort the cycle) and another
// RunCycle delivers them (continue with the next queued event).
//
// When a quit or restart is accepted the dispatcher terminates, the rest of
// the pass stays queued, and the returned Outcome tells the host to stop.
// Any later call returns ErrTerminated.
func (d *Dispatcher) RunCycle(ctx context.Context) (Outcome, error) {
	if d.State() == Terminated {
		d.mu.RLock()
		final := d.final
		d.mu.RUnlock()
		return final, ErrTerminated
	}
	if !d.inCycle.CompareAndSwap(false, true) {
		return Outcome{}, ErrConcurrentAccess
	}
	defer d.inCycle.Store(false)

	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	cycle := d.cycles.Add(1)
	d.lastCycleAt.Store(time.Now().UnixNano())
	ctx = WithCycle(ctx, cycle)

	if err := d.Pump(ctx); err != nil {
		return Outcome{}, err
	}

	for evt, err := range d.queue.Drain() {
		if err != nil {
			return Outcome{}, err
		}
		out, err := d.dispatch(ctx, evt)
		if err != nil || out.Done() {
			return out, err
		}
	}

	return Outcome{Status: Continue}, nil
}

// Pump asks every registered source to push its pending events.
// RunCycle calls it before draining; scripts may call it directly.
func (d *Dispatcher) Pump(ctx context.Context) error {
	d.mu.RLock()
	sources := d.sources
	d.mu.RUnlock()

	var errs []error
	for _, src := range sources {
		if err := src.Pump(ctx, d.queue); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		d.logger.ErrorContext(ctx, "event source failed", logger.Error(err))
		return fmt.Errorf("%w: %w", ErrSourceFailed, err)
	}
	return nil
}

func (d *Dispatcher) dispatch(ctx context.Context, evt Event) (Outcome, error) {
	ctx = WithEventMeta(ctx, evt)

	switch evt.Name() {
	case EventQuit:
		return d.processQuit(ctx, evt)
	case EventRestart:
		return d.processRestart(ctx, evt)
	}

	d.mu.RLock()
	fn, ok := d.handlers[evt.Name()]
	fallback := d.fallback
	middleware := d.middleware
	d.mu.RUnlock()

	if !ok {
		d.discarded.Add(1)
		if fallback == nil {
			d.logger.DebugContext(ctx, "event discarded: no handler", logger.Event(evt.Name()))
			return Outcome{}, nil
		}
		if err := safeCall("fallback", func() error { return fallback(ctx, evt) }); err != nil {
			return Outcome{}, d.fail(ctx, evt, err)
		}
		return Outcome{}, nil
	}

	fn = chainMiddleware(fn, middleware)
	if err := safeCall(evt.Name(), func() error { return fn(ctx, evt.Args()) }); err != nil {
		return Outcome{}, d.fail(ctx, evt, err)
	}

	d.dispatched.Add(1)
	return Outcome{}, nil
}

func (d *Dispatcher) processQuit(ctx context.Context, evt Event) (Outcome, error) {
	d.state.Store(uint32(QuitPending))

	code := evt.Arg(0).Int(0)

	d.mu.RLock()
	handler := d.quitHandler
	d.mu.RUnlock()

	decision := Proceed
	var herr error
	if handler != nil {
		herr = safeCall(EventQuit, func() error {
			var err error
			decision, err = handler(ctx, code)
			return err
		})
	}

	d.dispatched.Add(1)

	if decision == Abort {
		d.state.Store(uint32(Running))
		d.logger.InfoContext(ctx, "quit aborted by handler", logger.Key("code", code))
		if herr != nil {
			return Outcome{}, d.fail(ctx, evt, herr)
		}
		return Outcome{}, nil
	}

	out := d.terminate(Outcome{Status: Quit, Code: code})
	d.logger.InfoContext(ctx, "quit accepted", logger.Key("code", code))
	if herr != nil {
		return out, d.fail(ctx, evt, herr)
	}
	return out, nil
}

func (d *Dispatcher) processRestart(ctx context.Context, evt Event) (Outcome, error) {
	d.mu.RLock()
	handler := d.restartHandler
	d.mu.RUnlock()

	var handoff Value
	var herr error
	if handler != nil {
		herr = safeCall(EventRestart, func() error {
			var err error
			handoff, err = handler(ctx)
			return err
		})
	}

	d.dispatched.Add(1)

	out := d.terminate(Outcome{Status: Restart, Handoff: handoff})
	d.logger.InfoContext(ctx, "restart accepted", logger.Key("handoff", handoff.String()))
	if herr != nil {
		return out, d.fail(ctx, evt, herr)
	}
	return out, nil
}

func (d *Dispatcher) terminate(out Outcome) Outcome {
	d.mu.Lock()
	d.final = out
	d.mu.Unlock()
	d.state.Store(uint32(Terminated))
	return out
}

func (d *Dispatcher) fail(ctx context.Context, evt Event, err error) error {
	d.failed.Add(1)
	d.logger.ErrorContext(ctx, "event handler failed",
		logger.EventID(evt.ID()),
		logger.Event(evt.Name()),
		logger.Error(err))
	return &HandlerError{Event: evt, Err: err}
}

// Stats returns current dispatcher statistics.
func (d *Dispatcher) Stats() DispatcherStats {
	var last time.Time
	if ns := d.lastCycleAt.Load(); ns > 0 {
		last = time.Unix(0, ns)
	}

	return DispatcherStats{
		Cycles:      d.cycles.Load(),
		Dispatched:  d.dispatched.Load(),
		Discarded:   d.discarded.Load(),
		Failed:      d.failed.Load(),
		Pending:     d.queue.Len(),
		State:       d.State(),
		LastCycleAt: last,
	}
}
