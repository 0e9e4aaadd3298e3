// Package eventqueue provides an in-process event queue drained once per
// application cycle, and a Dispatcher that routes queued events to handlers
// by name.
//
// # Core Components
//
// Event is an immutable named occurrence carrying up to four arguments.
// Arguments are Values of a closed set of kinds: nil, bool, number, string and
// Handle (an opaque reference to a host-owned resource). Events get a UUID and
// creation time when constructed.
//
// Queue is an unbounded FIFO. Producers call Push from any goroutine; a single
// consumer drains it. Drain is lazy: each event is removed as it is yielded,
// and a pass only visits events that were queued when it started. Events
// pushed during a pass, including by handlers, are delivered by the next one.
//
// Dispatcher runs one cycle per call to RunCycle: it pumps registered Sources,
// drains the queue and calls the handler registered for each event name.
// Events without a handler are discarded, or passed to the fallback handler
// when one is configured.
//
// # Control Events
//
// Two event names are reserved.
//
// quit carries an optional exit code. The quit handler decides with an explicit
// QuitDecision: Abort keeps the dispatcher Running, Proceed (or no handler)
// moves it to Terminated. A handler error is reported but never cancels the
// quit.
//
// restart carries no arguments. The restart handler may return a Value that
// the host passes to its next instance. The dispatcher does not reinitialize
// anything itself; it terminates and reports Restart in the Outcome.
//
// # Basic Usage
//
//	q := eventqueue.New()
//	d := eventqueue.NewDispatcher(q,
//		eventqueue.WithLogger(log),
//		eventqueue.WithSource(eventqueue.NewSignalSource()),
//	)
//
//	_ = d.RegisterHandler("move", func(ctx context.Context, args []eventqueue.Value) error {
//		x, _ := args[0].Number()
//		y, _ := args[1].Number()
//		player.Move(x, y)
//		return nil
//	})
//
//	_ = q.Push("move", 1, 2)
//
//	for {
//		out, err := d.RunCycle(ctx)
//		if err != nil {
//			log.Error("cycle failed", logger.Error(err))
//		}
//		if out.Done() {
//			os.Exit(out.Code)
//		}
//	}
//
// # Error Handling
//
// Push returns ErrInvalidArgument for an empty name, more than MaxArgs
// arguments or an unsupported argument type, and leaves the queue unchanged.
// A reentrant Drain or RunCycle fails with ErrConcurrentAccess. Handler
// errors and panics are returned from RunCycle as *HandlerError, which matches
// ErrHandlerFailure. Processing is at most once: a failed event is not
// replayed.
package eventqueue
