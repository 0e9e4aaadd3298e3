package eventqueue

import (
	"context"
	"log/slog"
)

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithHandler registers a handler for an application-defined event name.
// Empty names, nil handlers and the reserved quit/restart names are ignored;
// use RegisterHandler to get an error instead.
func WithHandler(name string, fn HandlerFunc) DispatcherOption {
	return func(d *Dispatcher) {
		if name == "" || fn == nil || name == EventQuit || name == EventRestart {
			return
		}
		d.handlers[name] = fn
	}
}

// WithQuitHandler sets the quit handler.
func WithQuitHandler(fn QuitHandlerFunc) DispatcherOption {
	return func(d *Dispatcher) {
		d.quitHandler = fn
	}
}

// WithRestartHandler sets the restart handler.
func WithRestartHandler(fn RestartHandlerFunc) DispatcherOption {
	return func(d *Dispatcher) {
		d.restartHandler = fn
	}
}

// WithFallbackHandler sets a handler for events with no registered handler.
// It receives the full Event. Without it such events are silently discarded.
//
// Example:
//
//	d := eventqueue.NewDispatcher(q,
//	    eventqueue.WithFallbackHandler(func(ctx context.Context, evt eventqueue.Event) error {
//	        log.Warn("unhandled event", "name", evt.Name())
//	        return nil
//	    }),
//	)
func WithFallbackHandler(fn func(context.Context, Event) error) DispatcherOption {
	return func(d *Dispatcher) {
		if fn != nil {
			d.fallback = fn
		}
	}
}

// WithMiddleware wraps every application handler. The first middleware is the outermost.
func WithMiddleware(middleware ...Middleware) DispatcherOption {
	return func(d *Dispatcher) {
		d.middleware = append(d.middleware, middleware...)
	}
}

// WithSource adds sources pumped at the start of every cycle, in order.
func WithSource(sources ...Source) DispatcherOption {
	return func(d *Dispatcher) {
		for _, s := range sources {
			if s != nil {
				d.sources = append(d.sources, s)
			}
		}
	}
}

// WithLogger configures structured logging for dispatcher operations.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}
