package eventqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/eventloop/core/logger"
)

// Middleware wraps a HandlerFunc to add cross-cutting behaviour.
type Middleware func(HandlerFunc) HandlerFunc

// chainMiddleware applies middleware so that the first one is the outermost.
func chainMiddleware(fn HandlerFunc, middleware []Middleware) HandlerFunc {
	for i := len(middleware) - 1; i >= 0; i-- {
		fn = middleware[i](fn)
	}
	return fn
}

// LoggingMiddleware logs handler execution with timing.
// The event name is read from the context set up by the Dispatcher.
//
// Example:
//
//	d := eventqueue.NewDispatcher(q,
//	    eventqueue.WithMiddleware(eventqueue.LoggingMiddleware(log)),
//	)
func LoggingMiddleware(l *slog.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args []Value) error {
			start := time.Now()
			name := EventName(ctx)

			err := next(ctx, args)
			if err != nil {
				l.ErrorContext(ctx, "event failed",
					logger.Event(name),
					logger.Duration(time.Since(start)),
					logger.Error(err))
				return err
			}

			l.DebugContext(ctx, "event handled",
				logger.Event(name),
				logger.Count("args", len(args)),
				logger.Duration(time.Since(start)))
			return nil
		}
	}
}

// RetryMiddleware re-runs a failing handler up to maxRetries more times.
// Retries stop early when ctx is done. The handler runs on the caller's
// goroutine, so it stays safe for single-threaded script states.
//
// Example:
//
//	d := eventqueue.NewDispatcher(q,
//	    eventqueue.WithMiddleware(eventqueue.RetryMiddleware(2)),
//	)
func RetryMiddleware(maxRetries int) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, args []Value) error {
			var lastErr error
			for attempt := 0; attempt <= maxRetries; attempt++ {
				if attempt > 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				if lastErr = next(ctx, args); lastErr == nil {
					return nil
				}
			}
			return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
		}
	}
}
