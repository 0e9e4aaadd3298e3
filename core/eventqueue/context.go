package eventqueue

import (
	"context"
	"time"
)

type (
	eventIDKey   struct{}
	eventNameKey struct{}
	eventTimeKey struct{}
	cycleKey     struct{}
)

// fromContext returns the value stored under key, or the zero T.
func fromContext[T any](ctx context.Context, key any) T {
	v, _ := ctx.Value(key).(T)
	return v
}

// WithEventID stores the ID of the event being dispatched.
func WithEventID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, eventIDKey{}, id)
}

// EventID returns the ID of the event being dispatched, or "".
func EventID(ctx context.Context) string { return fromContext[string](ctx, eventIDKey{}) }

// WithEventName stores the name of the event being dispatched.
func WithEventName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, eventNameKey{}, name)
}

// EventName returns the name of the event being dispatched, or "".
func EventName(ctx context.Context) string { return fromContext[string](ctx, eventNameKey{}) }

// WithEventTime stores the push time of the event being dispatched.
func WithEventTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, eventTimeKey{}, t)
}

// EventTime returns the push time of the event being dispatched,
// or the zero time.
func EventTime(ctx context.Context) time.Time { return fromContext[time.Time](ctx, eventTimeKey{}) }

// WithEventMeta stores ID, name and push time of evt.
func WithEventMeta(ctx context.Context, evt Event) context.Context {
	return WithEventTime(WithEventName(WithEventID(ctx, evt.ID()), evt.Name()), evt.CreatedAt())
}

// WithCycle stores the number of the running dispatch cycle.
func WithCycle(ctx context.Context, n uint64) context.Context {
	return context.WithValue(ctx, cycleKey{}, n)
}

// Cycle returns the number of the running dispatch cycle. Cycles count
// from 1; 0 means the context did not come from RunCycle.
func Cycle(ctx context.Context) uint64 { return fromContext[uint64](ctx, cycleKey{}) }
