package eventqueue

import (
	"context"
	"fmt"
)

// HandlerFunc processes the arguments of an application-defined event.
type HandlerFunc func(ctx context.Context, args []Value) error

// QuitDecision is the outcome of a quit handler.
type QuitDecision uint8

const (
	// Proceed lets the quit terminate the dispatcher.
	Proceed QuitDecision = iota
	// Abort cancels the quit; the dispatcher keeps running.
	Abort
)

func (d QuitDecision) String() string {
	if d == Abort {
		return "abort"
	}
	return "proceed"
}

// QuitHandlerFunc is invoked when a quit event is processed.
// Returning Abort cancels the quit. An error is reported but never cancels it.
type QuitHandlerFunc func(ctx context.Context, code int) (QuitDecision, error)

// RestartHandlerFunc is invoked when a restart event is processed.
// The returned value is handed to the next instance of the application.
type RestartHandlerFunc func(ctx context.Context) (Value, error)

// Status tells the host loop what to do after a cycle.
type Status uint8

const (
	// Continue means the host should schedule another cycle.
	Continue Status = iota
	// Quit means the host should exit with Outcome.Code.
	Quit
	// Restart means the host should reinitialize and pass Outcome.Handoff along.
	Restart
)

func (s Status) String() string {
	switch s {
	case Quit:
		return "quit"
	case Restart:
		return "restart"
	default:
		return "continue"
	}
}

// Outcome is the result of one cycle.
type Outcome struct {
	Status  Status
	Code    int
	Handoff Value
}

// Done reports whether the host loop must stop scheduling cycles.
func (o Outcome) Done() bool { return o.Status != Continue }

// safeCall runs fn and converts a panic into an error.
func safeCall(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %s panicked: %v", name, r)
		}
	}()
	return fn()
}
