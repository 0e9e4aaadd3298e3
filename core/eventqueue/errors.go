package eventqueue

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when an event is malformed: empty name,
	// too many arguments, or an argument of a kind the queue does not carry.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConcurrentAccess is returned when a drain or cycle is started while another one is in progress.
	ErrConcurrentAccess = errors.New("concurrent access: drain already in progress")

	// ErrHandlerFailure is matched by every error raised from an event handler.
	ErrHandlerFailure = errors.New("event handler failed")

	// ErrTerminated is returned by RunCycle once a quit or restart has been accepted.
	ErrTerminated = errors.New("dispatcher terminated")

	// ErrReservedName is returned when registering a regular handler for quit or restart.
	ErrReservedName = errors.New("event name is reserved")

	// ErrSourceFailed is returned when a source fails to pump events into the queue.
	ErrSourceFailed = errors.New("event source failed")
)

// HandlerError carries the event whose handler failed together with the cause.
// It matches ErrHandlerFailure via errors.Is.
type HandlerError struct {
	Event Event
	Err   error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %q failed: %v", e.Event.Name(), e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// Is reports ErrHandlerFailure so callers need not type-assert.
func (e *HandlerError) Is(target error) bool {
	return target == ErrHandlerFailure
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
