package eventqueue

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxArgs is the maximum number of arguments an event can carry.
const MaxArgs = 4

// Reserved event names handled by the Dispatcher itself.
const (
	EventQuit    = "quit"
	EventRestart = "restart"
)

// Event is one queued occurrence. It is immutable once constructed.
type Event struct {
	id        string
	name      string
	args      [MaxArgs]Value
	nargs     int
	createdAt time.Time
}

// NewEvent validates name and args and builds an Event with a fresh ID and timestamp.
//
// Example:
//
//	evt, err := eventqueue.NewEvent("keypressed", "space", 32, false)
func NewEvent(name string, args ...any) (Event, error) {
	if name == "" {
		return Event{}, invalidArgument("event name is empty")
	}
	if len(args) > MaxArgs {
		return Event{}, invalidArgument("event %q has %d args, max %d", name, len(args), MaxArgs)
	}

	evt := Event{
		id:        uuid.New().String(),
		name:      name,
		nargs:     len(args),
		createdAt: time.Now(),
	}
	for i, a := range args {
		v, err := ValueOf(a)
		if err != nil {
			return Event{}, invalidArgument("event %q arg %d: unsupported value type %T", name, i, a)
		}
		evt.args[i] = v
	}

	return evt, nil
}

// ID returns the unique identifier assigned at construction.
func (e Event) ID() string { return e.id }

// Name returns the event name used to select a handler.
func (e Event) Name() string { return e.name }

// CreatedAt returns when the event was constructed.
func (e Event) CreatedAt() time.Time { return e.createdAt }

// NumArgs returns the number of arguments.
func (e Event) NumArgs() int { return e.nargs }

// Arg returns the i-th argument, or nil when i is out of range.
func (e Event) Arg(i int) Value {
	if i < 0 || i >= e.nargs {
		return Nil()
	}
	return e.args[i]
}

// Args returns a copy of the arguments.
func (e Event) Args() []Value {
	out := make([]Value, e.nargs)
	copy(out, e.args[:e.nargs])
	return out
}

// IsZero reports whether e is the zero Event.
func (e Event) IsZero() bool { return e.name == "" }

func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.name)
	b.WriteByte('(')
	for i := range e.nargs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.args[i].String())
	}
	b.WriteByte(')')
	return b.String()
}
