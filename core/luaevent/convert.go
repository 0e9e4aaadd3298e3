package luaevent

import (
	"fmt"

	"github.com/Shopify/go-lua"

	"github.com/dmitrymomot/eventloop/core/eventqueue"
)

// toValue converts the Lua value at index into an event argument.
// An index past the top of the stack reads as nil. Tables, functions,
// threads, untyped values and userdata that does not wrap an
// eventqueue.Handle are rejected.
func toValue(state *lua.State, index int) (eventqueue.Value, error) {
	if index > 0 && index > state.Top() {
		return eventqueue.Nil(), nil
	}
	switch state.TypeOf(index) {
	case lua.TypeNil:
		return eventqueue.Nil(), nil
	case lua.TypeBoolean:
		return eventqueue.Bool(state.ToBoolean(index)), nil
	case lua.TypeNumber:
		n, _ := state.ToNumber(index)
		return eventqueue.Number(n), nil
	case lua.TypeString:
		s, _ := state.ToString(index)
		return eventqueue.String(s), nil
	case lua.TypeUserData:
		if h, ok := state.ToUserData(index).(eventqueue.Handle); ok {
			if v := eventqueue.HandleValue(h); !v.IsNil() {
				return v, nil
			}
		}
		return eventqueue.Value{}, fmt.Errorf("%w: userdata is not a handle", eventqueue.ErrInvalidArgument)
	case lua.TypeNone:
		return eventqueue.Value{}, fmt.Errorf("%w: untyped lua value", eventqueue.ErrInvalidArgument)
	default:
		return eventqueue.Value{}, fmt.Errorf("%w: unsupported lua type %s",
			eventqueue.ErrInvalidArgument, lua.TypeNameOf(state, index))
	}
}

// pushValue pushes v onto the Lua stack. Handles become full userdata so
// scripts can pass them around and hand them back unchanged.
func pushValue(state *lua.State, v eventqueue.Value) {
	switch v.Kind() {
	case eventqueue.KindBool:
		state.PushBoolean(v.Bool())
	case eventqueue.KindNumber:
		n, _ := v.Number()
		state.PushNumber(n)
	case eventqueue.KindString:
		state.PushString(v.Str())
	case eventqueue.KindHandle:
		state.PushUserData(v.Handle())
	default:
		state.PushNil()
	}
}

// pushEvent pushes the event name followed by its arguments and
// returns how many values were pushed.
func pushEvent(state *lua.State, evt eventqueue.Event) int {
	state.PushString(evt.Name())
	for _, a := range evt.Args() {
		pushValue(state, a)
	}
	return 1 + evt.NumArgs()
}
