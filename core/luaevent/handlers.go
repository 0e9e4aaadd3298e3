package luaevent

import (
	"context"
	"fmt"

	"github.com/Shopify/go-lua"

	"github.com/dmitrymomot/eventloop/core/eventqueue"
)

// handlerFor returns a dispatcher handler that calls the Lua function
// registered under name at dispatch time.
func (b *Binding) handlerFor(name string) eventqueue.HandlerFunc {
	return func(ctx context.Context, args []eventqueue.Value) error {
		defer b.enter(ctx)()
		top := b.state.Top()
		defer b.state.SetTop(top)
		return b.call(name, args, 0)
	}
}

// quitHandler calls the Lua quit handler. A literal false return aborts the quit.
func (b *Binding) quitHandler(ctx context.Context, code int) (eventqueue.QuitDecision, error) {
	defer b.enter(ctx)()
	top := b.state.Top()
	defer b.state.SetTop(top)

	if err := b.call(eventqueue.EventQuit, []eventqueue.Value{eventqueue.Number(float64(code))}, 1); err != nil {
		return eventqueue.Proceed, err
	}
	if b.state.TypeOf(-1) == lua.TypeBoolean && !b.state.ToBoolean(-1) {
		return eventqueue.Abort, nil
	}
	return eventqueue.Proceed, nil
}

// restartHandler calls the Lua restart handler; its first result is the handoff value.
func (b *Binding) restartHandler(ctx context.Context) (eventqueue.Value, error) {
	defer b.enter(ctx)()
	top := b.state.Top()
	defer b.state.SetTop(top)

	if err := b.call(eventqueue.EventRestart, nil, 1); err != nil {
		return eventqueue.Nil(), err
	}
	v, err := toValue(b.state, -1)
	if err != nil {
		return eventqueue.Nil(), fmt.Errorf("restart handoff: %w", err)
	}
	return v, nil
}

// call looks up the handler for name, pushes args and runs it in protected mode,
// leaving nresults values on the stack.
func (b *Binding) call(name string, args []eventqueue.Value, nresults int) error {
	state := b.state

	state.Field(lua.RegistryIndex, handlersKey)
	state.Field(-1, name)
	state.Remove(-2)
	if !state.IsFunction(-1) {
		state.Pop(1)
		return fmt.Errorf("no lua handler for %q", name)
	}

	for _, a := range args {
		pushValue(state, a)
	}
	return state.ProtectedCall(len(args), nresults, 0)
}
