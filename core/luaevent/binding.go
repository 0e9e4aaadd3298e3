package luaevent

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Shopify/go-lua"

	"github.com/dmitrymomot/eventloop/core/eventqueue"
	"github.com/dmitrymomot/eventloop/core/logger"
)

const (
	defaultGlobal = "event"
	handlersKey   = "eventloop.handlers"
)

// Binding exposes a Dispatcher and its Queue to a Lua state.
// A Lua state is not safe for concurrent use: drive the binding and its
// dispatcher from one goroutine.
type Binding struct {
	state      *lua.State
	dispatcher *eventqueue.Dispatcher
	queue      *eventqueue.Queue
	global     string
	logger     *slog.Logger

	// ctx is the context of the handler currently running, if any.
	ctx context.Context
}

// Option configures a Binding.
type Option func(*Binding)

// WithState installs the binding into an existing state instead of a new one.
func WithState(state *lua.State) Option {
	return func(b *Binding) {
		if state != nil {
			b.state = state
		}
	}
}

// WithGlobal sets the name of the global table. Default: "event".
func WithGlobal(name string) Option {
	return func(b *Binding) {
		if name != "" {
			b.global = name
		}
	}
}

// WithLogger configures structured logging for script execution.
func WithLogger(l *slog.Logger) Option {
	return func(b *Binding) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates a binding for d and registers the global event table.
//
// Example:
//
//	b := luaevent.New(d)
//	err := b.DoString(`
//	    event.on("keypressed", function(key) print(key) end)
//	    event.push("keypressed", "space")
//	`)
func New(d *eventqueue.Dispatcher, opts ...Option) *Binding {
	b := &Binding{
		dispatcher: d,
		queue:      d.Queue(),
		global:     defaultGlobal,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.state == nil {
		b.state = lua.NewState()
		lua.OpenLibraries(b.state)
	}

	b.state.NewTable()
	b.state.SetField(lua.RegistryIndex, handlersKey)

	b.state.NewTable()
	lua.SetFunctions(b.state, b.functions(), 0)
	b.state.SetGlobal(b.global)

	return b
}

// State returns the underlying Lua state.
func (b *Binding) State() *lua.State { return b.state }

// DoString runs a chunk of Lua code.
func (b *Binding) DoString(chunk string) error {
	if err := lua.DoString(b.state, chunk); err != nil {
		b.logger.Error("lua chunk failed", logger.Component("luaevent"), logger.Error(err))
		return fmt.Errorf("luaevent: %w", err)
	}
	return nil
}

// DoFile loads and runs a Lua file.
func (b *Binding) DoFile(path string) error {
	if err := lua.DoFile(b.state, path); err != nil {
		b.logger.Error("lua script failed", logger.Component("luaevent"), logger.Script(path), logger.Error(err))
		return fmt.Errorf("luaevent: %s: %w", path, err)
	}
	b.logger.Debug("lua script loaded", logger.Component("luaevent"), logger.Script(path))
	return nil
}

// SetGlobal assigns v to a Lua global.
func (b *Binding) SetGlobal(name string, v eventqueue.Value) {
	pushValue(b.state, v)
	b.state.SetGlobal(name)
}

func (b *Binding) functions() []lua.RegistryFunction {
	return []lua.RegistryFunction{
		{Name: "push", Function: b.push},
		{Name: "quit", Function: b.quit},
		{Name: "restart", Function: b.restart},
		{Name: "clear", Function: b.clear},
		{Name: "count", Function: b.count},
		{Name: "poll", Function: b.poll},
		{Name: "pump", Function: b.pump},
		{Name: "on", Function: b.on},
	}
}

// event.push(name, ...)
func (b *Binding) push(state *lua.State) int {
	name := lua.CheckString(state, 1)
	top := state.Top()
	if top-1 > eventqueue.MaxArgs {
		lua.Errorf(state, "event %q has %d args, max %d", name, top-1, eventqueue.MaxArgs)
		return 0
	}

	args := make([]any, 0, top-1)
	for i := 2; i <= top; i++ {
		v, err := toValue(state, i)
		if err != nil {
			lua.ArgumentError(state, i, err.Error())
			return 0
		}
		args = append(args, v)
	}

	if err := b.queue.Push(name, args...); err != nil {
		lua.Errorf(state, "%s", err.Error())
	}
	return 0
}

// event.quit([code]); event.quit("restart") is an alias for event.restart().
func (b *Binding) quit(state *lua.State) int {
	var err error
	switch {
	case state.IsNoneOrNil(1):
		err = b.dispatcher.RequestQuit()
	case state.TypeOf(1) == lua.TypeString:
		if s, _ := state.ToString(1); s == eventqueue.EventRestart {
			err = b.dispatcher.RequestRestart()
			break
		}
		err = b.dispatcher.RequestQuit(lua.CheckInteger(state, 1))
	default:
		err = b.dispatcher.RequestQuit(lua.CheckInteger(state, 1))
	}
	if err != nil {
		lua.Errorf(state, "%s", err.Error())
	}
	return 0
}

// event.restart()
func (b *Binding) restart(state *lua.State) int {
	if err := b.dispatcher.RequestRestart(); err != nil {
		lua.Errorf(state, "%s", err.Error())
	}
	return 0
}

// event.clear() -> discarded
func (b *Binding) clear(state *lua.State) int {
	state.PushInteger(b.queue.Clear())
	return 1
}

// event.count() -> pending
func (b *Binding) count(state *lua.State) int {
	state.PushInteger(b.queue.Len())
	return 1
}

// event.poll() returns an iterator that removes and yields name, args...
func (b *Binding) poll(state *lua.State) int {
	state.PushGoFunction(func(state *lua.State) int {
		evt, ok := b.queue.Poll()
		if !ok {
			return 0
		}
		return pushEvent(state, evt)
	})
	return 1
}

// event.pump()
func (b *Binding) pump(state *lua.State) int {
	if err := b.dispatcher.Pump(b.currentContext()); err != nil {
		lua.Errorf(state, "%s", err.Error())
	}
	return 0
}

// event.on(name, fn) registers fn as the handler for name; a nil fn removes it.
func (b *Binding) on(state *lua.State) int {
	name := lua.CheckString(state, 1)
	if name == "" {
		lua.ArgumentError(state, 1, "event name is empty")
		return 0
	}
	remove := state.IsNoneOrNil(2)
	if !remove {
		lua.CheckType(state, 2, lua.TypeFunction)
	}

	state.Field(lua.RegistryIndex, handlersKey)
	if remove {
		state.PushNil()
	} else {
		state.PushValue(2)
	}
	state.SetField(-2, name)
	state.Pop(1)

	switch name {
	case eventqueue.EventQuit:
		if remove {
			b.dispatcher.HandleQuit(nil)
		} else {
			b.dispatcher.HandleQuit(b.quitHandler)
		}
	case eventqueue.EventRestart:
		if remove {
			b.dispatcher.HandleRestart(nil)
		} else {
			b.dispatcher.HandleRestart(b.restartHandler)
		}
	default:
		if remove {
			b.dispatcher.UnregisterHandler(name)
			return 0
		}
		if err := b.dispatcher.RegisterHandler(name, b.handlerFor(name)); err != nil {
			lua.Errorf(state, "%s", err.Error())
		}
	}
	return 0
}

// enter makes ctx visible to script callbacks until the returned func runs.
func (b *Binding) enter(ctx context.Context) func() {
	prev := b.ctx
	b.ctx = ctx
	return func() { b.ctx = prev }
}

// currentContext returns the context of the running handler, or
// context.Background when the script runs outside a dispatch cycle.
func (b *Binding) currentContext() context.Context {
	if b.ctx != nil {
		return b.ctx
	}
	return context.Background()
}
