// Package luaevent exposes an eventqueue.Dispatcher to embedded Lua scripts
// through a global table (named "event" by default).
//
//	event.push(name, ...)    -- enqueue an event with up to four arguments
//	event.quit([code])       -- enqueue quit; event.quit("restart") enqueues restart
//	event.restart()          -- enqueue restart
//	event.clear()            -- drop queued events, returns how many
//	event.count()            -- number of queued events
//	event.poll()             -- iterator removing events: for name, a, b in event.poll() do ... end
//	event.pump()             -- ask the dispatcher's sources for pending events
//	event.on(name, fn)       -- register fn as handler for name; nil removes it
//
// Arguments may be nil, booleans, numbers, strings or userdata wrapping an
// eventqueue.Handle; anything else raises a Lua error.
//
// A quit handler that returns false aborts the quit. A restart handler's
// first return value is carried to the host as the restart handoff.
package luaevent
