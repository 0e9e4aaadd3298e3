package eventqueue

import (
	"context"
	"os"
	"sync"
	"syscall"
)

// Source produces events into the queue when pumped.
// The Dispatcher pumps every source at the start of each cycle.
type Source interface {
	Pump(ctx context.Context, q *Queue) error
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, q *Queue) error

func (f SourceFunc) Pump(ctx context.Context, q *Queue) error { return f(ctx, q) }

// signalEvent is the event pushed for a captured signal.
type signalEvent struct {
	name string
	args []any
}

// SignalSource turns OS signals into queued events.
// By default every watched signal becomes a quit event with code 128+signo.
type SignalSource struct {
	ch       chan os.Signal
	notify   func(chan<- os.Signal, ...os.Signal)
	stop     func(chan<- os.Signal)
	mapping  map[os.Signal]signalEvent
	signals  []os.Signal
	stopOnce sync.Once
}

// SignalOption configures a SignalSource.
type SignalOption func(*SignalSource)

// WithSignalEvent maps sig to a custom event instead of quit.
//
// Example:
//
//	src := eventqueue.NewSignalSource(
//	    eventqueue.WithSignalEvent(syscall.SIGHUP, eventqueue.EventRestart),
//	)
func WithSignalEvent(sig os.Signal, name string, args ...any) SignalOption {
	return func(s *SignalSource) {
		s.mapping[sig] = signalEvent{name: name, args: args}
		s.signals = appendSignal(s.signals, sig)
	}
}

// WithSignals sets the signals mapped to quit. Default: os.Interrupt, SIGTERM.
func WithSignals(sigs ...os.Signal) SignalOption {
	return func(s *SignalSource) {
		s.signals = nil
		for _, sig := range sigs {
			s.signals = appendSignal(s.signals, sig)
		}
		for sig := range s.mapping {
			s.signals = appendSignal(s.signals, sig)
		}
	}
}

// withSignalNotifier replaces os/signal, used by tests.
func withSignalNotifier(notify func(chan<- os.Signal, ...os.Signal), stop func(chan<- os.Signal)) SignalOption {
	return func(s *SignalSource) {
		s.notify = notify
		s.stop = stop
	}
}

// NewSignalSource starts capturing signals. Call Close to release them.
func NewSignalSource(opts ...SignalOption) *SignalSource {
	s := &SignalSource{
		ch:      make(chan os.Signal, 8),
		notify:  signalNotify,
		stop:    signalStop,
		mapping: make(map[os.Signal]signalEvent),
		signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.notify(s.ch, s.signals...)
	return s
}

// Pump pushes one event per signal received since the last pump. It never blocks.
func (s *SignalSource) Pump(ctx context.Context, q *Queue) error {
	for {
		select {
		case sig := <-s.ch:
			if err := s.push(q, sig); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (s *SignalSource) push(q *Queue, sig os.Signal) error {
	if ev, ok := s.mapping[sig]; ok {
		return q.Push(ev.name, ev.args...)
	}
	return q.Push(EventQuit, signalExitCode(sig))
}

// Close stops signal delivery.
func (s *SignalSource) Close() error {
	s.stopOnce.Do(func() { s.stop(s.ch) })
	return nil
}

func signalExitCode(sig os.Signal) int {
	if n, ok := sig.(syscall.Signal); ok {
		return 128 + int(n)
	}
	return 1
}

func appendSignal(list []os.Signal, sig os.Signal) []os.Signal {
	for _, s := range list {
		if s == sig {
			return list
		}
	}
	return append(list, sig)
}
