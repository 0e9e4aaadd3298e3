package main

import (
	"context"
	"errors"
	"log/slog"
	"syscall"
	"time"

	"github.com/dmitrymomot/eventloop/core/eventqueue"
	"github.com/dmitrymomot/eventloop/core/logger"
	"github.com/dmitrymomot/eventloop/core/luaevent"
)

// run hosts instances until one quits, restarting with the handoff value
// when asked. It returns the process exit code.
func run(ctx context.Context, cfg Config, log *slog.Logger, sources ...eventqueue.Source) int {
	if len(sources) == 0 {
		sig := eventqueue.NewSignalSource(
			eventqueue.WithSignalEvent(syscall.SIGHUP, eventqueue.EventRestart),
		)
		defer sig.Close()
		sources = append(sources, sig)
	}

	handoff := eventqueue.Nil()
	for restarts := 0; ; restarts++ {
		start := time.Now()
		out, err := runInstance(ctx, cfg, log, handoff, sources)
		if err != nil {
			log.Error("instance failed", logger.Error(err), logger.Elapsed(start))
			return 1
		}

		switch out.Status {
		case eventqueue.Restart:
			if restarts >= cfg.MaxRestarts {
				log.Error("too many restarts", logger.Count("restarts", restarts))
				return 1
			}
			log.Info("restarting", logger.Key("handoff", out.Handoff.String()), logger.Elapsed(start))
			handoff = out.Handoff
		default:
			return out.Code
		}
	}
}

// runInstance builds a fresh queue, dispatcher and script state and runs
// cycles at the configured interval until the dispatcher terminates.
func runInstance(ctx context.Context, cfg Config, log *slog.Logger, handoff eventqueue.Value, sources []eventqueue.Source) (eventqueue.Outcome, error) {
	q := eventqueue.New(eventqueue.WithQueueLogger(log))
	d := eventqueue.NewDispatcher(q,
		eventqueue.WithLogger(log),
		eventqueue.WithSource(sources...),
		eventqueue.WithMiddleware(eventqueue.LoggingMiddleware(log)),
	)

	script := luaevent.New(d, luaevent.WithLogger(log))
	script.SetGlobal("handoff", handoff)
	if cfg.BootScript != "" {
		if err := script.DoFile(cfg.BootScript); err != nil {
			return eventqueue.Outcome{}, err
		}
	}
	if err := q.Push("load", handoff); err != nil {
		return eventqueue.Outcome{}, err
	}

	interval := cfg.CycleInterval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		out, err := d.RunCycle(ctx)
		if err != nil {
			if !errors.Is(err, eventqueue.ErrHandlerFailure) {
				return out, err
			}
			log.Error("event handler failed", logger.Error(err), logger.Cycle(d.Stats().Cycles))
		}
		if out.Done() {
			return out, nil
		}

		select {
		case <-ctx.Done():
			return eventqueue.Outcome{}, ctx.Err()
		case <-ticker.C:
		}
	}
}
