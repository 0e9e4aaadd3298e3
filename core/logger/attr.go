package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Helpers that take an error, value or name return an empty slog.Attr for
// nil or empty input; slog drops empty attributes, so callers never branch.

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error logs err under "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errs under "errors", keyed by their position
// in the argument list.
func Errors(errs ...error) slog.Attr {
	var as []slog.Attr
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return Group("errors", as...)
}

// Duration logs d under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed logs the time since start under "elapsed".
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// Event logs an event name.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// EventID logs an event identifier.
func EventID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("event_id", id)
}

// Cycle logs a dispatch cycle number.
func Cycle(n uint64) slog.Attr {
	return slog.Uint64("cycle", n)
}

// ExitCode logs a process exit code.
func ExitCode(code int) slog.Attr {
	return slog.Int("exit_code", code)
}

// Script logs a script path or chunk name.
func Script(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("script", name)
}

// Component logs the subsystem emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Count logs an integer counter under key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Key logs an arbitrary value under key.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}
