// Package logger provides structured logging utilities built on Go's standard slog package:
// a factory with environment presets and a set of attribute helpers.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/eventloop/core/logger"
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("eventloop"))
//
//	// Production: JSON format, info level, stdout
//	log := logger.New(logger.WithProduction("eventloop"))
//
//	// Custom configuration
//	log := logger.New(
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(slog.String("service", "game")),
//		logger.WithOutput(os.Stderr),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil input, so they can be passed
// unconditionally:
//
//	log.Error("cycle failed",
//		logger.Component("dispatcher"),
//		logger.Cycle(n),
//		logger.Event("keypressed"),
//		logger.Error(err),
//	)
//
//	log.Info("quit accepted",
//		logger.ExitCode(code),
//		logger.Elapsed(start),
//	)
package logger
