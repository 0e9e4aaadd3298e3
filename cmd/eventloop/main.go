// Command eventloop hosts a Lua boot script on top of the event queue:
// it runs one dispatch cycle per tick until the script (or a signal) quits.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/eventloop/core/config"
	"github.com/dmitrymomot/eventloop/core/logger"
)

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	log := newLogger(cfg)

	code := run(context.Background(), cfg, log)
	log.Info("exiting", logger.ExitCode(code))
	os.Exit(code)
}

func newLogger(cfg Config) *slog.Logger {
	preset := logger.WithDevelopment(cfg.AppName)
	if cfg.AppEnv == "production" {
		preset = logger.WithProduction(cfg.AppName)
	}
	return logger.New(preset, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
}
