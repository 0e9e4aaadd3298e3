package main

import "time"

// Config is loaded from the environment (and .env when present).
type Config struct {
	AppName       string        `env:"APP_NAME" envDefault:"eventloop"`
	AppEnv        string        `env:"APP_ENV" envDefault:"development"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	CycleInterval time.Duration `env:"CYCLE_INTERVAL" envDefault:"16ms"`
	BootScript    string        `env:"BOOT_SCRIPT"`
	MaxRestarts   int           `env:"MAX_RESTARTS" envDefault:"3"`
}
