// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use (a missing file is ignored) and
// uses the caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/eventloop/core/config"
//
//	type LoopConfig struct {
//		CycleInterval time.Duration `env:"CYCLE_INTERVAL" envDefault:"16ms"`
//		BootScript    string        `env:"BOOT_SCRIPT,required"`
//	}
//
//	func main() {
//		var cfg LoopConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per process:
//
//	var cfg1 LoopConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 LoopConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently.
package config
