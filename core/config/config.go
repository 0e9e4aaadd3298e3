package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> any (value of T)
	loadMu     sync.Mutex
)

// Load parses environment variables into cfg. The first call for a given type
// loads .env (if present) and parses; later calls for the same type copy the
// cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("config: nil target")
	}

	key := reflect.TypeFor[T]()
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	loadMu.Lock()
	defer loadMu.Unlock()

	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	dotenvOnce.Do(func() {
		// A missing .env file is not an error.
		_ = godotenv.Load()
	})

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", key, err)
	}

	cache.Store(key, parsed)
	*cfg = parsed
	return nil
}

// MustLoad is like Load but panics on error. Useful at startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
