package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventloop/core/config"
)

type defaultsConfig struct {
	Interval time.Duration `env:"CONFIG_TEST_UNSET_INTERVAL" envDefault:"16ms"`
	Name     string        `env:"CONFIG_TEST_UNSET_NAME" envDefault:"loop"`
}

type envConfig struct {
	Script string `env:"CONFIG_TEST_SCRIPT"`
}

type requiredConfig struct {
	Token string `env:"CONFIG_TEST_MISSING_TOKEN,required"`
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 16*time.Millisecond, cfg.Interval)
	assert.Equal(t, "loop", cfg.Name)
}

// TestLoad_CachesPerType verifies a second load returns the first parsed value
// even after the environment changed.
func TestLoad_CachesPerType(t *testing.T) {
	t.Setenv("CONFIG_TEST_SCRIPT", "boot.lua")

	var first envConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "boot.lua", first.Script)

	t.Setenv("CONFIG_TEST_SCRIPT", "other.lua")

	var second envConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first, second)
}

func TestLoad_Required(t *testing.T) {
	t.Parallel()

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFIG_TEST_MISSING_TOKEN")

	assert.Panics(t, func() {
		var again requiredConfig
		config.MustLoad(&again)
	})
}

func TestLoad_NilTarget(t *testing.T) {
	t.Parallel()
	assert.Error(t, config.Load[defaultsConfig](nil))
}
