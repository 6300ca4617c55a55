package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kestrel.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Executor.QueueCapacity)
	assert.Equal(t, 100, cfg.Keyboard.ScancodeCapacity)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[executor]
queue_capacity = 256

[keyboard]
type = "hello"

[host]
headless = true
timer_hz = 18

[log]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.Executor.QueueCapacity)
	assert.Equal(t, 100, cfg.Keyboard.ScancodeCapacity, "unset keys keep defaults")
	assert.Equal(t, "hello", cfg.Keyboard.Type)
	assert.Equal(t, 20, cfg.Keyboard.TypeRate)
	assert.True(t, cfg.Host.Headless)
	assert.Equal(t, 18, cfg.Host.TimerHz)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[executor]
queue_capacity = 10
queue_capacityy = 11
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executor.queue_capacityy")
}

func TestLoadRejectsBadTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[executor\n"))
	assert.ErrorContains(t, err, "failed to parse TOML")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateRanges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero queue", func(c *Config) { c.Executor.QueueCapacity = 0 }, ErrCapacity},
		{"negative scancodes", func(c *Config) { c.Keyboard.ScancodeCapacity = -1 }, ErrCapacity},
		{"huge queue", func(c *Config) { c.Executor.QueueCapacity = 1 << 40 }, ErrCapacity},
		{"zero rate", func(c *Config) { c.Keyboard.TypeRate = 0 }, ErrRate},
		{"negative timer", func(c *Config) { c.Host.TimerHz = -5 }, ErrRate},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, ErrLog},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, ErrLog},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}
}

func TestValidateAcceptsSingleSlotQueues(t *testing.T) {
	cfg := Default()
	cfg.Executor.QueueCapacity = 1
	cfg.Keyboard.ScancodeCapacity = 1
	assert.NoError(t, cfg.Validate())
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Executor.QueueCapacity = 0
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrCapacity)
	assert.ErrorIs(t, err, ErrLog)
}
