// Package config loads the system configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"kestrel/internal/logging"
)

// Config is the full system configuration.
type Config struct {
	Executor ExecutorConfig `toml:"executor"`
	Keyboard KeyboardConfig `toml:"keyboard"`
	Host     HostConfig     `toml:"host"`
	Log      LogConfig      `toml:"log"`
}

type ExecutorConfig struct {
	// QueueCapacity bounds the ready queue. Overflow is fatal, so it must
	// exceed the number of tasks that can be woken between two drains.
	QueueCapacity int `toml:"queue_capacity"`
}

type KeyboardConfig struct {
	// ScancodeCapacity bounds the interrupt-to-task scancode queue.
	ScancodeCapacity int `toml:"scancode_capacity"`
	// Type is text typed on the simulated keyboard after boot (host only).
	Type string `toml:"type"`
	// TypeRate is the typing speed in characters per second.
	TypeRate int `toml:"type_rate"`
}

type HostConfig struct {
	Headless bool `toml:"headless"`
	// TimerHz is the tick interrupt rate. Zero leaves the timer off.
	TimerHz        int  `toml:"timer_hz"`
	TimerDots      bool `toml:"timer_dots"`
	ExitAfterInput bool `toml:"exit_after_input"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Executor: ExecutorConfig{QueueCapacity: 100},
		Keyboard: KeyboardConfig{ScancodeCapacity: 100, TypeRate: 20},
		Log:      LogConfig{Level: "info", Format: "auto"},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

var (
	ErrCapacity = errors.New("capacity out of range")
	ErrRate     = errors.New("rate out of range")
	ErrLog      = errors.New("invalid log setting")
)

// Validate checks ranges. Capacities must be positive and fit in 32 bits.
func (c Config) Validate() error {
	var errs []error
	if err := checkCapacity("executor.queue_capacity", c.Executor.QueueCapacity); err != nil {
		errs = append(errs, err)
	}
	if err := checkCapacity("keyboard.scancode_capacity", c.Keyboard.ScancodeCapacity); err != nil {
		errs = append(errs, err)
	}
	if _, err := safecast.Conv[uint16](c.Keyboard.TypeRate); err != nil || c.Keyboard.TypeRate == 0 {
		errs = append(errs, fmt.Errorf("keyboard.type_rate = %d: %w", c.Keyboard.TypeRate, ErrRate))
	}
	if _, err := safecast.Conv[uint16](c.Host.TimerHz); err != nil {
		errs = append(errs, fmt.Errorf("host.timer_hz = %d: %w", c.Host.TimerHz, ErrRate))
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, fmt.Errorf("log.format: %w: %w", ErrLog, err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w: %w", ErrLog, err))
	}
	return errors.Join(errs...)
}

func checkCapacity(name string, n int) error {
	v, err := safecast.Conv[uint32](n)
	if err != nil || v == 0 {
		return fmt.Errorf("%s = %d: %w", name, n, ErrCapacity)
	}
	return nil
}
