//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"kestrel/app"
	"kestrel/hal"
	"kestrel/internal/buildinfo"
	"kestrel/internal/config"
	"kestrel/internal/logging"
	"kestrel/kernel"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "kestrel",
		Short:        "Interrupt-driven cooperative kernel running on a simulated PC",
		Version:      buildinfo.Short(),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runKernel,
	}

	f := root.Flags()
	f.String("config", "", "TOML configuration file")
	f.Bool("headless", false, "run without a window")
	f.String("type", "", "text typed on the keyboard after boot")
	f.Int("type-rate", hal.DefaultTypeRate, "typing speed in characters per second")
	f.Int("timer-hz", 0, "timer interrupt rate (0 disables the timer)")
	f.Bool("timer-dots", false, "print '.' on the serial port on every timer tick")
	f.Int("queue-capacity", 0, "executor ready queue capacity")
	f.Int("scancode-capacity", 0, "keyboard scancode queue capacity")
	f.String("log-level", "", "log level (trace|debug|info|warn|error)")
	f.String("log-format", "", "log format (auto|console|json)")
	f.Bool("exit-after-input", false, "exit once the typed text has been handled")

	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			return err
		},
	}
}

// resolveConfig loads the config file, if any, and applies explicitly set
// flags on top of it.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	f := cmd.Flags()
	cfg := config.Default()
	if path, _ := f.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	ints := map[string]*int{
		"type-rate":         &cfg.Keyboard.TypeRate,
		"timer-hz":          &cfg.Host.TimerHz,
		"queue-capacity":    &cfg.Executor.QueueCapacity,
		"scancode-capacity": &cfg.Keyboard.ScancodeCapacity,
	}
	for name, dst := range ints {
		if f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}
	bools := map[string]*bool{
		"headless":         &cfg.Host.Headless,
		"timer-dots":       &cfg.Host.TimerDots,
		"exit-after-input": &cfg.Host.ExitAfterInput,
	}
	for name, dst := range bools {
		if f.Changed(name) {
			*dst, _ = f.GetBool(name)
		}
	}
	strs := map[string]*string{
		"type":       &cfg.Keyboard.Type,
		"log-level":  &cfg.Log.Level,
		"log-format": &cfg.Log.Format,
	}
	for name, dst := range strs {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runKernel(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return err
	}
	log := logging.New(cmd.ErrOrStderr(), format, level)
	kernel.SetLogger(log)
	log.Info().Str("version", buildinfo.Short()).Bool("headless", cfg.Host.Headless).Msg("starting")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCfg := app.Config{
		QueueCapacity:    cfg.Executor.QueueCapacity,
		ScancodeCapacity: cfg.Keyboard.ScancodeCapacity,
		TimerHz:          cfg.Host.TimerHz,
		TimerDots:        cfg.Host.TimerDots,
	}
	boot := func(h hal.HAL) { app.Run(h, appCfg) }
	hostCfg := hal.HostConfig{
		Type:           cfg.Keyboard.Type,
		TypeRate:       cfg.Keyboard.TypeRate,
		ExitAfterInput: cfg.Host.ExitAfterInput,
		Out:            cmd.OutOrStdout(),
	}

	run := hal.RunWindow
	if cfg.Host.Headless {
		run = hal.RunHeadless
	}
	err = run(ctx, boot, hostCfg)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
