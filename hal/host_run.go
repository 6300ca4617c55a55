//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
)

// DefaultTypeRate is the scripted typing speed in characters per second.
const DefaultTypeRate = 20

// HostConfig controls the host runners.
type HostConfig struct {
	// Type is text typed on the keyboard once the system first goes idle.
	Type string
	// TypeRate is the typing speed in characters per second.
	TypeRate int
	// ExitAfterInput stops the runner once the typed text has been handled
	// and the CPU is idle again.
	ExitAfterInput bool

	// Out backs the logger and serial port. It defaults to the process
	// stdout.
	Out io.Writer
}

var errInputDone = errors.New("scripted input done")

// RunHeadless boots the system without a window and blocks until ctx is done
// or, with ExitAfterInput, until the scripted input has been consumed.
//
// boot runs on its own goroutine, which plays the role of the foreground
// context of the simulated CPU. It is expected never to return.
func RunHeadless(ctx context.Context, boot func(HAL), cfg HostConfig) error {
	return runHost(ctx, newConfiguredHostHAL(cfg), boot, cfg)
}

func newConfiguredHostHAL(cfg HostConfig) *hostHAL {
	if cfg.Out == nil {
		return newHostHAL(os.Stdout)
	}
	return newHostHAL(cfg.Out)
}

func runHost(ctx context.Context, h *hostHAL, boot func(HAL), cfg HostConfig) error {
	rate := cfg.TypeRate
	if rate <= 0 {
		rate = DefaultTypeRate
	}

	go boot(h)
	defer h.timer.halt()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return gctx.Err()
	})
	g.Go(func() error {
		if cfg.Type != "" {
			// Input typed before the consumer exists would be dropped.
			if err := h.cpu.waitHalted(gctx); err != nil {
				return err
			}
			if err := h.kbd.typeText(gctx, cfg.Type, rate); err != nil {
				return err
			}
		}
		if !cfg.ExitAfterInput {
			return nil
		}
		// The last keystroke cleared the halted flag, so this waits for the
		// executor to drain it.
		if err := h.cpu.waitHalted(gctx); err != nil {
			return err
		}
		return errInputDone
	})

	err := g.Wait()
	if errors.Is(err, errInputDone) {
		return nil
	}
	return err
}
