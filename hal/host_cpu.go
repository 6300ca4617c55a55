//go:build !tinygo

package hal

import (
	"context"
	"sync"
	"time"
)

// hostCPU simulates a single core with a global interrupt mask.
//
// Interrupt sources call raise from their own goroutines. An ISR only runs
// while interrupts are enabled and never concurrently with another ISR or
// with a masked section of the foreground.
type hostCPU struct {
	mu      sync.Mutex
	cond    *sync.Cond
	enabled bool
	halted  bool
	irqs    uint64
}

func newHostCPU() *hostCPU {
	c := &hostCPU{enabled: true}
	c.cond = sync.NewCond(&c.mu)
	return c
}

func (c *hostCPU) DisableInterrupts() {
	c.mu.Lock()
	c.enabled = false
	c.mu.Unlock()
}

func (c *hostCPU) EnableInterrupts() {
	c.mu.Lock()
	c.enabled = true
	c.cond.Broadcast()
	c.mu.Unlock()
}

func (c *hostCPU) EnableAndHalt() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.enabled = true
	c.halted = true
	c.cond.Broadcast()

	seen := c.irqs
	for c.irqs == seen {
		c.cond.Wait()
	}
}

// raise delivers one interrupt, waiting while interrupts are masked.
func (c *hostCPU) raise(isr func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for !c.enabled {
		c.cond.Wait()
	}
	if isr != nil {
		isr()
	}
	c.irqs++
	c.halted = false
	c.cond.Broadcast()
}

// Interrupts returns the number of interrupts delivered.
func (c *hostCPU) Interrupts() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.irqs
}

// Halted reports whether the foreground is sleeping in EnableAndHalt.
func (c *hostCPU) Halted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halted
}

// waitHalted blocks until the foreground halts or ctx is done.
func (c *hostCPU) waitHalted(ctx context.Context) error {
	t := time.NewTicker(time.Millisecond)
	defer t.Stop()
	for {
		if c.Halted() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
