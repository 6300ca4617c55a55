//go:build !tinygo

package hal

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostCPURaiseWaitsForEnable(t *testing.T) {
	c := newHostCPU()
	c.DisableInterrupts()

	var ran atomic.Bool
	done := make(chan struct{})
	go func() {
		c.raise(func() { ran.Store(true) })
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	assert.False(t, ran.Load(), "ISR ran while masked")

	c.EnableInterrupts()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("raise did not complete after enable")
	}
	assert.True(t, ran.Load())
	assert.Equal(t, uint64(1), c.Interrupts())
}

func TestHostCPUHaltWakesOnInterrupt(t *testing.T) {
	c := newHostCPU()
	c.DisableInterrupts()

	woke := make(chan struct{})
	go func() {
		c.EnableAndHalt()
		close(woke)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.waitHalted(ctx))

	select {
	case <-woke:
		t.Fatal("halt returned without an interrupt")
	case <-time.After(20 * time.Millisecond):
	}

	c.raise(nil)
	select {
	case <-woke:
	case <-time.After(2 * time.Second):
		t.Fatal("halt did not wake")
	}
	assert.False(t, c.Halted())
}

// An interrupt raised while masked is taken by EnableAndHalt, not lost.
func TestHostCPUPendingInterruptWakesHalt(t *testing.T) {
	c := newHostCPU()
	c.DisableInterrupts()

	var ran atomic.Bool
	raised := make(chan struct{})
	go func() {
		c.raise(func() { ran.Store(true) })
		close(raised)
	}()
	time.Sleep(20 * time.Millisecond)

	woke := make(chan struct{})
	go func() {
		c.EnableAndHalt()
		close(woke)
	}()

	select {
	case <-woke:
	case <-time.After(2 * time.Second):
		t.Fatal("pending interrupt did not wake halt")
	}
	<-raised
	assert.True(t, ran.Load())
}

func TestHostCPUWaitHaltedHonoursContext(t *testing.T) {
	c := newHostCPU()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.waitHalted(ctx), context.DeadlineExceeded)
}

func TestRGB565RoundTrip(t *testing.T) {
	r, g, b := rgb888From565(rgb565(0xFF, 0xFF, 0xFF))
	assert.Equal(t, [3]uint8{0xFF, 0xFF, 0xFF}, [3]uint8{r, g, b})

	r, g, b = rgb888From565(rgb565(0, 0, 0))
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})

	buf := make([]byte, 5)
	fillRGB565(buf, 0xF800)
	assert.Equal(t, []byte{0x00, 0xF8, 0x00, 0xF8, 0x00}, buf, "odd tail byte untouched")
}
