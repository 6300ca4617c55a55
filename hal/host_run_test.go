//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kestrel/kernel/pckbd"
	"kestrel/kernel/task"
	"kestrel/kernel/task/keyboard"
)

func TestHostKeyboardRaisesOneInterruptPerByte(t *testing.T) {
	cpu := newHostCPU()
	kbd := newHostKeyboard(cpu, pckbd.Set1)

	var got []byte
	kbd.SetHandler(func(b byte) { got = append(got, b) })

	require.NoError(t, kbd.injectKey(pckbd.KeyEvent{Code: pckbd.KeyRight, State: pckbd.Released}))
	assert.Equal(t, []byte{0xE0, 0xCD}, got)
	assert.Equal(t, uint64(2), cpu.Interrupts())
	assert.Equal(t, uint64(2), kbd.sent.Load())

	kbd.SetHandler(nil)
	kbd.inject(0x1E)
	assert.Len(t, got, 2, "no handler installed")
	assert.Equal(t, uint64(3), cpu.Interrupts())
}

func TestHostKeyboardTypeText(t *testing.T) {
	cpu := newHostCPU()
	kbd := newHostKeyboard(cpu, pckbd.Set2)

	var got []byte
	kbd.SetHandler(func(b byte) { got = append(got, b) })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, kbd.typeText(ctx, "aB", 1000))

	want, err := pckbd.EncodeString(pckbd.Set2, "aB")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Error(t, kbd.typeText(ctx, "a", 0))
}

func TestHostTimerTicks(t *testing.T) {
	cpu := newHostCPU()
	tm := newHostTimer(cpu)

	var ticks atomic.Int32
	tm.SetHandler(func() { ticks.Add(1) })
	require.NoError(t, tm.Start(500))
	defer tm.halt()
	assert.Error(t, tm.Start(500), "already running")

	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, 2*time.Second, time.Millisecond)
}

// Keystrokes typed on the simulated keyboard reach a task through the
// interrupt hook, and the executor goes back to sleep afterwards.
func TestRunHeadlessDeliversTypedText(t *testing.T) {
	var out bytes.Buffer
	var printed bytes.Buffer
	ctrl := keyboard.NewController(keyboard.DefaultCapacity)

	boot := func(h HAL) {
		h.Keyboard().SetHandler(func(b byte) { ctrl.Deliver(b) })
		exec := task.NewExecutor(h.CPU())
		exec.Spawn(task.New(ctrl.PrintKeypresses(&printed, h.Keyboard().Set())))
		exec.Run()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := RunHeadless(ctx, boot, HostConfig{
		Type:           "Hi there!",
		TypeRate:       500,
		ExitAfterInput: true,
		Out:            &out,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hi there!", printed.String())
	full, uninit := ctrl.Drops()
	assert.Zero(t, full)
	assert.Zero(t, uninit)
}

func TestRunHeadlessStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	boot := func(h HAL) {
		task.NewExecutor(h.CPU()).Run()
	}
	err := RunHeadless(ctx, boot, HostConfig{Out: &bytes.Buffer{}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHostLEDTracksLevel(t *testing.T) {
	led := &hostLED{}
	assert.False(t, led.isOn())
	led.High()
	assert.True(t, led.isOn())
	led.Low()
	assert.False(t, led.isOn())
}

func TestHostFramebufferSnapshot(t *testing.T) {
	fb := newHostFramebuffer(2, 1)
	fb.ClearRGB(0xFF, 0x00, 0x00)
	require.NoError(t, fb.Present())

	dst := make([]byte, 2*4)
	gen := fb.snapshotRGBA(dst)
	assert.Equal(t, uint64(1), gen)
	assert.Equal(t, []byte{0xFF, 0, 0, 0xFF, 0xFF, 0, 0, 0xFF}, dst)
}
