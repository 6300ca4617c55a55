//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"kestrel/kernel/pckbd"
)

// hostKeyboard emulates a PC keyboard controller: every scancode byte is a
// separate interrupt on the simulated CPU.
type hostKeyboard struct {
	cpu     *hostCPU
	set     pckbd.ScancodeSet
	handler atomic.Pointer[func(byte)]
	sent    atomic.Uint64
}

func newHostKeyboard(cpu *hostCPU, set pckbd.ScancodeSet) *hostKeyboard {
	return &hostKeyboard{cpu: cpu, set: set}
}

func (k *hostKeyboard) Set() pckbd.ScancodeSet { return k.set }

func (k *hostKeyboard) SetHandler(fn func(scancode byte)) {
	if fn == nil {
		k.handler.Store(nil)
		return
	}
	k.handler.Store(&fn)
}

// inject raises one keyboard interrupt per byte.
func (k *hostKeyboard) inject(scancodes ...byte) {
	for _, b := range scancodes {
		k.cpu.raise(func() {
			if fn := k.handler.Load(); fn != nil {
				(*fn)(b)
			}
		})
		k.sent.Add(1)
	}
}

// injectKey raises the interrupts for one key transition.
func (k *hostKeyboard) injectKey(ev pckbd.KeyEvent) error {
	var buf [3]byte
	seq, err := pckbd.Encode(buf[:0], k.set, ev)
	if err != nil {
		return err
	}
	k.inject(seq...)
	return nil
}

// typeText types s one character at a time, cps characters per second.
func (k *hostKeyboard) typeText(ctx context.Context, s string, cps int) error {
	if cps <= 0 {
		return fmt.Errorf("typing rate must be positive, got %d", cps)
	}
	t := time.NewTicker(time.Second / time.Duration(cps))
	defer t.Stop()

	var buf []byte
	for _, r := range s {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		seq, err := pckbd.EncodeRune(buf[:0], k.set, r)
		if err != nil {
			return err
		}
		buf = seq
		k.inject(seq...)
	}
	return nil
}
