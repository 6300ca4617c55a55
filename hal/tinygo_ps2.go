//go:build tinygo && baremetal

package hal

import (
	"machine"
	"sync/atomic"

	"kestrel/kernel"
	"kestrel/kernel/pckbd"
)

// ps2Keyboard receives scancodes from a PS/2 keyboard by sampling the data
// line on every falling edge of the clock line.
type ps2Keyboard struct {
	clk  machine.Pin
	data machine.Pin

	frame   ps2Frame
	handler atomic.Pointer[func(byte)]
	errors  atomic.Uint32
}

func newPS2Keyboard(clk, data machine.Pin) (*ps2Keyboard, error) {
	clk.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	data.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	k := &ps2Keyboard{clk: clk, data: data}
	if err := clk.SetInterrupt(machine.PinFalling, k.onClock); err != nil {
		return nil, err
	}
	return k, nil
}

// A PS/2 keyboard always powers up in scancode set 2.
func (k *ps2Keyboard) Set() pckbd.ScancodeSet { return pckbd.Set2 }

func (k *ps2Keyboard) SetHandler(fn func(scancode byte)) {
	if fn == nil {
		k.handler.Store(nil)
		return
	}
	k.handler.Store(&fn)
}

// onClock runs in interrupt context.
func (k *ps2Keyboard) onClock(machine.Pin) {
	b, done, err := k.frame.shift(k.data.Get())
	if !done {
		return
	}
	if err != nil {
		k.errors.Add(1)
		kernel.Logger().Debug().Err(err).Msg("ps2 frame dropped")
		return
	}
	if fn := k.handler.Load(); fn != nil {
		(*fn)(b)
	}
}
