//go:build tinygo && baremetal

package hal

import "machine"

// PS/2 keyboard wiring. The clock line must be interrupt capable.
var (
	ps2ClockPin = machine.GP2
	ps2DataPin  = machine.GP3
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	cpu    CPU
	fb     Framebuffer
	kbd    Keyboard
	timer  Timer
	serial Serial
}

// New returns a Raspberry Pi Pico HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// PS/2 keyboard: clock on GP2, data on GP3 (5V lines need level shifting).
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	logger := &uartLogger{uart: uart}

	var kbd Keyboard
	if k, err := newPS2Keyboard(ps2ClockPin, ps2DataPin); err == nil {
		kbd = k
	} else {
		// The kernel logger is not installed yet.
		logger.WriteLineString("ps2 keyboard unavailable: " + err.Error())
		kbd = nullKeyboard{}
	}

	return &tinyGoHAL{
		logger: logger,
		led:    &pinLED{pin: ledPin},
		cpu:    newCPU(),
		fb:     &stubFramebuffer{w: 320, h: 240, format: PixelFormatRGB565},
		kbd:    kbd,
		timer:  nullTimer{},
		serial: &uartSerial{uart: uart},
	}
}

func (h *tinyGoHAL) Logger() Logger     { return h.logger }
func (h *tinyGoHAL) LED() LED           { return h.led }
func (h *tinyGoHAL) CPU() CPU           { return h.cpu }
func (h *tinyGoHAL) Display() Display   { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Keyboard() Keyboard { return h.kbd }
func (h *tinyGoHAL) Timer() Timer       { return h.timer }
func (h *tinyGoHAL) Serial() Serial     { return h.serial }
