//go:build tinygo && baremetal

package hal

import (
	"machine"

	"kestrel/kernel/pckbd"
)

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

type uartSerial struct {
	uart *machine.UART
}

func (s *uartSerial) Write(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	return s.uart.Write(p)
}

type nullKeyboard struct{}

func (nullKeyboard) Set() pckbd.ScancodeSet { return pckbd.Set2 }
func (nullKeyboard) SetHandler(func(byte))  {}

type nullTimer struct{}

func (nullTimer) SetHandler(func()) {}

func (nullTimer) Start(hz int) error {
	if hz <= 0 {
		return nil
	}
	return ErrNotImplemented
}
