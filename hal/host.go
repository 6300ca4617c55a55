//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"kestrel/kernel"
	"kestrel/kernel/pckbd"
)

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	cpu    *hostCPU
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	timer  *hostTimer
	serial Serial
}

// New returns a host HAL implementation.
//
// The keyboard behaves like a PC keyboard controller with translation
// enabled, so it emits scancode set 1.
func New() HAL {
	return newHostHAL(os.Stdout)
}

func newHostHAL(out io.Writer) *hostHAL {
	cpu := newHostCPU()
	return &hostHAL{
		logger: &hostLogger{w: out},
		led:    &hostLED{},
		cpu:    cpu,
		fb:     newHostFramebuffer(320, 320),
		kbd:    newHostKeyboard(cpu, pckbd.Set1),
		timer:  newHostTimer(cpu),
		serial: &hostSerial{w: out},
	}
}

func (h *hostHAL) Logger() Logger     { return h.logger }
func (h *hostHAL) LED() LED           { return h.led }
func (h *hostHAL) CPU() CPU           { return h.cpu }
func (h *hostHAL) Display() Display   { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Keyboard() Keyboard { return h.kbd }
func (h *hostHAL) Timer() Timer       { return h.timer }
func (h *hostHAL) Serial() Serial     { return h.serial }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

// hostSerial is shared by the console and the timer interrupt.
type hostSerial struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *hostSerial) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostLED tracks the pin level and logs transitions at debug level.
type hostLED struct {
	mu sync.Mutex
	on bool
}

func (l *hostLED) High() { l.set(true) }
func (l *hostLED) Low()  { l.set(false) }

func (l *hostLED) set(on bool) {
	l.mu.Lock()
	changed := l.on != on
	l.on = on
	l.mu.Unlock()
	if changed {
		kernel.Logger().Debug().Bool("on", on).Msg("led")
	}
}

func (l *hostLED) isOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}
