// Package app boots the system on a HAL: it wires the keyboard interrupt to
// the scancode controller, opens the console and runs the demo tasks on the
// interrupt-driven executor.
package app

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"kestrel/hal"
	"kestrel/kernel"
	"kestrel/kernel/task"
	"kestrel/kernel/task/keyboard"
)

// Config controls boot.
type Config struct {
	QueueCapacity    int
	ScancodeCapacity int
	// TimerHz starts the tick interrupt. Zero leaves it off.
	TimerHz int
	// TimerDots prints '.' on the serial port on every tick.
	TimerDots bool
}

// DefaultConfig matches the executor and controller defaults.
func DefaultConfig() Config {
	return Config{
		QueueCapacity:    task.DefaultQueueCapacity,
		ScancodeCapacity: keyboard.DefaultCapacity,
	}
}

// System is a booted kernel instance.
type System struct {
	h       hal.HAL
	cfg     Config
	log     zerolog.Logger
	console *Console
	kbd     *keyboard.Controller
	exec    *task.Executor
	stats   *task.Stats
	ticks   atomic.Uint64
}

// New boots the system on h without entering the scheduler loop.
func New(h hal.HAL, cfg Config) *System {
	installPanicHandler(h)

	s := &System{
		h:     h,
		cfg:   cfg,
		log:   kernel.Logger().With().Str("component", "app").Logger(),
		stats: &task.Stats{},
	}
	s.console = NewConsole(h.Display(), h.Serial())
	fmt.Fprintln(s.console, "Hello World!")

	// The system owns its controller; the package default stays free for
	// code that feeds keyboard.Deliver directly.
	s.kbd = keyboard.NewController(cfg.ScancodeCapacity)
	kbd := h.Keyboard()
	kbd.SetHandler(func(b byte) { s.kbd.Deliver(b) })
	h.Timer().SetHandler(s.tick)

	s.exec = task.NewExecutor(activityCPU{CPU: h.CPU(), led: h.LED()},
		task.WithQueueCapacity(cfg.QueueCapacity),
		task.WithStats(s.stats),
	)
	s.exec.Spawn(task.New(ExampleTask(s.console)))
	s.exec.Spawn(task.New(s.kbd.PrintKeypresses(s.console, kbd.Set())))

	s.log.Info().
		Stringer("scancode_set", kbd.Set()).
		Int("queue_capacity", cfg.QueueCapacity).
		Int("scancode_capacity", cfg.ScancodeCapacity).
		Msg("booted")
	return s
}

// Run starts the timer and enters the scheduler loop. It does not return.
func (s *System) Run() {
	if s.cfg.TimerHz > 0 {
		if err := s.h.Timer().Start(s.cfg.TimerHz); err != nil {
			s.log.Warn().Err(err).Int("hz", s.cfg.TimerHz).Msg("timer not started")
		}
	}
	s.exec.Run()
}

// Run boots the system on h and never returns.
func Run(h hal.HAL, cfg Config) {
	New(h, cfg).Run()
}

// Stats returns the scheduler counters.
func (s *System) Stats() *task.Stats { return s.stats }

// Ticks returns the number of timer interrupts taken.
func (s *System) Ticks() uint64 { return s.ticks.Load() }

// Keyboard returns the scancode controller fed by the keyboard interrupt.
func (s *System) Keyboard() *keyboard.Controller { return s.kbd }

func (s *System) tick() {
	s.ticks.Add(1)
	if s.cfg.TimerDots {
		_, _ = s.h.Serial().Write([]byte{'.'})
	}
}

// activityCPU drives the LED low while the CPU sleeps.
type activityCPU struct {
	hal.CPU
	led hal.LED
}

func (c activityCPU) EnableAndHalt() {
	c.led.Low()
	c.CPU.EnableAndHalt()
	c.led.High()
}
