package task

import (
	"github.com/rs/zerolog"

	"kestrel/kernel"
)

// DefaultQueueCapacity is the ready queue capacity used when none is set.
const DefaultQueueCapacity = 100

// CPU provides the interrupt-mask and halt primitives the idle path needs.
type CPU interface {
	DisableInterrupts()
	EnableInterrupts()
	// EnableAndHalt enables interrupts and halts until the next interrupt,
	// atomically with respect to interrupt delivery.
	EnableAndHalt()
}

type executorOptions struct {
	queueCapacity int
	logger        *zerolog.Logger
	stats         *Stats
}

// Option configures an Executor.
type Option func(*executorOptions)

// WithQueueCapacity sets the ready queue capacity.
func WithQueueCapacity(n int) Option {
	return func(o *executorOptions) { o.queueCapacity = n }
}

// WithLogger sets the executor logger. The kernel logger is used otherwise.
func WithLogger(l zerolog.Logger) Option {
	return func(o *executorOptions) { o.logger = &l }
}

// WithStats records scheduler events into s.
func WithStats(s *Stats) Option {
	return func(o *executorOptions) { o.stats = s }
}

// Executor runs tasks to completion, sleeping the CPU while none is ready.
type Executor struct {
	tasks      map[TaskID]*Task
	queue      *kernel.ArrayQueue[TaskID]
	wakerCache map[TaskID]*TaskWaker

	cpu   CPU
	log   *zerolog.Logger
	stats *Stats
}

// NewExecutor creates an executor idling on cpu.
func NewExecutor(cpu CPU, opts ...Option) *Executor {
	cfg := executorOptions{queueCapacity: DefaultQueueCapacity}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cpu == nil {
		kernel.Fatalf("executor: nil cpu")
	}
	if cfg.queueCapacity <= 0 {
		kernel.Fatalf("executor: queue capacity must be positive, got %d", cfg.queueCapacity)
	}
	if cfg.stats == nil {
		cfg.stats = &Stats{}
	}
	log := cfg.logger
	if log == nil {
		log = kernel.Logger()
	}
	sub := log.With().Str("component", "executor").Logger()
	return &Executor{
		tasks:      make(map[TaskID]*Task),
		queue:      kernel.NewArrayQueue[TaskID](cfg.queueCapacity),
		wakerCache: make(map[TaskID]*TaskWaker),
		cpu:        cpu,
		log:        &sub,
		stats:      cfg.stats,
	}
}

// Stats returns the executor's counters.
func (e *Executor) Stats() *Stats { return e.stats }

// Spawn hands t to the executor and marks it ready.
func (e *Executor) Spawn(t *Task) {
	if t == nil {
		kernel.Fatalf("executor: spawn nil task")
	}
	e.log.Debug().Uint64("task", uint64(t.id)).Msg("task spawned")
	if _, ok := e.tasks[t.id]; ok {
		kernel.Fatalf("executor: task %d already spawned", t.id)
	}
	e.tasks[t.id] = t
	if !e.queue.Push(t.id) {
		kernel.Fatalf("executor: task queue full (capacity %d) spawning task %d", e.queue.Cap(), t.id)
	}
	e.stats.Spawned.Add(1)
}

// Run drives tasks forever. It never returns.
func (e *Executor) Run() {
	e.log.Info().Int("queue_capacity", e.queue.Cap()).Msg("executor running")
	for {
		e.runReadyTasks()
		e.sleepIfIdle()
	}
}

func (e *Executor) runReadyTasks() {
	for {
		id, ok := e.queue.Pop()
		if !ok {
			return
		}
		e.log.Debug().Uint64("task", uint64(id)).Msg("popped")

		t, ok := e.tasks[id]
		if !ok {
			// Stale duplicate for a task that already completed.
			e.stats.StaleSkipped.Add(1)
			continue
		}

		w, ok := e.wakerCache[id]
		if !ok {
			w = newTaskWaker(id, e.queue, e.stats)
			e.wakerCache[id] = w
		}

		e.stats.Polls.Add(1)
		switch t.poll(kernel.NewContext(w)) {
		case kernel.Ready:
			e.log.Debug().Uint64("task", uint64(id)).Msg("task completed")
			delete(e.tasks, id)
			delete(e.wakerCache, id)
			e.stats.Completed.Add(1)
		case kernel.Pending:
			e.log.Debug().Uint64("task", uint64(id)).Msg("task pending")
		}
	}
}

func (e *Executor) sleepIfIdle() {
	e.cpu.DisableInterrupts()
	if e.queue.IsEmpty() {
		e.stats.IdleHalts.Add(1)
		e.cpu.EnableAndHalt()
	} else {
		e.cpu.EnableInterrupts()
	}
}
