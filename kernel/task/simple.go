package task

import "kestrel/kernel"

// SimpleExecutor is a busy-polling baseline scheduler.
//
// It ignores wake signals entirely: every pending task is re-polled in FIFO
// order until all tasks complete. Useful for tests and bring-up before
// interrupts are configured.
type SimpleExecutor struct {
	queue []*Task
}

// NewSimpleExecutor returns an empty SimpleExecutor.
func NewSimpleExecutor() *SimpleExecutor {
	return &SimpleExecutor{}
}

// Spawn appends t to the run queue.
func (e *SimpleExecutor) Spawn(t *Task) {
	if t == nil {
		kernel.Fatalf("simple executor: spawn nil task")
	}
	e.queue = append(e.queue, t)
}

// Run polls tasks until every one has completed.
func (e *SimpleExecutor) Run() {
	cx := kernel.NewContext(kernel.NoopWaker())
	for len(e.queue) > 0 {
		t := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		if t.poll(cx) == kernel.Pending {
			e.queue = append(e.queue, t)
		}
	}
}
