package task

import (
	"sync/atomic"

	"kestrel/kernel"
)

// TaskWaker pushes its task's ID onto the executor's ready queue.
//
// Executors build one per live task and cache it; clones handed out through
// kernel.Waker share the same instance.
type TaskWaker struct {
	id    TaskID
	queue *kernel.ArrayQueue[TaskID]
	stats *Stats
	refs  atomic.Int32
}

func newTaskWaker(id TaskID, queue *kernel.ArrayQueue[TaskID], stats *Stats) *TaskWaker {
	w := &TaskWaker{id: id, queue: queue, stats: stats}
	w.refs.Store(1)
	if stats != nil {
		stats.WakersCreated.Add(1)
	}
	return w
}

// Wake re-enqueues the task and releases the caller's reference.
func (w *TaskWaker) Wake() {
	w.wakeTask()
	w.Drop()
}

// WakeByRef re-enqueues the task.
func (w *TaskWaker) WakeByRef() {
	w.wakeTask()
}

// Clone adds a reference.
func (w *TaskWaker) Clone() kernel.Waker {
	w.refs.Add(1)
	return w
}

// Drop releases a reference without waking. Releasing more references
// than were taken is fatal.
func (w *TaskWaker) Drop() {
	if n := w.refs.Add(-1); n < 0 {
		kernel.Fatalf("waker for task %d dropped more often than cloned (refs %d)", w.id, n)
	}
}

// Refs returns the number of outstanding references.
func (w *TaskWaker) Refs() int32 { return w.refs.Load() }

// TaskID returns the task this waker belongs to.
func (w *TaskWaker) TaskID() TaskID { return w.id }

func (w *TaskWaker) wakeTask() {
	kernel.Logger().Debug().Uint64("task", uint64(w.id)).Msg("wake task")
	if !w.queue.Push(w.id) {
		kernel.Fatalf("task queue full (capacity %d) waking task %d", w.queue.Cap(), w.id)
	}
	if w.stats != nil {
		w.stats.Wakes.Add(1)
	}
}
