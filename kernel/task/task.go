// Package task implements the cooperative scheduler: tasks, their wakers and
// the executor that drives them to completion.
package task

import (
	"strconv"
	"sync/atomic"

	"kestrel/kernel"
)

// TaskID identifies a task for its whole lifetime. IDs are never reused.
type TaskID uint64

func (id TaskID) String() string { return strconv.FormatUint(uint64(id), 10) }

var nextTaskID atomic.Uint64

// NewTaskID returns a process-wide unique task ID, starting at 0.
func NewTaskID() TaskID {
	return TaskID(nextTaskID.Add(1) - 1)
}

// Task owns one suspendable computation that produces no value.
//
// A Task is only ever handled by pointer: the computation is allocated once
// by New and never moves afterwards.
type Task struct {
	_      [0]func() // prevent accidental copying.
	id     TaskID
	future kernel.Future
}

// New wraps f in a task with a fresh ID.
func New(f kernel.Future) *Task {
	if f == nil {
		kernel.Fatalf("task: nil future")
	}
	return &Task{id: NewTaskID(), future: f}
}

// NewFunc wraps a poll function in a task.
func NewFunc(fn func(cx *kernel.Context) kernel.Poll) *Task {
	if fn == nil {
		kernel.Fatalf("task: nil poll func")
	}
	return New(kernel.FutureFunc(fn))
}

// ID returns the task ID.
func (t *Task) ID() TaskID { return t.id }

// poll resumes the computation. Only executors call it.
func (t *Task) poll(cx *kernel.Context) kernel.Poll {
	return t.future.Poll(cx)
}
