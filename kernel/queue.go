package kernel

import "sync/atomic"

// ArrayQueue is a fixed-capacity multi-producer/multi-consumer queue.
//
// It is designed for bare-metal use: no allocations after construction, no
// locks, and Push/Pop never block, so both are safe from interrupt context.
// Push fails when the queue is full; it never overwrites.
type ArrayQueue[T any] struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint64
	_     [56]byte
	tail  atomic.Uint64
	_     [56]byte
	slots []queueSlot[T]
	n     uint64 // len(slots)
	cap   uint64
}

type queueSlot[T any] struct {
	// seq == pos: free for the producer claiming pos.
	// seq == pos+1: filled, ready for the consumer claiming pos.
	seq atomic.Uint64
	val T
}

// NewArrayQueue returns an empty queue holding at most capacity values.
func NewArrayQueue[T any](capacity int) *ArrayQueue[T] {
	if capacity <= 0 {
		Fatalf("array queue: capacity must be positive, got %d", capacity)
	}
	// With a single slot a filled sequence (pos+1) reads as free for the
	// next producer, so at least two slots back the queue.
	n := max(capacity, 2)
	q := &ArrayQueue[T]{
		slots: make([]queueSlot[T], n),
		n:     uint64(n),
		cap:   uint64(capacity),
	}
	for i := range q.slots {
		q.slots[i].seq.Store(uint64(i))
	}
	return q
}

// Push attempts to enqueue v, returning false if the queue is full.
func (q *ArrayQueue[T]) Push(v T) bool {
	pos := q.tail.Load()
	for {
		s := &q.slots[pos%q.n]
		seq := s.seq.Load()
		switch dif := int64(seq - pos); {
		case dif == 0:
			head := q.head.Load()
			if head > pos {
				// pos is stale.
				pos = q.tail.Load()
				continue
			}
			if pos-head >= q.cap {
				return false
			}
			// Reserve a slot.
			if q.tail.CompareAndSwap(pos, pos+1) {
				s.val = v
				s.seq.Store(pos + 1)
				return true
			}
			pos = q.tail.Load()
		case dif < 0:
			return false
		default:
			pos = q.tail.Load()
		}
	}
}

// Pop attempts to dequeue one value, returning false if the queue is empty.
func (q *ArrayQueue[T]) Pop() (T, bool) {
	pos := q.head.Load()
	for {
		s := &q.slots[pos%q.n]
		seq := s.seq.Load()
		switch dif := int64(seq - (pos + 1)); {
		case dif == 0:
			if q.head.CompareAndSwap(pos, pos+1) {
				v := s.val
				var zero T
				s.val = zero
				s.seq.Store(pos + q.n)
				return v, true
			}
			pos = q.head.Load()
		case dif < 0:
			var zero T
			return zero, false
		default:
			pos = q.head.Load()
		}
	}
}

// Len returns the number of queued values. It is a snapshot and may be stale
// by the time it is used.
func (q *ArrayQueue[T]) Len() int {
	for {
		tail := q.tail.Load()
		head := q.head.Load()
		if q.tail.Load() != tail {
			continue
		}
		if tail < head {
			return 0
		}
		n := tail - head
		if n > q.cap {
			n = q.cap
		}
		return int(n)
	}
}

// IsEmpty reports whether the queue holds no values.
func (q *ArrayQueue[T]) IsEmpty() bool {
	return q.head.Load() == q.tail.Load()
}

// IsFull reports whether the queue is at capacity.
func (q *ArrayQueue[T]) IsFull() bool {
	head := q.head.Load()
	return q.tail.Load()-head >= q.cap
}

// Cap returns the queue capacity.
func (q *ArrayQueue[T]) Cap() int { return int(q.cap) }
