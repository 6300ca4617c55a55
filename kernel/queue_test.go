package kernel

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayQueuePopEmpty(t *testing.T) {
	q := NewArrayQueue[byte](4)

	_, ok := q.Pop()
	assert.False(t, ok, "Pop() on empty queue")
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 0, q.Len())
}

func TestArrayQueuePushFull(t *testing.T) {
	const capacity = 100
	q := NewArrayQueue[byte](capacity)

	for i := 0; i < capacity; i++ {
		require.Truef(t, q.Push(byte(i)), "Push() at slot %d", i)
	}
	assert.True(t, q.IsFull())
	assert.False(t, q.Push(0xFF), "Push() when full must fail, not overwrite")
	assert.Equal(t, capacity, q.Len())

	for i := 0; i < capacity; i++ {
		v, ok := q.Pop()
		require.Truef(t, ok, "Pop() at slot %d", i)
		assert.Equalf(t, byte(i), v, "Pop() order at slot %d", i)
	}
	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestArrayQueueWrapsAround(t *testing.T) {
	q := NewArrayQueue[int](3)

	for round := 0; round < 10; round++ {
		require.True(t, q.Push(round))
		require.True(t, q.Push(round+100))
		v, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, round, v)
		v, ok = q.Pop()
		require.True(t, ok)
		assert.Equal(t, round+100, v)
	}
	assert.True(t, q.IsEmpty())
}

func TestArrayQueueSmallCapacities(t *testing.T) {
	for _, capacity := range []int{1, 2} {
		q := NewArrayQueue[int](capacity)
		assert.Equal(t, capacity, q.Cap())

		for round := 0; round < 5; round++ {
			for i := 0; i < capacity; i++ {
				require.Truef(t, q.Push(round*10+i), "cap %d round %d push %d", capacity, round, i)
			}
			assert.Truef(t, q.IsFull(), "cap %d", capacity)
			assert.Falsef(t, q.Push(-1), "cap %d: Push() when full must fail", capacity)
			assert.Equal(t, capacity, q.Len())

			for i := 0; i < capacity; i++ {
				v, ok := q.Pop()
				require.Truef(t, ok, "cap %d round %d pop %d", capacity, round, i)
				assert.Equal(t, round*10+i, v, "full push must not overwrite")
			}
			_, ok := q.Pop()
			assert.False(t, ok)
			assert.True(t, q.IsEmpty())
		}
	}
}

func TestArrayQueueZeroCapacityIsFatal(t *testing.T) {
	assert.Panics(t, func() { NewArrayQueue[int](0) })
}

func TestArrayQueueConcurrentProducers(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(1)
	defer runtime.GOMAXPROCS(oldProcs)

	const (
		producers = 4
		perProd   = 10_000
		total     = producers * perProd
	)

	q := NewArrayQueue[uint32](64)

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(producers)
	for producerID := 0; producerID < producers; producerID++ {
		go func(producerID int) {
			defer wg.Done()
			<-start
			for i := 0; i < perProd; i++ {
				id := uint32(producerID*perProd + i)
				for !q.Push(id) {
					runtime.Gosched()
				}
			}
		}(producerID)
	}
	close(start)

	seen := make([]bool, total)
	for i := 0; i < total; {
		id, ok := q.Pop()
		if !ok {
			runtime.Gosched()
			continue
		}
		require.Less(t, int(id), total)
		require.Falsef(t, seen[id], "Pop() duplicate id %d", id)
		seen[id] = true
		i++
	}

	wg.Wait()
	assert.True(t, q.IsEmpty())
}
