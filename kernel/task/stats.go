package task

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Stats counts scheduler events. Counters are atomic because wakes are
// recorded from interrupt context.
type Stats struct {
	Spawned       atomic.Uint64
	Polls         atomic.Uint64
	Completed     atomic.Uint64
	StaleSkipped  atomic.Uint64
	WakersCreated atomic.Uint64
	Wakes         atomic.Uint64
	IdleHalts     atomic.Uint64
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (s *Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("spawned", s.Spawned.Load()).
		Uint64("polls", s.Polls.Load()).
		Uint64("completed", s.Completed.Load()).
		Uint64("stale_skipped", s.StaleSkipped.Load()).
		Uint64("wakers_created", s.WakersCreated.Load()).
		Uint64("wakes", s.Wakes.Load()).
		Uint64("idle_halts", s.IdleHalts.Load())
}
