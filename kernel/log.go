package kernel

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var globalLogger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	globalLogger.Store(&nop)
}

// SetLogger sets the process-wide kernel logger.
//
// It should be called once during boot, before any task is spawned.
func SetLogger(l zerolog.Logger) {
	globalLogger.Store(&l)
}

// Logger returns the process-wide kernel logger.
//
// The lookup is a single atomic load, so it is usable from interrupt context.
func Logger() *zerolog.Logger {
	return globalLogger.Load()
}
