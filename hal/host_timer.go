//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// hostTimer raises a tick interrupt from a ticker goroutine.
type hostTimer struct {
	cpu     *hostCPU
	handler atomic.Pointer[func()]

	mu   sync.Mutex
	stop chan struct{}
}

func newHostTimer(cpu *hostCPU) *hostTimer {
	return &hostTimer{cpu: cpu}
}

func (t *hostTimer) SetHandler(fn func()) {
	if fn == nil {
		t.handler.Store(nil)
		return
	}
	t.handler.Store(&fn)
}

func (t *hostTimer) Start(hz int) error {
	if hz <= 0 {
		return nil
	}
	d := time.Second / time.Duration(hz)
	if d <= 0 {
		return fmt.Errorf("invalid timer hz: %d", hz)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return fmt.Errorf("timer already running")
	}
	stop := make(chan struct{})
	t.stop = stop

	go func() {
		tk := time.NewTicker(d)
		defer tk.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tk.C:
				t.cpu.raise(func() {
					if fn := t.handler.Load(); fn != nil {
						(*fn)()
					}
				})
			}
		}
	}()
	return nil
}

// halt stops the ticker goroutine.
func (t *hostTimer) halt() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}
