//go:build tinygo && baremetal && !cortexm

package hal

import "runtime/interrupt"

// portableCPU uses the runtime interrupt mask. It has no wait-for-interrupt
// instruction, so EnableAndHalt returns immediately and the executor spins.
type portableCPU struct {
	state interrupt.State
}

func newCPU() CPU { return &portableCPU{} }

func (c *portableCPU) DisableInterrupts() { c.state = interrupt.Disable() }
func (c *portableCPU) EnableInterrupts()  { interrupt.Restore(c.state) }
func (c *portableCPU) EnableAndHalt()     { interrupt.Restore(c.state) }
