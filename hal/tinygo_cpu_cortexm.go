//go:build tinygo && baremetal && cortexm

package hal

import "device/arm"

// cortexMCPU masks interrupts through PRIMASK.
//
// WFI wakes on a pending interrupt even while PRIMASK is set, so halting
// before lifting the mask cannot miss an interrupt that arrives in between.
type cortexMCPU struct {
	mask uintptr
}

func newCPU() CPU { return &cortexMCPU{} }

func (c *cortexMCPU) DisableInterrupts() {
	c.mask = arm.DisableInterrupts()
}

func (c *cortexMCPU) EnableInterrupts() {
	arm.EnableInterrupts(c.mask)
}

func (c *cortexMCPU) EnableAndHalt() {
	arm.Asm("wfi")
	arm.EnableInterrupts(c.mask)
}
