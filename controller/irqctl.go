package controller

import (
	"fmt"
	"sync"

	"github.com/ardnew/socusb/mmio"
)

// Interrupt-enable register layout. These are configuration constants of
// the dual-controller interrupt-control register, not computed values.
const (
	// IRQCtlOffset is the byte offset of the interrupt-enable register
	// within the companion control window.
	IRQCtlOffset = 0xcc

	// irqCtlReservedMask holds reserved bits the hardware requires to be
	// set whenever interrupt notification is enabled.
	irqCtlReservedMask = 0x000e0000

	// irqCtlSlot0Enable enables interrupt notification for slot 0.
	irqCtlSlot0Enable = 1 << 11

	// irqCtlSlot1Enable enables interrupt notification for slot 1.
	irqCtlSlot1Enable = 1 << 12
)

// MaxSlots is the number of controller slots sharing the
// interrupt-enable register.
const MaxSlots = 2

func slotEnableBit(slot int) uint32 {
	if slot == 0 {
		return irqCtlSlot0Enable
	}
	return irqCtlSlot1Enable
}

// SharedInterruptControl serializes access to the single mutable
// interrupt-enable register shared by both controller slots.
//
// The register is updated with a read-modify-write sequence, not a
// compare-and-swap. Both slots' bring-up sequences may run concurrently,
// so every access holds the mutex scoped to this register instance;
// an unsynchronized read-modify-write can silently drop the other
// slot's enable bit.
type SharedInterruptControl struct {
	mu     sync.Mutex
	regs   *mmio.Region
	offset uint64
}

// NewSharedInterruptControl creates the control over the interrupt-enable
// register at the given offset of the companion control window.
func NewSharedInterruptControl(regs *mmio.Region, offset uint64) *SharedInterruptControl {
	return &SharedInterruptControl{regs: regs, offset: offset}
}

// Enable sets the slot's enable bit, ORing in the reserved mask the
// hardware requires.
func (c *SharedInterruptControl) Enable(slot int) error {
	if slot < 0 || slot >= MaxSlots {
		return fmt.Errorf("invalid slot %d", slot)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	v, err := c.regs.Read32(c.offset)
	if err != nil {
		return err
	}
	return c.regs.Write32(c.offset, v|irqCtlReservedMask|slotEnableBit(slot))
}

// Disable clears the slot's enable bit, leaving the reserved mask and the
// other slot's bit untouched.
func (c *SharedInterruptControl) Disable(slot int) error {
	if slot < 0 || slot >= MaxSlots {
		return fmt.Errorf("invalid slot %d", slot)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	v, err := c.regs.Read32(c.offset)
	if err != nil {
		return err
	}
	return c.regs.Write32(c.offset, v&^slotEnableBit(slot))
}

// Enabled reports whether the slot's enable bit is set.
func (c *SharedInterruptControl) Enabled(slot int) (bool, error) {
	if slot < 0 || slot >= MaxSlots {
		return false, fmt.Errorf("invalid slot %d", slot)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	v, err := c.regs.Read32(c.offset)
	if err != nil {
		return false, err
	}
	return v&slotEnableBit(slot) != 0, nil
}
