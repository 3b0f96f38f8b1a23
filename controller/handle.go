package controller

import (
	"github.com/ardnew/socusb/controller/hal"
	"github.com/ardnew/socusb/dtree"
	"github.com/ardnew/socusb/mmio"
	"github.com/ardnew/socusb/pkg"
)

// Resources are a controller's resolved hardware resources.
type Resources struct {
	Window mmio.Window       // Register window from reg entry 0
	Line   hal.InterruptLine // Mapped interrupt line from interrupt entry 0
}

// Handle represents one instantiated, possibly partially-initialized
// controller.
//
// Handles are created by Manager.BringUp and released by Manager.TearDown.
// A handle is not safe for concurrent bring-up/teardown; the bus
// registration collaborator serializes probe and remove per device.
type Handle struct {
	name   string
	node   *dtree.Node
	res    Resources
	regs   *mmio.Region // Valid only after the mapping step
	priv   []byte       // Engine private state, fixed at creation
	engine hal.Engine
	slot   int
	state  State

	// Acquisition flags outlive the state transitions: a quiesced handle
	// is Stopped but may still hold its registration and enable bit.
	registered bool
	irqEnabled bool
}

// Name returns the controller's bus name.
func (h *Handle) Name() string {
	return h.name
}

// Node returns the device-tree node this controller was probed from.
func (h *Handle) Node() *dtree.Node {
	return h.node
}

// Resources returns the controller's resolved resources.
func (h *Handle) Resources() Resources {
	return h.res
}

// Slot returns the controller's interrupt-control slot (0 or 1).
func (h *Handle) Slot() int {
	return h.slot
}

// State returns the handle's lifecycle state.
func (h *Handle) State() State {
	return h.state
}

// HandleInterrupt dispatches a controller interrupt to the engine. It
// reports whether the interrupt belonged to this controller; a handle
// that is not running never claims interrupts.
func (h *Handle) HandleInterrupt() bool {
	if h.state != StateRunning {
		return false
	}
	return h.engine.HandleInterrupt()
}

// FrameNumber returns the engine's current frame number.
func (h *Handle) FrameNumber() (uint32, error) {
	if h.state != StateRunning {
		return 0, pkg.ErrInvalidState
	}
	return h.engine.FrameNumber(), nil
}

// HubStatus fills buf with root-hub status change bits.
func (h *Handle) HubStatus(buf []byte) (int, error) {
	if h.state != StateRunning {
		return 0, pkg.ErrInvalidState
	}
	return h.engine.HubStatus(buf)
}

// HubControl processes a root-hub control request.
func (h *Handle) HubControl(req, value, index uint16, buf []byte) (int, error) {
	if h.state != StateRunning {
		return 0, pkg.ErrInvalidState
	}
	return h.engine.HubControl(req, value, index, buf)
}
