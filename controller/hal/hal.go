package hal

import (
	"github.com/ardnew/socusb/dtree"
	"github.com/ardnew/socusb/mmio"
)

// InterruptLine is a platform-specific interrupt line identifier.
type InterruptLine int

// LineNone is the unmapped interrupt line sentinel. A controller must not
// be started while its line is LineNone.
const LineNone InterruptLine = 0

// IsMapped reports whether the line is usable.
func (l InterruptLine) IsMapped() bool {
	return l != LineNone
}

// Engine is the opaque host-controller engine driving one controller
// instance. The lifecycle manager sequences its operations but never
// implements them.
//
// Init and Run report failures as numeric engine codes via EngineError;
// Stop undoes both and is safe to call after a failed Run.
type Engine interface {
	// Init prepares the engine against the mapped controller registers.
	Init(regs *mmio.Region) error

	// Run starts the engine. The engine must be initialized.
	Run() error

	// Stop halts the engine and disables its interrupt sources.
	Stop()

	// HandleInterrupt services a controller interrupt. It reports whether
	// the interrupt belonged to this controller.
	HandleInterrupt() bool

	// FrameNumber returns the current frame number for scheduling.
	FrameNumber() uint32

	// HubStatus fills buf with root-hub status change bits and returns
	// the number of significant bytes.
	HubStatus(buf []byte) (int, error)

	// HubControl processes a root-hub control request.
	HubControl(req, value, index uint16, buf []byte) (int, error)
}

// Bus is the device/bus registration machinery. It serializes probe and
// remove calls per device; the lifecycle manager relies on that.
type Bus interface {
	// Register announces a running controller to the bus, wiring its
	// interrupt line to the engine's interrupt handler.
	Register(name string, irq InterruptLine) error

	// Unregister withdraws a previously registered controller.
	Unregister(name string)
}

// InterruptController maps device-tree interrupt specifiers to platform
// interrupt lines.
//
// Map is idempotent: mapping the same specifier again returns the same
// line without claiming a second one. Dispose releases the claim.
type InterruptController interface {
	Map(spec dtree.InterruptSpec) (InterruptLine, error)
	Dispose(line InterruptLine)
}

// IPCFlavour identifies which firmware IPC environment the platform
// booted under.
type IPCFlavour int

// Known IPC flavours.
const (
	IPCUnknown IPCFlavour = iota // Undetermined environment
	IPCMini                      // Minimal replacement firmware
	IPCFull                      // Vendor firmware
)

// String returns a human-readable flavour name.
func (f IPCFlavour) String() string {
	switch f {
	case IPCMini:
		return "mini"
	case IPCFull:
		return "full"
	default:
		return "unknown"
	}
}

// Platform answers platform-identity questions gating the probe path.
type Platform interface {
	// IPCFlavour returns the firmware IPC environment in use.
	IPCFlavour() IPCFlavour
}
