package controller

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ardnew/socusb/controller/hal"
	"github.com/ardnew/socusb/dtree"
	"github.com/ardnew/socusb/mmio"
	"github.com/ardnew/socusb/pkg"
)

// Config carries the collaborators the lifecycle manager sequences.
// It is constructed once at platform-integration time.
type Config struct {
	Driver   Driver
	Mapper   mmio.Mapper
	Intc     hal.InterruptController
	Bus      hal.Bus
	Platform hal.Platform
	IRQCtl   *SharedInterruptControl

	// RequireFlavour gates the probe path on platform identity.
	// The zero value requires the minimal-firmware IPC environment.
	RequireFlavour hal.IPCFlavour
}

// Manager owns the bring-up and teardown sequences for up to MaxSlots
// co-resident controller instances.
//
// BringUp for distinct nodes may run concurrently (parallel device
// enumeration); bring-up and teardown for the same handle must not.
type Manager struct {
	cfg Config

	mu    sync.Mutex
	slots [MaxSlots]*Handle
}

// NewManager validates cfg and creates a manager.
func NewManager(cfg Config) (*Manager, error) {
	switch {
	case cfg.Driver == nil:
		return nil, errors.New("controller: nil driver")
	case cfg.Mapper == nil:
		return nil, errors.New("controller: nil mapper")
	case cfg.Intc == nil:
		return nil, errors.New("controller: nil interrupt controller")
	case cfg.Bus == nil:
		return nil, errors.New("controller: nil bus")
	case cfg.IRQCtl == nil:
		return nil, errors.New("controller: nil shared interrupt control")
	}
	if cfg.RequireFlavour == hal.IPCUnknown {
		cfg.RequireFlavour = hal.IPCMini
	}
	return &Manager{cfg: cfg}, nil
}

// Bind resolves a node's register window and interrupt line.
//
// The register window is looked up first; the interrupt mapping is
// checked after it but before any allocation, so a failure here leaves
// nothing allocated. Bind is idempotent and repeatable: the interrupt
// mapping is shared, and no other platform state is mutated.
func (m *Manager) Bind(node *dtree.Node) (Resources, error) {
	win, ok := node.Reg(0)
	if !ok {
		return Resources{}, fmt.Errorf("%s: %w", node.Name(), pkg.ErrNoRegisterWindow)
	}

	spec, ok := node.Interrupt(0)
	if !ok {
		return Resources{}, fmt.Errorf("%s: %w", node.Name(), pkg.ErrNoInterruptLine)
	}
	line, err := m.cfg.Intc.Map(spec)
	if err != nil || !line.IsMapped() {
		return Resources{}, fmt.Errorf("%s: %w", node.Name(), pkg.ErrNoInterruptLine)
	}

	return Resources{Window: win, Line: line}, nil
}

// Probe is the bus-dispatcher entry point. It fires only when exactly
// one match-table tag matches the node and the platform-identity check
// passes, then performs BringUp.
func (m *Manager) Probe(node *dtree.Node) (*Handle, error) {
	matches := 0
	for _, tag := range m.cfg.Driver.MatchTable() {
		if node.IsCompatible(tag) {
			matches++
		}
	}
	if matches != 1 {
		return nil, fmt.Errorf("%s: %d match-table entries match: %w",
			node.Name(), matches, pkg.ErrNoDevice)
	}

	if m.cfg.Platform == nil || m.cfg.Platform.IPCFlavour() != m.cfg.RequireFlavour {
		return nil, fmt.Errorf("%s: requires %v IPC: %w",
			m.cfg.Driver.Name(), m.cfg.RequireFlavour, pkg.ErrPlatformMismatch)
	}

	pkg.LogDebug(pkg.ComponentController, "initializing controller",
		"driver", m.cfg.Driver.Name(), "node", node.Name())

	return m.BringUp(node)
}

// BringUp acquires a node's resources and starts its controller. Failure
// at any step synchronously undoes all prior steps; a handle is returned
// only in the running, bus-registered state.
func (m *Manager) BringUp(node *dtree.Node) (*Handle, error) {
	// 1. Resolve resources. Nothing is allocated on failure.
	res, err := m.Bind(node)
	if err != nil {
		return nil, err
	}

	// 2. Allocate the handle, sized for the engine private state.
	h, err := m.allocate(node, res)
	if err != nil {
		m.cfg.Intc.Dispose(res.Line)
		return nil, err
	}
	h.state = StateResourcesBound

	// 3. Map the register window.
	regs, err := m.cfg.Mapper.Map(res.Window)
	if err != nil {
		m.free(h)
		m.cfg.Intc.Dispose(res.Line)
		return nil, fmt.Errorf("%s: %w: %w", h.name, pkg.ErrMappingFailed, err)
	}
	h.regs = regs
	h.state = StateRegistersMapped

	// 4. Initialize the controller engine against the mapped registers.
	if err := h.engine.Init(regs); err != nil {
		m.unwind(h)
		return nil, fmt.Errorf("%s: %w", h.name, err)
	}
	h.state = StateEngineInitialized

	// 5. Enable interrupt notification for this slot. Policy step for the
	// dual-slot control register, not part of the generic engine.
	if err := m.cfg.IRQCtl.Enable(h.slot); err != nil {
		h.engine.Stop()
		m.unwind(h)
		return nil, fmt.Errorf("%s: %w", h.name, err)
	}
	h.irqEnabled = true
	h.state = StateInterruptsEnabled

	// 6. Start the engine.
	if err := h.engine.Run(); err != nil {
		pkg.LogError(pkg.ComponentController, "can't start controller",
			"bus", h.name, "code", pkg.EngineCode(err))
		h.engine.Stop()
		m.unwind(h)
		return nil, fmt.Errorf("%s: %w", h.name, err)
	}
	h.state = StateRunning

	// 7. Register with the bus.
	if err := m.cfg.Bus.Register(h.name, res.Line); err != nil {
		h.engine.Stop()
		m.unwind(h)
		return nil, fmt.Errorf("%s: register: %w", h.name, err)
	}
	h.registered = true

	pkg.LogInfo(pkg.ComponentController, "controller running",
		"bus", h.name, "window", res.Window.String(), "irq", int(res.Line))
	return h, nil
}

// TearDown releases a controller in the exact reverse of BringUp:
// unregister, stop the engine and clear its interrupt-enable bit,
// dispose the interrupt mapping, unmap the window, free the handle.
//
// It is safe for a handle in any state from RegistersMapped onward,
// including a handle quiesced by Shutdown, which is Stopped but still
// bus-registered with its enable bit set.
func (m *Manager) TearDown(h *Handle) {
	if h == nil || h.state == StateRemoved {
		return
	}

	pkg.LogDebug(pkg.ComponentController, "stopping controller", "bus", h.name)

	if h.registered {
		m.cfg.Bus.Unregister(h.name)
		h.registered = false
	}
	if h.state >= StateEngineInitialized && h.state <= StateRunning {
		h.engine.Stop()
	}
	if h.irqEnabled {
		if err := m.cfg.IRQCtl.Disable(h.slot); err != nil {
			pkg.LogWarn(pkg.ComponentController, "disable interrupt bit",
				"bus", h.name, "error", err)
		}
		h.irqEnabled = false
	}
	h.state = StateStopped

	m.cfg.Intc.Dispose(h.res.Line)
	if h.regs != nil {
		m.cfg.Mapper.Unmap(h.regs)
		h.regs = nil
	}
	m.free(h)
	h.state = StateRemoved
}

// Shutdown quiesces a running controller without unregistering it, for
// the final phase before the platform hands off or powers down.
func (m *Manager) Shutdown(h *Handle) {
	if h == nil || h.state != StateRunning {
		return
	}
	h.engine.Stop()
	h.state = StateStopped
}

// Handles returns the currently allocated handles in slot order.
func (m *Manager) Handles() []*Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	var hs []*Handle
	for _, h := range m.slots {
		if h != nil {
			hs = append(hs, h)
		}
	}
	return hs
}

// allocate claims a free slot and builds a handle with its engine
// private state.
func (m *Manager) allocate(node *dtree.Node, res Resources) (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for slot := 0; slot < MaxSlots; slot++ {
		if m.slots[slot] != nil {
			continue
		}
		h := &Handle{
			name:  fmt.Sprintf("%s.%d", m.cfg.Driver.Name(), slot),
			node:  node,
			res:   res,
			priv:  make([]byte, m.cfg.Driver.PrivateSize()),
			slot:  slot,
			state: StateCreated,
		}
		h.engine = m.cfg.Driver.NewEngine(h.priv)
		m.slots[slot] = h
		return h, nil
	}
	return nil, fmt.Errorf("%s: no controller slot free: %w",
		m.cfg.Driver.Name(), pkg.ErrNoMemory)
}

// free releases the handle's slot.
func (m *Manager) free(h *Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slots[h.slot] == h {
		m.slots[h.slot] = nil
	}
}

// unwind rolls back a partially brought-up handle: clears the slot's
// interrupt-enable bit if it was set, then releases mapping, slot, and
// interrupt line. The engine must already be stopped by the caller.
func (m *Manager) unwind(h *Handle) {
	if h.irqEnabled {
		if err := m.cfg.IRQCtl.Disable(h.slot); err != nil {
			pkg.LogWarn(pkg.ComponentController, "disable interrupt bit",
				"bus", h.name, "error", err)
		}
		h.irqEnabled = false
	}
	m.cfg.Mapper.Unmap(h.regs)
	h.regs = nil
	m.free(h)
	m.cfg.Intc.Dispose(h.res.Line)
	h.state = StateRemoved
}
