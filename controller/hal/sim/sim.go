package sim

import (
	"sync"

	"github.com/ardnew/socusb/controller/hal"
	"github.com/ardnew/socusb/dtree"
	"github.com/ardnew/socusb/mmio"
	"github.com/ardnew/socusb/pkg"
)

// Engine is a simulated host-controller engine with fault injection.
//
// A zero InitCode/RunCode means the operation succeeds; a nonzero value
// makes it fail with that engine code.
type Engine struct {
	InitCode int // Injected Init failure code (0 = success)
	RunCode  int // Injected Run failure code (0 = success)

	mu      sync.Mutex
	regs    *mmio.Region
	inited  bool
	running bool
	calls   []string
	frame   uint32
}

// NewEngine creates a simulated engine that succeeds on every operation.
func NewEngine() *Engine {
	return &Engine{}
}

// Init implements hal.Engine.
func (e *Engine) Init(regs *mmio.Region) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("init")
	if e.InitCode != 0 {
		return &pkg.EngineError{Stage: pkg.StageInit, Code: e.InitCode}
	}
	e.regs = regs
	e.inited = true
	return nil
}

// Run implements hal.Engine.
func (e *Engine) Run() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("run")
	if !e.inited {
		return &pkg.EngineError{Stage: pkg.StageRun, Code: -1}
	}
	if e.RunCode != 0 {
		return &pkg.EngineError{Stage: pkg.StageRun, Code: e.RunCode}
	}
	e.running = true
	return nil
}

// Stop implements hal.Engine.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("stop")
	e.running = false
	e.inited = false
}

// HandleInterrupt implements hal.Engine. The simulated engine claims
// every interrupt while running.
func (e *Engine) HandleInterrupt() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("irq")
	if e.running {
		e.frame++
	}
	return e.running
}

// FrameNumber implements hal.Engine.
func (e *Engine) FrameNumber() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame
}

// HubStatus implements hal.Engine. No port changes are ever reported.
func (e *Engine) HubStatus(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, pkg.ErrInvalidState
	}
	buf[0] = 0
	return 1, nil
}

// HubControl implements hal.Engine. Requests are accepted and ignored.
func (e *Engine) HubControl(req, value, index uint16, buf []byte) (int, error) {
	return 0, nil
}

// Running reports whether the engine is running.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Calls returns the recorded operation sequence.
func (e *Engine) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

func (e *Engine) record(op string) {
	e.calls = append(e.calls, op)
}

// Bus is a simulated bus registration collaborator.
type Bus struct {
	RegisterErr error // Injected Register failure

	mu         sync.Mutex
	registered map[string]hal.InterruptLine
}

// NewBus creates an empty simulated bus.
func NewBus() *Bus {
	return &Bus{registered: make(map[string]hal.InterruptLine)}
}

// Register implements hal.Bus.
func (b *Bus) Register(name string, irq hal.InterruptLine) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.RegisterErr != nil {
		return b.RegisterErr
	}
	b.registered[name] = irq
	pkg.LogDebug(pkg.ComponentSim, "bus registered", "name", name, "irq", int(irq))
	return nil
}

// Unregister implements hal.Bus.
func (b *Bus) Unregister(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.registered, name)
	pkg.LogDebug(pkg.ComponentSim, "bus unregistered", "name", name)
}

// Registered reports whether name is currently registered.
func (b *Bus) Registered(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.registered[name]
	return ok
}

// Count returns the number of registered controllers.
func (b *Bus) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.registered)
}

// Intc is a simulated interrupt controller. Lines are derived from
// specifiers by a fixed offset so tests can predict them.
//
// Mappings are reference counted: mapping the same specifier again
// returns the existing line, and the line stays claimed until every
// mapping has been disposed.
type Intc struct {
	// Unmappable holds specifiers the platform cannot map.
	Unmappable map[dtree.InterruptSpec]bool

	mu     sync.Mutex
	refs   map[hal.InterruptLine]int
	lines  map[dtree.InterruptSpec]hal.InterruptLine
	bySpec map[hal.InterruptLine]dtree.InterruptSpec
}

// LineBase offsets simulated interrupt lines so that line 0 stays the
// unmapped sentinel.
const LineBase = 32

// NewIntc creates a simulated interrupt controller.
func NewIntc() *Intc {
	return &Intc{
		Unmappable: make(map[dtree.InterruptSpec]bool),
		refs:       make(map[hal.InterruptLine]int),
		lines:      make(map[dtree.InterruptSpec]hal.InterruptLine),
		bySpec:     make(map[hal.InterruptLine]dtree.InterruptSpec),
	}
}

// Map implements hal.InterruptController.
func (c *Intc) Map(spec dtree.InterruptSpec) (hal.InterruptLine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Unmappable[spec] {
		return hal.LineNone, pkg.ErrNoInterruptLine
	}
	line, ok := c.lines[spec]
	if !ok {
		line = hal.InterruptLine(LineBase + int(spec))
		c.lines[spec] = line
		c.bySpec[line] = spec
	}
	c.refs[line]++
	return line, nil
}

// Dispose implements hal.InterruptController.
func (c *Intc) Dispose(line hal.InterruptLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refs[line] == 0 {
		return
	}
	c.refs[line]--
	if c.refs[line] == 0 {
		delete(c.refs, line)
		if spec, ok := c.bySpec[line]; ok {
			delete(c.bySpec, line)
			delete(c.lines, spec)
		}
	}
}

// Claims returns the number of currently mapped lines.
func (c *Intc) Claims() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Platform is a simulated platform identity.
type Platform struct {
	Flavour hal.IPCFlavour
}

// IPCFlavour implements hal.Platform.
func (p *Platform) IPCFlavour() hal.IPCFlavour {
	return p.Flavour
}
