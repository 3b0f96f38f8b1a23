package sim

import (
	"sync"

	"github.com/ardnew/socusb/platform/hal"
	"github.com/ardnew/socusb/pkg"
)

// CPU is a simulated local processor.
//
// Park blocks forever like the production primitive, unless OnPark is
// set, in which case OnPark is invoked instead (the socusb-sim tool uses
// this to exit its simulation).
type CPU struct {
	// OnPark, when non-nil, replaces the blocking park.
	OnPark func()

	mu                 sync.Mutex
	interruptsDisabled bool
	parked             bool
	parkedCh           chan struct{}
}

// NewCPU creates a simulated CPU with interrupts enabled.
func NewCPU() *CPU {
	return &CPU{parkedCh: make(chan struct{})}
}

// DisableInterrupts implements hal.CPU.
func (c *CPU) DisableInterrupts() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interruptsDisabled = true
}

// Relax implements hal.CPU. It is a no-op in simulation.
func (c *CPU) Relax() {}

// Park implements hal.CPU.
func (c *CPU) Park() {
	c.mu.Lock()
	if !c.parked {
		c.parked = true
		close(c.parkedCh)
	}
	onPark := c.OnPark
	c.mu.Unlock()

	if onPark != nil {
		onPark()
		return
	}
	select {}
}

// InterruptsDisabled reports whether interrupts are masked.
func (c *CPU) InterruptsDisabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interruptsDisabled
}

// Parked reports whether the CPU has entered its terminal park.
func (c *CPU) Parked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parked
}

// ParkedCh returns a channel closed when the CPU parks.
func (c *CPU) ParkedCh() <-chan struct{} {
	return c.parkedCh
}

// Remote-call names recorded by IPC.
const (
	CallReloadAndLaunch  = "reload-and-launch"
	CallAssistedRestart  = "assisted-restart"
	CallAssistedPowerOff = "assisted-poweroff"
	CallQuiesceIO        = "quiesce-io"
	CallDiscardIOSession = "discard-io-session"
	CallJumpToImage      = "jump-to-image"
)

// IPC is a simulated firmware IPC surface. Calls named in Effective
// model a successful transfer of control: they record themselves and
// then block forever.
type IPC struct {
	// Effective marks calls that take effect (and thus never return).
	Effective map[string]bool

	mu    sync.Mutex
	calls []string
}

// NewIPC creates a simulated IPC surface on which no call takes effect.
func NewIPC() *IPC {
	return &IPC{Effective: make(map[string]bool)}
}

// ReloadAndLaunch implements hal.RemoteCalls.
func (i *IPC) ReloadAndLaunch(title hal.TitleID) {
	i.attempt(CallReloadAndLaunch)
}

// AssistedRestart implements hal.RemoteCalls.
func (i *IPC) AssistedRestart() {
	i.attempt(CallAssistedRestart)
}

// AssistedPowerOff implements hal.RemoteCalls.
func (i *IPC) AssistedPowerOff() {
	i.attempt(CallAssistedPowerOff)
}

// QuiesceIO implements hal.RemoteCalls. Quiescing always completes and
// returns.
func (i *IPC) QuiesceIO() {
	i.record(CallQuiesceIO)
}

// DiscardIOSession implements hal.RemoteCalls. Discarding always
// completes and returns.
func (i *IPC) DiscardIOSession() {
	i.record(CallDiscardIOSession)
}

// JumpToImage implements hal.RemoteCalls.
func (i *IPC) JumpToImage(image string) {
	i.attempt(CallJumpToImage)
}

// attempt records the call and blocks forever when it is effective.
func (i *IPC) attempt(name string) {
	i.record(name)

	i.mu.Lock()
	effective := i.Effective[name]
	i.mu.Unlock()

	if effective {
		pkg.LogDebug(pkg.ComponentSim, "remote call took effect", "call", name)
		select {}
	}
}

func (i *IPC) record(name string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.calls = append(i.calls, name)
}

// Calls returns the recorded call order.
func (i *IPC) Calls() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.calls...)
}
