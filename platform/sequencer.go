package platform

import (
	"github.com/ardnew/socusb/pkg"
	"github.com/ardnew/socusb/platform/hal"
)

// Sequencer orchestrates the machine's terminal power transitions as
// ordered attempt chains. None of its terminal operations return in
// production; each ends with control transferred out of this system or
// with the processor parked.
type Sequencer struct {
	cpu   hal.CPU
	ipc   hal.RemoteCalls
	title hal.TitleID
}

// NewSequencer creates a sequencer over the given CPU and IPC surface.
// title is the alternate boot title tried first on restart.
func NewSequencer(cpu hal.CPU, ipc hal.RemoteCalls, title hal.TitleID) *Sequencer {
	return &Sequencer{cpu: cpu, ipc: ipc, title: title}
}

// Restart restarts the machine. The optional command is accepted for
// interface compatibility and ignored; the firmware takes no arguments.
//
// It never returns in production.
func (s *Sequencer) Restart(cmd string) {
	s.cpu.DisableInterrupts()

	// Try first to launch the alternate boot title...
	s.ipc.ReloadAndLaunch(s.title)
	// ...and if that had no effect, try an assisted restart.
	s.ipc.AssistedRestart()

	s.spin()
}

// PowerOff powers the machine off. It never returns in production.
func (s *Sequencer) PowerOff() {
	s.cpu.DisableInterrupts()

	s.ipc.AssistedPowerOff()

	s.spin()
}

// Halt halts the machine. Halting and restarting are policy-equivalent
// on this platform.
func (s *Sequencer) Halt() {
	s.Restart("")
}

// EmergencyShutdown synchronously quiesces any in-flight I/O subsystem
// transaction. It must complete before control transfers to another
// kernel image; there is no rollback.
func (s *Sequencer) EmergencyShutdown() {
	s.ipc.QuiesceIO()
}

// PrepareKexec validates an image handoff. It always succeeds; the hook
// exists only to satisfy the image-handoff contract.
func (s *Sequencer) PrepareKexec(image string) error {
	return nil
}

// ExecKexec transfers control to the given kernel image. The current
// I/O subsystem session is discarded first so firmware-held I/O
// resources are freed before the jump; after that call the old
// environment is assumed gone, so there is no fallback.
//
// It never returns on success.
func (s *Sequencer) ExecKexec(image string) {
	s.cpu.DisableInterrupts()

	s.ipc.DiscardIOSession()
	s.ipc.JumpToImage(image)
}

// spin parks the processor with interrupts already masked. This is the
// deliberate terminal safe state once every attempt is exhausted.
func (s *Sequencer) spin() {
	pkg.LogError(pkg.ComponentPlatform, "all power attempts exhausted, parking")
	for {
		s.cpu.Park()
		s.cpu.Relax()
	}
}
