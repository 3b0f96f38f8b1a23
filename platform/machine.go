package platform

import (
	"errors"
	"fmt"
	"io"

	"github.com/ardnew/socusb/dtree"
	"github.com/ardnew/socusb/platform/hal"
)

// Ops is the machine descriptor interface consumed by the external
// boot dispatcher. Machine implements it.
type Ops interface {
	Name() string
	Probe(tree *dtree.Tree) bool
	CPUInfo(w io.Writer)
	Restart(cmd string)
	PowerOff()
	Halt()
	EmergencyShutdown()
	PrepareKexec(image string) error
	ExecKexec(image string)
}

// Config describes a machine. It is constructed once at boot-sequencing
// time; the resulting Machine is never mutated afterwards.
type Config struct {
	// Name is the machine name.
	Name string

	// Compatible is the root compatible tag Probe accepts.
	Compatible string

	// Vendor is reported by CPUInfo.
	Vendor string

	// CPU and IPC are the platform collaborators.
	CPU hal.CPU
	IPC hal.RemoteCalls

	// BootTitle is the alternate boot title tried first on restart.
	BootTitle hal.TitleID
}

// Machine bundles the power sequencer with the machine's identity.
type Machine struct {
	name       string
	compatible string
	vendor     string
	seq        *Sequencer
}

// NewMachine validates cfg and creates the machine descriptor.
func NewMachine(cfg Config) (*Machine, error) {
	switch {
	case cfg.Name == "":
		return nil, errors.New("platform: empty machine name")
	case cfg.Compatible == "":
		return nil, errors.New("platform: empty compatible tag")
	case cfg.CPU == nil:
		return nil, errors.New("platform: nil CPU")
	case cfg.IPC == nil:
		return nil, errors.New("platform: nil IPC")
	}
	return &Machine{
		name:       cfg.Name,
		compatible: cfg.Compatible,
		vendor:     cfg.Vendor,
		seq:        NewSequencer(cfg.CPU, cfg.IPC, cfg.BootTitle),
	}, nil
}

// Name returns the machine name.
func (m *Machine) Name() string {
	return m.name
}

// Probe reports whether the hardware description tree identifies this
// machine: its root must carry the expected compatible tag.
func (m *Machine) Probe(tree *dtree.Tree) bool {
	if tree == nil || tree.Root() == nil {
		return false
	}
	return tree.Root().IsCompatible(m.compatible)
}

// CPUInfo writes seq-style machine identification lines.
func (m *Machine) CPUInfo(w io.Writer) {
	fmt.Fprintf(w, "vendor\t\t: %s\n", m.vendor)
	fmt.Fprintf(w, "machine\t\t: %s\n", m.name)
}

// Restart restarts the machine. Never returns in production.
func (m *Machine) Restart(cmd string) { m.seq.Restart(cmd) }

// PowerOff powers the machine off. Never returns in production.
func (m *Machine) PowerOff() { m.seq.PowerOff() }

// Halt halts the machine. Never returns in production.
func (m *Machine) Halt() { m.seq.Halt() }

// EmergencyShutdown quiesces in-flight I/O before an image handoff.
func (m *Machine) EmergencyShutdown() { m.seq.EmergencyShutdown() }

// PrepareKexec validates an image handoff. Always succeeds.
func (m *Machine) PrepareKexec(image string) error { return m.seq.PrepareKexec(image) }

// ExecKexec transfers control to the given image. Never returns on
// success.
func (m *Machine) ExecKexec(image string) { m.seq.ExecKexec(image) }

var _ Ops = (*Machine)(nil)
