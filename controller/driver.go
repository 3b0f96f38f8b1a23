package controller

import "github.com/ardnew/socusb/controller/hal"

// Driver describes a controller driver to the bus dispatcher: its
// identity, its device-tree match table, and how to construct its engine.
//
// A Driver is constructed once at platform-integration time and never
// mutated afterwards.
type Driver interface {
	// Name returns the driver name, used to derive bus names.
	Name() string

	// Description returns a human-readable driver description.
	Description() string

	// MatchTable returns the compatible-string tags this driver binds to.
	MatchTable() []string

	// PrivateSize returns the engine private-state size in bytes. The
	// handle allocates this once at creation; the engine owns it
	// exclusively afterwards.
	PrivateSize() int

	// NewEngine constructs the engine over the handle's private state.
	NewEngine(priv []byte) hal.Engine
}

// StaticDriver is a Driver built from fixed values, for platforms that
// do not need per-probe logic.
type StaticDriver struct {
	DriverName string
	Desc       string
	Matches    []string
	PrivSize   int
	Engine     func(priv []byte) hal.Engine
}

// Name implements Driver.
func (d *StaticDriver) Name() string { return d.DriverName }

// Description implements Driver.
func (d *StaticDriver) Description() string { return d.Desc }

// MatchTable implements Driver.
func (d *StaticDriver) MatchTable() []string { return d.Matches }

// PrivateSize implements Driver.
func (d *StaticDriver) PrivateSize() int { return d.PrivSize }

// NewEngine implements Driver.
func (d *StaticDriver) NewEngine(priv []byte) hal.Engine { return d.Engine(priv) }
