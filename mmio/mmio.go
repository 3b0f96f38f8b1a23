package mmio

import (
	"fmt"
	"math"

	"github.com/ardnew/socusb/pkg"
)

// Window describes a register window as a base address and length.
// Alignment and sizing are the device-tree resolver's responsibility;
// this layer only validates presence.
type Window struct {
	Base uint64 // First address of the window
	Len  uint64 // Window length in bytes
}

// IsZero reports whether the window is unset.
func (w Window) IsZero() bool {
	return w.Len == 0
}

// End returns the first address past the window, saturating at the top
// of the address space so a window near the top cannot wrap to zero.
func (w Window) End() uint64 {
	if w.Len > math.MaxUint64-w.Base {
		return math.MaxUint64
	}
	return w.Base + w.Len
}

// Overlaps reports whether w and o share any address.
func (w Window) Overlaps(o Window) bool {
	return w.Base < o.End() && o.Base < w.End()
}

// String returns the window formatted as base+len.
func (w Window) String() string {
	return fmt.Sprintf("0x%08x+0x%x", w.Base, w.Len)
}

// Bus32 performs 32-bit register accesses by absolute address.
//
// Implementations must tolerate concurrent callers; atomicity of a
// read-modify-write sequence is the caller's responsibility.
type Bus32 interface {
	Read32(addr uint64) uint32
	Write32(addr uint64, v uint32)
}

// Region is a mapped view of a register window. It is produced by a
// Mapper and remains valid until unmapped.
type Region struct {
	win Window
	bus Bus32
}

// NewRegion creates a region over win backed by bus. Most callers obtain
// regions from a Mapper instead.
func NewRegion(win Window, bus Bus32) *Region {
	return &Region{win: win, bus: bus}
}

// Window returns the window this region maps.
func (r *Region) Window() Window {
	return r.win
}

// Read32 reads the 32-bit register at the given byte offset.
func (r *Region) Read32(off uint64) (uint32, error) {
	if r.win.Len < 4 || off > r.win.Len-4 {
		return 0, fmt.Errorf("%w: offset 0x%x in %s", pkg.ErrOutOfRange, off, r.win)
	}
	return r.bus.Read32(r.win.Base + off), nil
}

// Write32 writes the 32-bit register at the given byte offset.
func (r *Region) Write32(off uint64, v uint32) error {
	if r.win.Len < 4 || off > r.win.Len-4 {
		return fmt.Errorf("%w: offset 0x%x in %s", pkg.ErrOutOfRange, off, r.win)
	}
	r.bus.Write32(r.win.Base+off, v)
	return nil
}

// Mapper claims register windows and produces mapped regions.
//
// Map fails if the window overlaps an already-claimed window. Unmap
// releases the claim; unmapping a region twice is a no-op.
type Mapper interface {
	Map(win Window) (*Region, error)
	Unmap(r *Region)
}
