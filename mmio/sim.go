package mmio

import (
	"fmt"
	"sync"

	"github.com/ardnew/socusb/pkg"
)

// SimBus is an in-memory register bus for tests and simulation.
//
// It implements both Bus32 and Mapper. Registers are backed by a sparse
// map keyed by absolute address; unwritten registers read as zero.
// Window claims are exclusive: mapping a window that overlaps a claimed
// window fails with pkg.ErrWindowClaimed.
type SimBus struct {
	mu     sync.Mutex
	regs   map[uint64]uint32
	claims map[*Region]Window
}

// NewSimBus creates an empty simulated bus.
func NewSimBus() *SimBus {
	return &SimBus{
		regs:   make(map[uint64]uint32),
		claims: make(map[*Region]Window),
	}
}

// Read32 implements Bus32.
func (b *SimBus) Read32(addr uint64) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regs[addr]
}

// Write32 implements Bus32.
func (b *SimBus) Write32(addr uint64, v uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.regs[addr] = v
}

// Map implements Mapper. The claim is exclusive for the life of the
// returned region.
func (b *SimBus) Map(win Window) (*Region, error) {
	if win.IsZero() {
		return nil, fmt.Errorf("%w: zero-length window", pkg.ErrMappingFailed)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, claimed := range b.claims {
		if win.Overlaps(claimed) {
			return nil, fmt.Errorf("%w: %s overlaps %s",
				pkg.ErrWindowClaimed, win, claimed)
		}
	}

	r := NewRegion(win, b)
	b.claims[r] = win

	pkg.LogDebug(pkg.ComponentMMIO, "window mapped", "window", win.String())
	return r, nil
}

// Unmap implements Mapper. Unmapping an unclaimed region is a no-op.
func (b *SimBus) Unmap(r *Region) {
	if r == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.claims[r]; ok {
		delete(b.claims, r)
		pkg.LogDebug(pkg.ComponentMMIO, "window unmapped", "window", r.win.String())
	}
}

// Claims returns the number of currently claimed windows.
func (b *SimBus) Claims() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.claims)
}

// Poke writes a register directly, bypassing window claims. Tests use
// this to seed hardware state.
func (b *SimBus) Poke(addr uint64, v uint32) {
	b.Write32(addr, v)
}

// Peek reads a register directly, bypassing window claims.
func (b *SimBus) Peek(addr uint64) uint32 {
	return b.Read32(addr)
}
