package mmio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/socusb/pkg"
)

func TestWindow_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Window
		want bool
	}{
		{"disjoint", Window{0x1000, 0x100}, Window{0x2000, 0x100}, false},
		{"adjacent", Window{0x1000, 0x100}, Window{0x1100, 0x100}, false},
		{"identical", Window{0x1000, 0x100}, Window{0x1000, 0x100}, true},
		{"partial", Window{0x1000, 0x200}, Window{0x1100, 0x200}, true},
		{"contained", Window{0x1000, 0x400}, Window{0x1100, 0x100}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestRegion_ReadWrite(t *testing.T) {
	bus := NewSimBus()
	r, err := bus.Map(Window{Base: 0x0d040000, Len: 0x100})
	require.NoError(t, err)

	require.NoError(t, r.Write32(0xcc, 0xe0000))
	v, err := r.Read32(0xcc)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xe0000), v)

	// Absolute address must match base+offset.
	assert.Equal(t, uint32(0xe0000), bus.Peek(0x0d0400cc))
}

func TestRegion_OutOfRange(t *testing.T) {
	bus := NewSimBus()
	r, err := bus.Map(Window{Base: 0x1000, Len: 0x10})
	require.NoError(t, err)

	_, err = r.Read32(0x10)
	assert.ErrorIs(t, err, pkg.ErrOutOfRange)
	assert.ErrorIs(t, r.Write32(0xe, 1), pkg.ErrOutOfRange)

	// Last in-range register.
	assert.NoError(t, r.Write32(0xc, 1))
}

// Offsets near the top of the address space must not wrap past the
// bounds check.
func TestRegion_OffsetOverflow(t *testing.T) {
	bus := NewSimBus()
	r, err := bus.Map(Window{Base: 0x1000, Len: 0x10})
	require.NoError(t, err)

	_, err = r.Read32(math.MaxUint64 - 1)
	assert.ErrorIs(t, err, pkg.ErrOutOfRange)
	assert.ErrorIs(t, r.Write32(math.MaxUint64-3, 1), pkg.ErrOutOfRange)

	// A window too small for any 32-bit register rejects every offset.
	narrow, err := bus.Map(Window{Base: 0x2000, Len: 0x2})
	require.NoError(t, err)
	_, err = narrow.Read32(0)
	assert.ErrorIs(t, err, pkg.ErrOutOfRange)
}

// A window near the top of the address space saturates instead of
// wrapping, so overlap checks stay meaningful.
func TestWindow_OverlapsNearTop(t *testing.T) {
	top := Window{Base: math.MaxUint64 - 0x10, Len: 0x100}

	assert.Equal(t, uint64(math.MaxUint64), top.End())
	assert.True(t, top.Overlaps(Window{Base: math.MaxUint64 - 0x8, Len: 0x4}))
	assert.False(t, top.Overlaps(Window{Base: 0x1000, Len: 0x10}))
	assert.False(t, Window{Base: 0x1000, Len: 0x10}.Overlaps(top))
}

func TestSimBus_ExclusiveClaims(t *testing.T) {
	bus := NewSimBus()

	r0, err := bus.Map(Window{Base: 0x1000, Len: 0x100})
	require.NoError(t, err)
	assert.Equal(t, 1, bus.Claims())

	_, err = bus.Map(Window{Base: 0x1080, Len: 0x100})
	assert.ErrorIs(t, err, pkg.ErrWindowClaimed)
	assert.Equal(t, 1, bus.Claims())

	r1, err := bus.Map(Window{Base: 0x2000, Len: 0x100})
	require.NoError(t, err)
	assert.Equal(t, 2, bus.Claims())

	bus.Unmap(r0)
	bus.Unmap(r1)
	assert.Equal(t, 0, bus.Claims())

	// Double unmap is a no-op.
	bus.Unmap(r0)
	assert.Equal(t, 0, bus.Claims())

	// Released window can be claimed again.
	_, err = bus.Map(Window{Base: 0x1000, Len: 0x100})
	assert.NoError(t, err)
}

func TestSimBus_ZeroWindow(t *testing.T) {
	bus := NewSimBus()
	_, err := bus.Map(Window{})
	assert.ErrorIs(t, err, pkg.ErrMappingFailed)
}
