// Package hal defines the platform-level interfaces consumed by the
// power sequencer: local CPU control and the fire-and-forget firmware
// IPC surface.
//
// Remote calls have no structured return. A call that takes effect
// transfers control away from the caller and never returns; a call that
// returns had no observable effect, and the sequencer falls through to
// its next attempt. Simulated implementations for tests and the
// socusb-sim tool live in [github.com/ardnew/socusb/platform/hal/sim].
package hal
