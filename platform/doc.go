// Package platform implements the power-lifecycle sequencing of the
// machine hosting the socusb controllers: restart, power-off, halt,
// emergency shutdown, and kexec handoff.
//
// # Attempt chains
//
// Restart and power-off are ordered attempt chains of fire-and-forget
// firmware calls. A call that takes effect transfers control away and
// never returns; a call that returns had no observable effect, and the
// next fallback runs. When every attempt is exhausted the sequencer
// disables interrupts and parks the processor indefinitely. The park is
// intentional terminal behavior, not an error: there is nobody left to
// report to.
//
//	Active → AttemptPrimary → (handled: control leaves this system)
//	                        ↘ AttemptFallback → (handled)
//	                                          ↘ SafeSpin (non-returning)
//
// # Machine descriptor
//
// [Machine] bundles the sequencer with the machine's identity: its name,
// the root compatible tag its probe accepts, and seq-style cpuinfo
// reporting. It is constructed once from [Config] at boot-sequencing
// time and never mutated afterwards.
package platform
