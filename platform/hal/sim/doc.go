// Package sim provides simulated CPU and firmware IPC doubles for tests,
// examples, and the socusb-sim tool.
//
// Remote calls marked effective model a transfer of control: they block
// and never return, exactly as the production calls behave when the
// firmware honors the request. Harnesses run the power sequencer on its
// own goroutine and observe the recorded call order and CPU state.
package sim
