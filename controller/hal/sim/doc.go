// Package sim provides simulated HAL collaborators for tests, examples,
// and the socusb-sim tool.
//
// The simulated engine supports fault injection on its init and run
// operations, the simulated bus records registrations, and the simulated
// interrupt controller tracks line claims so tests can verify that
// teardown releases everything bring-up acquired.
package sim
