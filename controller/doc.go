// Package controller implements the bring-up, interrupt routing, and
// teardown lifecycle of a memory-mapped USB open-host-controller
// described by a hardware description tree.
//
// It is platform-agnostic and interacts with the controller engine, bus
// registration machinery, and interrupt controller via the interfaces in
// [github.com/ardnew/socusb/controller/hal].
//
// # Architecture
//
//   - [Manager] owns the bring-up and teardown sequences for up to two
//     co-resident controller slots
//   - [Handle] represents one instantiated controller and its lifecycle
//     state
//   - [SharedInterruptControl] serializes the read-modify-write sequence
//     on the interrupt-enable register shared by both slots
//   - [Driver] describes the controller driver to the bus dispatcher
//
// # Bring-up
//
// Bring-up is a strict sequence; failure at any step synchronously
// undoes every prior step, so a handle never escapes half-acquired:
//
//	bind resources → allocate handle → map registers → engine init →
//	enable shared interrupt bits → engine run → bus register
//
// Teardown walks the same chain in exact reverse.
//
// # Example
//
//	mgr, _ := controller.NewManager(controller.Config{
//	    Driver: drv, Mapper: bus, Intc: intc, Bus: reg,
//	    Platform: plat, IRQCtl: irqctl,
//	})
//	h, err := mgr.Probe(tree.Resolve("acme,soc-usb-ohci"))
//	if err != nil {
//	    // nothing left allocated; claim counters back at baseline
//	}
//	defer mgr.TearDown(h)
package controller
