// Package hal defines the Hardware Abstraction Layer interfaces consumed
// by the controller lifecycle manager.
//
// The controller glue never touches hardware or the host-controller
// engine directly: the engine, the bus registration machinery, and the
// platform interrupt controller are all opaque collaborators behind the
// interfaces in this package. Platform vendors provide concrete
// implementations; simulated implementations for tests and the
// socusb-sim tool live in [github.com/ardnew/socusb/controller/hal/sim].
package hal
