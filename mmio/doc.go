// Package mmio provides memory-mapped register access for the socusb
// platform glue.
//
// It is hardware-agnostic: register reads and writes go through the
// [Bus32] interface, and window mapping goes through the [Mapper]
// interface, allowing platform vendors to provide concrete
// implementations without changing the controller glue.
//
// # Architecture
//
//   - [Window] describes a register window as {base address, length}
//   - [Region] is a mapped view of a window, with offset-based access
//   - [Bus32] performs 32-bit wide accesses by absolute address
//   - [Mapper] claims and releases windows, producing Regions
//
// A simulated in-memory bus for testing is available as [SimBus]. It
// backs registers with a sparse map, enforces exclusive window claims,
// and exposes claim counters so tests can verify that teardown releases
// everything bring-up acquired.
package mmio
