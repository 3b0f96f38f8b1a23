// Package pkg provides shared utilities for the socusb platform glue.
//
// This package contains common functionality used across the device-tree,
// register-window, controller, and platform packages, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error types for resource binding and lifecycle failures
//   - Component identifiers for log filtering
//
// The package is designed to have zero external dependencies, relying
// only on the Go standard library.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with platform-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentController, "controller running", "bus", name)
//
// # Errors
//
// Binding and lifecycle errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrNoRegisterWindow) {
//	    // Node carries no usable register window
//	}
//
// Engine failures carry the engine's numeric failure code in an
// [EngineError], which still matches the stage sentinels with [errors.Is]:
//
//	if errors.Is(err, pkg.ErrEngineStart) {
//	    code := pkg.EngineCode(err)
//	    ...
//	}
package pkg
