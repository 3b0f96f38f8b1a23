package pkg

import (
	"errors"
	"fmt"
)

// Resource binding errors.
var (
	// ErrNoRegisterWindow indicates the device-tree node carries no
	// register-window entry.
	ErrNoRegisterWindow = errors.New("no register window")

	// ErrNoInterruptLine indicates the node's interrupt specifier could
	// not be mapped to a usable interrupt line.
	ErrNoInterruptLine = errors.New("no interrupt line")
)

// Controller lifecycle errors.
var (
	// ErrNoMemory indicates a controller handle could not be allocated.
	ErrNoMemory = errors.New("insufficient memory")

	// ErrMappingFailed indicates the register window could not be mapped.
	ErrMappingFailed = errors.New("register mapping failed")

	// ErrPlatformMismatch indicates the probe ran on a platform this
	// driver does not support.
	ErrPlatformMismatch = errors.New("platform mismatch")

	// ErrEngineInit indicates the controller engine failed to initialize.
	ErrEngineInit = errors.New("engine init failed")

	// ErrEngineStart indicates the controller engine failed to start.
	ErrEngineStart = errors.New("engine start failed")

	// ErrNoDevice indicates no matching device node is present.
	ErrNoDevice = errors.New("device not present")

	// ErrAlreadyRunning indicates the controller is already running.
	ErrAlreadyRunning = errors.New("already running")

	// ErrInvalidState indicates an invalid handle state for the operation.
	ErrInvalidState = errors.New("invalid handle state")
)

// Register bus errors.
var (
	// ErrWindowClaimed indicates the register window overlaps a window
	// already claimed by another mapping.
	ErrWindowClaimed = errors.New("register window already claimed")

	// ErrOutOfRange indicates a register access outside its window.
	ErrOutOfRange = errors.New("register access out of range")
)

// EngineStage identifies which engine operation failed.
type EngineStage int

// Engine failure stages.
const (
	StageInit EngineStage = iota // Engine.Init
	StageRun                     // Engine.Run
)

// EngineError reports a controller-engine failure together with the
// engine's numeric failure code. It matches ErrEngineInit or
// ErrEngineStart with errors.Is, depending on the stage.
type EngineError struct {
	Stage EngineStage
	Code  int
}

func (e *EngineError) Error() string {
	switch e.Stage {
	case StageRun:
		return fmt.Sprintf("engine start failed: code %d", e.Code)
	default:
		return fmt.Sprintf("engine init failed: code %d", e.Code)
	}
}

// Is reports whether e matches the stage sentinel target.
func (e *EngineError) Is(target error) bool {
	switch e.Stage {
	case StageRun:
		return target == ErrEngineStart
	default:
		return target == ErrEngineInit
	}
}

// EngineCode extracts the engine failure code from err, or -1 if err does
// not wrap an EngineError.
func EngineCode(err error) int {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return -1
}
