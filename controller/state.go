package controller

// State is the lifecycle state of a controller handle.
type State int

// Handle lifecycle states. Each transition is performed by exactly one
// Manager operation; states before RegistersMapped never escape BringUp.
const (
	StateCreated State = iota
	StateResourcesBound
	StateRegistersMapped
	StateEngineInitialized
	StateInterruptsEnabled
	StateRunning
	StateStopped
	StateRemoved
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateResourcesBound:
		return "resources-bound"
	case StateRegistersMapped:
		return "registers-mapped"
	case StateEngineInitialized:
		return "engine-initialized"
	case StateInterruptsEnabled:
		return "interrupts-enabled"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}
