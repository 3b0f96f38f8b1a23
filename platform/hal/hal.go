package hal

// TitleID identifies a firmware boot title that can be launched in place
// of the running system.
type TitleID uint64

// CPU controls the local processor during terminal power sequencing.
type CPU interface {
	// DisableInterrupts masks interrupts on the local processor. After
	// this call no further scheduling occurs.
	DisableInterrupts()

	// Relax idles the processor briefly inside a spin loop.
	Relax()

	// Park idles the processor indefinitely. It never returns in
	// production; simulated CPUs may record the park for harnesses.
	Park()
}

// RemoteCalls is the firmware IPC surface used for power lifecycle
// requests. Every call is fire-and-forget: there is no return value
// beyond "attempted", and a call that takes effect never returns.
type RemoteCalls interface {
	// ReloadAndLaunch reloads the I/O firmware and launches the given
	// boot title.
	ReloadAndLaunch(title TitleID)

	// AssistedRestart requests a firmware-assisted machine restart.
	AssistedRestart()

	// AssistedPowerOff requests a firmware-assisted power-off.
	AssistedPowerOff()

	// QuiesceIO synchronously drains any in-flight I/O subsystem
	// transaction. It blocks until the subsystem is quiet.
	QuiesceIO()

	// DiscardIOSession discards the current I/O subsystem session,
	// freeing firmware-held I/O resources. It completes before
	// returning; there is no fallback if it misbehaves.
	DiscardIOSession()

	// JumpToImage transfers control to the given kernel image. It never
	// returns on success.
	JumpToImage(image string)
}
