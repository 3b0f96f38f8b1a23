package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/socusb/platform/hal/sim"
)

const bootTitle = 0x48424300 // arbitrary alternate boot title

func newSequencer() (*Sequencer, *sim.CPU, *sim.IPC) {
	cpu := sim.NewCPU()
	ipc := sim.NewIPC()
	return NewSequencer(cpu, ipc, bootTitle), cpu, ipc
}

func waitCalls(t *testing.T, ipc *sim.IPC, want []string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(ipc.Calls()) >= len(want)
	}, time.Second, time.Millisecond)
	assert.Equal(t, want, ipc.Calls())
}

// Primary fails, fallback takes effect: exactly primary then fallback,
// and the terminal park is never reached.
func TestRestart_FallbackOrder(t *testing.T) {
	seq, cpu, ipc := newSequencer()
	ipc.Effective[sim.CallAssistedRestart] = true

	go seq.Restart("")

	waitCalls(t, ipc, []string{sim.CallReloadAndLaunch, sim.CallAssistedRestart})
	assert.True(t, cpu.InterruptsDisabled())
	assert.False(t, cpu.Parked(), "parked despite effective fallback")
}

func TestRestart_PrimaryEffective(t *testing.T) {
	seq, cpu, ipc := newSequencer()
	ipc.Effective[sim.CallReloadAndLaunch] = true

	go seq.Restart("")

	waitCalls(t, ipc, []string{sim.CallReloadAndLaunch})
	assert.False(t, cpu.Parked())
}

// Every attempt exhausted: interrupts stay disabled, the CPU parks, and
// no third remote call is ever issued.
func TestRestart_TerminalSafeState(t *testing.T) {
	seq, cpu, ipc := newSequencer()

	go seq.Restart("")

	select {
	case <-cpu.ParkedCh():
	case <-time.After(time.Second):
		t.Fatal("sequencer never parked")
	}
	assert.True(t, cpu.InterruptsDisabled())
	assert.Equal(t, []string{sim.CallReloadAndLaunch, sim.CallAssistedRestart},
		ipc.Calls())
}

func TestPowerOff_Effective(t *testing.T) {
	seq, cpu, ipc := newSequencer()
	ipc.Effective[sim.CallAssistedPowerOff] = true

	go seq.PowerOff()

	waitCalls(t, ipc, []string{sim.CallAssistedPowerOff})
	assert.True(t, cpu.InterruptsDisabled())
	assert.False(t, cpu.Parked())
}

func TestPowerOff_TerminalSafeState(t *testing.T) {
	seq, cpu, ipc := newSequencer()

	go seq.PowerOff()

	select {
	case <-cpu.ParkedCh():
	case <-time.After(time.Second):
		t.Fatal("sequencer never parked")
	}
	assert.True(t, cpu.InterruptsDisabled())
	assert.Equal(t, []string{sim.CallAssistedPowerOff}, ipc.Calls())
}

// Halt is policy-equivalent to restart with no follow-up command.
func TestHalt_RestartChain(t *testing.T) {
	seq, cpu, ipc := newSequencer()
	ipc.Effective[sim.CallAssistedRestart] = true

	go seq.Halt()

	waitCalls(t, ipc, []string{sim.CallReloadAndLaunch, sim.CallAssistedRestart})
	assert.False(t, cpu.Parked())
}

func TestEmergencyShutdown_Quiesces(t *testing.T) {
	seq, cpu, ipc := newSequencer()

	// Quiescing blocks until complete and then returns; it is not a
	// terminal operation.
	seq.EmergencyShutdown()

	assert.Equal(t, []string{sim.CallQuiesceIO}, ipc.Calls())
	assert.False(t, cpu.InterruptsDisabled())
}

func TestPrepareKexec_AlwaysSucceeds(t *testing.T) {
	seq, _, _ := newSequencer()
	assert.NoError(t, seq.PrepareKexec("vmlinux"))
	assert.NoError(t, seq.PrepareKexec(""))
}

// The session discard must complete before the jump, with interrupts
// already masked and no fallback after the jump.
func TestExecKexec_DiscardsBeforeJump(t *testing.T) {
	seq, cpu, ipc := newSequencer()
	ipc.Effective[sim.CallJumpToImage] = true

	go seq.ExecKexec("vmlinux")

	waitCalls(t, ipc, []string{sim.CallDiscardIOSession, sim.CallJumpToImage})
	assert.True(t, cpu.InterruptsDisabled())
	assert.False(t, cpu.Parked(), "kexec has no terminal park")
}
