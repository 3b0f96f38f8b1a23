package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ardnew/socusb/platform"
	platsim "github.com/ardnew/socusb/platform/hal/sim"
)

var (
	flagPrimaryEffective  bool
	flagFallbackEffective bool
)

var powerCmd = &cobra.Command{
	Use:   "power {restart|poweroff|kexec}",
	Short: "Replay a platform power attempt chain",
	Long: `Runs one of the platform power attempt chains against a simulated
firmware IPC surface and reports which remote calls were attempted and
whether the sequence ended in the terminal park.

A call marked effective models the firmware honoring the request: control
leaves the sequencer and never comes back.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"restart", "poweroff", "kexec"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cpu := platsim.NewCPU()
		ipc := platsim.NewIPC()

		done := make(chan struct{})
		cpu.OnPark = func() {
			report(cpu, ipc, true)
			close(done)
			// Hold the sequencer goroutine; the process exits below.
			select {}
		}

		switch args[0] {
		case "restart":
			if flagPrimaryEffective {
				ipc.Effective[platsim.CallReloadAndLaunch] = true
			}
			if flagFallbackEffective {
				ipc.Effective[platsim.CallAssistedRestart] = true
			}
		case "poweroff":
			if flagPrimaryEffective {
				ipc.Effective[platsim.CallAssistedPowerOff] = true
			}
		case "kexec":
			ipc.Effective[platsim.CallJumpToImage] = true
		default:
			return fmt.Errorf("unknown chain %q", args[0])
		}

		m, err := platform.NewMachine(platform.Config{
			Name:       "sim-machine",
			Compatible: "acme,soc",
			Vendor:     "Acme",
			CPU:        cpu,
			IPC:        ipc,
			BootTitle:  0x48424300,
		})
		if err != nil {
			return err
		}

		// An effective call blocks its goroutine forever, modeling the
		// transfer of control out of this system.
		go func() {
			switch args[0] {
			case "restart":
				m.Restart("")
			case "poweroff":
				m.PowerOff()
			case "kexec":
				m.EmergencyShutdown()
				if err := m.PrepareKexec("vmlinux"); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(1)
				}
				m.ExecKexec("vmlinux")
			}
			// Unreachable: every chain ends in a transfer or a park.
		}()

		settled := waitSettled(ipc)
		select {
		case <-done:
		case <-settled:
			select {
			case <-done:
			default:
				report(cpu, ipc, false)
			}
		}
		return nil
	},
}

// waitSettled signals once the attempt chain has stopped issuing remote
// calls, meaning an effective call is holding the sequencer.
func waitSettled(ipc *platsim.IPC) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		last := -1
		for {
			time.Sleep(50 * time.Millisecond)
			n := len(ipc.Calls())
			if n > 0 && n == last {
				close(ch)
				return
			}
			last = n
		}
	}()
	return ch
}

func report(cpu *platsim.CPU, ipc *platsim.IPC, parked bool) {
	for _, call := range ipc.Calls() {
		fmt.Printf("attempted: %s\n", call)
	}
	fmt.Printf("interrupts disabled: %v\n", cpu.InterruptsDisabled())
	if parked {
		fmt.Println("terminal state: safe spin (parked)")
	} else {
		fmt.Println("terminal state: control transferred")
	}
}

func init() {
	powerCmd.Flags().BoolVar(&flagPrimaryEffective, "primary-effective", false,
		"the primary remote call takes effect")
	powerCmd.Flags().BoolVar(&flagFallbackEffective, "fallback-effective", false,
		"the fallback remote call takes effect")
	rootCmd.AddCommand(powerCmd)
}
