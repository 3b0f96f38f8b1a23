package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ardnew/socusb/controller"
	"github.com/ardnew/socusb/controller/hal"
	ctlsim "github.com/ardnew/socusb/controller/hal/sim"
	"github.com/ardnew/socusb/mmio"
)

var (
	flagCompatible string
	flagFailInit   int
	flagFailRun    int
	flagCtlBase    uint64
)

var bringupCmd = &cobra.Command{
	Use:   "bringup <tree.yaml>",
	Short: "Run the controller bring-up/teardown sequence",
	Long: `Probes every matching controller node in the tree against simulated
collaborators, reports the resulting lifecycle states and the shared
interrupt-enable register, then tears everything down in reverse.

Fault injection flags make the simulated engine fail with the given
nonzero code, demonstrating the rollback paths.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree(args[0])
		if err != nil {
			return err
		}

		bus := mmio.NewSimBus()
		ctlRegs, err := bus.Map(mmio.Window{Base: flagCtlBase, Len: 0x100})
		if err != nil {
			return err
		}
		irqctl := controller.NewSharedInterruptControl(ctlRegs, controller.IRQCtlOffset)

		mgr, err := controller.NewManager(controller.Config{
			Driver: &controller.StaticDriver{
				DriverName: "ohci-soc",
				Desc:       "SoC OHCI Host Controller",
				Matches:    []string{flagCompatible},
				PrivSize:   64,
				Engine: func(priv []byte) hal.Engine {
					e := ctlsim.NewEngine()
					e.InitCode = flagFailInit
					e.RunCode = flagFailRun
					return e
				},
			},
			Mapper:   bus,
			Intc:     ctlsim.NewIntc(),
			Bus:      ctlsim.NewBus(),
			Platform: &ctlsim.Platform{Flavour: hal.IPCMini},
			IRQCtl:   irqctl,
		})
		if err != nil {
			return err
		}

		nodes := tree.ResolveAll(flagCompatible)
		if len(nodes) == 0 {
			return fmt.Errorf("no node compatible with %q", flagCompatible)
		}

		var handles []*controller.Handle
		for _, node := range nodes {
			h, err := mgr.Probe(node)
			if err != nil {
				fmt.Printf("%-16s probe failed: %v\n", node.Name(), err)
				continue
			}
			fmt.Printf("%-16s %s slot=%d window=%s irq=%d\n",
				node.Name(), h.State(), h.Slot(),
				h.Resources().Window, int(h.Resources().Line))
			handles = append(handles, h)
		}

		fmt.Printf("interrupt-enable register: 0x%08x\n",
			bus.Peek(flagCtlBase+controller.IRQCtlOffset))

		for i := len(handles) - 1; i >= 0; i-- {
			h := handles[i]
			mgr.TearDown(h)
			fmt.Printf("%-16s %s\n", h.Node().Name(), h.State())
		}
		fmt.Printf("interrupt-enable register: 0x%08x\n",
			bus.Peek(flagCtlBase+controller.IRQCtlOffset))
		return nil
	},
}

func init() {
	bringupCmd.Flags().StringVar(&flagCompatible, "compatible",
		"acme,soc-usb-ohci", "compatible tag to probe")
	bringupCmd.Flags().IntVar(&flagFailInit, "fail-init", 0,
		"inject engine init failure with this code")
	bringupCmd.Flags().IntVar(&flagFailRun, "fail-run", 0,
		"inject engine run failure with this code")
	bringupCmd.Flags().Uint64Var(&flagCtlBase, "ctl-base", 0x0d040000,
		"companion control window base address")
	rootCmd.AddCommand(bringupCmd)
}
