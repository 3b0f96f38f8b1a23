package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ardnew/socusb/pkg"
)

var (
	flagVerbose bool
	flagJSON    bool
)

var rootCmd = &cobra.Command{
	Use:   "socusb-sim",
	Short: "SoC USB platform glue simulator",
	Long: `socusb-sim exercises the socusb platform glue against fully simulated
hardware: an in-memory register bus, a simulated interrupt controller and
bus registration layer, and a simulated firmware IPC surface.

It can resolve controller resources from a YAML device tree, run the
controller bring-up/teardown sequence with fault injection, and replay
the platform power attempt chains.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			pkg.SetLogLevel(slog.LevelDebug)
		}
		if flagJSON {
			pkg.SetLogFormat(pkg.LogFormatJSON)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable verbose (debug) logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false,
		"use JSON log format")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
