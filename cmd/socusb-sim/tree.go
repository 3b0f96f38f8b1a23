package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ardnew/socusb/dtree"
)

var treeCmd = &cobra.Command{
	Use:   "tree <tree.yaml>",
	Short: "Resolve and list controller resources from a device tree",
	Long: `Loads a YAML hardware description tree and lists every node together
with its register windows and interrupt specifiers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree(args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NODE\tCOMPATIBLE\tREG\tINTERRUPTS")
		tree.Walk(func(n *dtree.Node) {
			reg := "-"
			if win, ok := n.Reg(0); ok {
				reg = win.String()
			}
			irq := "-"
			if spec, ok := n.Interrupt(0); ok {
				irq = fmt.Sprintf("%d", int(spec))
			}
			compat := "-"
			if c := n.Compatible(); len(c) > 0 {
				compat = c[0]
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.Name(), compat, reg, irq)
		})
		return w.Flush()
	},
}

func loadTree(path string) (*dtree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tree, err := dtree.LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
