// Package dtree models the hardware description tree consumed by the
// socusb platform glue.
//
// The tree mirrors the shape of a flattened device tree: nodes carry
// compatible-string tags, register-window entries, and interrupt
// specifiers, and are immutable after construction. The glue only reads
// the tree; producing it is the platform firmware's job.
//
// # Lookup
//
//	tree, _ := dtree.LoadYAML(f)
//	node := tree.Resolve("acme,soc-usb-ohci")
//	win, ok := node.Reg(0)
//
// # YAML trees
//
// Simulated trees for tests and the socusb-sim tool are described in
// YAML:
//
//	name: /
//	compatible: ["acme,soc"]
//	children:
//	  - name: usb@0d050000
//	    compatible: ["acme,soc-usb-ohci"]
//	    reg:
//	      - {base: 0x0d050000, len: 0x100}
//	    interrupts: [5]
package dtree
