package dtree

import (
	"github.com/ardnew/socusb/mmio"
)

// InterruptSpec is a raw interrupt specifier from a device-tree node.
// The platform interrupt controller maps it to a usable line.
type InterruptSpec int

// Node is one node of the hardware description tree. Nodes are immutable
// after tree construction.
type Node struct {
	name       string
	compatible []string
	reg        []mmio.Window
	interrupts []InterruptSpec
	children   []*Node
}

// NodeSpec declares a node for tree construction.
type NodeSpec struct {
	Name       string
	Compatible []string
	Reg        []mmio.Window
	Interrupts []InterruptSpec
	Children   []NodeSpec
}

// Name returns the node name.
func (n *Node) Name() string {
	return n.name
}

// IsCompatible reports whether the node carries the given compatible tag.
func (n *Node) IsCompatible(tag string) bool {
	for _, c := range n.compatible {
		if c == tag {
			return true
		}
	}
	return false
}

// Compatible returns the node's compatible tags.
// The returned slice references internal storage; do not modify.
func (n *Node) Compatible() []string {
	return n.compatible
}

// Reg returns register-window entry i, and whether it exists.
func (n *Node) Reg(i int) (mmio.Window, bool) {
	if i < 0 || i >= len(n.reg) {
		return mmio.Window{}, false
	}
	return n.reg[i], true
}

// NumReg returns the number of register-window entries.
func (n *Node) NumReg() int {
	return len(n.reg)
}

// Interrupt returns interrupt specifier i, and whether it exists.
func (n *Node) Interrupt(i int) (InterruptSpec, bool) {
	if i < 0 || i >= len(n.interrupts) {
		return 0, false
	}
	return n.interrupts[i], true
}

// Children returns the node's children.
// The returned slice references internal storage; do not modify.
func (n *Node) Children() []*Node {
	return n.children
}

// Tree is an immutable hardware description tree.
type Tree struct {
	root *Node
}

// New builds a tree from the given root spec.
func New(root NodeSpec) *Tree {
	return &Tree{root: buildNode(root)}
}

func buildNode(spec NodeSpec) *Node {
	n := &Node{
		name:       spec.Name,
		compatible: append([]string(nil), spec.Compatible...),
		reg:        append([]mmio.Window(nil), spec.Reg...),
		interrupts: append([]InterruptSpec(nil), spec.Interrupts...),
	}
	for _, c := range spec.Children {
		n.children = append(n.children, buildNode(c))
	}
	return n
}

// Root returns the tree root.
func (t *Tree) Root() *Node {
	return t.root
}

// Resolve returns the first node carrying the given compatible tag, in
// depth-first order, or nil if none matches.
func (t *Tree) Resolve(compatible string) *Node {
	return resolve(t.root, compatible)
}

func resolve(n *Node, compatible string) *Node {
	if n == nil {
		return nil
	}
	if n.IsCompatible(compatible) {
		return n
	}
	for _, c := range n.children {
		if found := resolve(c, compatible); found != nil {
			return found
		}
	}
	return nil
}

// ResolveAll returns every node carrying the given compatible tag, in
// depth-first order.
func (t *Tree) ResolveAll(compatible string) []*Node {
	var nodes []*Node
	walk(t.root, func(n *Node) {
		if n.IsCompatible(compatible) {
			nodes = append(nodes, n)
		}
	})
	return nodes
}

// Walk visits every node in depth-first order.
func (t *Tree) Walk(visit func(*Node)) {
	walk(t.root, visit)
}

func walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.children {
		walk(c, visit)
	}
}
