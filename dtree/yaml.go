package dtree

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ardnew/socusb/mmio"
)

// yamlNode is the YAML wire form of a node description.
type yamlNode struct {
	Name       string       `yaml:"name"`
	Compatible []string     `yaml:"compatible,omitempty"`
	Reg        []yamlWindow `yaml:"reg,omitempty"`
	Interrupts []int        `yaml:"interrupts,omitempty"`
	Children   []yamlNode   `yaml:"children,omitempty"`
}

type yamlWindow struct {
	Base uint64 `yaml:"base"`
	Len  uint64 `yaml:"len"`
}

// LoadYAML parses a YAML tree description, validating that every
// register-window entry has a nonzero length.
func LoadYAML(r io.Reader) (*Tree, error) {
	var root yamlNode
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("parse tree: %w", err)
	}

	spec, err := root.toSpec()
	if err != nil {
		return nil, err
	}
	return New(spec), nil
}

func (y yamlNode) toSpec() (NodeSpec, error) {
	spec := NodeSpec{
		Name:       y.Name,
		Compatible: y.Compatible,
	}
	for _, w := range y.Reg {
		if w.Len == 0 {
			return NodeSpec{}, fmt.Errorf("node %q: zero-length register window", y.Name)
		}
		spec.Reg = append(spec.Reg, mmio.Window{Base: w.Base, Len: w.Len})
	}
	for _, irq := range y.Interrupts {
		spec.Interrupts = append(spec.Interrupts, InterruptSpec(irq))
	}
	for _, c := range y.Children {
		cs, err := c.toSpec()
		if err != nil {
			return NodeSpec{}, err
		}
		spec.Children = append(spec.Children, cs)
	}
	return spec, nil
}
