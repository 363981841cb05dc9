package network

import (
	"errors"
	"fmt"
)

// Network assembles components into a connected model. Pins are addressed
// as "component.port"; Connect merges them into junctions with a
// union-find over pin keys. Flatten resolves junctions to dense node ids
// and produces the System the solver works on.
type Network struct {
	name       string
	components []Component
	byName     map[string]Component

	pinDomain map[string]Domain
	parent    map[string]string

	groundPins []string
	labels     map[string]string
}

// New returns an empty network with the given model name.
func New(name string) *Network {
	return &Network{
		name:      name,
		byName:    make(map[string]Component),
		pinDomain: make(map[string]Domain),
		parent:    make(map[string]string),
		labels:    make(map[string]string),
	}
}

// Name returns the model name.
func (n *Network) Name() string { return n.name }

// Add registers a component. Names must be unique within the network.
func (n *Network) Add(c Component) error {
	if _, ok := n.byName[c.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, c.Name())
	}
	n.byName[c.Name()] = c
	n.components = append(n.components, c)
	for _, p := range c.Ports() {
		key := c.Name() + "." + p.Name
		n.pinDomain[key] = p.Domain
		n.parent[key] = key
	}
	return nil
}

// AddAll registers several components, stopping at the first error.
func (n *Network) AddAll(cs ...Component) error {
	for _, c := range cs {
		if err := n.Add(c); err != nil {
			return err
		}
	}
	return nil
}

// Components returns the registered components in insertion order.
func (n *Network) Components() []Component { return n.components }

// Component looks a component up by name.
func (n *Network) Component(name string) (Component, bool) {
	c, ok := n.byName[name]
	return c, ok
}

func (n *Network) find(key string) string {
	for n.parent[key] != key {
		n.parent[key] = n.parent[n.parent[key]]
		key = n.parent[key]
	}
	return key
}

// Connect merges the named pins into one junction. All pins must exist and
// share a domain. A non-empty label names the junction in results; pass ""
// for an anonymous junction.
func (n *Network) Connect(label string, pins ...string) error {
	if len(pins) == 0 {
		return fmt.Errorf("network: connect %q: no pins given", label)
	}
	for _, p := range pins {
		if _, ok := n.pinDomain[p]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPin, p)
		}
	}
	first := pins[0]
	d := n.pinDomain[first]
	for _, p := range pins[1:] {
		if pd := n.pinDomain[p]; pd != d {
			return fmt.Errorf("%w: %s is %s, %s is %s", ErrDomainMismatch, first, d, p, pd)
		}
	}
	for _, p := range pins[1:] {
		ra, rb := n.find(first), n.find(p)
		if ra != rb {
			n.parent[rb] = ra
		}
	}
	if label != "" {
		n.labels[first] = label
	}
	return nil
}

// Ground ties the junctions containing the named pins to the domain
// reference. Grounded junctions are eliminated from the unknowns.
func (n *Network) Ground(pins ...string) error {
	for _, p := range pins {
		if _, ok := n.pinDomain[p]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPin, p)
		}
		n.groundPins = append(n.groundPins, p)
	}
	return nil
}

// System is the flattened network: components with node and branch ids
// assigned, plus labels for every unknown. Node unknowns come first in the
// solution vector, branch unknowns after.
type System struct {
	Name       string
	Components []Component

	Nodes    int
	Branches int

	NodeLabels   []string
	BranchLabels []string
}

// Size returns the total unknown count.
func (s *System) Size() int { return s.Nodes + s.Branches }

// Labels returns the labels of all unknowns, node labels first.
func (s *System) Labels() []string {
	out := make([]string, 0, s.Size())
	out = append(out, s.NodeLabels...)
	out = append(out, s.BranchLabels...)
	return out
}

// Stateful returns the components that carry transient state.
func (s *System) Stateful() []Stateful {
	var out []Stateful
	for _, c := range s.Components {
		if st, ok := c.(Stateful); ok {
			out = append(out, st)
		}
	}
	return out
}

// Flatten resolves junctions, assigns node and branch ids, links
// cross-references and validates every component. Junctions are numbered
// in the order they are first encountered walking components and ports in
// insertion order, so ids are deterministic.
func (n *Network) Flatten() (*System, error) {
	if len(n.components) == 0 {
		return nil, ErrEmptyNetwork
	}

	for _, c := range n.components {
		if l, ok := c.(Linker); ok {
			if err := l.Link(n.Component); err != nil {
				return nil, err
			}
		}
	}

	var verrs []error
	for _, c := range n.components {
		if v, ok := c.(Validator); ok {
			if err := v.Validate(); err != nil {
				verrs = append(verrs, fmt.Errorf("%s: %w", c.Name(), err))
			}
		}
	}
	if len(verrs) > 0 {
		return nil, errors.Join(verrs...)
	}

	grounded := make(map[string]bool)
	for _, p := range n.groundPins {
		grounded[n.find(p)] = true
	}

	sys := &System{Name: n.name, Components: n.components}

	nodeOf := make(map[string]NodeID)
	for _, c := range n.components {
		ports := c.Ports()
		nodes := make([]NodeID, len(ports))
		for i, p := range ports {
			key := c.Name() + "." + p.Name
			root := n.find(key)
			if grounded[root] {
				nodes[i] = Ground
				continue
			}
			id, ok := nodeOf[root]
			if !ok {
				id = NodeID(sys.Nodes)
				sys.Nodes++
				nodeOf[root] = id
				sys.NodeLabels = append(sys.NodeLabels, key)
			}
			nodes[i] = id
		}
		c.SetNodes(nodes)
	}
	if sys.Nodes == 0 {
		return nil, ErrAllGrounded
	}

	// Explicit junction labels win over the first-pin default.
	for pin, label := range n.labels {
		if id, ok := nodeOf[n.find(pin)]; ok {
			sys.NodeLabels[id] = label
		}
	}

	for _, c := range n.components {
		br, ok := c.(Branched)
		if !ok {
			continue
		}
		cnt := br.BranchCount()
		ids := make([]BranchID, cnt)
		for i := range ids {
			ids[i] = BranchID(sys.Branches)
			sys.Branches++
		}
		br.SetBranches(ids)
		sys.BranchLabels = append(sys.BranchLabels, branchLabels(c, cnt)...)
	}

	return sys, nil
}

func branchLabels(c Component, cnt int) []string {
	if bl, ok := c.(BranchLabeler); ok {
		if names := bl.BranchLabels(); len(names) == cnt {
			return names
		}
	}
	names := make([]string, cnt)
	for i := range names {
		if cnt == 1 {
			names[i] = c.Name()
		} else {
			names[i] = fmt.Sprintf("%s.%d", c.Name(), i)
		}
	}
	return names
}
