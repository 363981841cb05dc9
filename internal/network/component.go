package network

// NodeID indexes a junction unknown in the flattened system. Ground is the
// eliminated reference; stamps addressed to it are dropped.
type NodeID int

// Ground is the reference node. Its across value is identically zero.
const Ground NodeID = -1

// BranchID indexes an auxiliary through unknown. Components whose
// constitutive law cannot be written as a conductance (potential sources,
// kinematic constraints, through sensors) carry one branch per extra
// equation.
type BranchID int

// Port is a connection point declared by a component.
type Port struct {
	Name   string
	Domain Domain
}

// Component contributes equations to the flattened system. Stamp is called
// once per Newton iteration and must write the linearization of the
// component's constitutive law at the current iterate.
type Component interface {
	Name() string
	Ports() []Port
	SetNodes(nodes []NodeID)
	Stamp(st *Stamp)
}

// Validator reports invalid parameters. Flatten runs all validators and
// refuses to produce a system while any component is misconfigured.
type Validator interface {
	Validate() error
}

// Branched components carry auxiliary through unknowns.
type Branched interface {
	BranchCount() int
	SetBranches(ids []BranchID)
}

// BranchLabeler overrides the default labels of a component's branch
// unknowns. The returned slice must match BranchCount.
type BranchLabeler interface {
	BranchLabels() []string
}

// Stateful components carry history between transient steps. Reset is
// called before a solve; Commit after each accepted step with the
// converged solution still in the stamp.
type Stateful interface {
	Reset()
	Commit(st *Stamp)
}

// Linker components reference other components by name, such as
// current-controlled sources pointing at a sensor. Flatten calls Link with
// a lookup over the network before validation.
type Linker interface {
	Link(find func(name string) (Component, bool)) error
}

// Base carries the bookkeeping shared by all components: the name and the
// node and branch ids assigned during flattening. Embed it and implement
// Ports and Stamp.
type Base struct {
	name     string
	nodes    []NodeID
	branches []BranchID
}

// NewBase returns a Base with the given component name.
func NewBase(name string) Base { return Base{name: name} }

func (b *Base) Name() string { return b.name }

func (b *Base) SetNodes(nodes []NodeID) { b.nodes = nodes }

func (b *Base) SetBranches(ids []BranchID) { b.branches = ids }

// Node returns the junction assigned to port i, or Ground when flattening
// has not resolved it.
func (b *Base) Node(i int) NodeID {
	if i < 0 || i >= len(b.nodes) {
		return Ground
	}
	return b.nodes[i]
}

// Branch returns the i-th auxiliary unknown assigned to this component.
func (b *Base) Branch(i int) BranchID {
	if i < 0 || i >= len(b.branches) {
		return 0
	}
	return b.branches[i]
}

// PortPair declares the common two-pin shape with pins named a and bn.
func PortPair(d Domain, a, bn string) []Port {
	return []Port{{Name: a, Domain: d}, {Name: bn, Domain: d}}
}

// SinglePort declares a one-pin component.
func SinglePort(d Domain, name string) []Port {
	return []Port{{Name: name, Domain: d}}
}
