package electrical

import (
	"fmt"

	"phynet/internal/network"
)

// Resistor is a linear resistance between p and n.
type Resistor struct {
	network.Base
	Resistance float64
}

// NewResistor returns a resistor with the given resistance in ohms.
func NewResistor(name string, ohms float64) *Resistor {
	return &Resistor{Base: network.NewBase(name), Resistance: ohms}
}

func (r *Resistor) Ports() []network.Port {
	return network.PortPair(network.Electrical, "p", "n")
}

func (r *Resistor) Validate() error {
	if r.Resistance <= 0 {
		return fmt.Errorf("%w: resistance must be positive, got %g", network.ErrParameterBounds, r.Resistance)
	}
	return nil
}

func (r *Resistor) Stamp(st *network.Stamp) {
	st.Conductance(r.Node(0), r.Node(1), 1/r.Resistance)
}

// Conductor is the dual of Resistor, parameterized by conductance.
type Conductor struct {
	network.Base
	Conductance float64
}

// NewConductor returns a conductor with the given conductance in siemens.
func NewConductor(name string, siemens float64) *Conductor {
	return &Conductor{Base: network.NewBase(name), Conductance: siemens}
}

func (c *Conductor) Ports() []network.Port {
	return network.PortPair(network.Electrical, "p", "n")
}

func (c *Conductor) Validate() error {
	if c.Conductance < 0 {
		return fmt.Errorf("%w: conductance must not be negative, got %g", network.ErrParameterBounds, c.Conductance)
	}
	return nil
}

func (c *Conductor) Stamp(st *network.Stamp) {
	st.Conductance(c.Node(0), c.Node(1), c.Conductance)
}

// Short is an ideal zero-volt connection. Its branch unknown is the
// current through it, which makes it double as an ammeter.
type Short struct {
	network.Base
}

// NewShort returns an ideal short.
func NewShort(name string) *Short {
	return &Short{Base: network.NewBase(name)}
}

func (s *Short) Ports() []network.Port {
	return network.PortPair(network.Electrical, "p", "n")
}

func (s *Short) BranchCount() int { return 1 }

func (s *Short) Stamp(st *network.Stamp) {
	st.PotentialSource(s.Node(0), s.Node(1), s.Branch(0), 0)
}
