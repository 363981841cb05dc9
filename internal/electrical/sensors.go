package electrical

import "phynet/internal/network"

// CurrentSensor is an ideal ammeter: a zero-volt branch whose unknown is
// the current from p to n. Its label in results is the sensor name.
type CurrentSensor struct {
	network.Base
}

// NewCurrentSensor returns an ideal current sensor.
func NewCurrentSensor(name string) *CurrentSensor {
	return &CurrentSensor{Base: network.NewBase(name)}
}

func (s *CurrentSensor) Ports() []network.Port {
	return network.PortPair(network.Electrical, "p", "n")
}

func (s *CurrentSensor) BranchCount() int { return 1 }

func (s *CurrentSensor) Stamp(st *network.Stamp) {
	st.PotentialSource(s.Node(0), s.Node(1), s.Branch(0), 0)
}

// PotentialSensor is an ideal voltmeter. It draws no current and stamps
// nothing; junction labels are the usual way to read a voltage, this
// element exists so netlists can attach a probe without altering the
// circuit.
type PotentialSensor struct {
	network.Base
}

// NewPotentialSensor returns an ideal voltage sensor.
func NewPotentialSensor(name string) *PotentialSensor {
	return &PotentialSensor{Base: network.NewBase(name)}
}

func (s *PotentialSensor) Ports() []network.Port {
	return network.PortPair(network.Electrical, "p", "n")
}

func (s *PotentialSensor) Stamp(*network.Stamp) {}
