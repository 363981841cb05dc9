package electrical

import (
	"phynet/internal/blocks"
	"phynet/internal/network"
)

// VoltageSource forces the voltage across p and n to follow a waveform.
// The branch unknown is the delivered current.
type VoltageSource struct {
	network.Base
	Signal blocks.Waveform
}

// NewVoltageSource returns a voltage source driven by the waveform.
func NewVoltageSource(name string, w blocks.Waveform) *VoltageSource {
	return &VoltageSource{Base: network.NewBase(name), Signal: w}
}

func (v *VoltageSource) Ports() []network.Port {
	return network.PortPair(network.Electrical, "p", "n")
}

func (v *VoltageSource) BranchCount() int { return 1 }

func (v *VoltageSource) Stamp(st *network.Stamp) {
	st.PotentialSource(v.Node(0), v.Node(1), v.Branch(0), v.Signal.Value(st.Time))
}

// CurrentSource injects the waveform's current into p and draws it from n.
type CurrentSource struct {
	network.Base
	Signal blocks.Waveform
}

// NewCurrentSource returns a current source driven by the waveform.
func NewCurrentSource(name string, w blocks.Waveform) *CurrentSource {
	return &CurrentSource{Base: network.NewBase(name), Signal: w}
}

func (c *CurrentSource) Ports() []network.Port {
	return network.PortPair(network.Electrical, "p", "n")
}

func (c *CurrentSource) Stamp(st *network.Stamp) {
	st.Flow(c.Node(1), c.Node(0), c.Signal.Value(st.Time))
}
