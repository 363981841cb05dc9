// Package electrical provides lumped circuit elements: passives, sources,
// semiconductors, controlled sources and the couplers into the thermal,
// rotational and magnetic domains. Across is voltage, through is current.
package electrical

import "phynet/internal/network"

// Ground pins its junction to zero volts. The branch unknown carries the
// return current, so a grounded network stays conservative.
type Ground struct {
	network.Base
}

// NewGround returns a ground reference element.
func NewGround(name string) *Ground {
	return &Ground{Base: network.NewBase(name)}
}

func (g *Ground) Ports() []network.Port {
	return network.SinglePort(network.Electrical, "p")
}

func (g *Ground) BranchCount() int { return 1 }

func (g *Ground) Stamp(st *network.Stamp) {
	st.PotentialSource(g.Node(0), network.Ground, g.Branch(0), 0)
}
