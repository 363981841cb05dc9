package electrical

import (
	"fmt"

	"phynet/internal/network"
)

// EMF is an ideal electromechanical converter: the back-EMF across p and
// n is K times the angular velocity of the flange, and the torque driven
// into the flange is K times the branch current. Power is conserved
// exactly.
type EMF struct {
	network.Base
	K float64
}

// NewEMF returns an electromotive-force coupler with constant K in
// volt-seconds (equivalently newton-meters per ampere).
func NewEMF(name string, k float64) *EMF {
	return &EMF{Base: network.NewBase(name), K: k}
}

func (e *EMF) Ports() []network.Port {
	return []network.Port{
		{Name: "p", Domain: network.Electrical},
		{Name: "n", Domain: network.Electrical},
		{Name: "flange", Domain: network.Rotational},
	}
}

func (e *EMF) BranchCount() int { return 1 }

func (e *EMF) Validate() error {
	if e.K == 0 {
		return fmt.Errorf("%w: coupling constant must be nonzero", network.ErrParameterBounds)
	}
	return nil
}

func (e *EMF) Stamp(st *network.Stamp) {
	p, n, fl := e.Node(0), e.Node(1), e.Node(2)
	r := st.BranchRow(e.Branch(0))

	// Branch current enters the electrical KCL rows; K times it drives
	// the flange.
	st.Add(p, r, 1)
	st.Add(n, r, -1)
	st.Add(fl, r, -e.K)

	// v(p) - v(n) - K*w = 0
	st.Add(r, p, 1)
	st.Add(r, n, -1)
	st.Add(r, fl, -e.K)
}
