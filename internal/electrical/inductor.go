package electrical

import (
	"fmt"

	"phynet/internal/network"
)

// Inductor stores flux between p and n. Its current is a branch unknown;
// the branch row carries the discretized law v = L*di/dt. At the operating
// point it degenerates to a short, at t=0 the branch is pinned to the
// initial current.
type Inductor struct {
	network.Base
	Inductance     float64
	InitialCurrent float64

	cur  float64
	volt float64
}

// NewInductor returns an inductor with the given inductance in henry and
// zero initial current.
func NewInductor(name string, henry float64) *Inductor {
	return &Inductor{Base: network.NewBase(name), Inductance: henry}
}

func (l *Inductor) Ports() []network.Port {
	return network.PortPair(network.Electrical, "p", "n")
}

func (l *Inductor) BranchCount() int { return 1 }

func (l *Inductor) Validate() error {
	if l.Inductance <= 0 {
		return fmt.Errorf("%w: inductance must be positive, got %g", network.ErrParameterBounds, l.Inductance)
	}
	return nil
}

func (l *Inductor) Reset() {
	l.cur = l.InitialCurrent
	l.volt = 0
}

func (l *Inductor) Stamp(st *network.Stamp) {
	p, n := l.Node(0), l.Node(1)
	r := st.BranchRow(l.Branch(0))

	st.Add(p, r, 1)
	st.Add(n, r, -1)

	switch st.Mode {
	case network.OperatingPoint:
		st.Add(r, p, 1)
		st.Add(r, n, -1)

	case network.InitialConditions:
		st.Add(r, r, 1)
		st.AddRhs(r, l.InitialCurrent)

	case network.Transient:
		st.Add(r, p, 1)
		st.Add(r, n, -1)
		if st.Method == network.Trapezoidal {
			k := 2 * l.Inductance / st.Dt
			st.Add(r, r, -k)
			st.AddRhs(r, -k*l.cur-l.volt)
		} else {
			k := l.Inductance / st.Dt
			st.Add(r, r, -k)
			st.AddRhs(r, -k*l.cur)
		}
	}
}

func (l *Inductor) Commit(st *network.Stamp) {
	l.cur = st.Branch(l.Branch(0))
	l.volt = st.Across(l.Node(0)) - st.Across(l.Node(1))
}
