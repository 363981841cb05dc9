package electrical

import "phynet/internal/network"

// IdealOpAmp is a nullor: the branch row forces the differential input
// voltage to zero while the branch unknown supplies whatever output
// current the surrounding network demands. It only behaves when the
// network closes a negative feedback path around it.
type IdealOpAmp struct {
	network.Base
}

// NewIdealOpAmp returns an ideal operational amplifier with ports inp,
// inn and out.
func NewIdealOpAmp(name string) *IdealOpAmp {
	return &IdealOpAmp{Base: network.NewBase(name)}
}

func (o *IdealOpAmp) Ports() []network.Port {
	return []network.Port{
		{Name: "inp", Domain: network.Electrical},
		{Name: "inn", Domain: network.Electrical},
		{Name: "out", Domain: network.Electrical},
	}
}

func (o *IdealOpAmp) BranchCount() int { return 1 }

func (o *IdealOpAmp) Stamp(st *network.Stamp) {
	inp, inn, out := o.Node(0), o.Node(1), o.Node(2)
	r := st.BranchRow(o.Branch(0))

	st.Add(out, r, 1)
	st.Add(r, inp, 1)
	st.Add(r, inn, -1)
}
