package solver

import (
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"phynet/internal/network"
)

// expDevice is a diode-like test element: f = Is*(exp(v/vt)-1),
// linearized around the current iterate. Its stiffness exercises the
// Newton damping path.
type expDevice struct {
	network.Base
	is, vt float64
}

func newExpDevice(name string) *expDevice {
	return &expDevice{Base: network.NewBase(name), is: 1e-14, vt: 0.025}
}

func (d *expDevice) Ports() []network.Port {
	return network.PortPair(network.Electrical, "p", "n")
}

func (d *expDevice) Stamp(st *network.Stamp) {
	v := st.Across(d.Node(0)) - st.Across(d.Node(1))
	// Clamp the exponent so a wild early iterate cannot overflow.
	if v > 40*d.vt {
		v = 40 * d.vt
	}
	e := math.Exp(v / d.vt)
	g := d.is / d.vt * e
	i := d.is*(e-1) - g*v
	st.Conductance(d.Node(0), d.Node(1), g)
	st.Flow(d.Node(0), d.Node(1), i)
}

func TestNewtonConvergesOnExponentialDevice(t *testing.T) {
	g := NewWithT(t)

	// Source, series conductance, exponential device to ground.
	net := network.New("rectifier")
	g.Expect(net.AddAll(
		newSource("v1", 5),
		newConductor("r1", 1e-3),
		newExpDevice("d1"),
	)).To(Succeed())
	g.Expect(net.Connect("in", "v1.p", "r1.p")).To(Succeed())
	g.Expect(net.Connect("out", "r1.n", "d1.p")).To(Succeed())
	g.Expect(net.Ground("v1.n", "d1.n")).To(Succeed())

	sys, err := net.Flatten()
	g.Expect(err).NotTo(HaveOccurred())

	res, err := New(sys).OperatingPoint(context.Background(), DefaultConfig())
	g.Expect(err).NotTo(HaveOccurred())

	// The junction settles in the usual forward-drop region and the
	// device current matches the series current.
	vout, err := res.Final("out")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(vout).To(BeNumerically(">", 0.4))
	g.Expect(vout).To(BeNumerically("<", 0.9))

	iDevice := 1e-14 * (math.Exp(vout/0.025) - 1)
	iSeries := (5 - vout) * 1e-3
	g.Expect(iDevice).To(BeNumerically("~", iSeries, 1e-6*iSeries+1e-12))

	// A stiff exponential takes more than one pass but stays well
	// inside the budget.
	g.Expect(res.Stats.NewtonIters).To(BeNumerically(">", 1))
	g.Expect(res.Stats.NewtonIters).To(BeNumerically("<", DefaultConfig().MaxIters))
}

func TestNewtonIterationCountScalesWithTolerance(t *testing.T) {
	g := NewWithT(t)

	net := network.New("rectifier")
	g.Expect(net.AddAll(
		newSource("v1", 5),
		newConductor("r1", 1e-3),
		newExpDevice("d1"),
	)).To(Succeed())
	g.Expect(net.Connect("in", "v1.p", "r1.p")).To(Succeed())
	g.Expect(net.Connect("out", "r1.n", "d1.p")).To(Succeed())
	g.Expect(net.Ground("v1.n", "d1.n")).To(Succeed())

	sys, err := net.Flatten()
	g.Expect(err).NotTo(HaveOccurred())

	loose := DefaultConfig()
	loose.Abstol, loose.Reltol = 1e-3, 1e-2
	resLoose, err := New(sys).OperatingPoint(context.Background(), loose)
	g.Expect(err).NotTo(HaveOccurred())

	tight := DefaultConfig()
	tight.Abstol, tight.Reltol = 1e-12, 1e-9
	resTight, err := New(sys).OperatingPoint(context.Background(), tight)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(resTight.Stats.NewtonIters).To(BeNumerically(">=", resLoose.Stats.NewtonIters))
}

func TestConvergenceFailureCarriesStepContext(t *testing.T) {
	g := NewWithT(t)

	net := network.New("bouncing")
	g.Expect(net.Add(&flipflop{Base: network.NewBase("f1")})).To(Succeed())
	g.Expect(net.Ground("f1.n")).To(Succeed())
	sys, err := net.Flatten()
	g.Expect(err).NotTo(HaveOccurred())

	cfg := DefaultConfig()
	cfg.MaxIters = 5
	cfg.Dt = 1e-3
	cfg.Duration = 1e-2

	_, err = New(sys).Transient(context.Background(), cfg)
	g.Expect(err).To(MatchError(ErrNoConvergence))

	var se *StepError
	g.Expect(errors.As(err, &se)).To(BeTrue())
	g.Expect(se.Error()).To(ContainSubstring("step"))
}
