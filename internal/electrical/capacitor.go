package electrical

import (
	"fmt"

	"phynet/internal/network"
)

// icConductance is the stiff conductance used to pin storage elements to
// their initial values when solving the t=0 state.
const icConductance = 1e6

// Capacitor stores charge between p and n. In transient mode it is
// replaced by its companion model: a conductance C/dt (backward Euler) or
// 2C/dt (trapezoidal) in parallel with a history current source.
type Capacitor struct {
	network.Base
	Capacitance    float64
	InitialVoltage float64

	volt float64
	flow float64
}

// NewCapacitor returns a capacitor with the given capacitance in farads
// and zero initial voltage.
func NewCapacitor(name string, farads float64) *Capacitor {
	return &Capacitor{Base: network.NewBase(name), Capacitance: farads}
}

func (c *Capacitor) Ports() []network.Port {
	return network.PortPair(network.Electrical, "p", "n")
}

func (c *Capacitor) Validate() error {
	if c.Capacitance <= 0 {
		return fmt.Errorf("%w: capacitance must be positive, got %g", network.ErrParameterBounds, c.Capacitance)
	}
	return nil
}

func (c *Capacitor) Reset() {
	c.volt = c.InitialVoltage
	c.flow = 0
}

func (c *Capacitor) Stamp(st *network.Stamp) {
	p, n := c.Node(0), c.Node(1)
	switch st.Mode {
	case network.OperatingPoint:
		// open at steady state

	case network.InitialConditions:
		st.Conductance(p, n, icConductance)
		st.Flow(n, p, icConductance*c.InitialVoltage)

	case network.Transient:
		var g, hist float64
		if st.Method == network.Trapezoidal {
			g = 2 * c.Capacitance / st.Dt
			hist = g*c.volt + c.flow
		} else {
			g = c.Capacitance / st.Dt
			hist = g * c.volt
		}
		st.Conductance(p, n, g)
		st.Flow(n, p, hist)
	}
}

func (c *Capacitor) Commit(st *network.Stamp) {
	v := st.Across(c.Node(0)) - st.Across(c.Node(1))
	if st.Mode == network.Transient {
		if st.Method == network.Trapezoidal {
			g := 2 * c.Capacitance / st.Dt
			c.flow = g*(v-c.volt) - c.flow
		} else {
			c.flow = c.Capacitance / st.Dt * (v - c.volt)
		}
	} else {
		c.flow = 0
	}
	c.volt = v
}
