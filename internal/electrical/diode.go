package electrical

import (
	"fmt"
	"math"

	"phynet/internal/network"
)

// Diode is a Shockley junction diode. Each Newton iteration stamps the
// tangent conductance and the matching current offset at the present
// voltage iterate. The exponential is linearized beyond a critical voltage
// so early iterates cannot overflow.
type Diode struct {
	network.Base

	// SaturationCurrent is the reverse leakage Is in amperes.
	SaturationCurrent float64

	// EmissionCoefficient is the ideality factor, 1 for an ideal
	// junction, up to ~2 for real parts.
	EmissionCoefficient float64

	// ThermalVoltage is kT/q, about 25.85mV at room temperature.
	ThermalVoltage float64
}

// NewDiode returns a diode with typical silicon parameters.
func NewDiode(name string) *Diode {
	return &Diode{
		Base:                network.NewBase(name),
		SaturationCurrent:   1e-14,
		EmissionCoefficient: 1,
		ThermalVoltage:      0.02585,
	}
}

func (d *Diode) Ports() []network.Port {
	return network.PortPair(network.Electrical, "p", "n")
}

func (d *Diode) Validate() error {
	if d.SaturationCurrent <= 0 {
		return fmt.Errorf("%w: saturation current must be positive, got %g", network.ErrParameterBounds, d.SaturationCurrent)
	}
	if d.EmissionCoefficient <= 0 {
		return fmt.Errorf("%w: emission coefficient must be positive, got %g", network.ErrParameterBounds, d.EmissionCoefficient)
	}
	if d.ThermalVoltage <= 0 {
		return fmt.Errorf("%w: thermal voltage must be positive, got %g", network.ErrParameterBounds, d.ThermalVoltage)
	}
	return nil
}

func (d *Diode) Stamp(st *network.Stamp) {
	p, n := d.Node(0), d.Node(1)
	v := st.Across(p) - st.Across(n)
	nvt := d.EmissionCoefficient * d.ThermalVoltage

	// Past vcrit the exponential continues as its tangent.
	const expCap = 40.0
	vcrit := expCap * nvt

	var i, g float64
	if v > vcrit {
		e := math.Exp(expCap)
		i = d.SaturationCurrent * (e*(1+(v-vcrit)/nvt) - 1)
		g = d.SaturationCurrent / nvt * e
	} else {
		e := math.Exp(v / nvt)
		i = d.SaturationCurrent * (e - 1)
		g = d.SaturationCurrent / nvt * e
	}

	st.Conductance(p, n, g)
	st.Flow(p, n, i-g*v)
}
