package electrical

import (
	"fmt"

	"phynet/internal/network"
)

// HeatingResistor couples the electrical and thermal domains: its
// resistance follows the temperature of the heat port and the dissipated
// power flows into the thermal network.
//
//	R(T) = Resistance * (1 + TempCoeff*(T - ReferenceTemp))
type HeatingResistor struct {
	network.Base
	Resistance    float64
	TempCoeff     float64
	ReferenceTemp float64
}

// NewHeatingResistor returns a temperature-dependent resistor referenced
// to 300K.
func NewHeatingResistor(name string, ohms float64) *HeatingResistor {
	return &HeatingResistor{
		Base:          network.NewBase(name),
		Resistance:    ohms,
		ReferenceTemp: 300,
	}
}

func (h *HeatingResistor) Ports() []network.Port {
	return []network.Port{
		{Name: "p", Domain: network.Electrical},
		{Name: "n", Domain: network.Electrical},
		{Name: "heat", Domain: network.Thermal},
	}
}

func (h *HeatingResistor) Validate() error {
	if h.Resistance <= 0 {
		return fmt.Errorf("%w: resistance must be positive, got %g", network.ErrParameterBounds, h.Resistance)
	}
	if h.ReferenceTemp <= 0 {
		return fmt.Errorf("%w: reference temperature must be positive, got %g", network.ErrParameterBounds, h.ReferenceTemp)
	}
	return nil
}

func (h *HeatingResistor) Stamp(st *network.Stamp) {
	p, n, heat := h.Node(0), h.Node(1), h.Node(2)

	temp := st.Across(heat)
	r := h.Resistance * (1 + h.TempCoeff*(temp-h.ReferenceTemp))
	if r < 1e-9 {
		r = 1e-9
	}
	g := 1 / r
	st.Conductance(p, n, g)

	// Dissipated power, linearized around the voltage iterate, feeds the
	// heat port.
	dv := st.Across(p) - st.Across(n)
	st.Add(heat, p, -2*g*dv)
	st.Add(heat, n, 2*g*dv)
	st.AddRhs(heat, -g*dv*dv)
}
