// Package thermal provides lumped heat transfer elements. Across is
// absolute temperature in kelvin, through is heat flow in watts.
package thermal

import (
	"fmt"

	"phynet/internal/blocks"
	"phynet/internal/network"
)

const icConductance = 1e6

// stefanBoltzmann is the radiation constant in W/(m^2 K^4).
const stefanBoltzmann = 5.670374419e-8

// HeatCapacitor is a lumped thermal mass: C*dT/dt of heat flows into it.
type HeatCapacitor struct {
	network.Base
	C                  float64
	InitialTemperature float64

	temp float64
	flow float64
}

// NewHeatCapacitor returns a thermal capacitance in joules per kelvin,
// starting at room temperature.
func NewHeatCapacitor(name string, c float64) *HeatCapacitor {
	return &HeatCapacitor{Base: network.NewBase(name), C: c, InitialTemperature: 293.15}
}

func (h *HeatCapacitor) Ports() []network.Port {
	return network.SinglePort(network.Thermal, "port")
}

func (h *HeatCapacitor) Validate() error {
	if h.C <= 0 {
		return fmt.Errorf("%w: heat capacity must be positive, got %g", network.ErrParameterBounds, h.C)
	}
	if h.InitialTemperature <= 0 {
		return fmt.Errorf("%w: initial temperature must be positive, got %g", network.ErrParameterBounds, h.InitialTemperature)
	}
	return nil
}

func (h *HeatCapacitor) Reset() {
	h.temp = h.InitialTemperature
	h.flow = 0
}

func (h *HeatCapacitor) Stamp(st *network.Stamp) {
	p := h.Node(0)
	switch st.Mode {
	case network.OperatingPoint:
		// no heat storage at steady state

	case network.InitialConditions:
		st.Conductance(p, network.Ground, icConductance)
		st.Flow(network.Ground, p, icConductance*h.InitialTemperature)

	case network.Transient:
		var g, hist float64
		if st.Method == network.Trapezoidal {
			g = 2 * h.C / st.Dt
			hist = g*h.temp + h.flow
		} else {
			g = h.C / st.Dt
			hist = g * h.temp
		}
		st.Conductance(p, network.Ground, g)
		st.Flow(network.Ground, p, hist)
	}
}

func (h *HeatCapacitor) Commit(st *network.Stamp) {
	temp := st.Across(h.Node(0))
	if st.Mode == network.Transient {
		if st.Method == network.Trapezoidal {
			g := 2 * h.C / st.Dt
			h.flow = g*(temp-h.temp) - h.flow
		} else {
			h.flow = h.C / st.Dt * (temp - h.temp)
		}
	} else {
		h.flow = 0
	}
	h.temp = temp
}

// Conductor carries G times the temperature difference.
type Conductor struct {
	network.Base
	G float64
}

// NewConductor returns a thermal conductance in watts per kelvin.
func NewConductor(name string, g float64) *Conductor {
	return &Conductor{Base: network.NewBase(name), G: g}
}

func (c *Conductor) Ports() []network.Port {
	return network.PortPair(network.Thermal, "a", "b")
}

func (c *Conductor) Validate() error {
	if c.G < 0 {
		return fmt.Errorf("%w: conductance must not be negative, got %g", network.ErrParameterBounds, c.G)
	}
	return nil
}

func (c *Conductor) Stamp(st *network.Stamp) {
	st.Conductance(c.Node(0), c.Node(1), c.G)
}

// Resistor is the dual of Conductor, parameterized by thermal resistance.
type Resistor struct {
	network.Base
	R float64
}

// NewResistor returns a thermal resistance in kelvin per watt.
func NewResistor(name string, r float64) *Resistor {
	return &Resistor{Base: network.NewBase(name), R: r}
}

func (r *Resistor) Ports() []network.Port {
	return network.PortPair(network.Thermal, "a", "b")
}

func (r *Resistor) Validate() error {
	if r.R <= 0 {
		return fmt.Errorf("%w: resistance must be positive, got %g", network.ErrParameterBounds, r.R)
	}
	return nil
}

func (r *Resistor) Stamp(st *network.Stamp) {
	st.Conductance(r.Node(0), r.Node(1), 1/r.R)
}

// Convection is a conductor whose conductance follows a waveform, for
// fans and coolant flows that vary over a run. Negative commands are
// treated as zero.
type Convection struct {
	network.Base
	Gc blocks.Waveform
}

// NewConvection returns a convective coupling driven by the waveform.
func NewConvection(name string, gc blocks.Waveform) *Convection {
	return &Convection{Base: network.NewBase(name), Gc: gc}
}

func (c *Convection) Ports() []network.Port {
	return network.PortPair(network.Thermal, "a", "b")
}

func (c *Convection) Stamp(st *network.Stamp) {
	g := c.Gc.Value(st.Time)
	if g < 0 {
		g = 0
	}
	st.Conductance(c.Node(0), c.Node(1), g)
}

// BodyRadiation exchanges sigma*G*(Ta^4 - Tb^4) between two surfaces.
// Each iteration stamps the tangent conductances at the temperature
// iterates, one per side.
type BodyRadiation struct {
	network.Base

	// G is the net radiation exchange coefficient in square meters,
	// the product of view factor, emissivity factor and area.
	G float64
}

// NewBodyRadiation returns a radiative coupling with exchange coefficient
// g in square meters.
func NewBodyRadiation(name string, g float64) *BodyRadiation {
	return &BodyRadiation{Base: network.NewBase(name), G: g}
}

func (r *BodyRadiation) Ports() []network.Port {
	return network.PortPair(network.Thermal, "a", "b")
}

func (r *BodyRadiation) Validate() error {
	if r.G <= 0 {
		return fmt.Errorf("%w: radiation coefficient must be positive, got %g", network.ErrParameterBounds, r.G)
	}
	return nil
}

func (r *BodyRadiation) Stamp(st *network.Stamp) {
	a, b := r.Node(0), r.Node(1)
	ta, tb := st.Across(a), st.Across(b)

	k := stefanBoltzmann * r.G
	q := k * (ta*ta*ta*ta - tb*tb*tb*tb)
	ga := 4 * k * ta * ta * ta
	gb := 4 * k * tb * tb * tb

	qc := q - ga*ta + gb*tb
	st.Add(a, a, ga)
	st.Add(a, b, -gb)
	st.AddRhs(a, -qc)
	st.Add(b, a, -ga)
	st.Add(b, b, gb)
	st.AddRhs(b, qc)
}

// FixedTemperature pins its port to a constant absolute temperature. The
// branch unknown is the heat flow the boundary supplies.
type FixedTemperature struct {
	network.Base
	T float64
}

// NewFixedTemperature returns a temperature boundary in kelvin.
func NewFixedTemperature(name string, kelvin float64) *FixedTemperature {
	return &FixedTemperature{Base: network.NewBase(name), T: kelvin}
}

func (f *FixedTemperature) Ports() []network.Port {
	return network.SinglePort(network.Thermal, "port")
}

func (f *FixedTemperature) BranchCount() int { return 1 }

func (f *FixedTemperature) Validate() error {
	if f.T <= 0 {
		return fmt.Errorf("%w: temperature must be positive, got %g", network.ErrParameterBounds, f.T)
	}
	return nil
}

func (f *FixedTemperature) Stamp(st *network.Stamp) {
	st.PotentialSource(f.Node(0), network.Ground, f.Branch(0), f.T)
}

// HeatFlowSource injects the waveform's heat flow into its port.
type HeatFlowSource struct {
	network.Base
	Signal blocks.Waveform
}

// NewHeatFlowSource returns a prescribed heat flow in watts.
func NewHeatFlowSource(name string, w blocks.Waveform) *HeatFlowSource {
	return &HeatFlowSource{Base: network.NewBase(name), Signal: w}
}

func (h *HeatFlowSource) Ports() []network.Port {
	return network.SinglePort(network.Thermal, "port")
}

func (h *HeatFlowSource) Stamp(st *network.Stamp) {
	st.Flow(network.Ground, h.Node(0), h.Signal.Value(st.Time))
}

// HeatFlowSensor is an ideal heat flow meter: a zero-drop branch whose
// unknown is the heat flowing a to b.
type HeatFlowSensor struct {
	network.Base
}

// NewHeatFlowSensor returns an ideal heat flow sensor.
func NewHeatFlowSensor(name string) *HeatFlowSensor {
	return &HeatFlowSensor{Base: network.NewBase(name)}
}

func (s *HeatFlowSensor) Ports() []network.Port {
	return network.PortPair(network.Thermal, "a", "b")
}

func (s *HeatFlowSensor) BranchCount() int { return 1 }

func (s *HeatFlowSensor) Stamp(st *network.Stamp) {
	st.PotentialSource(s.Node(0), s.Node(1), s.Branch(0), 0)
}

// TemperatureSensor reads the absolute temperature of its port via the
// junction label. It stamps nothing.
type TemperatureSensor struct {
	network.Base
}

// NewTemperatureSensor returns an ideal temperature sensor.
func NewTemperatureSensor(name string) *TemperatureSensor {
	return &TemperatureSensor{Base: network.NewBase(name)}
}

func (s *TemperatureSensor) Ports() []network.Port {
	return network.SinglePort(network.Thermal, "port")
}

func (s *TemperatureSensor) Stamp(*network.Stamp) {}
