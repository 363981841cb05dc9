// Package hydraulic provides lumped liquid flow elements. Across is
// absolute pressure in pascal, through is mass flow in kilograms per
// second. All elements assume a weakly compressible liquid described by
// density and bulk modulus.
package hydraulic

import (
	"fmt"
	"math"

	"phynet/internal/blocks"
	"phynet/internal/network"
	"phynet/internal/smooth"
)

// FixedPressure pins its port to a constant absolute pressure. The branch
// unknown is the mass flow the boundary supplies.
type FixedPressure struct {
	network.Base
	P float64
}

// NewFixedPressure returns a pressure boundary in pascal.
func NewFixedPressure(name string, pascal float64) *FixedPressure {
	return &FixedPressure{Base: network.NewBase(name), P: pascal}
}

func (f *FixedPressure) Ports() []network.Port {
	return network.SinglePort(network.Hydraulic, "port")
}

func (f *FixedPressure) BranchCount() int { return 1 }

func (f *FixedPressure) Validate() error {
	if f.P < 0 {
		return fmt.Errorf("%w: absolute pressure must not be negative, got %g", network.ErrParameterBounds, f.P)
	}
	return nil
}

func (f *FixedPressure) Stamp(st *network.Stamp) {
	st.PotentialSource(f.Node(0), network.Ground, f.Branch(0), f.P)
}

// MassFlowSource drives the waveform's mass flow into p and draws it
// from n.
type MassFlowSource struct {
	network.Base
	Signal blocks.Waveform
}

// NewMassFlowSource returns a prescribed mass flow in kilograms per
// second.
func NewMassFlowSource(name string, w blocks.Waveform) *MassFlowSource {
	return &MassFlowSource{Base: network.NewBase(name), Signal: w}
}

func (m *MassFlowSource) Ports() []network.Port {
	return network.PortPair(network.Hydraulic, "p", "n")
}

func (m *MassFlowSource) Stamp(st *network.Stamp) {
	st.Flow(m.Node(1), m.Node(0), m.Signal.Value(st.Time))
}

// Volume is a liquid-filled chamber. Compressibility stores mass at the
// rate rho*V/beta * dp/dt, making it the hydraulic capacitor.
type Volume struct {
	network.Base
	V               float64
	Density         float64
	BulkModulus     float64
	InitialPressure float64

	press float64
	flow  float64
}

// NewVolume returns a chamber of v cubic meters filled with a light
// hydraulic oil at atmospheric pressure.
func NewVolume(name string, v float64) *Volume {
	return &Volume{
		Base:            network.NewBase(name),
		V:               v,
		Density:         870,
		BulkModulus:     1.5e9,
		InitialPressure: 101325,
	}
}

func (v *Volume) Ports() []network.Port {
	return network.SinglePort(network.Hydraulic, "port")
}

func (v *Volume) Validate() error {
	if v.V <= 0 {
		return fmt.Errorf("%w: volume must be positive, got %g", network.ErrParameterBounds, v.V)
	}
	if v.Density <= 0 {
		return fmt.Errorf("%w: density must be positive, got %g", network.ErrParameterBounds, v.Density)
	}
	if v.BulkModulus <= 0 {
		return fmt.Errorf("%w: bulk modulus must be positive, got %g", network.ErrParameterBounds, v.BulkModulus)
	}
	return nil
}

func (v *Volume) capacity() float64 {
	return v.Density * v.V / v.BulkModulus
}

func (v *Volume) Reset() {
	v.press = v.InitialPressure
	v.flow = 0
}

func (v *Volume) Stamp(st *network.Stamp) {
	p := v.Node(0)
	c := v.capacity()
	switch st.Mode {
	case network.OperatingPoint:
		// no storage at steady state

	case network.InitialConditions:
		const g0 = 1e6
		st.Conductance(p, network.Ground, g0)
		st.Flow(network.Ground, p, g0*v.InitialPressure)

	case network.Transient:
		var g, hist float64
		if st.Method == network.Trapezoidal {
			g = 2 * c / st.Dt
			hist = g*v.press + v.flow
		} else {
			g = c / st.Dt
			hist = g * v.press
		}
		st.Conductance(p, network.Ground, g)
		st.Flow(network.Ground, p, hist)
	}
}

func (v *Volume) Commit(st *network.Stamp) {
	p := st.Across(v.Node(0))
	if st.Mode == network.Transient {
		c := v.capacity()
		if st.Method == network.Trapezoidal {
			g := 2 * c / st.Dt
			v.flow = g*(p-v.press) - v.flow
		} else {
			v.flow = c / st.Dt * (p - v.press)
		}
	} else {
		v.flow = 0
	}
	v.press = p
}

// Friction factor blend band in Reynolds number. Below the band the flow
// is laminar, above it the Blasius smooth-pipe correlation applies.
const (
	reLaminar   = 2000.0
	reTurbulent = 4000.0
)

// FrictionFactor returns the Darcy friction factor for a smooth pipe,
// blending 64/Re into the Blasius correlation 0.3164*Re^-0.25 across the
// transition band so the value and its slope stay continuous.
func FrictionFactor(re float64) float64 {
	re = math.Abs(re)
	if re < 1e-12 {
		re = 1e-12
	}
	lam := 64 / re
	if re <= reLaminar {
		return lam
	}
	turb := 0.3164 / math.Pow(re, 0.25)
	if re >= reTurbulent {
		return turb
	}
	w := smooth.Step((re - reLaminar) / (reTurbulent - reLaminar))
	return lam + w*(turb-lam)
}

// Pipe is a straight pipe with friction pressure loss. The mass flow is a
// branch unknown; the branch row carries the residual
// p(a) - p(b) - dp(mdot) = 0 linearized at the flow iterate, with the
// slope taken by central difference so the laminar-turbulent blend needs
// no hand-derived Jacobian.
type Pipe struct {
	network.Base
	Length    float64
	Diameter  float64
	Density   float64
	Viscosity float64
}

// NewPipe returns a pipe of the given geometry filled with a light
// hydraulic oil.
func NewPipe(name string, length, diameter float64) *Pipe {
	return &Pipe{
		Base:      network.NewBase(name),
		Length:    length,
		Diameter:  diameter,
		Density:   870,
		Viscosity: 0.026,
	}
}

func (p *Pipe) Ports() []network.Port {
	return network.PortPair(network.Hydraulic, "a", "b")
}

func (p *Pipe) BranchCount() int { return 1 }

func (p *Pipe) Validate() error {
	if p.Length <= 0 {
		return fmt.Errorf("%w: length must be positive, got %g", network.ErrParameterBounds, p.Length)
	}
	if p.Diameter <= 0 {
		return fmt.Errorf("%w: diameter must be positive, got %g", network.ErrParameterBounds, p.Diameter)
	}
	if p.Density <= 0 {
		return fmt.Errorf("%w: density must be positive, got %g", network.ErrParameterBounds, p.Density)
	}
	if p.Viscosity <= 0 {
		return fmt.Errorf("%w: viscosity must be positive, got %g", network.ErrParameterBounds, p.Viscosity)
	}
	return nil
}

// PressureLoss returns the signed friction pressure drop for a signed
// mass flow.
func (p *Pipe) PressureLoss(mdot float64) float64 {
	area := math.Pi * p.Diameter * p.Diameter / 4
	vel := mdot / (p.Density * area)
	re := p.Density * math.Abs(vel) * p.Diameter / p.Viscosity
	fd := FrictionFactor(re)
	return fd * p.Length / p.Diameter * p.Density * vel * math.Abs(vel) / 2
}

func (p *Pipe) lossSlope(mdot float64) float64 {
	h := 1e-6 * (math.Abs(mdot) + 1e-3)
	return (p.PressureLoss(mdot+h) - p.PressureLoss(mdot-h)) / (2 * h)
}

func (p *Pipe) Stamp(st *network.Stamp) {
	a, b := p.Node(0), p.Node(1)
	r := st.BranchRow(p.Branch(0))

	st.Add(a, r, 1)
	st.Add(b, r, -1)

	mdot := st.Branch(p.Branch(0))
	dp := p.PressureLoss(mdot)
	slope := p.lossSlope(mdot)
	if slope < 1e-12 {
		slope = 1e-12
	}

	st.Add(r, a, 1)
	st.Add(r, b, -1)
	st.Add(r, r, -slope)
	st.AddRhs(r, dp-slope*mdot)
}

// Orifice is a sharp-edged restriction following the square-root law
// mdot = Cd*A*sqrt(2*rho*|dp|)*sign(dp), regularized below RegPressure so
// the slope at zero stays finite.
type Orifice struct {
	network.Base
	DischargeCoeff float64
	Area           float64
	Density        float64
	RegPressure    float64
}

// NewOrifice returns an orifice with the given flow area in square
// meters.
func NewOrifice(name string, area float64) *Orifice {
	return &Orifice{
		Base:           network.NewBase(name),
		DischargeCoeff: 0.7,
		Area:           area,
		Density:        870,
		RegPressure:    100,
	}
}

func (o *Orifice) Ports() []network.Port {
	return network.PortPair(network.Hydraulic, "a", "b")
}

func (o *Orifice) Validate() error {
	if o.Area <= 0 {
		return fmt.Errorf("%w: area must be positive, got %g", network.ErrParameterBounds, o.Area)
	}
	if o.DischargeCoeff <= 0 || o.DischargeCoeff > 1 {
		return fmt.Errorf("%w: discharge coefficient must be in (0,1], got %g", network.ErrParameterBounds, o.DischargeCoeff)
	}
	if o.Density <= 0 {
		return fmt.Errorf("%w: density must be positive, got %g", network.ErrParameterBounds, o.Density)
	}
	if o.RegPressure <= 0 {
		return fmt.Errorf("%w: regularization pressure must be positive, got %g", network.ErrParameterBounds, o.RegPressure)
	}
	return nil
}

func (o *Orifice) gain() float64 {
	return o.DischargeCoeff * o.Area * math.Sqrt(2*o.Density)
}

func (o *Orifice) Stamp(st *network.Stamp) {
	a, b := o.Node(0), o.Node(1)
	dp := st.Across(a) - st.Across(b)

	k := o.gain()
	f := k * smooth.SignedSqrt(dp, o.RegPressure)
	g := k * smooth.SignedSqrtSlope(dp, o.RegPressure)

	st.Conductance(a, b, g)
	st.Flow(a, b, f-g*dp)
}

// Valve is an orifice scaled by a commanded opening. The command is
// saturated smoothly into [0, 1], so overshooting input signals do not
// fold the flow law.
type Valve struct {
	network.Base
	DischargeCoeff float64
	Area           float64
	Density        float64
	RegPressure    float64
	Opening        blocks.Waveform
}

// NewValve returns a valve with the given fully-open flow area, driven by
// the opening waveform.
func NewValve(name string, area float64, opening blocks.Waveform) *Valve {
	return &Valve{
		Base:           network.NewBase(name),
		DischargeCoeff: 0.7,
		Area:           area,
		Density:        870,
		RegPressure:    100,
		Opening:        opening,
	}
}

func (v *Valve) Ports() []network.Port {
	return network.PortPair(network.Hydraulic, "a", "b")
}

func (v *Valve) Validate() error {
	if v.Area <= 0 {
		return fmt.Errorf("%w: area must be positive, got %g", network.ErrParameterBounds, v.Area)
	}
	if v.DischargeCoeff <= 0 || v.DischargeCoeff > 1 {
		return fmt.Errorf("%w: discharge coefficient must be in (0,1], got %g", network.ErrParameterBounds, v.DischargeCoeff)
	}
	if v.Density <= 0 {
		return fmt.Errorf("%w: density must be positive, got %g", network.ErrParameterBounds, v.Density)
	}
	if v.RegPressure <= 0 {
		return fmt.Errorf("%w: regularization pressure must be positive, got %g", network.ErrParameterBounds, v.RegPressure)
	}
	return nil
}

func (v *Valve) Stamp(st *network.Stamp) {
	a, b := v.Node(0), v.Node(1)
	dp := st.Across(a) - st.Across(b)

	u := smooth.Step(v.Opening.Value(st.Time))
	k := u * v.DischargeCoeff * v.Area * math.Sqrt(2*v.Density)
	f := k * smooth.SignedSqrt(dp, v.RegPressure)
	g := k * smooth.SignedSqrtSlope(dp, v.RegPressure)

	st.Conductance(a, b, g)
	st.Flow(a, b, f-g*dp)
}

// FlowSensor is an ideal mass flow meter: a zero-drop branch whose
// unknown is the flow from a to b.
type FlowSensor struct {
	network.Base
}

// NewFlowSensor returns an ideal mass flow sensor.
func NewFlowSensor(name string) *FlowSensor {
	return &FlowSensor{Base: network.NewBase(name)}
}

func (s *FlowSensor) Ports() []network.Port {
	return network.PortPair(network.Hydraulic, "a", "b")
}

func (s *FlowSensor) BranchCount() int { return 1 }

func (s *FlowSensor) Stamp(st *network.Stamp) {
	st.PotentialSource(s.Node(0), s.Node(1), s.Branch(0), 0)
}

// PressureSensor reads the absolute pressure of its port via the junction
// label. It stamps nothing.
type PressureSensor struct {
	network.Base
}

// NewPressureSensor returns an ideal pressure sensor.
func NewPressureSensor(name string) *PressureSensor {
	return &PressureSensor{Base: network.NewBase(name)}
}

func (s *PressureSensor) Ports() []network.Port {
	return network.SinglePort(network.Hydraulic, "port")
}

func (s *PressureSensor) Stamp(*network.Stamp) {}
