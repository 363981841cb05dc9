// Package translational provides one-dimensional mechanical elements.
// Across is velocity, through is force; positions enter only as internal
// spring states. Junctions are rigid joints: velocities equalize and
// forces balance.
package translational

import (
	"fmt"
	"math"

	"phynet/internal/blocks"
	"phynet/internal/network"
)

const icConductance = 1e6

// Fixed is a rigid mounting point: the flange velocity is forced to zero
// and the branch unknown carries the reaction force.
type Fixed struct {
	network.Base
}

// NewFixed returns a fixed mounting.
func NewFixed(name string) *Fixed {
	return &Fixed{Base: network.NewBase(name)}
}

func (f *Fixed) Ports() []network.Port {
	return network.SinglePort(network.Translational, "flange")
}

func (f *Fixed) BranchCount() int { return 1 }

func (f *Fixed) Stamp(st *network.Stamp) {
	st.PotentialSource(f.Node(0), network.Ground, f.Branch(0), 0)
}

// Mass is a sliding point mass. Its inertial force M*dv/dt acts between
// the flange and the global reference, discretized like a capacitor.
type Mass struct {
	network.Base
	M               float64
	InitialVelocity float64

	vel float64
	frc float64
}

// NewMass returns a mass in kilograms with zero initial velocity.
func NewMass(name string, kg float64) *Mass {
	return &Mass{Base: network.NewBase(name), M: kg}
}

func (m *Mass) Ports() []network.Port {
	return network.SinglePort(network.Translational, "flange")
}

func (m *Mass) Validate() error {
	if m.M <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %g", network.ErrParameterBounds, m.M)
	}
	return nil
}

func (m *Mass) Reset() {
	m.vel = m.InitialVelocity
	m.frc = 0
}

func (m *Mass) Stamp(st *network.Stamp) {
	fl := m.Node(0)
	switch st.Mode {
	case network.OperatingPoint:
		// no acceleration at steady state

	case network.InitialConditions:
		st.Conductance(fl, network.Ground, icConductance)
		st.Flow(network.Ground, fl, icConductance*m.InitialVelocity)

	case network.Transient:
		var g, hist float64
		if st.Method == network.Trapezoidal {
			g = 2 * m.M / st.Dt
			hist = g*m.vel + m.frc
		} else {
			g = m.M / st.Dt
			hist = g * m.vel
		}
		st.Conductance(fl, network.Ground, g)
		st.Flow(network.Ground, fl, hist)
	}
}

func (m *Mass) Commit(st *network.Stamp) {
	v := st.Across(m.Node(0))
	if st.Mode == network.Transient {
		if st.Method == network.Trapezoidal {
			g := 2 * m.M / st.Dt
			m.frc = g*(v-m.vel) - m.frc
		} else {
			m.frc = m.M / st.Dt * (v - m.vel)
		}
	} else {
		m.frc = 0
	}
	m.vel = v
}

// Spring is a linear spring. The transmitted force is a branch unknown
// driven by the integrated relative displacement.
type Spring struct {
	network.Base
	Stiffness           float64
	InitialDisplacement float64

	srel  float64
	vPrev float64
}

// NewSpring returns a spring with stiffness in newtons per meter and no
// initial extension.
func NewSpring(name string, stiffness float64) *Spring {
	return &Spring{Base: network.NewBase(name), Stiffness: stiffness}
}

func (s *Spring) Ports() []network.Port {
	return network.PortPair(network.Translational, "p", "n")
}

func (s *Spring) BranchCount() int { return 1 }

func (s *Spring) Validate() error {
	if s.Stiffness <= 0 {
		return fmt.Errorf("%w: stiffness must be positive, got %g", network.ErrParameterBounds, s.Stiffness)
	}
	return nil
}

func (s *Spring) Reset() {
	s.srel = s.InitialDisplacement
	s.vPrev = 0
}

func (s *Spring) Stamp(st *network.Stamp) {
	p, n := s.Node(0), s.Node(1)
	r := st.BranchRow(s.Branch(0))
	k := s.Stiffness

	st.Add(p, r, 1)
	st.Add(n, r, -1)

	switch st.Mode {
	case network.OperatingPoint:
		// zero relative velocity at steady state; the branch force
		// settles wherever the rest of the network needs it
		st.Add(r, p, 1)
		st.Add(r, n, -1)

	case network.InitialConditions:
		st.Add(r, r, 1)
		st.AddRhs(r, k*s.InitialDisplacement)

	case network.Transient:
		st.Add(r, r, 1)
		if st.Method == network.Trapezoidal {
			st.Add(r, p, -k*st.Dt/2)
			st.Add(r, n, k*st.Dt/2)
			st.AddRhs(r, k*(s.srel+st.Dt/2*s.vPrev))
		} else {
			st.Add(r, p, -k*st.Dt)
			st.Add(r, n, k*st.Dt)
			st.AddRhs(r, k*s.srel)
		}
	}
}

func (s *Spring) Commit(st *network.Stamp) {
	v := st.Across(s.Node(0)) - st.Across(s.Node(1))
	if st.Mode == network.Transient {
		if st.Method == network.Trapezoidal {
			s.srel += st.Dt / 2 * (v + s.vPrev)
		} else {
			s.srel += st.Dt * v
		}
	}
	s.vPrev = v
}

// Displacement returns the spring's current relative displacement.
func (s *Spring) Displacement() float64 { return s.srel }

// Damper is a linear viscous damper transmitting d times the relative
// velocity.
type Damper struct {
	network.Base
	D float64
}

// NewDamper returns a damper with coefficient in newton-seconds per meter.
func NewDamper(name string, d float64) *Damper {
	return &Damper{Base: network.NewBase(name), D: d}
}

func (d *Damper) Ports() []network.Port {
	return network.PortPair(network.Translational, "p", "n")
}

func (d *Damper) Validate() error {
	if d.D < 0 {
		return fmt.Errorf("%w: damping must not be negative, got %g", network.ErrParameterBounds, d.D)
	}
	return nil
}

func (d *Damper) Stamp(st *network.Stamp) {
	st.Conductance(d.Node(0), d.Node(1), d.D)
}

// SpringDamper is a spring and damper in parallel sharing both flanges.
type SpringDamper struct {
	Spring
	D float64
}

// NewSpringDamper returns a parallel spring-damper pair.
func NewSpringDamper(name string, stiffness, damping float64) *SpringDamper {
	return &SpringDamper{Spring: *NewSpring(name, stiffness), D: damping}
}

func (sd *SpringDamper) Validate() error {
	if err := sd.Spring.Validate(); err != nil {
		return err
	}
	if sd.D < 0 {
		return fmt.Errorf("%w: damping must not be negative, got %g", network.ErrParameterBounds, sd.D)
	}
	return nil
}

func (sd *SpringDamper) Stamp(st *network.Stamp) {
	sd.Spring.Stamp(st)
	st.Conductance(sd.Node(0), sd.Node(1), sd.D)
}

// ForceSource drives the waveform's force into p and reacts against n.
type ForceSource struct {
	network.Base
	Signal blocks.Waveform
}

// NewForceSource returns a force source driven by the waveform.
func NewForceSource(name string, w blocks.Waveform) *ForceSource {
	return &ForceSource{Base: network.NewBase(name), Signal: w}
}

func (f *ForceSource) Ports() []network.Port {
	return network.PortPair(network.Translational, "p", "n")
}

func (f *ForceSource) Stamp(st *network.Stamp) {
	st.Flow(f.Node(1), f.Node(0), f.Signal.Value(st.Time))
}

// SpeedSource forces the velocity of p relative to n to follow the
// waveform. The branch unknown is the force required to do so.
type SpeedSource struct {
	network.Base
	Signal blocks.Waveform
}

// NewSpeedSource returns a velocity source driven by the waveform.
func NewSpeedSource(name string, w blocks.Waveform) *SpeedSource {
	return &SpeedSource{Base: network.NewBase(name), Signal: w}
}

func (s *SpeedSource) Ports() []network.Port {
	return network.PortPair(network.Translational, "p", "n")
}

func (s *SpeedSource) BranchCount() int { return 1 }

func (s *SpeedSource) Stamp(st *network.Stamp) {
	st.PotentialSource(s.Node(0), s.Node(1), s.Branch(0), s.Signal.Value(st.Time))
}

// Friction transmits Coulomb friction smoothed by a tanh of the relative
// velocity, plus an optional viscous term. The smoothing velocity sets
// how sharply the force reverses around zero speed.
type Friction struct {
	network.Base
	BreakawayForce    float64
	ViscousCoeff      float64
	ReferenceVelocity float64
}

// NewFriction returns a friction element with the given breakaway force
// in newtons.
func NewFriction(name string, breakaway float64) *Friction {
	return &Friction{
		Base:              network.NewBase(name),
		BreakawayForce:    breakaway,
		ReferenceVelocity: 1e-4,
	}
}

func (f *Friction) Ports() []network.Port {
	return network.PortPair(network.Translational, "p", "n")
}

func (f *Friction) Validate() error {
	if f.BreakawayForce < 0 {
		return fmt.Errorf("%w: breakaway force must not be negative, got %g", network.ErrParameterBounds, f.BreakawayForce)
	}
	if f.ReferenceVelocity <= 0 {
		return fmt.Errorf("%w: reference velocity must be positive, got %g", network.ErrParameterBounds, f.ReferenceVelocity)
	}
	return nil
}

func (f *Friction) Stamp(st *network.Stamp) {
	p, n := f.Node(0), f.Node(1)
	v := st.Across(p) - st.Across(n)

	th := math.Tanh(v / f.ReferenceVelocity)
	frc := f.BreakawayForce*th + f.ViscousCoeff*v
	g := f.BreakawayForce*(1-th*th)/f.ReferenceVelocity + f.ViscousCoeff

	st.Conductance(p, n, g)
	st.Flow(p, n, frc-g*v)
}

// ForceSensor is an ideal force sensor: a rigid zero-velocity-drop branch
// whose unknown is the transmitted force.
type ForceSensor struct {
	network.Base
}

// NewForceSensor returns an ideal force sensor.
func NewForceSensor(name string) *ForceSensor {
	return &ForceSensor{Base: network.NewBase(name)}
}

func (s *ForceSensor) Ports() []network.Port {
	return network.PortPair(network.Translational, "p", "n")
}

func (s *ForceSensor) BranchCount() int { return 1 }

func (s *ForceSensor) Stamp(st *network.Stamp) {
	st.PotentialSource(s.Node(0), s.Node(1), s.Branch(0), 0)
}

// SpeedSensor reads the absolute velocity of its flange. It stamps
// nothing; the junction label serves as the probe.
type SpeedSensor struct {
	network.Base
}

// NewSpeedSensor returns an ideal velocity sensor.
func NewSpeedSensor(name string) *SpeedSensor {
	return &SpeedSensor{Base: network.NewBase(name)}
}

func (s *SpeedSensor) Ports() []network.Port {
	return network.SinglePort(network.Translational, "flange")
}

func (s *SpeedSensor) Stamp(*network.Stamp) {}
