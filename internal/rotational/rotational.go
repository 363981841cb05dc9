// Package rotational provides one-dimensional rotational mechanics.
// Across is angular velocity, through is torque.
package rotational

import (
	"fmt"
	"math"

	"phynet/internal/blocks"
	"phynet/internal/network"
)

const icConductance = 1e6

// Fixed is a rigid housing: the flange's angular velocity is forced to
// zero and the branch unknown carries the reaction torque.
type Fixed struct {
	network.Base
}

// NewFixed returns a fixed housing.
func NewFixed(name string) *Fixed {
	return &Fixed{Base: network.NewBase(name)}
}

func (f *Fixed) Ports() []network.Port {
	return network.SinglePort(network.Rotational, "flange")
}

func (f *Fixed) BranchCount() int { return 1 }

func (f *Fixed) Stamp(st *network.Stamp) {
	st.PotentialSource(f.Node(0), network.Ground, f.Branch(0), 0)
}

// Inertia is a rotating body. Its inertial torque J*dw/dt acts between
// the flange and the reference.
type Inertia struct {
	network.Base
	J               float64
	InitialVelocity float64

	vel float64
	trq float64
}

// NewInertia returns a rotational inertia in kilogram square meters.
func NewInertia(name string, j float64) *Inertia {
	return &Inertia{Base: network.NewBase(name), J: j}
}

func (i *Inertia) Ports() []network.Port {
	return network.SinglePort(network.Rotational, "flange")
}

func (i *Inertia) Validate() error {
	if i.J <= 0 {
		return fmt.Errorf("%w: inertia must be positive, got %g", network.ErrParameterBounds, i.J)
	}
	return nil
}

func (i *Inertia) Reset() {
	i.vel = i.InitialVelocity
	i.trq = 0
}

func (i *Inertia) Stamp(st *network.Stamp) {
	fl := i.Node(0)
	switch st.Mode {
	case network.OperatingPoint:
		// no angular acceleration at steady state

	case network.InitialConditions:
		st.Conductance(fl, network.Ground, icConductance)
		st.Flow(network.Ground, fl, icConductance*i.InitialVelocity)

	case network.Transient:
		var g, hist float64
		if st.Method == network.Trapezoidal {
			g = 2 * i.J / st.Dt
			hist = g*i.vel + i.trq
		} else {
			g = i.J / st.Dt
			hist = g * i.vel
		}
		st.Conductance(fl, network.Ground, g)
		st.Flow(network.Ground, fl, hist)
	}
}

func (i *Inertia) Commit(st *network.Stamp) {
	w := st.Across(i.Node(0))
	if st.Mode == network.Transient {
		if st.Method == network.Trapezoidal {
			g := 2 * i.J / st.Dt
			i.trq = g*(w-i.vel) - i.trq
		} else {
			i.trq = i.J / st.Dt * (w - i.vel)
		}
	} else {
		i.trq = 0
	}
	i.vel = w
}

// TorsionSpring is a linear rotational spring; the transmitted torque is
// a branch unknown driven by the integrated twist.
type TorsionSpring struct {
	network.Base
	Stiffness    float64
	InitialTwist float64

	twist float64
	wPrev float64
}

// NewTorsionSpring returns a torsion spring with stiffness in newton
// meters per radian.
func NewTorsionSpring(name string, stiffness float64) *TorsionSpring {
	return &TorsionSpring{Base: network.NewBase(name), Stiffness: stiffness}
}

func (s *TorsionSpring) Ports() []network.Port {
	return network.PortPair(network.Rotational, "p", "n")
}

func (s *TorsionSpring) BranchCount() int { return 1 }

func (s *TorsionSpring) Validate() error {
	if s.Stiffness <= 0 {
		return fmt.Errorf("%w: stiffness must be positive, got %g", network.ErrParameterBounds, s.Stiffness)
	}
	return nil
}

func (s *TorsionSpring) Reset() {
	s.twist = s.InitialTwist
	s.wPrev = 0
}

func (s *TorsionSpring) Stamp(st *network.Stamp) {
	p, n := s.Node(0), s.Node(1)
	r := st.BranchRow(s.Branch(0))
	k := s.Stiffness

	st.Add(p, r, 1)
	st.Add(n, r, -1)

	switch st.Mode {
	case network.OperatingPoint:
		st.Add(r, p, 1)
		st.Add(r, n, -1)

	case network.InitialConditions:
		st.Add(r, r, 1)
		st.AddRhs(r, k*s.InitialTwist)

	case network.Transient:
		st.Add(r, r, 1)
		if st.Method == network.Trapezoidal {
			st.Add(r, p, -k*st.Dt/2)
			st.Add(r, n, k*st.Dt/2)
			st.AddRhs(r, k*(s.twist+st.Dt/2*s.wPrev))
		} else {
			st.Add(r, p, -k*st.Dt)
			st.Add(r, n, k*st.Dt)
			st.AddRhs(r, k*s.twist)
		}
	}
}

func (s *TorsionSpring) Commit(st *network.Stamp) {
	w := st.Across(s.Node(0)) - st.Across(s.Node(1))
	if st.Mode == network.Transient {
		if st.Method == network.Trapezoidal {
			s.twist += st.Dt / 2 * (w + s.wPrev)
		} else {
			s.twist += st.Dt * w
		}
	}
	s.wPrev = w
}

// Twist returns the spring's accumulated relative angle.
func (s *TorsionSpring) Twist() float64 { return s.twist }

// Damper is a rotational viscous damper.
type Damper struct {
	network.Base
	D float64
}

// NewDamper returns a damper with coefficient in newton-meter-seconds per
// radian.
func NewDamper(name string, d float64) *Damper {
	return &Damper{Base: network.NewBase(name), D: d}
}

func (d *Damper) Ports() []network.Port {
	return network.PortPair(network.Rotational, "p", "n")
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

// SpringDamper is a torsion spring and damper in parallel.
type SpringDamper struct {
	TorsionSpring
	D float64
}

// NewSpringDamper returns a parallel rotational spring-damper pair.
func NewSpringDamper(name string, stiffness, damping float64) *SpringDamper {
	return &SpringDamper{TorsionSpring: *NewTorsionSpring(name, stiffness), D: damping}
}

func (sd *SpringDamper) Validate() error {
	if err := sd.TorsionSpring.Validate(); err != nil {
		return err
	}
	if sd.D < 0 {
		return fmt.Errorf("%w: damping must not be negative, got %g", network.ErrParameterBounds, sd.D)
	}
	return nil
}

func (sd *SpringDamper) Stamp(st *network.Stamp) {
	sd.TorsionSpring.Stamp(st)
	st.Conductance(sd.Node(0), sd.Node(1), sd.D)
}

// TorqueSource drives the waveform's torque into p and reacts against n.
type TorqueSource struct {
	network.Base
	Signal blocks.Waveform
}

// NewTorqueSource returns a torque source driven by the waveform.
func NewTorqueSource(name string, w blocks.Waveform) *TorqueSource {
	return &TorqueSource{Base: network.NewBase(name), Signal: w}
}

func (t *TorqueSource) Ports() []network.Port {
	return network.PortPair(network.Rotational, "p", "n")
}

func (t *TorqueSource) Stamp(st *network.Stamp) {
	st.Flow(t.Node(1), t.Node(0), t.Signal.Value(st.Time))
}

// SpeedSource forces the angular velocity of p relative to n to follow
// the waveform.
type SpeedSource struct {
	network.Base
	Signal blocks.Waveform
}

// NewSpeedSource returns an angular velocity source.
func NewSpeedSource(name string, w blocks.Waveform) *SpeedSource {
	return &SpeedSource{Base: network.NewBase(name), Signal: w}
}

func (s *SpeedSource) Ports() []network.Port {
	return network.PortPair(network.Rotational, "p", "n")
}

func (s *SpeedSource) BranchCount() int { return 1 }

func (s *SpeedSource) Stamp(st *network.Stamp) {
	st.PotentialSource(s.Node(0), s.Node(1), s.Branch(0), s.Signal.Value(st.Time))
}

// IdealGear couples two flanges with w(a) = Ratio * w(b) and conserves
// power, so the torque on b is -Ratio times the torque on a. The branch
// unknown is the torque entering flange a.
type IdealGear struct {
	network.Base
	Ratio float64
}

// NewIdealGear returns a lossless gear with the given speed ratio a:b.
func NewIdealGear(name string, ratio float64) *IdealGear {
	return &IdealGear{Base: network.NewBase(name), Ratio: ratio}
}

func (g *IdealGear) Ports() []network.Port {
	return network.PortPair(network.Rotational, "a", "b")
}

func (g *IdealGear) BranchCount() int { return 1 }

func (g *IdealGear) Validate() error {
	if g.Ratio == 0 {
		return fmt.Errorf("%w: gear ratio must be nonzero", network.ErrParameterBounds)
	}
	return nil
}

func (g *IdealGear) Stamp(st *network.Stamp) {
	a, b := g.Node(0), g.Node(1)
	r := st.BranchRow(g.Branch(0))

	st.Add(a, r, 1)
	st.Add(b, r, -g.Ratio)

	// w(a) - Ratio*w(b) = 0
	st.Add(r, a, 1)
	st.Add(r, b, -g.Ratio)
}

// BearingFriction is Coulomb friction against the housing, smoothed by a
// tanh of the flange speed, plus an optional viscous term.
type BearingFriction struct {
	network.Base
	BreakawayTorque   float64
	ViscousCoeff      float64
	ReferenceVelocity float64
}

// NewBearingFriction returns a bearing friction element with the given
// breakaway torque in newton meters.
func NewBearingFriction(name string, breakaway float64) *BearingFriction {
	return &BearingFriction{
		Base:              network.NewBase(name),
		BreakawayTorque:   breakaway,
		ReferenceVelocity: 1e-4,
	}
}

func (f *BearingFriction) Ports() []network.Port {
	return network.SinglePort(network.Rotational, "flange")
}

func (f *BearingFriction) Validate() error {
	if f.BreakawayTorque < 0 {
		return fmt.Errorf("%w: breakaway torque must not be negative, got %g", network.ErrParameterBounds, f.BreakawayTorque)
	}
	if f.ReferenceVelocity <= 0 {
		return fmt.Errorf("%w: reference velocity must be positive, got %g", network.ErrParameterBounds, f.ReferenceVelocity)
	}
	return nil
}

func (f *BearingFriction) Stamp(st *network.Stamp) {
	fl := f.Node(0)
	w := st.Across(fl)

	th := math.Tanh(w / f.ReferenceVelocity)
	trq := f.BreakawayTorque*th + f.ViscousCoeff*w
	g := f.BreakawayTorque*(1-th*th)/f.ReferenceVelocity + f.ViscousCoeff

	st.Conductance(fl, network.Ground, g)
	st.Flow(fl, network.Ground, trq-g*w)
}

// TorqueSensor is an ideal torque sensor: a rigid coupling whose branch
// unknown is the transmitted torque.
type TorqueSensor struct {
	network.Base
}

// NewTorqueSensor returns an ideal torque sensor.
func NewTorqueSensor(name string) *TorqueSensor {
	return &TorqueSensor{Base: network.NewBase(name)}
}

func (s *TorqueSensor) Ports() []network.Port {
	return network.PortPair(network.Rotational, "p", "n")
}

func (s *TorqueSensor) BranchCount() int { return 1 }

func (s *TorqueSensor) Stamp(st *network.Stamp) {
	st.PotentialSource(s.Node(0), s.Node(1), s.Branch(0), 0)
}

// SpeedSensor reads the absolute angular velocity of its flange via the
// junction label. It stamps nothing.
type SpeedSensor struct {
	network.Base
}

// NewSpeedSensor returns an ideal angular velocity sensor.
func NewSpeedSensor(name string) *SpeedSensor {
	return &SpeedSensor{Base: network.NewBase(name)}
}

func (s *SpeedSensor) Ports() []network.Port {
	return network.SinglePort(network.Rotational, "flange")
}

func (s *SpeedSensor) Stamp(*network.Stamp) {}
