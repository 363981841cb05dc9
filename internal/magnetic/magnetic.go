// Package magnetic provides lumped magnetic circuit elements. Across is
// magnetomotive force in amperes, through is magnetic flux in webers.
package magnetic

import (
	"fmt"
	"math"

	"phynet/internal/blocks"
	"phynet/internal/network"
)

// mu0 is the vacuum permeability in henry per meter.
const mu0 = 4 * math.Pi * 1e-7

// Ground pins its port to zero magnetic potential.
type Ground struct {
	network.Base
}

// NewGround returns a magnetic reference element.
func NewGround(name string) *Ground {
	return &Ground{Base: network.NewBase(name)}
}

func (g *Ground) Ports() []network.Port {
	return network.SinglePort(network.Magnetic, "port")
}

func (g *Ground) BranchCount() int { return 1 }

func (g *Ground) Stamp(st *network.Stamp) {
	st.PotentialSource(g.Node(0), network.Ground, g.Branch(0), 0)
}

// Reluctance is a constant magnetic resistance: flux = mmf / R.
type Reluctance struct {
	network.Base
	R float64
}

// NewReluctance returns a constant reluctance in ampere per weber.
func NewReluctance(name string, r float64) *Reluctance {
	return &Reluctance{Base: network.NewBase(name), R: r}
}

func (r *Reluctance) Ports() []network.Port {
	return network.PortPair(network.Magnetic, "a", "b")
}

func (r *Reluctance) Validate() error {
	if r.R <= 0 {
		return fmt.Errorf("%w: reluctance must be positive, got %g", network.ErrParameterBounds, r.R)
	}
	return nil
}

func (r *Reluctance) Stamp(st *network.Stamp) {
	st.Conductance(r.Node(0), r.Node(1), 1/r.R)
}

// GeometricReluctance computes its reluctance from flux path geometry:
// R = length / (mu0 * mur * area). Useful for air gaps and leakage
// paths where the geometry, not the reluctance, is the datum.
type GeometricReluctance struct {
	network.Base
	Length       float64
	Area         float64
	Permeability float64
}

// NewGeometricReluctance returns a reluctance for a flux path of the
// given length and cross-section with relative permeability mur.
func NewGeometricReluctance(name string, length, area, mur float64) *GeometricReluctance {
	return &GeometricReluctance{Base: network.NewBase(name), Length: length, Area: area, Permeability: mur}
}

func (g *GeometricReluctance) Ports() []network.Port {
	return network.PortPair(network.Magnetic, "a", "b")
}

func (g *GeometricReluctance) Validate() error {
	if g.Length <= 0 {
		return fmt.Errorf("%w: path length must be positive, got %g", network.ErrParameterBounds, g.Length)
	}
	if g.Area <= 0 {
		return fmt.Errorf("%w: cross-section must be positive, got %g", network.ErrParameterBounds, g.Area)
	}
	if g.Permeability <= 0 {
		return fmt.Errorf("%w: relative permeability must be positive, got %g", network.ErrParameterBounds, g.Permeability)
	}
	return nil
}

// Reluctance returns the equivalent lumped reluctance.
func (g *GeometricReluctance) Reluctance() float64 {
	return g.Length / (mu0 * g.Permeability * g.Area)
}

func (g *GeometricReluctance) Stamp(st *network.Stamp) {
	st.Conductance(g.Node(0), g.Node(1), 1/g.Reluctance())
}

// EddyCurrent models losses in conductive core material: the
// magnetomotive force across it is G times the rate of flux change,
// which is the magnetic analog of an inductor.
type EddyCurrent struct {
	network.Base
	G float64

	flux float64
	mmf  float64
}

// NewEddyCurrent returns an eddy current element with loss conductance g
// in siemens (referred to the magnetic side).
func NewEddyCurrent(name string, g float64) *EddyCurrent {
	return &EddyCurrent{Base: network.NewBase(name), G: g}
}

func (e *EddyCurrent) Ports() []network.Port {
	return network.PortPair(network.Magnetic, "a", "b")
}

func (e *EddyCurrent) BranchCount() int { return 1 }

func (e *EddyCurrent) Validate() error {
	if e.G <= 0 {
		return fmt.Errorf("%w: loss conductance must be positive, got %g", network.ErrParameterBounds, e.G)
	}
	return nil
}

func (e *EddyCurrent) Reset() {
	e.flux = 0
	e.mmf = 0
}

func (e *EddyCurrent) Stamp(st *network.Stamp) {
	a, b := e.Node(0), e.Node(1)
	r := st.BranchRow(e.Branch(0))

	st.Add(a, r, 1)
	st.Add(b, r, -1)

	switch st.Mode {
	case network.OperatingPoint:
		// static flux, no drop
		st.Add(r, a, 1)
		st.Add(r, b, -1)

	case network.InitialConditions:
		st.Add(r, r, 1)

	case network.Transient:
		st.Add(r, a, 1)
		st.Add(r, b, -1)
		if st.Method == network.Trapezoidal {
			k := 2 * e.G / st.Dt
			st.Add(r, r, -k)
			st.AddRhs(r, -k*e.flux-e.mmf)
		} else {
			k := e.G / st.Dt
			st.Add(r, r, -k)
			st.AddRhs(r, -k*e.flux)
		}
	}
}

func (e *EddyCurrent) Commit(st *network.Stamp) {
	e.flux = st.Branch(e.Branch(0))
	e.mmf = st.Across(e.Node(0)) - st.Across(e.Node(1))
}

// MMFSource forces the magnetomotive force across a and b to follow a
// waveform. The branch unknown is the delivered flux.
type MMFSource struct {
	network.Base
	Signal blocks.Waveform
}

// NewMMFSource returns a magnetomotive force source.
func NewMMFSource(name string, w blocks.Waveform) *MMFSource {
	return &MMFSource{Base: network.NewBase(name), Signal: w}
}

func (m *MMFSource) Ports() []network.Port {
	return network.PortPair(network.Magnetic, "a", "b")
}

func (m *MMFSource) BranchCount() int { return 1 }

func (m *MMFSource) Stamp(st *network.Stamp) {
	st.PotentialSource(m.Node(0), m.Node(1), m.Branch(0), m.Signal.Value(st.Time))
}

// FluxSource injects the waveform's flux into a.
type FluxSource struct {
	network.Base
	Signal blocks.Waveform
}

// NewFluxSource returns a prescribed flux source.
func NewFluxSource(name string, w blocks.Waveform) *FluxSource {
	return &FluxSource{Base: network.NewBase(name), Signal: w}
}

func (f *FluxSource) Ports() []network.Port {
	return network.PortPair(network.Magnetic, "a", "b")
}

func (f *FluxSource) Stamp(st *network.Stamp) {
	st.Flow(f.Node(1), f.Node(0), f.Signal.Value(st.Time))
}

// Converter is an ideal electromagnetic converter with N turns: the coil
// voltage is N times the rate of flux change and the magnetomotive force
// is N times the coil current. Combined with a reluctance it forms an
// inductor of N^2/R henry.
type Converter struct {
	network.Base
	Turns float64

	flux float64
	volt float64
}

// NewConverter returns an electromagnetic converter with the given turn
// count.
func NewConverter(name string, turns float64) *Converter {
	return &Converter{Base: network.NewBase(name), Turns: turns}
}

func (c *Converter) Ports() []network.Port {
	return []network.Port{
		{Name: "p", Domain: network.Electrical},
		{Name: "n", Domain: network.Electrical},
		{Name: "mp", Domain: network.Magnetic},
		{Name: "mn", Domain: network.Magnetic},
	}
}

func (c *Converter) BranchCount() int { return 2 }

func (c *Converter) BranchLabels() []string {
	return []string{c.Name() + ".i", c.Name() + ".flux"}
}

func (c *Converter) Validate() error {
	if c.Turns <= 0 {
		return fmt.Errorf("%w: turn count must be positive, got %g", network.ErrParameterBounds, c.Turns)
	}
	return nil
}

func (c *Converter) Reset() {
	c.flux = 0
	c.volt = 0
}

func (c *Converter) Stamp(st *network.Stamp) {
	p, n, mp, mn := c.Node(0), c.Node(1), c.Node(2), c.Node(3)
	ri := st.BranchRow(c.Branch(0))
	rf := st.BranchRow(c.Branch(1))

	// Coil current i enters the electrical junctions, flux enters the
	// magnetic ones.
	st.Add(p, ri, 1)
	st.Add(n, ri, -1)
	st.Add(mp, rf, 1)
	st.Add(mn, rf, -1)

	// Ampere's law: mmf(mp) - mmf(mn) - N*i = 0.
	st.Add(rf, mp, 1)
	st.Add(rf, mn, -1)
	st.Add(rf, ri, -c.Turns)

	// Faraday's law. The branch flux is counted into the converter at
	// mp, so the flux linking the coil is its negative and the row
	// reads v(p) - v(n) + N*dflux/dt = 0.
	switch st.Mode {
	case network.OperatingPoint:
		// static flux, zero coil voltage
		st.Add(ri, p, 1)
		st.Add(ri, n, -1)

	case network.InitialConditions:
		// hold the starting flux, leave the coil voltage free
		st.Add(ri, rf, 1)
		st.AddRhs(ri, c.flux)

	case network.Transient:
		st.Add(ri, p, 1)
		st.Add(ri, n, -1)
		if st.Method == network.Trapezoidal {
			k := 2 * c.Turns / st.Dt
			st.Add(ri, rf, k)
			st.AddRhs(ri, k*c.flux-c.volt)
		} else {
			k := c.Turns / st.Dt
			st.Add(ri, rf, k)
			st.AddRhs(ri, k*c.flux)
		}
	}
}

func (c *Converter) Commit(st *network.Stamp) {
	c.flux = st.Branch(c.Branch(1))
	c.volt = st.Across(c.Node(0)) - st.Across(c.Node(1))
}
