// Package planar models open chains of rigid links swinging in the
// vertical plane: pendulums, robot arms, linkages. The chain assembles
// the dense mass matrix in absolute link angles and hands the resulting
// ODE system to the odesim integrators.
//
// The state layout is [theta_1..theta_n, omega_1..omega_n] with angles
// measured from the downward vertical, so the all-zero state hangs at
// rest.
package planar

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"phynet/internal/blocks"
	"phynet/internal/odesim"
)

// ErrParameterBounds indicates a link or joint parameter outside its
// valid range.
var ErrParameterBounds = errors.New("planar: parameter out of valid bounds")

// Link is one rigid segment of a chain.
type Link struct {
	Mass    float64 // kg
	Length  float64 // m, pivot to the next pivot
	Center  float64 // m, pivot to the center of mass
	Inertia float64 // kg m^2 about the center of mass
}

// Joint connects a link to its predecessor (the first joint to the
// fixed frame). Damping acts on the relative angular speed; Drive is an
// optional torque waveform across the joint.
type Joint struct {
	Damping float64
	Drive   blocks.Waveform
}

// Chain is an open kinematic chain of rigid links under gravity. It
// implements odesim.System and reports its total mechanical energy.
// Derive shares factorization scratch, so a Chain must not be used from
// several goroutines at once.
type Chain struct {
	Gravity float64

	links  []Link
	joints []Joint

	mass *mat.SymDense
	chol mat.Cholesky
	rhs  *mat.VecDense
	acc  *mat.VecDense
}

// NewChain builds a chain from base to tip. Each link needs a joint;
// gravity defaults to 9.81 and can be overridden on the returned chain.
func NewChain(links []Link, joints []Joint) (*Chain, error) {
	if len(links) == 0 {
		return nil, fmt.Errorf("%w: a chain needs at least one link", ErrParameterBounds)
	}
	if len(joints) != len(links) {
		return nil, fmt.Errorf("%w: %d links but %d joints", ErrParameterBounds, len(links), len(joints))
	}
	for i, l := range links {
		if l.Mass <= 0 {
			return nil, fmt.Errorf("%w: link %d mass must be positive, got %g", ErrParameterBounds, i, l.Mass)
		}
		if l.Length <= 0 {
			return nil, fmt.Errorf("%w: link %d length must be positive, got %g", ErrParameterBounds, i, l.Length)
		}
		if l.Center < 0 || l.Center > l.Length {
			return nil, fmt.Errorf("%w: link %d center must lie on the link, got %g", ErrParameterBounds, i, l.Center)
		}
		if l.Inertia < 0 {
			return nil, fmt.Errorf("%w: link %d inertia must not be negative, got %g", ErrParameterBounds, i, l.Inertia)
		}
		if l.Inertia+l.Mass*l.Center*l.Center <= 0 {
			return nil, fmt.Errorf("%w: link %d has no rotational inertia about its pivot", ErrParameterBounds, i)
		}
	}
	for i, j := range joints {
		if j.Damping < 0 {
			return nil, fmt.Errorf("%w: joint %d damping must not be negative, got %g", ErrParameterBounds, i, j.Damping)
		}
	}

	n := len(links)
	return &Chain{
		Gravity: 9.81,
		links:   append([]Link(nil), links...),
		joints:  append([]Joint(nil), joints...),
		mass:    mat.NewSymDense(n, nil),
		rhs:     mat.NewVecDense(n, nil),
		acc:     mat.NewVecDense(n, nil),
	}, nil
}

// NewDoublePendulum returns the classic two point masses on massless
// rods, one meter and one kilogram each.
func NewDoublePendulum() *Chain {
	link := Link{Mass: 1, Length: 1, Center: 1}
	c, err := NewChain([]Link{link, link}, make([]Joint, 2))
	if err != nil {
		panic(err)
	}
	return c
}

// Dim implements odesim.System.
func (c *Chain) Dim() int { return 2 * len(c.links) }

// Len returns the number of links.
func (c *Chain) Len() int { return len(c.links) }

// arm is the distance the angle theta_j contributes to the position of
// link i's center of mass.
func (c *Chain) arm(i, j int) float64 {
	switch {
	case j < i:
		return c.links[j].Length
	case j == i:
		return c.links[i].Center
	}
	return 0
}

// coupling is the mass-weighted product of arms, the angle-independent
// part of the mass matrix.
func (c *Chain) coupling(p, q int) float64 {
	lo := p
	if q > lo {
		lo = q
	}
	sum := 0.0
	for i := lo; i < len(c.links); i++ {
		sum += c.links[i].Mass * c.arm(i, p) * c.arm(i, q)
	}
	return sum
}

// weight is the gravity lever of angle r: its own center of mass plus
// every link hanging below.
func (c *Chain) weight(r int) float64 {
	w := c.links[r].Mass * c.links[r].Center
	for i := r + 1; i < len(c.links); i++ {
		w += c.links[r].Length * c.links[i].Mass
	}
	return w
}

// torque is the joint torque across joint j in the relative coordinate.
func (c *Chain) torque(j int, omega []float64, t float64) float64 {
	jt := c.joints[j]
	tau := 0.0
	if jt.Drive != nil {
		tau += jt.Drive.Value(t)
	}
	rel := omega[j]
	if j > 0 {
		rel -= omega[j-1]
	}
	return tau - jt.Damping*rel
}

// Derive implements odesim.System: it assembles M(theta) and the force
// vector, then solves M*acc = rhs. A chain folded into a singular
// configuration yields NaN accelerations, which the runner rejects.
func (c *Chain) Derive(x odesim.State, t float64) odesim.State {
	n := len(c.links)
	theta, omega := x[:n], x[n:]

	for p := 0; p < n; p++ {
		for q := p; q < n; q++ {
			v := c.coupling(p, q) * math.Cos(theta[p]-theta[q])
			if p == q {
				v += c.links[p].Inertia
			}
			c.mass.SetSym(p, q, v)
		}
	}

	for r := 0; r < n; r++ {
		v := 0.0
		for q := 0; q < n; q++ {
			if q == r {
				continue
			}
			v -= c.coupling(r, q) * math.Sin(theta[r]-theta[q]) * omega[q] * omega[q]
		}
		v -= c.Gravity * c.weight(r) * math.Sin(theta[r])
		v += c.torque(r, omega, t)
		if r+1 < n {
			v -= c.torque(r+1, omega, t)
		}
		c.rhs.SetVec(r, v)
	}

	out := make(odesim.State, 2*n)
	copy(out[:n], omega)

	if ok := c.chol.Factorize(c.mass); !ok {
		for i := n; i < 2*n; i++ {
			out[i] = math.NaN()
		}
		return out
	}
	if err := c.chol.SolveVecTo(c.acc, c.rhs); err != nil {
		for i := n; i < 2*n; i++ {
			out[i] = math.NaN()
		}
		return out
	}
	copy(out[n:], c.acc.RawVector().Data)
	return out
}

// Energy returns kinetic plus potential energy, zero level at the fixed
// base pivot.
func (c *Chain) Energy(x odesim.State) float64 {
	n := len(c.links)
	theta, omega := x[:n], x[n:]

	ke := 0.0
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			m := c.coupling(p, q) * math.Cos(theta[p]-theta[q])
			if p == q {
				m += c.links[p].Inertia
			}
			ke += 0.5 * m * omega[p] * omega[q]
		}
	}

	pe := 0.0
	for i := range c.links {
		y := 0.0
		for j := 0; j <= i; j++ {
			y -= c.arm(i, j) * math.Cos(theta[j])
		}
		pe += c.Gravity * c.links[i].Mass * y
	}

	return ke + pe
}

// Positions returns the chain pivot points from base to tip, x to the
// right and y up, for rendering.
func (c *Chain) Positions(x odesim.State) [][2]float64 {
	n := len(c.links)
	theta := x[:n]

	pts := make([][2]float64, n+1)
	px, py := 0.0, 0.0
	for i, l := range c.links {
		px += l.Length * math.Sin(theta[i])
		py -= l.Length * math.Cos(theta[i])
		pts[i+1] = [2]float64{px, py}
	}
	return pts
}
