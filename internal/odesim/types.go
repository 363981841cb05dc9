// Package odesim integrates explicit first-order systems dx/dt = f(x, t)
// with fixed or adaptive step size. It backs the rigid multibody models,
// which reduce to dense ODE systems instead of component networks.
package odesim

import "math"

// State is a flat vector of state variables.
type State []float64

// Clone returns a copy of the state.
func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every entry is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean norm.
func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Sub returns s - other, element-wise.
func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] - other[i]
	}
	return result
}

// System is an explicit ODE right-hand side.
type System interface {
	// Derive returns dx/dt at the given state and time. The returned
	// slice must be freshly allocated or owned by the caller's frame;
	// integrators may retain it until the next call.
	Derive(x State, t float64) State

	// Dim is the state vector length.
	Dim() int
}

// Energetic is implemented by systems with a meaningful total energy,
// used to report drift after a run.
type Energetic interface {
	Energy(x State) float64
}

// Integrator advances a state by one time step.
type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveIntegrator additionally estimates local error and proposes the
// next step size.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, error)
}

// Config holds integration settings.
type Config struct {
	Dt            float64
	Duration      float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
}

// DefaultConfig returns settings suitable for smooth mechanical systems.
func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		Tolerance:     1e-6,
		MaxDt:         0.1,
		MinDt:         1e-8,
		Adaptive:      false,
		ValidateState: true,
	}
}

// Result collects the trajectory of a run.
type Result struct {
	States      []State
	Times       []float64
	EnergyDrift float64
	StepsTaken  int
}

// Final returns the last recorded state, or nil for an empty result.
func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// At returns the recorded state nearest to time t.
func (r *Result) At(t float64) State {
	if len(r.Times) == 0 {
		return nil
	}
	best, dist := 0, math.Inf(1)
	for i, ti := range r.Times {
		if d := math.Abs(ti - t); d < dist {
			best, dist = i, d
		}
	}
	return r.States[best]
}
