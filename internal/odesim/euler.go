package odesim

// Euler is the explicit first-order method. Mostly useful as a baseline
// and for very stiff step-size experiments.
type Euler struct{}

// NewEuler returns an explicit Euler integrator.
func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys System, x State, t, dt float64) State {
	dx := sys.Derive(x, t)
	result := make(State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
