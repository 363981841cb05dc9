package odesim

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Runner drives an integrator over a system and collects the trajectory.
type Runner struct {
	sys   System
	integ Integrator
}

// NewRunner pairs a system with an integrator.
func NewRunner(sys System, integ Integrator) *Runner {
	return &Runner{sys: sys, integ: integ}
}

// Run integrates from x0 over the configured duration. The partial
// trajectory is returned alongside any error.
func (r *Runner) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != r.sys.Dim() {
		return nil, fmt.Errorf("%w: got %d, system wants %d", ErrDimensionMismatch, len(x0), r.sys.Dim())
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		States: make([]State, 0, steps+1),
		Times:  make([]float64, 0, steps+1),
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := r.energy(x)

	for result.StepsTaken = 0; r.more(cfg, result.StepsTaken, t); result.StepsTaken++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		var newX State
		if cfg.Adaptive {
			if dt > cfg.Duration-t {
				dt = cfg.Duration - t
			}
			var taken float64
			var err error
			newX, taken, dt, err = r.adaptiveStep(x, t, dt, cfg)
			if err != nil {
				return result, &StepError{Step: result.StepsTaken, Time: t, Err: err}
			}
			t += taken
		} else {
			newX = r.integ.Step(r.sys, x, t, cfg.Dt)
			t += cfg.Dt
		}

		if cfg.ValidateState && !newX.IsValid() {
			return result, &StepError{Step: result.StepsTaken, Time: t, Err: ErrInvalidState}
		}

		x = newX
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	finalEnergy := r.energy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	return result, nil
}

// more reports whether another step is due. Fixed stepping counts steps,
// adaptive stepping runs out the clock.
func (r *Runner) more(cfg Config, taken int, t float64) bool {
	if cfg.Adaptive {
		return t < cfg.Duration-1e-12
	}
	return taken < int(math.Round(cfg.Duration/cfg.Dt))
}

// RunWithCallback integrates with fixed steps, handing each accepted
// state to the callback. Returning false stops the run early.
func (r *Runner) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(x State, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if len(x0) != r.sys.Dim() {
		return fmt.Errorf("%w: got %d, system wants %d", ErrDimensionMismatch, len(x0), r.sys.Dim())
	}

	x := x0.Clone()
	t := 0.0

	for step := 0; t < cfg.Duration-1e-12; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(x, t) {
			return nil
		}

		x = r.integ.Step(r.sys, x, t, cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			return &StepError{Step: step, Time: t, Err: ErrInvalidState}
		}
	}
	callback(x, t)
	return nil
}

func (r *Runner) energy(x State) float64 {
	if e, ok := r.sys.(Energetic); ok {
		return e.Energy(x)
	}
	return 0
}

// adaptiveStep advances one accepted step. It returns the new state, the
// step size actually taken and the proposed next size. Integrators that
// estimate error drive the proposal themselves; anything else falls back
// to step doubling.
func (r *Runner) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, float64, error) {
	if adaptive, ok := r.integ.(AdaptiveIntegrator); ok {
		newX, next, err := adaptive.StepAdaptive(r.sys, x, t, dt, cfg.Tolerance)
		if err != nil {
			return nil, 0, dt, err
		}
		if next < cfg.MinDt {
			if dt <= cfg.MinDt {
				return nil, 0, dt, ErrStepTooSmall
			}
			next = cfg.MinDt
		}
		if next > cfg.MaxDt {
			next = cfg.MaxDt
		}
		return newX, dt, next, nil
	}

	for {
		x1 := r.integ.Step(r.sys, x, t, dt)
		xHalf := r.integ.Step(r.sys, x, t, dt/2)
		x2 := r.integ.Step(r.sys, xHalf, t+dt/2, dt/2)

		err := x1.Sub(x2).Norm()
		if err <= cfg.Tolerance {
			next := dt
			if err < cfg.Tolerance/10 && 2*dt <= cfg.MaxDt {
				next = 2 * dt
			}
			return x2, dt, next, nil
		}
		if dt/2 < cfg.MinDt {
			return nil, 0, dt, ErrStepTooSmall
		}
		dt /= 2
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("odesim: dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("odesim: duration must be positive, got %g", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("odesim: tolerance must be positive for adaptive stepping, got %g", cfg.Tolerance)
	}
	return nil
}

// ParseIntegrator maps a configuration name to an integrator.
func ParseIntegrator(name string) (Integrator, error) {
	switch strings.ToLower(name) {
	case "euler":
		return NewEuler(), nil
	case "rk4", "":
		return NewRK4(), nil
	case "rk45", "dopri":
		return NewRK45(), nil
	case "verlet":
		return NewVerlet(), nil
	case "leapfrog":
		return NewLeapfrog(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownIntegrator, name)
}
