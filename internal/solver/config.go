package solver

import (
	"fmt"
	"strings"

	"phynet/internal/network"
)

// Config holds solver parameters.
type Config struct {
	// Dt is the fixed transient step size in seconds.
	Dt float64

	// Duration is the simulated time span in seconds.
	Duration float64

	// Method is the implicit integration rule for storage elements.
	Method network.Method

	// MaxIters bounds Newton iterations per time point.
	MaxIters int

	// Abstol and Reltol define convergence: iteration stops when every
	// unknown's update satisfies |dx| <= Abstol + Reltol*|x|.
	Abstol float64
	Reltol float64

	// Gmin is the leak conductance added on junction diagonals. It keeps
	// matrices factorizable when a junction would otherwise float.
	Gmin float64

	// MinDamping bounds how far the Newton damping factor may shrink.
	MinDamping float64

	// ValidateState rejects solutions containing NaN or Inf.
	ValidateState bool
}

// DefaultConfig returns solver parameters that behave well for mildly
// stiff networks.
func DefaultConfig() Config {
	return Config{
		Dt:            1e-3,
		Duration:      1.0,
		Method:        network.BackwardEuler,
		MaxIters:      100,
		Abstol:        1e-9,
		Reltol:        1e-6,
		Gmin:          1e-12,
		MinDamping:    1.0 / 64,
		ValidateState: true,
	}
}

func (c Config) validate() error {
	if c.MaxIters < 1 {
		return fmt.Errorf("solver: max iterations must be at least 1, got %d", c.MaxIters)
	}
	if c.Abstol <= 0 {
		return fmt.Errorf("solver: abstol must be positive, got %g", c.Abstol)
	}
	if c.Reltol <= 0 {
		return fmt.Errorf("solver: reltol must be positive, got %g", c.Reltol)
	}
	if c.Gmin < 0 {
		return fmt.Errorf("solver: gmin must not be negative, got %g", c.Gmin)
	}
	return nil
}

func (c Config) validateTransient() error {
	if err := c.validate(); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return fmt.Errorf("solver: dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("solver: duration must be positive, got %g", c.Duration)
	}
	return nil
}

// ParseMethod maps a configuration string to an integration method.
func ParseMethod(s string) (network.Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "be", "euler", "backward-euler":
		return network.BackwardEuler, nil
	case "trap", "trapezoidal":
		return network.Trapezoidal, nil
	}
	return 0, fmt.Errorf("solver: unknown method %q (use backward-euler or trapezoidal)", s)
}
