package odesim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates NaN or Inf entered the state vector.
	ErrInvalidState = errors.New("odesim: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive step fell below the
	// configured minimum without meeting the tolerance.
	ErrStepTooSmall = errors.New("odesim: adaptive step below minimum")

	// ErrDimensionMismatch indicates the initial state does not match
	// the system dimension.
	ErrDimensionMismatch = errors.New("odesim: state dimension mismatch")

	// ErrUnknownIntegrator indicates an unrecognized integrator name.
	ErrUnknownIntegrator = errors.New("odesim: unknown integrator")
)

// StepError wraps an error with the step and time it occurred at.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("odesim: step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
