package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrNoConvergence is returned when Newton iteration exhausts its
	// budget without the update falling below tolerance.
	ErrNoConvergence = errors.New("solver: newton iteration failed to converge")

	// ErrSingular is returned when the system matrix cannot be
	// factorized, usually a floating subnetwork or a source loop.
	ErrSingular = errors.New("solver: system matrix is singular")

	// ErrInvalidState is returned when a solution contains NaN or Inf.
	ErrInvalidState = errors.New("solver: solution contains NaN or Inf")

	// ErrUnknownSignal is returned when a result lookup names a label
	// that no unknown carries.
	ErrUnknownSignal = errors.New("solver: unknown signal label")
)

// StepError wraps a failure with the step index and model time it
// occurred at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
