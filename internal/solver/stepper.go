package solver

// Stepper advances a transient solution one step at a time. It exists for
// interactive views that interleave solving with rendering; batch runs
// should use Transient.
type Stepper struct {
	s    *Solver
	cfg  Config
	step int
}

// NewStepper solves the consistent initial state and returns a stepper
// positioned at t=0.
func NewStepper(s *Solver, cfg Config) (*Stepper, error) {
	if err := cfg.validateTransient(); err != nil {
		return nil, err
	}
	if _, err := s.begin(cfg); err != nil {
		return nil, &StepError{Step: 0, Time: 0, Wrapped: err}
	}
	return &Stepper{s: s, cfg: cfg}, nil
}

// Labels returns the unknown labels in solution order.
func (sp *Stepper) Labels() []string { return sp.s.sys.Labels() }

// Time returns the model time of the current solution.
func (sp *Stepper) Time() float64 { return sp.s.st.Time }

// Done reports whether the configured duration has been reached.
func (sp *Stepper) Done() bool {
	return sp.s.st.Time >= sp.cfg.Duration-sp.cfg.Dt/2
}

// Values returns a copy of the current solution vector.
func (sp *Stepper) Values() []float64 {
	out := make([]float64, sp.s.st.X.Len())
	for i := range out {
		out[i] = sp.s.st.X.AtVec(i)
	}
	return out
}

// Value returns one unknown of the current solution by label.
func (sp *Stepper) Value(label string) (float64, error) {
	for i, l := range sp.Labels() {
		if l == label {
			return sp.s.st.X.AtVec(i), nil
		}
	}
	return 0, ErrUnknownSignal
}

// Step advances one Dt. The zero value of the error chain distinguishes
// normal completion from solve failure: at the end of the duration Step
// keeps succeeding and simply integrates further.
func (sp *Stepper) Step() error {
	sp.step++
	if _, err := sp.s.step(sp.cfg); err != nil {
		return &StepError{Step: sp.step, Time: sp.s.st.Time, Wrapped: err}
	}
	return nil
}
