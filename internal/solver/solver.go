// Package solver computes operating points and transient responses of
// flattened networks. Each time point is solved by damped Newton
// iteration: components stamp the linearization of their laws around the
// current iterate, the resulting linear system is LU-factorized, and the
// update is damped whenever it grows.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"phynet/internal/network"
)

// Solver drives Newton iteration and transient stepping over one
// flattened system. A Solver is single-use per analysis; it owns the
// assembly context and the component state.
type Solver struct {
	sys  *network.System
	st   *network.Stamp
	lu   mat.LU
	xNew *mat.VecDense

	stateful []network.Stateful
}

// New returns a solver for the flattened system.
func New(sys *network.System) *Solver {
	return &Solver{
		sys:      sys,
		st:       network.NewStamp(sys.Nodes, sys.Branches),
		xNew:     mat.NewVecDense(sys.Size(), nil),
		stateful: sys.Stateful(),
	}
}

// System returns the flattened system the solver operates on.
func (s *Solver) System() *network.System { return s.sys }

// iterate runs damped Newton at the stamp's current time and mode. It
// returns the iteration count used.
func (s *Solver) iterate(cfg Config) (int, error) {
	damping := 1.0
	lastNorm := math.Inf(1)

	for iter := 1; iter <= cfg.MaxIters; iter++ {
		s.st.Clear()
		for i := 0; i < s.sys.Nodes; i++ {
			s.st.Add(network.NodeID(i), network.NodeID(i), cfg.Gmin)
		}
		for _, c := range s.sys.Components {
			c.Stamp(s.st)
		}

		s.lu.Factorize(s.st.A)
		if err := s.lu.SolveVecTo(s.xNew, false, s.st.Z); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) {
				return iter, fmt.Errorf("%w: %v", ErrSingular, err)
			}
			if math.IsInf(float64(cond), 0) || math.IsNaN(float64(cond)) {
				return iter, ErrSingular
			}
			// Near-singular but factorizable: accept the solve and let
			// the gmin leak pull the iteration through.
		}

		converged := true
		maxDelta := 0.0
		for i := 0; i < s.st.Size(); i++ {
			d := math.Abs(s.xNew.AtVec(i) - s.st.X.AtVec(i))
			if d > cfg.Abstol+cfg.Reltol*math.Abs(s.xNew.AtVec(i)) {
				converged = false
			}
			if d > maxDelta {
				maxDelta = d
			}
		}
		if converged {
			s.st.X.CopyVec(s.xNew)
			return iter, nil
		}

		// Halve the relaxation when the update grows, recover it slowly
		// once the iteration settles again.
		if maxDelta > lastNorm && damping > cfg.MinDamping {
			damping *= 0.5
		} else if damping < 1 {
			damping = math.Min(1, damping*2)
		}
		lastNorm = maxDelta

		for i := 0; i < s.st.Size(); i++ {
			x := s.st.X.AtVec(i)
			s.st.X.SetVec(i, x+damping*(s.xNew.AtVec(i)-x))
		}
	}
	return cfg.MaxIters, ErrNoConvergence
}

// OperatingPoint solves the steady state of the network: storage elements
// stop integrating and sources hold their t=0 value. The result carries a
// single sample at t=0.
func (s *Solver) OperatingPoint(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.st.Mode = network.OperatingPoint
	s.st.Method = cfg.Method
	s.st.Time = 0
	s.st.Dt = 0
	s.st.Gmin = cfg.Gmin
	s.st.X.Zero()
	s.st.Prev.Zero()
	for _, c := range s.stateful {
		c.Reset()
	}

	res := newResult(s.sys)
	iters, err := s.iterate(cfg)
	res.Stats.NewtonIters = iters
	if err != nil {
		return nil, &StepError{Step: 0, Time: 0, Wrapped: err}
	}
	if cfg.ValidateState && !validVec(s.st.X) {
		return nil, &StepError{Step: 0, Time: 0, Wrapped: ErrInvalidState}
	}
	res.append(0, s.st.X)
	return res, nil
}

// begin resets component state and solves a consistent initial point at
// t=0 with storage elements pinned to their initial values.
func (s *Solver) begin(cfg Config) (int, error) {
	s.st.Mode = network.InitialConditions
	s.st.Method = cfg.Method
	s.st.Time = 0
	s.st.Dt = cfg.Dt
	s.st.Gmin = cfg.Gmin
	s.st.X.Zero()
	s.st.Prev.Zero()
	for _, c := range s.stateful {
		c.Reset()
	}

	iters, err := s.iterate(cfg)
	if err != nil {
		return iters, err
	}
	if cfg.ValidateState && !validVec(s.st.X) {
		return iters, ErrInvalidState
	}
	for _, c := range s.stateful {
		c.Commit(s.st)
	}
	s.st.Prev.CopyVec(s.st.X)
	s.st.Mode = network.Transient
	return iters, nil
}

// step advances the transient solution by one Dt.
func (s *Solver) step(cfg Config) (int, error) {
	s.st.Time += cfg.Dt
	iters, err := s.iterate(cfg)
	if err != nil {
		return iters, err
	}
	if cfg.ValidateState && !validVec(s.st.X) {
		return iters, ErrInvalidState
	}
	for _, c := range s.stateful {
		c.Commit(s.st)
	}
	s.st.Prev.CopyVec(s.st.X)
	return iters, nil
}

// Transient integrates the network over cfg.Duration with fixed steps. The
// first sample is the consistent initial state at t=0; on failure the
// samples accepted so far are returned alongside the error.
func (s *Solver) Transient(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validateTransient(); err != nil {
		return nil, err
	}

	res := newResult(s.sys)

	iters, err := s.begin(cfg)
	res.Stats.NewtonIters += iters
	if err != nil {
		return res, &StepError{Step: 0, Time: 0, Wrapped: err}
	}
	res.append(0, s.st.X)

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		iters, err := s.step(cfg)
		res.Stats.NewtonIters += iters
		if err != nil {
			return res, &StepError{Step: i, Time: s.st.Time, Wrapped: err}
		}
		res.append(s.st.Time, s.st.X)
		res.Stats.Steps++
	}
	return res, nil
}

func validVec(v *mat.VecDense) bool {
	for i := 0; i < v.Len(); i++ {
		f := v.AtVec(i)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
