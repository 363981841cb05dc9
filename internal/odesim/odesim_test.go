package odesim

import (
	"context"
	"errors"
	"math"
	"testing"
)

// oscillator is the unit harmonic oscillator x'' = -x.
type oscillator struct{}

func (oscillator) Derive(x State, t float64) State { return State{x[1], -x[0]} }
func (oscillator) Dim() int                        { return 2 }
func (oscillator) Energy(x State) float64          { return 0.5 * (x[0]*x[0] + x[1]*x[1]) }

// blowup produces NaN after the first call.
type blowup struct{ calls int }

func (b *blowup) Derive(x State, t float64) State {
	b.calls++
	if b.calls > 1 {
		return State{math.NaN()}
	}
	return State{1}
}

func (b *blowup) Dim() int { return 1 }

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()
	x := State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(oscillator{}, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestEulerConvergesLinearly(t *testing.T) {
	run := func(dt float64) float64 {
		integ := NewEuler()
		x := State{1.0, 0.0}
		steps := int(1.0 / dt)
		for i := 0; i < steps; i++ {
			x = integ.Step(oscillator{}, x, float64(i)*dt, dt)
		}
		return math.Abs(x[0] - math.Cos(1.0))
	}

	coarse := run(0.01)
	fine := run(0.001)
	ratio := coarse / fine
	if ratio < 5 || ratio > 20 {
		t.Errorf("expected roughly tenfold error reduction, got factor %.2f", ratio)
	}
}

func TestRK45AdaptiveTracksOscillator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Adaptive = true
	cfg.Duration = 10
	cfg.Tolerance = 1e-7

	runner := NewRunner(oscillator{}, NewRK45())
	res, err := runner.Run(context.Background(), State{1, 0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	finalT := res.Times[len(res.Times)-1]
	if math.Abs(finalT-10.0) > 1e-9 {
		t.Errorf("expected the run to land on the duration, got t=%v", finalT)
	}
	got := res.Final()
	if math.Abs(got[0]-math.Cos(10)) > 1e-3 {
		t.Errorf("expected %.6f, got %.6f", math.Cos(10), got[0])
	}
}

func TestVerletConservesEnergy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0.01
	cfg.Duration = 100

	verlet, err := NewRunner(oscillator{}, NewVerlet()).Run(context.Background(), State{1, 0}, cfg)
	if err != nil {
		t.Fatalf("verlet run failed: %v", err)
	}
	euler, err := NewRunner(oscillator{}, NewEuler()).Run(context.Background(), State{1, 0}, cfg)
	if err != nil {
		t.Fatalf("euler run failed: %v", err)
	}

	if verlet.EnergyDrift > 1e-3 {
		t.Errorf("verlet drift too large: %g", verlet.EnergyDrift)
	}
	if euler.EnergyDrift < 10*verlet.EnergyDrift {
		t.Errorf("euler should drift far more than verlet: %g vs %g", euler.EnergyDrift, verlet.EnergyDrift)
	}
}

func TestLeapfrogMatchesVerlet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0.01
	cfg.Duration = 10

	res, err := NewRunner(oscillator{}, NewLeapfrog()).Run(context.Background(), State{1, 0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.EnergyDrift > 1e-3 {
		t.Errorf("leapfrog drift too large: %g", res.EnergyDrift)
	}
}

func TestRunnerTrajectoryBookkeeping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 1

	res, err := NewRunner(oscillator{}, NewRK4()).Run(context.Background(), State{1, 0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", res.StepsTaken)
	}
	if len(res.States) != 11 || len(res.Times) != 11 {
		t.Errorf("expected 11 samples, got %d states and %d times", len(res.States), len(res.Times))
	}
	for i := 1; i < len(res.Times); i++ {
		if res.Times[i] <= res.Times[i-1] {
			t.Fatalf("times not increasing at %d", i)
		}
	}
}

func TestRunnerStepCountTruncatingPairs(t *testing.T) {
	// Quotients like 0.7/1e-3 land just under the integer step count in
	// floats; the run must not stop one step short.
	cases := []struct {
		dt, duration float64
		steps        int
	}{
		{1e-3, 0.7, 700},
		{1e-5, 5e-3, 500},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		cfg.Dt = tc.dt
		cfg.Duration = tc.duration

		res, err := NewRunner(oscillator{}, NewEuler()).Run(context.Background(), State{1, 0}, cfg)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if res.StepsTaken != tc.steps {
			t.Errorf("duration %g, dt %g: expected %d steps, got %d", tc.duration, tc.dt, tc.steps, res.StepsTaken)
		}
	}
}

func TestRunnerDimensionMismatch(t *testing.T) {
	_, err := NewRunner(oscillator{}, NewRK4()).Run(context.Background(), State{1}, DefaultConfig())
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestRunnerInvalidStateStopsRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 1

	_, err := NewRunner(&blowup{}, NewEuler()).Run(context.Background(), State{0}, cfg)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	var se *StepError
	if !errors.As(err, &se) {
		t.Fatal("expected a StepError wrapper")
	}
}

func TestRunnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig()
	res, err := NewRunner(oscillator{}, NewRK4()).Run(ctx, State{1, 0}, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if res == nil || len(res.States) == 0 {
		t.Error("expected the partial trajectory back")
	}
}

func TestAdaptiveFallbackStepTooSmall(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Adaptive = true
	cfg.Tolerance = 1e-300
	cfg.Dt = 0.01
	cfg.MinDt = 1e-3

	_, err := NewRunner(oscillator{}, NewEuler()).Run(context.Background(), State{1, 0}, cfg)
	if !errors.Is(err, ErrStepTooSmall) {
		t.Errorf("expected ErrStepTooSmall, got %v", err)
	}
}

func TestRunWithCallbackStopsEarly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 10

	calls := 0
	err := NewRunner(oscillator{}, NewRK4()).RunWithCallback(context.Background(), State{1, 0}, cfg,
		func(x State, t float64) bool {
			calls++
			return calls < 5
		})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if calls != 5 {
		t.Errorf("expected 5 callbacks, got %d", calls)
	}
}

func TestParseIntegrator(t *testing.T) {
	for _, name := range []string{"euler", "rk4", "rk45", "verlet", "leapfrog", "RK45", ""} {
		if _, err := ParseIntegrator(name); err != nil {
			t.Errorf("ParseIntegrator(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseIntegrator("simpson"); !errors.Is(err, ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}

func TestResultAt(t *testing.T) {
	res := &Result{
		States: []State{{0}, {1}, {2}},
		Times:  []float64{0, 1, 2},
	}
	if got := res.At(1.2); got[0] != 1 {
		t.Errorf("expected nearest sample 1, got %v", got[0])
	}
}
