package rotational

import (
	"context"
	"errors"
	"math"
	"testing"

	"phynet/internal/blocks"
	"phynet/internal/network"
	"phynet/internal/solver"
)

func solve(t *testing.T, net *network.Network, cfg solver.Config, transient bool) *solver.Result {
	t.Helper()
	sys, err := net.Flatten()
	if err != nil {
		t.Fatalf("flatten failed: %v", err)
	}
	s := solver.New(sys)
	var res *solver.Result
	if transient {
		res, err = s.Transient(context.Background(), cfg)
	} else {
		res, err = s.OperatingPoint(context.Background(), cfg)
	}
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	return res
}

func TestInertiaValidation(t *testing.T) {
	net := network.New("bad")
	net.Add(NewInertia("j1", -1))
	net.Ground("j1.flange")
	_, err := net.Flatten()
	if !errors.Is(err, network.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestGearValidation(t *testing.T) {
	net := network.New("bad")
	net.Add(NewIdealGear("g1", 0))
	net.Ground("g1.a", "g1.b")
	_, err := net.Flatten()
	if !errors.Is(err, network.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestInertiaDamperReachesSteadySpeed(t *testing.T) {
	// Constant torque against viscous drag: omega approaches tau/d
	// with mechanical time constant J/d.
	net := network.New("rotor")
	net.AddAll(
		NewInertia("j1", 1),
		NewDamper("d1", 0.5),
		NewTorqueSource("t1", blocks.Constant{K: 1}),
	)
	net.Connect("shaft", "j1.flange", "d1.p", "t1.p")
	net.Ground("d1.n", "t1.n")

	cfg := solver.DefaultConfig()
	cfg.Dt = 1e-3
	cfg.Duration = 20 // ten time constants

	res := solve(t, net, cfg, true)
	got, _ := res.Final("shaft")
	if math.Abs(got-2.0) > 0.01 {
		t.Errorf("expected steady angular velocity 2.0, got %f", got)
	}

	// Halfway through one time constant the exponential is visible.
	tau := 1.0 / 0.5
	early, _ := res.At("shaft", tau)
	want := 2.0 * (1 - math.Exp(-1))
	if math.Abs(early-want) > 0.02 {
		t.Errorf("expected %f after one time constant, got %f", want, early)
	}
}

func TestIdealGearSpeedAndTorque(t *testing.T) {
	// Torque tau0 on the fast side, damper on the slow side. With
	// w_a = Ratio*w_b the balance gives w_b = Ratio*tau0/d.
	ratio := 3.0
	net := network.New("geartrain")
	net.AddAll(
		NewTorqueSource("t1", blocks.Constant{K: 1}),
		NewIdealGear("g1", ratio),
		NewDamper("d1", 0.1),
	)
	net.Connect("fast", "t1.p", "g1.a")
	net.Connect("slow", "g1.b", "d1.p")
	net.Ground("t1.n", "d1.n")

	res := solve(t, net, solver.DefaultConfig(), false)
	slow, _ := res.Final("slow")
	fast, _ := res.Final("fast")
	if math.Abs(slow-ratio*1.0/0.1) > 1e-6 {
		t.Errorf("expected slow side %f, got %f", ratio/0.1, slow)
	}
	if math.Abs(fast-ratio*slow) > 1e-6 {
		t.Errorf("expected kinematic constraint w_a = %f, got %f", ratio*slow, fast)
	}
}

func TestTorsionSpringTracksTwist(t *testing.T) {
	// Constant speed winding a torsion spring: torque ramps at k*w.
	net := network.New("winder")
	net.AddAll(
		NewSpeedSource("w1", blocks.Constant{K: 2}),
		NewTorsionSpring("ts1", 10),
	)
	net.Connect("shaft", "w1.p", "ts1.p")
	net.Ground("w1.n", "ts1.n")

	cfg := solver.DefaultConfig()
	cfg.Dt = 1e-3
	cfg.Duration = 1

	res := solve(t, net, cfg, true)
	trq, _ := res.Final("ts1")
	// After 1s at 2 rad/s the twist is 2 rad, torque 20 N.m.
	if math.Abs(trq-20.0) > 0.1 {
		t.Errorf("expected wound torque 20.0, got %f", trq)
	}
}

func TestBearingFrictionStopsRotor(t *testing.T) {
	j := NewInertia("j1", 1)
	j.InitialVelocity = 1

	net := network.New("spindown")
	net.AddAll(j, NewBearingFriction("b1", 0.5))
	net.Connect("shaft", "j1.flange", "b1.flange")

	cfg := solver.DefaultConfig()
	cfg.Dt = 1e-3
	cfg.Duration = 3 // Coulomb decel stops it at t=2

	res := solve(t, net, cfg, true)
	got, _ := res.Final("shaft")
	if math.Abs(got) > 0.01 {
		t.Errorf("expected rotor stopped, got %g", got)
	}
	midway, _ := res.At("shaft", 1.0)
	if math.Abs(midway-0.5) > 0.02 {
		t.Errorf("expected linear spindown through 0.5, got %f", midway)
	}
}

func TestSpeedSensorReadsShaft(t *testing.T) {
	net := network.New("tacho")
	net.AddAll(
		NewSpeedSource("w1", blocks.Constant{K: 7}),
		NewDamper("d1", 1),
		NewSpeedSensor("ss1"),
	)
	net.Connect("shaft", "w1.p", "d1.p", "ss1.flange")
	net.Ground("w1.n", "d1.n")

	res := solve(t, net, solver.DefaultConfig(), false)
	got, _ := res.Final("shaft")
	if math.Abs(got-7.0) > 1e-9 {
		t.Errorf("expected 7.0, got %f", got)
	}
}
