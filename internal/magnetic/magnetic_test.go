package magnetic

import (
	"context"
	"errors"
	"math"
	"testing"

	"phynet/internal/blocks"
	"phynet/internal/electrical"
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

func TestReluctanceValidation(t *testing.T) {
	cases := []struct {
		name string
		comp network.Component
	}{
		{"zero reluctance", NewReluctance("r1", 0)},
		{"zero gap length", NewGeometricReluctance("g1", 0, 1e-4, 1)},
		{"zero area", NewGeometricReluctance("g1", 1e-3, 0, 1)},
		{"zero turns", NewConverter("c1", 0)},
		{"zero loss conductance", NewEddyCurrent("e1", 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			net := network.New("bad")
			net.Add(tc.comp)
			for _, p := range tc.comp.Ports() {
				net.Ground(tc.comp.Name() + "." + p.Name)
			}
			_, err := net.Flatten()
			if !errors.Is(err, network.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestReluctanceDivider(t *testing.T) {
	// Two equal reluctances split the source magnetomotive force.
	net := network.New("divider")
	net.AddAll(
		NewMMFSource("f1", blocks.Constant{K: 100}),
		NewReluctance("r1", 1e6),
		NewReluctance("r2", 1e6),
	)
	net.Connect("top", "f1.a", "r1.a")
	net.Connect("mid", "r1.b", "r2.a")
	net.Ground("f1.b", "r2.b")

	res := solve(t, net, solver.DefaultConfig(), false)
	mid, _ := res.Final("mid")
	if math.Abs(mid-50.0) > 1e-6 {
		t.Errorf("expected 50.0, got %f", mid)
	}

	// The source branch carries the loop flux, counted into the
	// source at a.
	flux, _ := res.Final("f1")
	if math.Abs(flux+100.0/2e6) > 1e-12 {
		t.Errorf("expected loop flux -5e-5, got %g", flux)
	}
}

func TestGeometricReluctance(t *testing.T) {
	// A 1mm air gap of 1cm^2: R = l / (mu0 * A).
	g := NewGeometricReluctance("gap", 1e-3, 1e-4, 1)
	want := 1e-3 / (mu0 * 1e-4)
	if math.Abs(g.Reluctance()-want) > 1e-6*want {
		t.Errorf("expected %g, got %g", want, g.Reluctance())
	}
}

func TestConverterActsAsInductor(t *testing.T) {
	// N turns on a core of reluctance Rm look like L = N^2/Rm from the
	// electrical side. With a series resistor the coil current follows
	// the familiar exponential rise with tau = L/R.
	net := network.New("coil")
	net.AddAll(
		electrical.NewVoltageSource("v1", blocks.Constant{K: 10}),
		electrical.NewResistor("r1", 10),
		NewConverter("conv1", 100),
		NewReluctance("core", 1e6),
	)
	net.Connect("vin", "v1.p", "r1.p")
	net.Connect("coil", "r1.n", "conv1.p")
	net.Connect("mtop", "conv1.mp", "core.a")
	net.Ground("v1.n", "conv1.n", "conv1.mn", "core.b")

	// tau = N^2/(Rm*R) = 1ms
	cfg := solver.DefaultConfig()
	cfg.Dt = 1e-5
	cfg.Duration = 1e-3

	res := solve(t, net, cfg, true)

	first, _ := res.At("conv1.i", 0)
	if math.Abs(first) > 1e-9 {
		t.Errorf("expected zero initial coil current, got %g", first)
	}
	got, _ := res.Final("conv1.i")
	want := 1.0 * (1 - math.Exp(-1))
	if math.Abs(got-want) > 0.02 {
		t.Errorf("expected coil current %f, got %f", want, got)
	}
}

func TestConverterAmpereBalance(t *testing.T) {
	// At steady state the coil is a short and the core mmf equals N*i.
	net := network.New("magnetizer")
	net.AddAll(
		electrical.NewVoltageSource("v1", blocks.Constant{K: 10}),
		electrical.NewResistor("r1", 10),
		NewConverter("conv1", 100),
		NewReluctance("core", 1e6),
	)
	net.Connect("vin", "v1.p", "r1.p")
	net.Connect("coil", "r1.n", "conv1.p")
	net.Connect("mtop", "conv1.mp", "core.a")
	net.Ground("v1.n", "conv1.n", "conv1.mn", "core.b")

	res := solve(t, net, solver.DefaultConfig(), false)
	cur, _ := res.Final("conv1.i")
	if math.Abs(cur-1.0) > 1e-6 {
		t.Errorf("expected 1A steady coil current, got %f", cur)
	}
	mmf, _ := res.Final("mtop")
	if math.Abs(mmf-100.0) > 1e-6 {
		t.Errorf("expected core mmf 100, got %f", mmf)
	}
}

func TestEddyCurrentDelaysFlux(t *testing.T) {
	// Series reluctance and eddy element under a step mmf: the flux
	// relaxes with tau = G/Rm.
	net := network.New("lossy core")
	net.AddAll(
		NewMMFSource("f1", blocks.Constant{K: 100}),
		NewReluctance("r1", 1000),
		NewEddyCurrent("e1", 1),
	)
	net.Connect("top", "f1.a", "r1.a")
	net.Connect("mid", "r1.b", "e1.a")
	net.Ground("f1.b", "e1.b")

	cfg := solver.DefaultConfig()
	cfg.Dt = 1e-5
	cfg.Duration = 1e-3 // one time constant

	res := solve(t, net, cfg, true)

	first, _ := res.At("e1", 0)
	if math.Abs(first) > 1e-12 {
		t.Errorf("expected zero initial flux, got %g", first)
	}
	got, _ := res.Final("e1")
	want := 0.1 * (1 - math.Exp(-1))
	if math.Abs(got-want) > 0.02*0.1 {
		t.Errorf("expected flux %f, got %f", want, got)
	}
}

func TestMagneticGroundPins(t *testing.T) {
	net := network.New("referenced")
	net.AddAll(
		NewFluxSource("f1", blocks.Constant{K: 1e-4}),
		NewReluctance("r1", 1e6),
		NewGround("gnd"),
	)
	net.Connect("top", "f1.a", "r1.a")
	net.Connect("ref", "f1.b", "r1.b", "gnd.port")

	res := solve(t, net, solver.DefaultConfig(), false)
	ref, _ := res.Final("ref")
	if math.Abs(ref) > 1e-9 {
		t.Errorf("expected reference pinned to 0, got %g", ref)
	}
	top, _ := res.Final("top")
	if math.Abs(top-100.0) > 1e-6 {
		t.Errorf("expected mmf 100, got %f", top)
	}
}
