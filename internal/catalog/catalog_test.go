package catalog

import (
	"errors"
	"strings"
	"testing"

	"phynet/internal/blocks"
	"phynet/internal/electrical"
	"phynet/internal/network"
)

func TestDefaultCoversEveryDomain(t *testing.T) {
	reg := Default()
	seen := make(map[network.Domain]bool)
	for _, e := range reg.Entries() {
		seen[e.Domain] = true
	}
	for _, d := range []network.Domain{
		network.Electrical, network.Magnetic, network.Translational,
		network.Rotational, network.Thermal, network.Hydraulic,
	} {
		if !seen[d] {
			t.Errorf("no component registered for domain %s", d)
		}
	}
}

func TestLookupUnknownNamesAlternatives(t *testing.T) {
	reg := Default()
	_, err := reg.Lookup("electrical.memristor")
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if !strings.Contains(err.Error(), "electrical.resistor") {
		t.Errorf("error should list known types, got: %v", err)
	}
}

func TestBuildResistor(t *testing.T) {
	reg := Default()
	c, err := reg.Build("electrical.resistor", "r1", NewParams("r1", map[string]any{
		"resistance": 470.0,
	}))
	if err != nil {
		t.Fatal(err)
	}
	r, ok := c.(*electrical.Resistor)
	if !ok {
		t.Fatalf("expected *electrical.Resistor, got %T", c)
	}
	if r.Resistance != 470.0 {
		t.Errorf("resistance = %g, want 470", r.Resistance)
	}
	if r.Name() != "r1" {
		t.Errorf("name = %q, want r1", r.Name())
	}
}

func TestBuildMissingParameter(t *testing.T) {
	reg := Default()
	_, err := reg.Build("electrical.capacitor", "c1", NewParams("c1", nil))
	if err == nil || !strings.Contains(err.Error(), "capacitance") {
		t.Errorf("expected missing-parameter error naming capacitance, got %v", err)
	}
}

func TestBuildSourceAcceptsNumberAsConstant(t *testing.T) {
	reg := Default()
	c, err := reg.Build("electrical.voltage_source", "v1", NewParams("v1", map[string]any{
		"voltage": 5.0,
	}))
	if err != nil {
		t.Fatal(err)
	}
	src := c.(*electrical.VoltageSource)
	if got := src.Signal.Value(0.3); got != 5.0 {
		t.Errorf("constant source value = %g, want 5", got)
	}
}

func TestBuildSourceAcceptsWaveform(t *testing.T) {
	reg := Default()
	c, err := reg.Build("rotational.torque_source", "drive", NewParams("drive", map[string]any{
		"torque": blocks.Step{Height: 2, Start: 1},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if c.Name() != "drive" {
		t.Errorf("name = %q", c.Name())
	}
}

func TestParamsUnused(t *testing.T) {
	p := NewParams("r1", map[string]any{"resistance": 1.0, "resistence": 2.0})
	if _, err := p.Float("resistance"); err != nil {
		t.Fatal(err)
	}
	unused := p.Unused()
	if len(unused) != 1 || unused[0] != "resistence" {
		t.Errorf("unused = %v, want [resistence]", unused)
	}
}

func TestParamsTypeMismatch(t *testing.T) {
	p := NewParams("r1", map[string]any{"resistance": "high"})
	if _, err := p.Float("resistance"); err == nil {
		t.Error("expected a type error for a string resistance")
	}
}

func TestCCCSRequiresSensorName(t *testing.T) {
	reg := Default()
	_, err := reg.Build("electrical.cccs", "f1", NewParams("f1", map[string]any{
		"gain": 10.0,
	}))
	if err == nil || !strings.Contains(err.Error(), "sensor") {
		t.Errorf("expected error naming the sensor parameter, got %v", err)
	}
}
