package config

import (
	"path/filepath"
	"testing"

	"phynet/internal/network"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Method != "backward-euler" {
		t.Errorf("expected backward-euler default, got %s", cfg.Method)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("accurate")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Method != "trapezoidal" {
		t.Errorf("expected trapezoidal, got %s", cfg.Method)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	a := GetPreset("fast")
	a.Dt = 42
	b := GetPreset("fast")
	if b.Dt == 42 {
		t.Error("GetPreset must hand out copies")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected builtin presets")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Dt = 5e-6
	cfg.Method = "trapezoidal"
	cfg.Probes = []string{"out", "coil"}

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Dt != cfg.Dt {
		t.Errorf("dt = %g, want %g", loaded.Dt, cfg.Dt)
	}
	if loaded.Method != cfg.Method {
		t.Errorf("method = %s, want %s", loaded.Method, cfg.Method)
	}
	if len(loaded.Probes) != 2 || loaded.Probes[0] != "out" {
		t.Errorf("probes = %v", loaded.Probes)
	}
}

func TestSolverConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = "trapezoidal"
	cfg.Dt = 1e-4

	sc, err := cfg.SolverConfig()
	if err != nil {
		t.Fatal(err)
	}
	if sc.Method != network.Trapezoidal {
		t.Errorf("method = %v, want trapezoidal", sc.Method)
	}
	if sc.Dt != 1e-4 {
		t.Errorf("dt = %g", sc.Dt)
	}
}

func TestSolverConfigBadMethod(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = "rk4"
	if _, err := cfg.SolverConfig(); err == nil {
		t.Error("expected an error for an unknown method")
	}
}
