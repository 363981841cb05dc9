// Package config reads and writes run configuration files. Values missing
// from a file keep their defaults; CLI flags override file values in cmd.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"phynet/internal/solver"
)

const (
	DefaultDt       = 1e-3
	DefaultDuration = 1.0
	DefaultMethod   = "backward-euler"
	DefaultAbstol   = 1e-9
	DefaultReltol   = 1e-6
	DefaultGmin     = 1e-12
	DefaultMaxIters = 100
)

type Config struct {
	Dt       float64  `yaml:"dt"`
	Duration float64  `yaml:"duration"`
	Method   string   `yaml:"method"`
	MaxIters int      `yaml:"max_iters"`
	Abstol   float64  `yaml:"abstol"`
	Reltol   float64  `yaml:"reltol"`
	Gmin     float64  `yaml:"gmin"`
	DataDir  string   `yaml:"data_dir"`
	Probes   []string `yaml:"probes"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Method:   DefaultMethod,
		MaxIters: DefaultMaxIters,
		Abstol:   DefaultAbstol,
		Reltol:   DefaultReltol,
		Gmin:     DefaultGmin,
		DataDir:  ".phynet",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SolverConfig converts the file values to solver parameters.
func (c *Config) SolverConfig() (solver.Config, error) {
	method, err := solver.ParseMethod(c.Method)
	if err != nil {
		return solver.Config{}, fmt.Errorf("config: %w", err)
	}
	sc := solver.DefaultConfig()
	sc.Dt = c.Dt
	sc.Duration = c.Duration
	sc.Method = method
	if c.MaxIters > 0 {
		sc.MaxIters = c.MaxIters
	}
	if c.Abstol > 0 {
		sc.Abstol = c.Abstol
	}
	if c.Reltol > 0 {
		sc.Reltol = c.Reltol
	}
	if c.Gmin >= 0 {
		sc.Gmin = c.Gmin
	}
	return sc, nil
}
