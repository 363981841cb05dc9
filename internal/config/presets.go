package config

// Presets are named solver configurations for common kinds of networks.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"fast": {
		Dt: 1e-3, Duration: 1.0, Method: "backward-euler",
		MaxIters: 50, Abstol: 1e-6, Reltol: 1e-4, Gmin: 1e-12,
	},
	"accurate": {
		Dt: 1e-5, Duration: 1.0, Method: "trapezoidal",
		MaxIters: 200, Abstol: 1e-12, Reltol: 1e-9, Gmin: 1e-12,
	},
	"stiff": {
		Dt: 1e-4, Duration: 1.0, Method: "backward-euler",
		MaxIters: 500, Abstol: 1e-9, Reltol: 1e-6, Gmin: 1e-9,
	},
	"oscillatory": {
		Dt: 1e-5, Duration: 0.1, Method: "trapezoidal",
		MaxIters: 100, Abstol: 1e-9, Reltol: 1e-6, Gmin: 1e-12,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
