// Package netlist loads HCL model descriptions: component blocks are
// instantiated through the catalog, connect and ground blocks wire the
// network, and analysis blocks request solves. The result is a ready
// network plus the analyses the file asks for.
package netlist

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"phynet/internal/catalog"
	"phynet/internal/ctxlog"
	"phynet/internal/network"
	"phynet/internal/solver"
)

// Analysis is one solve requested by a model file.
type Analysis struct {
	Kind   string // "op" or "transient"
	Config solver.Config
}

// Model is a loaded netlist: the wired network, the requested analyses
// and the signals the file asks to probe.
type Model struct {
	Name     string
	Network  *network.Network
	Analyses []Analysis
	Probes   []string
}

type fileRoot struct {
	Model      *modelBlock      `hcl:"model,block"`
	Components []componentBlock `hcl:"component,block"`
	Connects   []connectBlock   `hcl:"connect,block"`
	Grounds    []groundBlock    `hcl:"ground,block"`
	Analyses   []analysisBlock  `hcl:"analysis,block"`
	Probes     []probeBlock     `hcl:"probe,block"`
}

type modelBlock struct {
	Name string `hcl:"name,label"`
}

type componentBlock struct {
	Type string   `hcl:"type,label"`
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

type connectBlock struct {
	Label string   `hcl:"label,label"`
	Pins  []string `hcl:"pins"`
}

type groundBlock struct {
	Pins []string `hcl:"pins"`
}

type analysisBlock struct {
	Kind string   `hcl:"kind,label"`
	Body hcl.Body `hcl:",remain"`
}

type probeBlock struct {
	Signals []string `hcl:"signals"`
}

// Load parses one model file and builds its network from the registry.
// Analysis configs start from solver.DefaultConfig with the file's
// attributes applied over it.
func Load(ctx context.Context, path string, reg *catalog.Registry) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("loading model", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("netlist: parse %s: %s", path, diags.Error())
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("netlist: decode %s: %s", path, diags.Error())
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if root.Model != nil {
		name = root.Model.Name
	}

	net := network.New(name)
	for _, cb := range root.Components {
		values, err := attrValues(cb.Body)
		if err != nil {
			return nil, fmt.Errorf("netlist: component %q: %w", cb.Name, err)
		}
		params := catalog.NewParams(cb.Name, values)
		c, err := reg.Build(cb.Type, cb.Name, params)
		if err != nil {
			return nil, fmt.Errorf("netlist: %w", err)
		}
		if leftover := params.Unused(); len(leftover) > 0 {
			return nil, fmt.Errorf("netlist: component %q: unknown parameters %s", cb.Name, strings.Join(leftover, ", "))
		}
		if err := net.Add(c); err != nil {
			return nil, fmt.Errorf("netlist: %w", err)
		}
	}

	for _, con := range root.Connects {
		if err := net.Connect(con.Label, con.Pins...); err != nil {
			return nil, fmt.Errorf("netlist: connect %q: %w", con.Label, err)
		}
	}
	for _, g := range root.Grounds {
		if err := net.Ground(g.Pins...); err != nil {
			return nil, fmt.Errorf("netlist: ground: %w", err)
		}
	}

	model := &Model{Name: name, Network: net}
	for _, ab := range root.Analyses {
		a, err := decodeAnalysis(ab)
		if err != nil {
			return nil, err
		}
		model.Analyses = append(model.Analyses, a)
	}
	for _, pb := range root.Probes {
		model.Probes = append(model.Probes, pb.Signals...)
	}

	logger.Debug("model loaded", "model", name,
		"components", len(root.Components), "analyses", len(model.Analyses))
	return model, nil
}

func decodeAnalysis(ab analysisBlock) (Analysis, error) {
	switch ab.Kind {
	case "op", "transient":
	default:
		return Analysis{}, fmt.Errorf("netlist: unknown analysis kind %q (use op or transient)", ab.Kind)
	}

	values, err := attrValues(ab.Body)
	if err != nil {
		return Analysis{}, fmt.Errorf("netlist: analysis %q: %w", ab.Kind, err)
	}

	cfg := solver.DefaultConfig()
	for key, v := range values {
		switch key {
		case "dt":
			if cfg.Dt, err = asFloat(key, v); err != nil {
				return Analysis{}, err
			}
		case "duration":
			if cfg.Duration, err = asFloat(key, v); err != nil {
				return Analysis{}, err
			}
		case "method":
			s, ok := v.(string)
			if !ok {
				return Analysis{}, fmt.Errorf("netlist: analysis method must be a string, got %T", v)
			}
			if cfg.Method, err = solver.ParseMethod(s); err != nil {
				return Analysis{}, err
			}
		case "max_iters":
			f, err := asFloat(key, v)
			if err != nil {
				return Analysis{}, err
			}
			cfg.MaxIters = int(f)
		case "abstol":
			if cfg.Abstol, err = asFloat(key, v); err != nil {
				return Analysis{}, err
			}
		case "reltol":
			if cfg.Reltol, err = asFloat(key, v); err != nil {
				return Analysis{}, err
			}
		case "gmin":
			if cfg.Gmin, err = asFloat(key, v); err != nil {
				return Analysis{}, err
			}
		default:
			return Analysis{}, fmt.Errorf("netlist: analysis %q: unknown attribute %q", ab.Kind, key)
		}
	}
	return Analysis{Kind: ab.Kind, Config: cfg}, nil
}

func asFloat(key string, v any) (float64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("netlist: attribute %q must be a number, got %T", key, v)
	}
	return f, nil
}
