package netlist

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"phynet/internal/blocks"
)

// attrValues evaluates every attribute of a body into plain Go values:
// numbers become float64, strings and bools pass through, and objects are
// interpreted as signal descriptions.
func attrValues(body hcl.Body) (map[string]any, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s", diags.Error())
	}

	values := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q: %s", name, diags.Error())
		}
		v, err := fromCty(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		values[name] = v
	}
	return values, nil
}

func fromCty(val cty.Value) (any, error) {
	ty := val.Type()
	switch {
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, nil
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty.IsObjectType() || ty.IsMapType():
		return waveformFromCty(val.AsValueMap())
	}
	return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}

// waveformFromCty builds a source waveform from an object value. The
// "shape" attribute selects the waveform, the remaining attributes fill
// its fields.
func waveformFromCty(m map[string]cty.Value) (blocks.Waveform, error) {
	shapeVal, ok := m["shape"]
	if !ok || shapeVal.Type() != cty.String {
		return nil, fmt.Errorf(`signal object needs a string "shape" attribute`)
	}
	shape := shapeVal.AsString()

	get := func(key string) float64 {
		v, ok := m[key]
		if !ok || v.Type() != cty.Number {
			return 0
		}
		f, _ := v.AsBigFloat().Float64()
		return f
	}

	known := func(keys ...string) error {
		allowed := map[string]bool{"shape": true}
		for _, k := range keys {
			allowed[k] = true
		}
		for k := range m {
			if !allowed[k] {
				return fmt.Errorf("signal %q: unknown attribute %q", shape, k)
			}
		}
		return nil
	}

	switch shape {
	case "constant":
		if err := known("value"); err != nil {
			return nil, err
		}
		return blocks.Constant{K: get("value")}, nil
	case "step":
		if err := known("height", "offset", "start"); err != nil {
			return nil, err
		}
		return blocks.Step{Height: get("height"), Offset: get("offset"), Start: get("start")}, nil
	case "ramp":
		if err := known("height", "duration", "offset", "start"); err != nil {
			return nil, err
		}
		return blocks.Ramp{Height: get("height"), Duration: get("duration"), Offset: get("offset"), Start: get("start")}, nil
	case "sine":
		if err := known("amplitude", "frequency", "phase", "offset", "start"); err != nil {
			return nil, err
		}
		return blocks.Sine{Amplitude: get("amplitude"), Frequency: get("frequency"), Phase: get("phase"), Offset: get("offset"), Start: get("start")}, nil
	case "cosine":
		if err := known("amplitude", "frequency", "phase", "offset", "start"); err != nil {
			return nil, err
		}
		return blocks.Cosine{Amplitude: get("amplitude"), Frequency: get("frequency"), Phase: get("phase"), Offset: get("offset"), Start: get("start")}, nil
	case "square":
		if err := known("amplitude", "frequency", "duty", "offset", "start"); err != nil {
			return nil, err
		}
		return blocks.Square{Amplitude: get("amplitude"), Frequency: get("frequency"), Duty: get("duty"), Offset: get("offset"), Start: get("start")}, nil
	case "triangular":
		if err := known("amplitude", "frequency", "offset", "start"); err != nil {
			return nil, err
		}
		return blocks.Triangular{Amplitude: get("amplitude"), Frequency: get("frequency"), Offset: get("offset"), Start: get("start")}, nil
	case "pulse":
		if err := known("amplitude", "width", "period", "offset", "start"); err != nil {
			return nil, err
		}
		return blocks.Pulse{Amplitude: get("amplitude"), Width: get("width"), Period: get("period"), Offset: get("offset"), Start: get("start")}, nil
	case "exp_sine":
		if err := known("amplitude", "frequency", "damping", "phase", "offset", "start"); err != nil {
			return nil, err
		}
		return blocks.ExpSine{Amplitude: get("amplitude"), Frequency: get("frequency"), Damping: get("damping"), Phase: get("phase"), Offset: get("offset"), Start: get("start")}, nil
	}
	return nil, fmt.Errorf("unknown signal shape %q", shape)
}
