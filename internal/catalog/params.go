package catalog

import (
	"fmt"
	"sort"

	"phynet/internal/blocks"
)

// Params carries the free-form attributes of a component declaration,
// already converted to Go values: float64, bool, string, or a
// blocks.Waveform built from a signal object. Getters record which keys
// were consumed so the loader can reject leftovers.
type Params struct {
	component string
	values    map[string]any
	used      map[string]bool
}

// NewParams wraps converted attribute values for the named component.
func NewParams(component string, values map[string]any) *Params {
	return &Params{component: component, values: values, used: make(map[string]bool)}
}

func (p *Params) errf(format string, args ...any) error {
	return fmt.Errorf("component %q: %s", p.component, fmt.Sprintf(format, args...))
}

// Float returns a required numeric parameter.
func (p *Params) Float(key string) (float64, error) {
	v, ok := p.values[key]
	if !ok {
		return 0, p.errf("missing required parameter %q", key)
	}
	p.used[key] = true
	f, ok := v.(float64)
	if !ok {
		return 0, p.errf("parameter %q must be a number, got %T", key, v)
	}
	return f, nil
}

// FloatOr returns an optional numeric parameter, or def when absent.
func (p *Params) FloatOr(key string, def float64) (float64, error) {
	if _, ok := p.values[key]; !ok {
		return def, nil
	}
	return p.Float(key)
}

// String returns a required string parameter.
func (p *Params) String(key string) (string, error) {
	v, ok := p.values[key]
	if !ok {
		return "", p.errf("missing required parameter %q", key)
	}
	p.used[key] = true
	s, ok := v.(string)
	if !ok {
		return "", p.errf("parameter %q must be a string, got %T", key, v)
	}
	return s, nil
}

// StringOr returns an optional string parameter, or def when absent.
func (p *Params) StringOr(key, def string) (string, error) {
	if _, ok := p.values[key]; !ok {
		return def, nil
	}
	return p.String(key)
}

// Waveform returns a required signal parameter. A plain number is
// accepted as a constant waveform.
func (p *Params) Waveform(key string) (blocks.Waveform, error) {
	v, ok := p.values[key]
	if !ok {
		return nil, p.errf("missing required signal %q", key)
	}
	p.used[key] = true
	switch w := v.(type) {
	case blocks.Waveform:
		return w, nil
	case float64:
		return blocks.Constant{K: w}, nil
	}
	return nil, p.errf("parameter %q must be a signal or a number, got %T", key, v)
}

// WaveformOr returns an optional signal parameter, defaulting to a
// constant.
func (p *Params) WaveformOr(key string, def float64) (blocks.Waveform, error) {
	if _, ok := p.values[key]; !ok {
		return blocks.Constant{K: def}, nil
	}
	return p.Waveform(key)
}

// Unused returns the keys no getter consumed, sorted. The loader turns a
// non-empty result into a diagnostic so typos do not pass silently.
func (p *Params) Unused() []string {
	var out []string
	for k := range p.values {
		if !p.used[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
