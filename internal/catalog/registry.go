// Package catalog maps component type names to constructors so models can
// be described by data: a netlist names a type, the catalog builds the
// component from typed parameters.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"phynet/internal/network"
)

// ErrUnknownType is returned when a lookup names a type the registry does
// not carry.
var ErrUnknownType = errors.New("catalog: unknown component type")

// Factory builds a component from its instance name and parameters.
type Factory func(name string, p *Params) (network.Component, error)

// Entry describes one registered component type.
type Entry struct {
	Type   string
	Domain network.Domain
	Brief  string
	New    Factory
}

// Registry holds component factories keyed by type name.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds an entry, replacing any previous entry of the same type.
func (r *Registry) Register(e Entry) {
	r.entries[e.Type] = e
}

// Lookup returns the factory for a type name. The error of a failed
// lookup lists the known types.
func (r *Registry) Lookup(typ string) (Entry, error) {
	e, ok := r.entries[typ]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownType, typ, strings.Join(r.typeNames(), ", "))
	}
	return e, nil
}

// Build constructs a named component of the given type.
func (r *Registry) Build(typ, name string, p *Params) (network.Component, error) {
	e, err := r.Lookup(typ)
	if err != nil {
		return nil, err
	}
	return e.New(name, p)
}

// Entries returns all registered entries sorted by domain, then type.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Domain != out[j].Domain {
			return out[i].Domain < out[j].Domain
		}
		return out[i].Type < out[j].Type
	})
	return out
}

func (r *Registry) typeNames() []string {
	names := make([]string, 0, len(r.entries))
	for t := range r.entries {
		names = append(names, t)
	}
	sort.Strings(names)
	return names
}
