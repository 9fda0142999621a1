package effect

import (
	"fmt"

	"github.com/cwbudde/algo-viz/viz/params"
)

// Factory builds one effect instance seeded with the given parameter values.
type Factory func(initial params.Values) Effect

type registration struct {
	factory Factory
	defs    []params.Definition
}

// Registry maps kinds to their factories and parameter definitions. Lookup
// failures surface as ErrUnknownKind; the registry never substitutes a
// default variant.
type Registry struct {
	entries map[Kind]registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Kind]registration)}
}

// Register adds a factory and its parameter definitions for kind.
func (r *Registry) Register(kind Kind, factory Factory, defs []params.Definition) error {
	if factory == nil {
		return fmt.Errorf("effect: nil factory for %s", kind)
	}

	if _, exists := r.entries[kind]; exists {
		return fmt.Errorf("effect: duplicate registration for %s", kind)
	}

	r.entries[kind] = registration{factory: factory, defs: defs}

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(kind Kind, factory Factory, defs []params.Definition) {
	err := r.Register(kind, factory, defs)
	if err != nil {
		panic("effect registry: " + err.Error())
	}
}

// New constructs an instance of kind with the given initial values.
func (r *Registry) New(kind Kind, initial params.Values) (Effect, error) {
	entry, ok := r.entries[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	return entry.factory(initial), nil
}

// Definitions returns the parameter definitions for kind, or nil when
// unregistered.
func (r *Registry) Definitions(kind Kind) []params.Definition {
	return r.entries[kind].defs
}

// DefaultRegistry returns a registry with all five built-in variants.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(Waveform, newWaveform, waveformDefinitions())
	r.MustRegister(Particles, newParticles, particlesDefinitions())
	r.MustRegister(Geometric, newGeometric, geometricDefinitions())
	r.MustRegister(Gradient, newGradient, gradientDefinitions())
	r.MustRegister(ObjectScene, newObjectScene, objectSceneDefinitions())

	return r
}
