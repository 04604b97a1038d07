// Package body owns the collection of immersed bodies in a run.
package body

import (
	"fmt"

	"github.com/san-kum/flapsim/internal/kinematics"
)

// Registry holds the bodies participating in the simulation in insertion
// order. Bodies are independent at the kinematics layer; order matters only
// for deterministic traversal. There is no removal: bodies live for the
// process lifetime.
type Registry struct {
	names  []string
	models map[string]kinematics.Model
}

func NewRegistry() *Registry {
	return &Registry{models: make(map[string]kinematics.Model)}
}

// Register appends a body. Names must be unique.
func (r *Registry) Register(m kinematics.Model) error {
	name := m.Name()
	if _, ok := r.models[name]; ok {
		return fmt.Errorf("body: duplicate body name %q", name)
	}
	r.names = append(r.names, name)
	r.models[name] = m
	return nil
}

// ForEach visits every body in insertion order, stopping at the first
// error.
func (r *Registry) ForEach(fn func(m kinematics.Model) error) error {
	for _, name := range r.names {
		if err := fn(r.models[name]); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the body with the given name.
func (r *Registry) Get(name string) (kinematics.Model, bool) {
	m, ok := r.models[name]
	return m, ok
}

func (r *Registry) Len() int { return len(r.names) }

// Names returns the body names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
