// Package registry implements the process-wide map from world name to a
// live *sim.World: one coarse lock guards the name→World map, and a second,
// finer lock embedded per entry serializes operations against one world
// without blocking traffic to any other.
package registry

import (
	"sync"

	"github.com/vivarium-sim/vivarium/sim"
)

// registryEntry pairs a World with the lock callers must hold to drive it.
// Mutating calls (Update, SetEntityState, ...) and any call that runs an
// entity's script VM (GetEntityState, Snapshot) require the exclusive
// section; read-only calls that do not enter a script (ListEntities,
// Metrics) may run under the shared section.
type registryEntry struct {
	world *sim.World
	mu    sync.RWMutex
}

// Registry is the process-wide collection of named, independently
// schedulable worlds.
type Registry struct {
	mu     sync.RWMutex
	worlds map[string]*registryEntry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{worlds: make(map[string]*registryEntry)}
}

// Add inserts w under name. Fails with ErrWorldAlreadyExists if name is
// already registered.
func (r *Registry) Add(name string, w *sim.World) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.worlds[name]; exists {
		return sim.ErrWorldAlreadyExists
	}
	r.worlds[name] = &registryEntry{world: w}
	return nil
}

// Get returns the world registered under name, if any.
func (r *Registry) Get(name string) (*sim.World, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.worlds[name]
	if !ok {
		return nil, false
	}
	return e.world, true
}

// List returns every registered world name. Order is unspecified.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.worlds))
	for name := range r.worlds {
		names = append(names, name)
	}
	return names
}

// Delete removes name from the registry, reporting whether it was present.
func (r *Registry) Delete(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.worlds[name]; !ok {
		return false
	}
	delete(r.worlds, name)
	return true
}

// WithWorld runs fn while holding name's exclusive per-world section, for
// callers that drive a tick or otherwise mutate world state. Returns false
// if name is not registered.
func (r *Registry) WithWorld(name string, fn func(*sim.World)) bool {
	r.mu.RLock()
	e, ok := r.worlds[name]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.world)
	return true
}

// WithWorldRead runs fn while holding name's shared per-world section, for
// read-only accessors that may run concurrently with other readers of the
// same world (but not with a WithWorld call).
func (r *Registry) WithWorldRead(name string, fn func(*sim.World)) bool {
	r.mu.RLock()
	e, ok := r.worlds[name]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(e.world)
	return true
}
