package strategy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alanyoungcy/marketsim/internal/domain"
)

// Registry manages a named collection of generators that can be looked up
// at runtime. It is safe for concurrent use.
type Registry struct {
	generators map[string]Generator
	mu         sync.RWMutex
}

// NewRegistry returns an empty, ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// Register adds a generator to the registry under its own name. If a
// generator with the same name already exists it will be replaced.
func (r *Registry) Register(g Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[g.Name()] = g
}

// Get retrieves a generator by name. It returns an error when the name is
// not registered.
func (r *Registry) Get(name string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("strategy %q: %w", name, domain.ErrNotFound)
	}
	return g, nil
}

// List returns the names of all registered generators in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.generators))
	for n := range r.generators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
