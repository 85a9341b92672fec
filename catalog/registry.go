package catalog

import (
	"sort"
	"sync"

	"github.com/kbukum/hydrokit/hydrate"
)

// Registry provides named operation lookup for definition-driven tree
// construction. Definitions reference registered operations by name instead
// of embedding code.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]hydrate.Operation
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]hydrate.Operation)}
}

// Register adds an operation to the registry.
func (r *Registry) Register(name string, op hydrate.Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[name] = op
}

// Get retrieves an operation by name.
func (r *Registry) Get(name string) (hydrate.Operation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	return op, ok
}

// List returns sorted names of all registered operations.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
