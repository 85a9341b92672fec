package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	apperrors "github.com/kbukum/hydrokit/errors"
	"github.com/kbukum/hydrokit/hydrate"
	"github.com/kbukum/hydrokit/logger"
	"github.com/kbukum/hydrokit/observability"
)

// Catalog stores validated tree definitions and builds runnable Builders
// from them. Each Build call produces an independent Builder so concurrent
// requests never share selection state.
type Catalog struct {
	mu       sync.RWMutex
	registry *Registry
	defs     map[string]*Definition
	log      *logger.Logger // catalog-tagged, for the catalog's own messages
	base     *logger.Logger // untagged, handed to builders and decorators
	metrics  *observability.Metrics
}

// New creates an empty Catalog resolving operations through the given
// registry.
func New(registry *Registry) *Catalog {
	return &Catalog{
		registry: registry,
		defs:     make(map[string]*Definition),
	}
}

// WithLogger attaches a logger; built operations then log their executions.
func (c *Catalog) WithLogger(log *logger.Logger) *Catalog {
	c.base = log
	c.log = log.WithComponent("catalog")
	return c
}

// WithMetrics attaches metric instruments; built operations then record
// per-node executions.
func (c *Catalog) WithMetrics(metrics *observability.Metrics) *Catalog {
	c.metrics = metrics
	return c
}

// Add validates and stores a definition. Adding a name again replaces the
// stored definition.
func (c *Catalog) Add(def *Definition) error {
	if def == nil {
		return apperrors.InvalidInput("definition", "is nil")
	}
	if err := def.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.defs[def.Name]; exists && c.log != nil {
		c.log.Warn("replacing tree definition", map[string]interface{}{
			logger.FieldTree: def.Name,
		})
	}
	c.defs[def.Name] = def
	return nil
}

// Trees returns the sorted names of all stored definitions.
func (c *Catalog) Trees() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the stored definition for a tree.
func (c *Catalog) Describe(name string) (*Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.defs[name]
	if !ok {
		return nil, apperrors.UnknownTree(name)
	}
	return def, nil
}

// Build constructs a fresh Builder for the named tree.
func (c *Catalog) Build(name string) (*hydrate.Builder, error) {
	c.mu.RLock()
	def, ok := c.defs[name]
	c.mu.RUnlock()
	if !ok {
		return nil, apperrors.UnknownTree(name)
	}
	return c.build(def)
}

// build resolves node operations and constructs nodes parents-first, so
// definitions may list nodes in any order.
func (c *Catalog) build(def *Definition) (*hydrate.Builder, error) {
	built := make(map[string]*hydrate.Node, len(def.Nodes))
	remaining := def.Nodes

	for len(remaining) > 0 {
		var next []NodeDef
		for _, nd := range remaining {
			parent, ready := built[nd.Parent]
			if nd.Parent != "" && !ready {
				next = append(next, nd)
				continue
			}

			op, err := c.operation(nd)
			if err != nil {
				return nil, err
			}
			if nd.Parent == "" {
				built[nd.Name] = hydrate.NewNode(nd.Name, op)
			} else {
				built[nd.Name] = parent.Child(nd.Name, op)
			}
		}

		if len(next) == len(remaining) {
			names := make([]string, 0, len(next))
			for _, nd := range next {
				names = append(names, nd.Name)
			}
			return nil, apperrors.TreeInvalid(fmt.Sprintf("unresolvable parents for nodes %v", names))
		}
		remaining = next
	}

	nodes := make([]*hydrate.Node, 0, len(built))
	for _, n := range built {
		nodes = append(nodes, n)
	}

	b, err := hydrate.New(nodes...)
	if err != nil {
		return nil, err
	}
	if c.base != nil {
		b.WithLogger(c.base)
	}
	return b, nil
}

// operation resolves a node's fetch step and wraps it with the configured
// observability decorators.
func (c *Catalog) operation(nd NodeDef) (hydrate.Operation, error) {
	var op hydrate.Operation
	switch {
	case nd.Operation != "":
		registered, ok := c.registry.Get(nd.Operation)
		if !ok {
			return nil, apperrors.UnknownOperation(nd.Operation)
		}
		op = registered
	case nd.Source != nil:
		op = NewHTTPSource(*nd.Source).Operation()
	default:
		return nil, apperrors.TreeInvalid(fmt.Sprintf("node %q has no operation", nd.Name))
	}

	if c.base != nil {
		op = hydrate.WithLogging(op, nd.Name, c.base.WithComponent("hydrate"))
	}
	if c.metrics != nil {
		op = hydrate.WithMetrics(op, nd.Name, c.metrics)
	}
	op = hydrate.WithTracing(op, nd.Name)
	return op, nil
}

// CheckHealth reports the catalog's health for the health endpoint.
func (c *Catalog) CheckHealth(ctx context.Context) observability.Health {
	c.mu.RLock()
	count := len(c.defs)
	c.mu.RUnlock()

	h := observability.Health{
		Name:    "catalog",
		Status:  observability.HealthStatusUp,
		Details: map[string]string{"trees": strconv.Itoa(count)},
	}
	if count == 0 {
		h.Status = observability.HealthStatusDegraded
		h.Message = "no tree definitions loaded"
	}
	return h
}
