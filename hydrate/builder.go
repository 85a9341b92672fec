package hydrate

import (
	"fmt"
	"sort"

	apperrors "github.com/kbukum/hydrokit/errors"
	"github.com/kbukum/hydrokit/logger"
)

// Builder composes a validated node tree with a record of which branches to
// execute. Selection is sticky: every Select persists for the life of the
// builder and is never cleared between Run calls, so a builder can be
// configured once and reused for repeated runs with more branches layered on
// top. Use Reset to discard selections explicitly.
//
// A Builder is not safe for concurrent use. Callers must serialize Select,
// SelectNames, Reset, and Run against each other.
type Builder struct {
	root   *Node
	byName map[string]*Node

	// activation maps a parent node to the set of its direct children that
	// must run. Entries only accumulate; sets are duplicate-free.
	activation map[*Node]map[*Node]struct{}

	log *logger.Logger
}

// New validates the node set and returns a builder rooted at its unique
// parentless node. Validation runs exactly once, here: the set must be
// non-empty, contain exactly one parentless node, reference no parent outside
// the set, and carry no duplicate names. Any defect is reported as a
// configuration error (see IsConfigurationError); the builder is unusable on
// failure.
func New(nodes ...*Node) (*Builder, error) {
	if len(nodes) == 0 {
		return nil, apperrors.TreeInvalid("node set is empty")
	}

	inSet := make(map[*Node]struct{}, len(nodes))
	byName := make(map[string]*Node, len(nodes))
	var roots []*Node

	for _, n := range nodes {
		if n == nil {
			return nil, apperrors.TreeInvalid("node set contains a nil node")
		}
		if _, dup := byName[n.name]; dup {
			return nil, apperrors.TreeInvalid(fmt.Sprintf("duplicate node name %q", n.name))
		}
		byName[n.name] = n
		inSet[n] = struct{}{}
		if n.parent == nil {
			roots = append(roots, n)
		}
	}

	switch len(roots) {
	case 0:
		return nil, apperrors.TreeInvalid("no root: every node has a parent")
	case 1:
	default:
		return nil, apperrors.TreeInvalid(fmt.Sprintf("ambiguous root: %d nodes have no parent", len(roots)))
	}

	// Every parent chain must stay inside the set. Parents are fixed at
	// construction and always predate their children, so chains that stay in
	// the set necessarily terminate at the single root.
	for _, n := range nodes {
		if n.parent != nil {
			if _, ok := inSet[n.parent]; !ok {
				return nil, apperrors.TreeInvalid(fmt.Sprintf("node %q references a parent outside the node set", n.name))
			}
		}
	}

	return &Builder{
		root:       roots[0],
		byName:     byName,
		activation: make(map[*Node]map[*Node]struct{}),
	}, nil
}

// IsConfigurationError reports whether err is a tree construction error
// returned by New (or a name resolution error from SelectNames).
func IsConfigurationError(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeTreeInvalid) ||
		apperrors.HasCode(err, apperrors.ErrCodeUnknownNode)
}

// Select marks the given nodes and, transitively, every ancestor up to the
// root for execution. Selecting the root is a no-op (the root always runs);
// nodes that are not part of this builder's set are ignored. Select is
// idempotent and returns the builder for chaining.
func (b *Builder) Select(nodes ...*Node) *Builder {
	for _, n := range nodes {
		if n != nil && b.byName[n.name] == n {
			b.activate(n)
		}
	}
	return b
}

// SelectNames resolves node names through the builder's index and selects
// them. Unknown names fail with an UNKNOWN_NODE error before anything is
// selected, so a failed call leaves the selection untouched.
func (b *Builder) SelectNames(names ...string) error {
	resolved := make([]*Node, 0, len(names))
	for _, name := range names {
		n, ok := b.byName[name]
		if !ok {
			return apperrors.UnknownNode(name)
		}
		resolved = append(resolved, n)
	}
	for _, n := range resolved {
		b.activate(n)
	}
	return nil
}

// activate registers n as a required child of its parent and walks the
// ancestor chain upward so the path from the root is fully connected.
func (b *Builder) activate(n *Node) {
	if n.parent == nil {
		return
	}
	set, ok := b.activation[n.parent]
	if !ok {
		set = make(map[*Node]struct{})
		b.activation[n.parent] = set
	}
	if _, seen := set[n]; seen {
		// Ancestors were registered when n was first activated.
		return
	}
	set[n] = struct{}{}
	b.activate(n.parent)
}

// Reset discards all recorded selections, returning the builder to its
// freshly constructed state. Selection otherwise only grows.
func (b *Builder) Reset() *Builder {
	b.activation = make(map[*Node]map[*Node]struct{})
	return b
}

// WithLogger attaches a logger for per-run debug output of layer progression.
func (b *Builder) WithLogger(log *logger.Logger) *Builder {
	if log != nil {
		b.log = log.WithComponent("hydrate")
	}
	return b
}

// Root returns the tree's root node.
func (b *Builder) Root() *Node { return b.root }

// Node returns the node registered under name.
func (b *Builder) Node(name string) (*Node, bool) {
	n, ok := b.byName[name]
	return n, ok
}

// Names returns the sorted names of all nodes in the tree.
func (b *Builder) Names() []string {
	names := make([]string, 0, len(b.byName))
	for name := range b.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
