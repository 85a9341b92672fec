package hydrate

import "context"

// Operation is one asynchronous fetch step. It receives the resolved output
// of its node's parent (or the caller-supplied input, for the root) and
// produces the node's own output. Failures are reported through the error
// return; an Operation must not panic and must be safe to invoke concurrently
// with sibling operations.
//
// An Operation depends only on its input value, never on the accumulated
// result, so the same Operation can be wired as a child under unrelated
// trees.
type Operation func(ctx context.Context, input any) (any, error)

// Node is a named, immutable description of one fetch step plus an optional
// reference to its parent. A node without a parent is a root. Because a child
// can only reference an already constructed parent, a set of nodes built
// through NewNode and Child can never contain a cycle.
type Node struct {
	name   string
	op     Operation
	parent *Node
}

// NewNode creates a parentless node. Exactly one node passed to New may be
// parentless; it becomes the tree's root.
func NewNode(name string, op Operation) *Node {
	return &Node{name: name, op: op}
}

// Child creates a node whose operation receives n's resolved output as input.
func (n *Node) Child(name string, op Operation) *Node {
	return &Node{name: name, op: op, parent: n}
}

// Name returns the node's identifier, unique within a tree.
func (n *Node) Name() string { return n.name }

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }
