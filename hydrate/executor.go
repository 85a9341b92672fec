package hydrate

import (
	"context"
	"time"

	"github.com/kbukum/hydrokit/logger"
)

// pending pairs a node due to run with the resolved output of its parent.
type pending struct {
	node  *Node
	input any
}

// outcome is one node's completed execution within a layer.
type outcome struct {
	node   *Node
	output any
}

// Run executes the selected tree breadth-first and returns the merged
// composite result. The root's operation always runs first with the caller
// input and its output is spread at the result's top level. Each subsequent
// layer holds every selected node whose parent resolved in the previous
// layer; nodes within a layer run concurrently and all of depth d complete
// (and merge) before any node of depth d+1 starts.
//
// The first failing operation aborts the run and its error is returned
// unmodified. Sibling operations already in flight are not cancelled — ctx is
// passed through untouched — but their results are discarded. No partial
// result is returned on failure.
func (b *Builder) Run(ctx context.Context, input any) (Result, error) {
	start := time.Now()

	rootOut, err := b.root.op(ctx, input)
	if err != nil {
		return nil, err
	}

	result := make(Result)
	result.spread(rootOut)

	if len(b.activation) == 0 {
		return result, nil
	}

	depth := 0
	executed := 0
	layer := b.childrenOf(b.root, rootOut)

	for len(layer) > 0 {
		depth++
		if b.log != nil {
			b.log.Debug("running layer", logger.Fields(
				logger.FieldLayer, depth,
				"nodes", layerNames(layer),
			))
		}

		outcomes, err := b.runLayer(ctx, layer)
		if err != nil {
			return nil, err
		}
		executed += len(outcomes)

		var next []pending
		for _, oc := range outcomes {
			result[oc.node.name] = oc.output
			next = append(next, b.childrenOf(oc.node, oc.output)...)
		}
		layer = next
	}

	if b.log != nil {
		b.log.Debug("run complete", logger.Fields(
			"layers", depth,
			"nodes", executed,
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
	}
	return result, nil
}

// runLayer starts every pending operation concurrently and collects their
// outcomes. The results channel is buffered to the layer size so that, after
// a fail-fast return, operations still in flight can deliver and finish
// without a reader.
func (b *Builder) runLayer(ctx context.Context, layer []pending) ([]outcome, error) {
	type delivery struct {
		outcome
		err error
	}
	results := make(chan delivery, len(layer))

	for _, p := range layer {
		go func(p pending) {
			out, err := p.node.op(ctx, p.input)
			results <- delivery{outcome: outcome{node: p.node, output: out}, err: err}
		}(p)
	}

	collected := make([]outcome, 0, len(layer))
	for range layer {
		d := <-results
		if d.err != nil {
			return nil, d.err
		}
		collected = append(collected, d.outcome)
	}
	return collected, nil
}

// childrenOf returns the selected direct children of parent, each paired with
// parent's freshly resolved output as input.
func (b *Builder) childrenOf(parent *Node, output any) []pending {
	set := b.activation[parent]
	if len(set) == 0 {
		return nil
	}
	out := make([]pending, 0, len(set))
	for child := range set {
		out = append(out, pending{node: child, input: output})
	}
	return out
}

func layerNames(layer []pending) []string {
	names := make([]string, len(layer))
	for i, p := range layer {
		names[i] = p.node.name
	}
	return names
}
