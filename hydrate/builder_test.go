package hydrate

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	apperrors "github.com/kbukum/hydrokit/errors"
)

// okOp returns an Operation that echoes its node name.
func okOp(name string) Operation {
	return func(_ context.Context, _ any) (any, error) {
		return name, nil
	}
}

// countOp returns an Operation that increments calls and echoes its name.
func countOp(name string, calls *atomic.Int32) Operation {
	return func(_ context.Context, _ any) (any, error) {
		calls.Add(1)
		return name, nil
	}
}

func TestNew_SingleRoot(t *testing.T) {
	root := NewNode("movie", okOp("movie"))
	cast := root.Child("cast", okOp("cast"))
	crew := root.Child("crew", okOp("crew"))

	b, err := New(root, cast, crew)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Root() != root {
		t.Fatal("expected root to be extracted")
	}

	n, ok := b.Node("cast")
	if !ok || n != cast {
		t.Fatal("expected to find 'cast' node")
	}
	if _, ok := b.Node("missing"); ok {
		t.Fatal("expected missing node lookup to fail")
	}

	names := b.Names()
	want := []string{"cast", "crew", "movie"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %v", len(want), names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("expected sorted names %v, got %v", want, names)
		}
	}
}

func TestNew_EmptySet(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("expected error for empty node set")
	}
	if !IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNew_NoRoot(t *testing.T) {
	root := NewNode("root", okOp("root"))
	a := root.Child("a", okOp("a"))
	b := root.Child("b", okOp("b"))

	// The root is not part of the supplied set, so every node has a parent.
	_, err := New(a, b)
	if err == nil {
		t.Fatal("expected error for node set without a root")
	}
	if !IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNew_AmbiguousRoot(t *testing.T) {
	first := NewNode("first", okOp("first"))
	second := NewNode("second", okOp("second"))

	_, err := New(first, second)
	if err == nil {
		t.Fatal("expected error for two parentless nodes")
	}
	if !IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNew_DuplicateName(t *testing.T) {
	root := NewNode("root", okOp("root"))
	a := root.Child("branch", okOp("a"))
	b := root.Child("branch", okOp("b"))

	_, err := New(root, a, b)
	if err == nil {
		t.Fatal("expected error for duplicate node name")
	}
	if !IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNew_ParentOutsideSet(t *testing.T) {
	root := NewNode("root", okOp("root"))
	other := NewNode("other", okOp("other"))
	stray := other.Child("stray", okOp("stray"))

	_, err := New(root, stray)
	if err == nil {
		t.Fatal("expected error for parent outside the node set")
	}
	if !IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNew_NilNode(t *testing.T) {
	root := NewNode("root", okOp("root"))
	_, err := New(root, nil)
	if err == nil {
		t.Fatal("expected error for nil node")
	}
}

func TestSelect_RootIsNoOp(t *testing.T) {
	var rootCalls, childCalls atomic.Int32
	root := NewNode("root", countOp("root", &rootCalls))
	child := root.Child("child", countOp("child", &childCalls))

	b, err := New(root, child)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.Select(root)
	if _, err := b.Run(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rootCalls.Load() != 1 {
		t.Fatalf("expected root to run once, got %d", rootCalls.Load())
	}
	if childCalls.Load() != 0 {
		t.Fatalf("selecting the root must not activate children, got %d child calls", childCalls.Load())
	}
}

func TestSelect_Idempotent(t *testing.T) {
	var midCalls, leafCalls atomic.Int32
	root := NewNode("root", okOp("root"))
	mid := root.Child("mid", countOp("mid", &midCalls))
	leaf := mid.Child("leaf", countOp("leaf", &leafCalls))

	b, err := New(root, mid, leaf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Selecting twice, plus independently selecting an ancestor, must yield
	// the same activation set as selecting once.
	b.Select(leaf).Select(leaf).Select(mid)

	if _, err := b.Run(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if midCalls.Load() != 1 {
		t.Fatalf("expected mid to run once, got %d", midCalls.Load())
	}
	if leafCalls.Load() != 1 {
		t.Fatalf("expected leaf to run once, got %d", leafCalls.Load())
	}
}

func TestSelect_ForeignNodeIgnored(t *testing.T) {
	root := NewNode("root", okOp("root"))
	child := root.Child("child", okOp("child"))

	otherRoot := NewNode("elsewhere", okOp("elsewhere"))
	foreign := otherRoot.Child("foreign", okOp("foreign"))

	b, err := New(root, child)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.Select(foreign)
	result, err := b.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("foreign selection must not activate anything, got %v", result)
	}
}

func TestSelectNames_Success(t *testing.T) {
	root := NewNode("root", okOp("root"))
	child := root.Child("child", okOp("child"))
	leaf := child.Child("leaf", okOp("leaf"))

	b, err := New(root, child, leaf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := b.SelectNames("leaf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := b.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["leaf"] != "leaf" || result["child"] != "child" {
		t.Fatalf("expected leaf and its ancestor in result, got %v", result)
	}
}

func TestSelectNames_UnknownName(t *testing.T) {
	root := NewNode("root", okOp("root"))
	child := root.Child("child", okOp("child"))

	b, err := New(root, child)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = b.SelectNames("child", "nope")
	if err == nil {
		t.Fatal("expected error for unknown node name")
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeUnknownNode) {
		t.Fatalf("expected UNKNOWN_NODE, got %v", err)
	}
	if !IsConfigurationError(err) {
		t.Fatal("expected unknown-name error to count as a configuration error")
	}

	// A failed call must leave the selection untouched, including names that
	// preceded the unknown one.
	result, runErr := b.Run(context.Background(), nil)
	if runErr != nil {
		t.Fatalf("unexpected error: %v", runErr)
	}
	if len(result) != 0 {
		t.Fatalf("expected no activation after failed SelectNames, got %v", result)
	}
}

func TestReset_ClearsSelection(t *testing.T) {
	var childCalls atomic.Int32
	root := NewNode("root", okOp("root"))
	child := root.Child("child", countOp("child", &childCalls))

	b, err := New(root, child)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.Select(child).Reset()
	if _, err := b.Run(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if childCalls.Load() != 0 {
		t.Fatalf("expected no child runs after Reset, got %d", childCalls.Load())
	}

	// The builder stays usable after a reset.
	b.Select(child)
	if _, err := b.Run(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if childCalls.Load() != 1 {
		t.Fatalf("expected one child run after re-select, got %d", childCalls.Load())
	}
}

func TestIsConfigurationError(t *testing.T) {
	if !IsConfigurationError(apperrors.TreeInvalid("no root")) {
		t.Error("expected true for TREE_INVALID")
	}
	if !IsConfigurationError(apperrors.UnknownNode("x")) {
		t.Error("expected true for UNKNOWN_NODE")
	}
	if IsConfigurationError(errors.New("plain")) {
		t.Error("expected false for plain error")
	}
	if IsConfigurationError(fmt.Errorf("op: %w", apperrors.Internal(nil))) {
		t.Error("expected false for unrelated app error")
	}
}
