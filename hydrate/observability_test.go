package hydrate

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/hydrokit/logger"
	"github.com/kbukum/hydrokit/observability"
)

func TestWithTracing_PassesThrough(t *testing.T) {
	op := func(_ context.Context, input any) (any, error) {
		return input, nil
	}

	wrapped := WithTracing(op, "cast")
	out, err := wrapped(context.Background(), "movie-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "movie-7" {
		t.Fatalf("expected input passed through, got %v", out)
	}
}

func TestWithTracing_PropagatesError(t *testing.T) {
	opErr := errors.New("upstream down")
	op := func(_ context.Context, _ any) (any, error) {
		return nil, opErr
	}

	wrapped := WithTracing(op, "cast")
	_, err := wrapped(context.Background(), nil)
	if !errors.Is(err, opErr) {
		t.Fatalf("expected operation error, got %v", err)
	}
}

func TestWithMetrics_PassesThrough(t *testing.T) {
	meter := observability.Meter("hydrate-test")
	metrics, err := observability.NewMetrics(meter)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	op := func(_ context.Context, input any) (any, error) {
		return input, nil
	}

	wrapped := WithMetrics(op, "cast", metrics)
	out, err := wrapped(context.Background(), "movie-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "movie-7" {
		t.Fatalf("expected input passed through, got %v", out)
	}
}

func TestWithMetrics_PropagatesError(t *testing.T) {
	meter := observability.Meter("hydrate-test")
	metrics, err := observability.NewMetrics(meter)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	opErr := errors.New("upstream down")
	op := func(_ context.Context, _ any) (any, error) {
		return nil, opErr
	}

	wrapped := WithMetrics(op, "cast", metrics)
	_, err = wrapped(context.Background(), nil)
	if !errors.Is(err, opErr) {
		t.Fatalf("expected operation error, got %v", err)
	}
}

func TestWithLogging_PassesThrough(t *testing.T) {
	log := logger.New(logger.Config{Level: "debug", Format: "json", Output: "stderr"}, "hydrate-test")

	op := func(_ context.Context, input any) (any, error) {
		return input, nil
	}

	wrapped := WithLogging(op, "cast", log)
	out, err := wrapped(context.Background(), "movie-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "movie-7" {
		t.Fatalf("expected input passed through, got %v", out)
	}
}

func TestWithLogging_PropagatesError(t *testing.T) {
	log := logger.New(logger.Config{Level: "debug", Format: "json", Output: "stderr"}, "hydrate-test")

	opErr := errors.New("upstream down")
	op := func(_ context.Context, _ any) (any, error) {
		return nil, opErr
	}

	wrapped := WithLogging(op, "cast", log)
	_, err := wrapped(context.Background(), nil)
	if !errors.Is(err, opErr) {
		t.Fatalf("expected operation error, got %v", err)
	}
}

func TestDecorators_Compose(t *testing.T) {
	meter := observability.Meter("hydrate-test")
	metrics, err := observability.NewMetrics(meter)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	log := logger.NewDefault("hydrate-test")

	op := func(_ context.Context, input any) (any, error) {
		return input.(int) * 2, nil
	}

	wrapped := WithTracing(WithMetrics(WithLogging(op, "double", log), "double", metrics), "double")
	out, err := wrapped(context.Background(), 21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != 42 {
		t.Fatalf("expected 42, got %v", out)
	}
}
