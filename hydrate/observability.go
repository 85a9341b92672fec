package hydrate

import (
	"context"
	"time"

	"github.com/kbukum/hydrokit/logger"
	"github.com/kbukum/hydrokit/observability"
)

// WithTracing wraps an Operation with OpenTelemetry span creation. Each
// invocation creates a span named "hydrate.{name}" carrying the node name.
func WithTracing(op Operation, name string) Operation {
	return func(ctx context.Context, input any) (any, error) {
		ctx, span := observability.StartSpan(ctx, "hydrate."+name)
		defer span.End()

		observability.SetSpanAttribute(ctx, observability.AttrNode, name)

		output, err := op(ctx, input)
		if err != nil {
			observability.SetSpanError(ctx, err)
		}
		return output, err
	}
}

// WithMetrics wraps an Operation with metric recording: per-node execution
// count, duration, and errors.
func WithMetrics(op Operation, name string, metrics *observability.Metrics) Operation {
	return func(ctx context.Context, input any) (any, error) {
		start := time.Now()
		output, err := op(ctx, input)
		duration := time.Since(start)

		status := "ok"
		if err != nil {
			status = "error"
			metrics.RecordError(ctx, "fetch", name)
		}
		metrics.RecordNode(ctx, name, status, duration)

		return output, err
	}
}

// WithLogging wraps an Operation with execution logging: node name, duration,
// and success or failure.
func WithLogging(op Operation, name string, log *logger.Logger) Operation {
	return func(ctx context.Context, input any) (any, error) {
		start := time.Now()
		output, err := op(ctx, input)
		duration := time.Since(start)

		fields := map[string]interface{}{
			logger.FieldNode:     name,
			logger.FieldDuration: duration.Milliseconds(),
		}

		if err != nil {
			fields[logger.FieldError] = err.Error()
			log.Error("node operation failed", fields)
		} else {
			log.Debug("node operation completed", fields)
		}

		return output, err
	}
}
