package observability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RunContext holds observability context for a single hydration run.
type RunContext struct {
	Tree      string
	RunID     string
	RequestID string
	StartTime time.Time
	Metrics   *Metrics
}

// NewRunContext creates a new run context. An empty runID is replaced with a
// generated one. If metrics is nil, metric recording is silently skipped.
func NewRunContext(tree, runID, requestID string, metrics *Metrics) *RunContext {
	if runID == "" {
		runID = uuid.New().String()
	}
	return &RunContext{
		Tree:      tree,
		RunID:     runID,
		RequestID: requestID,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

// runContextKey is the context key for RunContext.
type runContextKey struct{}

// WithRunContext stores a RunContext in the context.
func WithRunContext(ctx context.Context, rc *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, rc)
}

// RunContextFromContext retrieves the RunContext from context, or nil.
func RunContextFromContext(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runContextKey{}).(*RunContext); ok {
		return rc
	}
	return nil
}

// StartSpanForRun starts a traced span for the run and records the run-start
// metric.
func (rc *RunContext) StartSpanForRun(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanRun)
	span.SetAttributes(
		attribute.String(AttrTree, rc.Tree),
		attribute.String(AttrRunID, rc.RunID),
	)
	if rc.RequestID != "" {
		span.SetAttributes(attribute.String(AttrRequestID, rc.RequestID))
	}

	if rc.Metrics != nil {
		rc.Metrics.RecordRunStart(ctx)
	}
	return ctx, span
}

// EndRun ends the span and records run-end metrics.
func (rc *RunContext) EndRun(ctx context.Context, span trace.Span, status string, err error) {
	duration := time.Since(rc.StartTime)

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if rc.Metrics != nil {
		rc.Metrics.RecordRunEnd(ctx, rc.Tree, status, duration)
	}
}

// Duration returns the elapsed time since the run started.
func (rc *RunContext) Duration() time.Duration {
	return time.Since(rc.StartTime)
}
