// Package observability provides OpenTelemetry tracing and metrics integration
// for hydration services.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("hydrated"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "catalog.load")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("hydrated"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("hydrated"))
//	metrics.RecordRunEnd(ctx, "movie", "ok", duration)
//
// Run tracking ties both together for a single hydration run:
//
//	rc := observability.NewRunContext("movie", "", requestID, metrics)
//	ctx, span := rc.StartSpanForRun(ctx)
//	result, err := builder.Run(ctx, input)
//	rc.EndRun(ctx, span, status(err), err)
//
// Health Checks:
//
//	health := observability.NewServiceHealth("hydrated", "1.0.0")
//	health.AddComponent(checker.CheckHealth(ctx))
package observability
