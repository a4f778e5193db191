// Package observability provides OpenTelemetry tracing and metrics for the
// ChaosRegistry service.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("chaosregistry"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "oauth.exchange")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("chaosregistry"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("chaosregistry"))
//	metrics.RecordLogin(ctx, "line", "ios", "ok")
//
// The Telemetry component wraps both providers for lifecycle management
// through the component registry.
package observability
