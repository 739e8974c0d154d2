// Package tracing provides OpenTelemetry tracing for HTTP requests.
// Incoming W3C Trace Context headers are honored, and every response carries
// an X-Trace-Id header for client-side correlation.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// tracer is the instrumentation-scope tracer shared by this package.
var tracer = otel.Tracer("subsidy-finder")

// GetTracer returns the tracer for creating spans.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "reconcile")
//	defer span.End()
func GetTracer() oteltrace.Tracer {
	return tracer
}

// Setup installs a tracer provider. When enabled is false a no-op provider
// is installed, so instrumentation has zero cost in environments without a
// collector. The returned shutdown function flushes pending spans.
func Setup(enabled bool) func() {
	if !enabled {
		otel.SetTracerProvider(noop.NewTracerProvider())
		tracer = otel.Tracer("subsidy-finder")
		return func() {}
	}

	tp := trace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("subsidy-finder")
	return func() {
		_ = tp.Shutdown(context.Background())
	}
}
