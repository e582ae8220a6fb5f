package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "country-explorer"

// GetTracer returns the tracer for creating spans.
// It is resolved from the global provider on every call so that a provider
// installed after package initialization (for example in tests) takes effect.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
