// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are created from the global tracer provider. Without an installed SDK
// provider every span is a no-op, so instrumented code costs nothing in the
// default CLI run.
//
// Features:
//   - GetTracer for chain and stage spans
//   - Transport for outbound HTTP client spans with W3C trace context injection
//
// Example usage:
//
//	import "country-explorer/internal/observability/tracing"
//
//	client := &http.Client{Transport: tracing.NewTransport(nil)}
//
//	func runChain(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "detail-chain")
//	    defer span.End()
//	}
package tracing
