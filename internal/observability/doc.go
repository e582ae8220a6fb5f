// Package observability groups the explorer's structured logging, Prometheus
// metrics and OpenTelemetry tracing.
//
// Subpackages:
//   - logging: slog loggers (JSON or tint text) with chain id propagation
//   - metrics: Prometheus collectors and recorders
//   - tracing: tracer access and an outbound HTTP transport
//
// Example usage:
//
//	import (
//	    "country-explorer/internal/observability/logging"
//	    "country-explorer/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.New()
//	    logger.Info("explorer started")
//
//	    metrics.UpdateFavoritesCount(3)
//	}
package observability
