// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - Remote call metrics (directory, weather, news)
//   - Fetch chain and stage outcomes
//   - Favorites and listing activity
//   - Slot store latency
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint when METRICS_PORT is set.
//
// Example usage:
//
//	import "country-explorer/internal/observability/metrics"
//
//	func loadDetail(code string) {
//	    start := time.Now()
//	    // ... run the chain ...
//	    metrics.RecordChain("detail", true, time.Since(start))
//	}
package metrics
