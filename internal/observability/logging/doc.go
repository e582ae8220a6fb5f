// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and colored text output formats (LOG_FORMAT)
//   - Chain ID propagation for fetch chains
//   - Context-aware logging
//   - Configurable log levels (LOG_LEVEL)
//
// Example usage:
//
//	import "country-explorer/internal/observability/logging"
//
//	func main() {
//	    logger := logging.New()
//	    logger.Info("explorer started", slog.String("version", "1.0"))
//	}
//
//	func loadDetail(ctx context.Context) {
//	    ctx, _ = logging.NewChainID(ctx)
//	    logger := logging.WithChainID(ctx, slog.Default())
//	    logger.Info("detail chain started")
//	}
package logging
