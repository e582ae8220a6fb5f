package apiclient

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter implements token bucket algorithm for rate limiting.
// It keeps the explorer within the free-tier request budgets of the remote services.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a new RateLimiter with the specified rate and burst capacity.
//
// The token bucket algorithm allows up to 'burst' requests immediately,
// then refills tokens at 'requestsPerSecond' rate.
//
// Example:
//
//	limiter := NewRateLimiter(5, 5)  // 5 req/s with burst of 5
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Allow blocks until a token is available or the context is canceled.
func (r *RateLimiter) Allow(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
