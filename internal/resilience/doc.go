// Package resilience provides fault tolerance patterns for the explorer's
// remote data sources and durable storage.
//
// The package supports:
//   - Circuit breakers per remote service (country directory, weather, news)
//   - A circuit-breaker-protected database wrapper for the favorites table
//
// Failed calls are never retried automatically; a retry is a fresh call made by
// the user.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.RestCountriesConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callExternalService()
//	})
package resilience
