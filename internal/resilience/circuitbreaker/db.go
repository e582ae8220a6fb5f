package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// DBCircuitBreaker wraps a database connection with circuit breaker protection.
// It keeps the favorites store responsive when the database is down: once the
// circuit opens, calls fail immediately instead of waiting on the pool.
type DBCircuitBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// DBConfig returns configuration for the favorites database.
// Opens after 5 consecutive failures, 30 second timeout. A missing row is not a failure.
func DBConfig() Config {
	return Config{
		Name:             "favorites-db",
		MaxRequests:      3, // Allow 3 test requests in half-open state
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0, // Open on 100% failure (5+ consecutive failures)
		MinRequests:      5,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, sql.ErrNoRows)
		},
	}
}

// NewDBCircuitBreaker creates a new database circuit breaker using DBConfig.
func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

// NewDBCircuitBreakerWithConfig creates a new database circuit breaker with custom configuration.
func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{
		cb: New(cfg),
		db: db,
	}
}

// ScanRowContext runs a single-row query and scans it into dest, all under the breaker.
// Unlike QueryRowContext, the scan error is visible to the breaker.
// It returns sql.ErrNoRows when the query matches nothing.
func (dcb *DBCircuitBreaker) ScanRowContext(ctx context.Context, query string, args []interface{}, dest ...interface{}) error {
	_, err := dcb.cb.Execute(func() (interface{}, error) {
		return nil, dcb.db.QueryRowContext(ctx, query, args...).Scan(dest...)
	})
	return err
}

// ExecContext executes a statement with circuit breaker protection.
// If the circuit is open, it returns ErrOpenState immediately without hitting the database.
func (dcb *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	result, err := dcb.cb.Execute(func() (interface{}, error) {
		return dcb.db.ExecContext(ctx, query, args...)
	})

	if err != nil {
		return nil, err
	}

	return result.(sql.Result), nil
}

// Name returns the breaker name, which health reports use as the dependency name.
func (dcb *DBCircuitBreaker) Name() string {
	return dcb.cb.Name()
}

// IsOpen returns true if the circuit breaker is in the open state.
func (dcb *DBCircuitBreaker) IsOpen() bool {
	return dcb.cb.IsOpen()
}
