package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"country-explorer/internal/observability/metrics"
	"country-explorer/internal/repository"
	"country-explorer/internal/resilience/circuitbreaker"
)

// SlotRepo stores slots in the kv_slots table behind a circuit breaker.
type SlotRepo struct{ db *circuitbreaker.DBCircuitBreaker }

func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: circuitbreaker.NewDBCircuitBreaker(db)}
}

// NewSlotRepoWithBreaker lets callers share or tune the breaker.
func NewSlotRepoWithBreaker(db *circuitbreaker.DBCircuitBreaker) *SlotRepo {
	return &SlotRepo{db: db}
}

// Service names the dependency in health reports.
func (repo *SlotRepo) Service() string { return repo.db.Name() }

// CircuitOpen reports whether the database breaker is rejecting calls.
func (repo *SlotRepo) CircuitOpen() bool { return repo.db.IsOpen() }

func (repo *SlotRepo) Get(ctx context.Context, key string) (string, error) {
	const query = `
SELECT value
FROM kv_slots
WHERE key = $1`
	start := time.Now()
	defer func() { metrics.RecordSlotOperation("postgres", "get", time.Since(start)) }()

	var value string
	err := repo.db.ScanRowContext(ctx, query, []interface{}{key}, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("Get %q: %w", key, repository.ErrSlotNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("Get %q: %w", key, err)
	}
	return value, nil
}

func (repo *SlotRepo) Set(ctx context.Context, key, value string) error {
	const query = `
INSERT INTO kv_slots (key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	start := time.Now()
	defer func() { metrics.RecordSlotOperation("postgres", "set", time.Since(start)) }()

	if _, err := repo.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("Set %q: %w", key, err)
	}
	return nil
}
