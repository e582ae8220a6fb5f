package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"country-explorer/internal/observability/metrics"
	"country-explorer/internal/repository"
)

// SlotRepo stores slots in a local SQLite kv_slots table.
type SlotRepo struct{ db *sql.DB }

func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

func (repo *SlotRepo) Get(ctx context.Context, key string) (string, error) {
	const query = `
SELECT value
FROM kv_slots
WHERE key = ?`
	start := time.Now()
	defer func() { metrics.RecordSlotOperation("sqlite", "get", time.Since(start)) }()

	var value string
	err := repo.db.QueryRowContext(ctx, query, key).Scan(&value)
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
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET
value = excluded.value,
updated_at = excluded.updated_at`
	start := time.Now()
	defer func() { metrics.RecordSlotOperation("sqlite", "set", time.Since(start)) }()

	if _, err := repo.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("Set %q: %w", key, err)
	}
	return nil
}
