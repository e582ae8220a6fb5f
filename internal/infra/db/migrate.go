package db

import (
	"context"
	"database/sql"
	"fmt"
)

// The DDL is shared by the postgres and sqlite backends.
const createSlotsTable = `
CREATE TABLE IF NOT EXISTS kv_slots (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// MigrateUp creates the slot table if it does not exist.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createSlotsTable); err != nil {
		return fmt.Errorf("migrate kv_slots: %w", err)
	}
	return nil
}
