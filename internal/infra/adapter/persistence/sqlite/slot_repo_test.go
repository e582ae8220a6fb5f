package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"country-explorer/internal/infra/adapter/persistence/sqlite"
	"country-explorer/internal/infra/db"
	"country-explorer/internal/repository"
)

// ─────────────────────────────────────────────
// 1. Query shape (sqlmock)
// ─────────────────────────────────────────────
func TestSlotRepo_Get_UsesPositionalPlaceholder(t *testing.T) {
	conn, mock, _ := sqlmock.New()
	defer func() { _ = conn.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE key = ?`)).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`["FRA"]`))

	got, err := sqlite.NewSlotRepo(conn).Get(context.Background(), "k")
	if err != nil || got != `["FRA"]` {
		t.Fatalf("Get got=%q err=%v", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSlotRepo_Set_Error(t *testing.T) {
	conn, mock, _ := sqlmock.New()
	defer func() { _ = conn.Close() }()

	mock.ExpectExec(`INSERT INTO kv_slots`).WillReturnError(errors.New("database is locked"))

	if err := sqlite.NewSlotRepo(conn).Set(context.Background(), "k", "v"); err == nil {
		t.Fatal("expected error")
	}
}

// ─────────────────────────────────────────────
// 2. Real database file
// ─────────────────────────────────────────────
func TestSlotRepo_RoundTripOnDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "favorites.db")

	conn, err := db.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = conn.Close() }()
	if err := db.MigrateUp(ctx, conn); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}

	repo := sqlite.NewSlotRepo(conn)

	if _, err := repo.Get(ctx, "global-explorer-favorites"); !errors.Is(err, repository.ErrSlotNotFound) {
		t.Fatalf("Get before Set err=%v, want ErrSlotNotFound", err)
	}

	for _, v := range []string{`["FRA"]`, `["FRA","JPN"]`} {
		if err := repo.Set(ctx, "global-explorer-favorites", v); err != nil {
			t.Fatalf("Set(%s): %v", v, err)
		}
	}

	got, err := repo.Get(ctx, "global-explorer-favorites")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `["FRA","JPN"]` {
		t.Errorf("Get = %s, want upserted value", got)
	}
}
