package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/soroban-api/internal/redact"
)

// TestTimeout bounds connection checks and migrations.
const TestTimeout = 10 * time.Second

// urlEnvVars are consulted in order for the test database URL.
var urlEnvVars = []string{"SOROBAN_TEST_DB_URL", "DATABASE_URL", "SOROBAN_DATABASE_URL"}

// MigrateFunc prepares the schema of a freshly opened database.
type MigrateFunc func(ctx context.Context, db *sql.DB) error

// GetTestDatabaseURL returns the first configured database URL, or "".
func GetTestDatabaseURL() string {
	for _, name := range urlEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no database URL is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// Open connects to the test database and applies migrate, skipping t when
// no database is configured. The connection is closed when t finishes.
func Open(t *testing.T, migrate MigrateFunc) *sql.DB {
	t.Helper()

	dsn := GetTestDatabaseURL()
	if dsn == "" {
		t.Skip("no test database URL set; skipping PostgreSQL integration test")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open test database %s: %v", redact.String(dsn), err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("ping test database %s: %v", redact.String(dsn), err)
	}
	if migrate != nil {
		if err := migrate(ctx, db); err != nil {
			t.Fatalf("migrate test database: %v", err)
		}
	}
	return db
}

// WithTx runs fn inside a transaction that is rolled back afterwards, so
// tests leave no rows behind.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin test transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
