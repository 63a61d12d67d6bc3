package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/soroban-api/internal/platform/postgres"
)

var migrationCommands = map[string]bool{
	postgres.MigrateUp:      true,
	postgres.MigrateDown:    true,
	postgres.MigrateReset:   true,
	postgres.MigrateStatus:  true,
	postgres.MigrateVersion: true,
}

// runMigrations executes one goose command with the embedded migrations.
func runMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	if !migrationCommands[command] {
		return fmt.Errorf("%w: unknown migration command %q", errUsage, command)
	}
	if err := postgres.Migrate(ctx, db, command, logger); err != nil {
		return err
	}
	return nil
}
