package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/soroban-api/internal/store"
)

// Transactor runs fn inside a database transaction.
type Transactor func(ctx context.Context, fn store.TxFn) error

// SQLTransactor returns a Transactor backed by store.RunInTransaction on db.
func SQLTransactor(db *sql.DB) Transactor {
	return func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, db, fn)
	}
}
