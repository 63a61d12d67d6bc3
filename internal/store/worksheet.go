package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/soroban-api/internal/domain"
)

// WorksheetStore defines the interface for worksheet persistence.
type WorksheetStore interface {
	// Create saves a new worksheet to the store.
	// Returns validation errors from the domain Worksheet if data is invalid,
	// and ErrWorksheetExists if the ID is already taken.
	Create(ctx context.Context, w *domain.Worksheet) error

	// GetByID retrieves a worksheet by its unique ID.
	// Returns ErrWorksheetNotFound if the worksheet does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Worksheet, error)

	// List returns worksheets ordered by creation time, newest first.
	// Returns an empty slice if there are none.
	List(ctx context.Context, limit, offset int) ([]*domain.Worksheet, error)

	// Delete removes a worksheet.
	// Returns ErrWorksheetNotFound if the worksheet does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new WorksheetStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) WorksheetStore
}
