package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/soroban-api/internal/domain"
)

// ChallengeStore defines the interface for live challenge persistence.
type ChallengeStore interface {
	// Create saves a new challenge to the store.
	// Returns ErrChallengeExists if the ID is already taken.
	Create(ctx context.Context, c *domain.Challenge) error

	// GetByID retrieves a challenge by its unique ID.
	// Returns ErrChallengeNotFound if the challenge does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Challenge, error)

	// List returns challenges ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]*domain.Challenge, error)

	// Delete removes a challenge.
	// Returns ErrChallengeNotFound if the challenge does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ChallengeStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ChallengeStore
}
