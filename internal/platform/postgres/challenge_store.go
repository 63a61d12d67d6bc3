package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/soroban-api/internal/domain"
	"github.com/phrazzld/soroban-api/internal/platform/logger"
	"github.com/phrazzld/soroban-api/internal/store"
)

// PostgresChallengeStore implements store.ChallengeStore on PostgreSQL.
type PostgresChallengeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresChallengeStore creates a challenge store over db.
func NewPostgresChallengeStore(db store.DBTX, logger *slog.Logger) *PostgresChallengeStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresChallengeStore{
		db:     db,
		logger: logger.With(slog.String("component", "challenge_store")),
	}
}

var _ store.ChallengeStore = (*PostgresChallengeStore)(nil)

// Create implements store.ChallengeStore.Create.
func (s *PostgresChallengeStore) Create(ctx context.Context, c *domain.Challenge) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if c.ID == uuid.Nil {
		return fmt.Errorf("%w: challenge ID cannot be empty", store.ErrInvalidEntity)
	}

	query := `
		INSERT INTO challenges (
			id, title, formula_type, digit_count, operation_count, seed,
			ensure_positive, algorithm, cadence_ms, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		c.ID,
		c.Title,
		c.Settings.FormulaType,
		c.Settings.DigitCount,
		c.Settings.OperationCount,
		c.Settings.Seed,
		c.Settings.EnsurePositive,
		c.Settings.Algorithm,
		c.CadenceMS,
		c.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("challenge already exists", slog.String("challenge_id", c.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrChallengeExists, err)
		}
		log.Error("failed to create challenge",
			slog.String("error", err.Error()),
			slog.String("challenge_id", c.ID.String()))
		return MapError(err)
	}

	log.Info("challenge created successfully",
		slog.String("challenge_id", c.ID.String()),
		slog.Int("cadence_ms", c.CadenceMS))
	return nil
}

// GetByID implements store.ChallengeStore.GetByID.
func (s *PostgresChallengeStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Challenge, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, formula_type, digit_count, operation_count, seed,
			ensure_positive, algorithm, cadence_ms, created_at
		FROM challenges
		WHERE id = $1
	`

	c, err := scanChallenge(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("challenge not found", slog.String("challenge_id", id.String()))
			return nil, store.ErrChallengeNotFound
		}
		log.Error("failed to get challenge by ID",
			slog.String("error", err.Error()),
			slog.String("challenge_id", id.String()))
		return nil, MapError(err)
	}

	return c, nil
}

// List implements store.ChallengeStore.List.
func (s *PostgresChallengeStore) List(ctx context.Context, limit, offset int) ([]*domain.Challenge, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, title, formula_type, digit_count, operation_count, seed,
			ensure_positive, algorithm, cadence_ms, created_at
		FROM challenges
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list challenges", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	challenges := []*domain.Challenge{}
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return challenges, nil
}

// Delete implements store.ChallengeStore.Delete.
func (s *PostgresChallengeStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete challenge",
			slog.String("error", err.Error()),
			slog.String("challenge_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrChallengeNotFound); err != nil {
		return err
	}

	log.Info("challenge deleted successfully", slog.String("challenge_id", id.String()))
	return nil
}

// WithTx implements store.ChallengeStore.WithTx.
func (s *PostgresChallengeStore) WithTx(tx *sql.Tx) store.ChallengeStore {
	return &PostgresChallengeStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanChallenge(row rowScanner) (*domain.Challenge, error) {
	var c domain.Challenge
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Settings.FormulaType,
		&c.Settings.DigitCount,
		&c.Settings.OperationCount,
		&c.Settings.Seed,
		&c.Settings.EnsurePositive,
		&c.Settings.Algorithm,
		&c.CadenceMS,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
