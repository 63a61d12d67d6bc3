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

// defaultListLimit is used when a List call passes a non-positive limit.
const defaultListLimit = 20

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// PostgresWorksheetStore implements store.WorksheetStore on PostgreSQL.
type PostgresWorksheetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWorksheetStore creates a worksheet store over db.
// If logger is nil, a default logger will be used.
func NewPostgresWorksheetStore(db store.DBTX, logger *slog.Logger) *PostgresWorksheetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWorksheetStore{
		db:     db,
		logger: logger.With(slog.String("component", "worksheet_store")),
	}
}

var _ store.WorksheetStore = (*PostgresWorksheetStore)(nil)

// Create implements store.WorksheetStore.Create.
func (s *PostgresWorksheetStore) Create(ctx context.Context, w *domain.Worksheet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if w.ID == uuid.Nil {
		return fmt.Errorf("%w: worksheet ID cannot be empty", store.ErrInvalidEntity)
	}

	query := `
		INSERT INTO worksheets (
			id, title, formula_type, digit_count, operation_count, seed,
			ensure_positive, algorithm, problem_count, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		w.ID,
		w.Title,
		w.Settings.FormulaType,
		w.Settings.DigitCount,
		w.Settings.OperationCount,
		w.Settings.Seed,
		w.Settings.EnsurePositive,
		w.Settings.Algorithm,
		w.ProblemCount,
		w.CreatedAt,
		w.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("worksheet already exists", slog.String("worksheet_id", w.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrWorksheetExists, err)
		}
		log.Error("failed to create worksheet",
			slog.String("error", err.Error()),
			slog.String("worksheet_id", w.ID.String()))
		return MapError(err)
	}

	log.Info("worksheet created successfully",
		slog.String("worksheet_id", w.ID.String()),
		slog.String("formula_type", w.Settings.FormulaType),
		slog.Int("problem_count", w.ProblemCount))
	return nil
}

// GetByID implements store.WorksheetStore.GetByID.
func (s *PostgresWorksheetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Worksheet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, formula_type, digit_count, operation_count, seed,
			ensure_positive, algorithm, problem_count, created_at, updated_at
		FROM worksheets
		WHERE id = $1
	`

	w, err := scanWorksheet(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("worksheet not found", slog.String("worksheet_id", id.String()))
			return nil, store.ErrWorksheetNotFound
		}
		log.Error("failed to get worksheet by ID",
			slog.String("error", err.Error()),
			slog.String("worksheet_id", id.String()))
		return nil, MapError(err)
	}

	return w, nil
}

// List implements store.WorksheetStore.List.
func (s *PostgresWorksheetStore) List(ctx context.Context, limit, offset int) ([]*domain.Worksheet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, title, formula_type, digit_count, operation_count, seed,
			ensure_positive, algorithm, problem_count, created_at, updated_at
		FROM worksheets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list worksheets", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	sheets := []*domain.Worksheet{}
	for rows.Next() {
		w, err := scanWorksheet(rows)
		if err != nil {
			log.Error("failed to scan worksheet row", slog.String("error", err.Error()))
			return nil, err
		}
		sheets = append(sheets, w)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating worksheet rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed worksheets", slog.Int("count", len(sheets)))
	return sheets, nil
}

// Delete implements store.WorksheetStore.Delete.
func (s *PostgresWorksheetStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM worksheets WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete worksheet",
			slog.String("error", err.Error()),
			slog.String("worksheet_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrWorksheetNotFound); err != nil {
		log.Debug("worksheet not deleted",
			slog.String("worksheet_id", id.String()),
			slog.String("reason", err.Error()))
		return err
	}

	log.Info("worksheet deleted successfully", slog.String("worksheet_id", id.String()))
	return nil
}

// WithTx implements store.WorksheetStore.WithTx.
func (s *PostgresWorksheetStore) WithTx(tx *sql.Tx) store.WorksheetStore {
	return &PostgresWorksheetStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanWorksheet(row rowScanner) (*domain.Worksheet, error) {
	var w domain.Worksheet
	err := row.Scan(
		&w.ID,
		&w.Title,
		&w.Settings.FormulaType,
		&w.Settings.DigitCount,
		&w.Settings.OperationCount,
		&w.Settings.Seed,
		&w.Settings.EnsurePositive,
		&w.Settings.Algorithm,
		&w.ProblemCount,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
