package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/soroban-api/internal/domain"
	"github.com/phrazzld/soroban-api/internal/platform/logger"
	"github.com/phrazzld/soroban-api/internal/soroban"
	"github.com/phrazzld/soroban-api/internal/store"
	"github.com/phrazzld/soroban-api/internal/worksheet"
)

// CreateWorksheetRequest carries the settings for a new worksheet.
type CreateWorksheetRequest struct {
	Title        string
	Settings     domain.GenerationSettings
	ProblemCount int
}

// WorksheetView is a stored worksheet with its regenerated rows.
type WorksheetView struct {
	Worksheet *domain.Worksheet `json:"worksheet"`
	Rows      []worksheet.Row   `json:"rows"`
	Summary   worksheet.Summary `json:"summary"`
}

// WorksheetService manages printable worksheets.
type WorksheetService interface {
	// Create validates and stores a worksheet, returning it with its rows.
	Create(ctx context.Context, req CreateWorksheetRequest) (*WorksheetView, error)

	// Get loads a worksheet and regenerates its rows.
	Get(ctx context.Context, id uuid.UUID) (*WorksheetView, error)

	// List returns stored worksheets, newest first.
	List(ctx context.Context, limit, offset int) ([]*domain.Worksheet, error)

	// Delete removes a worksheet.
	Delete(ctx context.Context, id uuid.UUID) error

	// Render returns the printable HTML page of a worksheet.
	Render(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type worksheetServiceImpl struct {
	store   store.WorksheetStore
	inTx    Transactor
	builder *worksheet.Builder
	gen     *soroban.Generator
	logger  *slog.Logger
}

// NewWorksheetService creates a WorksheetService.
// It returns an error if any of the required dependencies are nil.
func NewWorksheetService(
	worksheetStore store.WorksheetStore,
	inTx Transactor,
	gen *soroban.Generator,
	builder *worksheet.Builder,
	logger *slog.Logger,
) (WorksheetService, error) {
	if worksheetStore == nil {
		return nil, &ServiceError{Service: "worksheet", Operation: "create_service", Message: "store cannot be nil"}
	}
	if inTx == nil {
		return nil, &ServiceError{Service: "worksheet", Operation: "create_service", Message: "transactor cannot be nil"}
	}
	if gen == nil {
		gen = soroban.NewGenerator()
	}
	if builder == nil {
		builder = worksheet.NewBuilder(gen, worksheet.WithLogger(logger))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &worksheetServiceImpl{
		store:   worksheetStore,
		inTx:    inTx,
		builder: builder,
		gen:     gen,
		logger:  logger.With(slog.String("component", "worksheet_service")),
	}, nil
}

func (s *worksheetServiceImpl) Create(ctx context.Context, req CreateWorksheetRequest) (*WorksheetView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	w, err := domain.NewWorksheet(req.Title, req.Settings, req.ProblemCount, s.builder.MaxProblems(), s.gen)
	if err != nil {
		log.Debug("worksheet validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	// Build before persisting so a configuration that cannot generate is
	// never stored.
	view, err := s.view(ctx, w)
	if err != nil {
		return nil, err
	}

	err = s.inTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.store.WithTx(tx).Create(ctx, w)
	})
	if err != nil {
		log.Error("failed to store worksheet",
			slog.String("worksheet_id", w.ID.String()),
			slog.String("error", err.Error()))
		return nil, NewServiceError("worksheet", "create", "failed to store worksheet", err)
	}

	log.Info("worksheet created",
		slog.String("worksheet_id", w.ID.String()),
		slog.Int("problem_count", w.ProblemCount))
	return view, nil
}

func (s *worksheetServiceImpl) Get(ctx context.Context, id uuid.UUID) (*WorksheetView, error) {
	w, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("worksheet", "get", "failed to load worksheet", err)
	}
	return s.view(ctx, w)
}

func (s *worksheetServiceImpl) List(ctx context.Context, limit, offset int) ([]*domain.Worksheet, error) {
	sheets, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, NewServiceError("worksheet", "list", "failed to list worksheets", err)
	}
	return sheets, nil
}

func (s *worksheetServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.inTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.store.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return NewServiceError("worksheet", "delete", "failed to delete worksheet", err)
	}

	log.Info("worksheet deleted", slog.String("worksheet_id", id.String()))
	return nil
}

func (s *worksheetServiceImpl) Render(ctx context.Context, id uuid.UUID) ([]byte, error) {
	w, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("worksheet", "render", "failed to load worksheet", err)
	}
	sheet, err := s.build(ctx, w)
	if err != nil {
		return nil, err
	}
	return worksheet.RenderHTML(sheet), nil
}

func (s *worksheetServiceImpl) build(ctx context.Context, w *domain.Worksheet) (*worksheet.Sheet, error) {
	sheet, err := s.builder.Build(ctx, worksheet.Spec{
		Title:        w.Title,
		Config:       w.Settings.Config(),
		ProblemCount: w.ProblemCount,
	})
	if err != nil {
		// Generator errors keep their identity for status mapping.
		if errors.Is(err, soroban.ErrInvalidConfig) || errors.Is(err, soroban.ErrGenerationExhausted) {
			return nil, err
		}
		return nil, NewServiceError("worksheet", "build", "failed to generate worksheet", err)
	}
	return sheet, nil
}

func (s *worksheetServiceImpl) view(ctx context.Context, w *domain.Worksheet) (*WorksheetView, error) {
	sheet, err := s.build(ctx, w)
	if err != nil {
		return nil, err
	}
	summary, err := worksheet.Summarize(sheet)
	if err != nil {
		return nil, NewServiceError("worksheet", "summarize", "failed to summarize worksheet", err)
	}
	return &WorksheetView{Worksheet: w, Rows: sheet.Rows, Summary: summary}, nil
}
