package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/soroban-api/internal/domain"
	"github.com/phrazzld/soroban-api/internal/drill"
	"github.com/phrazzld/soroban-api/internal/platform/logger"
	"github.com/phrazzld/soroban-api/internal/soroban"
	"github.com/phrazzld/soroban-api/internal/store"
)

// DefaultCadenceMS is used when neither the request nor the service
// configuration names a cadence.
const DefaultCadenceMS = 1000

// CreateChallengeRequest carries the settings for a new live challenge.
// A zero CadenceMS selects the service default.
type CreateChallengeRequest struct {
	Title     string
	Settings  domain.GenerationSettings
	CadenceMS int
}

// ChallengeView is a stored challenge with its regenerated problem.
type ChallengeView struct {
	Challenge *domain.Challenge `json:"challenge"`
	Problem   *soroban.Problem  `json:"problem"`
}

// AnswerResult is the outcome of checking one participant answer.
type AnswerResult struct {
	Correct  bool `json:"correct"`
	Answer   int  `json:"answer"`
	Expected int  `json:"expected"`
}

// ChallengeService manages shared live drills.
type ChallengeService interface {
	Create(ctx context.Context, req CreateChallengeRequest) (*ChallengeView, error)
	Get(ctx context.Context, id uuid.UUID) (*ChallengeView, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Challenge, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Schedule returns the reveal ticks of the challenge's problem.
	Schedule(ctx context.Context, id uuid.UUID) ([]drill.Tick, error)

	// CheckAnswer compares answer with the problem's final answer.
	CheckAnswer(ctx context.Context, id uuid.UUID, answer int) (*AnswerResult, error)
}

type challengeServiceImpl struct {
	store          store.ChallengeStore
	inTx           Transactor
	gen            *soroban.Generator
	defaultCadence int
	logger         *slog.Logger
}

// NewChallengeService creates a ChallengeService. A non-positive
// defaultCadenceMS selects DefaultCadenceMS.
func NewChallengeService(
	challengeStore store.ChallengeStore,
	inTx Transactor,
	gen *soroban.Generator,
	defaultCadenceMS int,
	logger *slog.Logger,
) (ChallengeService, error) {
	if challengeStore == nil {
		return nil, &ServiceError{Service: "challenge", Operation: "create_service", Message: "store cannot be nil"}
	}
	if inTx == nil {
		return nil, &ServiceError{Service: "challenge", Operation: "create_service", Message: "transactor cannot be nil"}
	}
	if gen == nil {
		gen = soroban.NewGenerator()
	}
	if defaultCadenceMS <= 0 {
		defaultCadenceMS = DefaultCadenceMS
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &challengeServiceImpl{
		store:          challengeStore,
		inTx:           inTx,
		gen:            gen,
		defaultCadence: defaultCadenceMS,
		logger:         logger.With(slog.String("component", "challenge_service")),
	}, nil
}

func (s *challengeServiceImpl) Create(ctx context.Context, req CreateChallengeRequest) (*ChallengeView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cadence := req.CadenceMS
	if cadence == 0 {
		cadence = s.defaultCadence
	}

	c, err := domain.NewChallenge(req.Title, req.Settings, cadence, s.gen)
	if err != nil {
		return nil, err
	}

	problem, err := s.gen.Generate(c.Settings.Config())
	if err != nil {
		log.Warn("challenge problem generation failed", slog.String("error", err.Error()))
		return nil, err
	}

	err = s.inTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.store.WithTx(tx).Create(ctx, c)
	})
	if err != nil {
		log.Error("failed to store challenge",
			slog.String("challenge_id", c.ID.String()),
			slog.String("error", err.Error()))
		return nil, NewServiceError("challenge", "create", "failed to store challenge", err)
	}

	log.Info("challenge created",
		slog.String("challenge_id", c.ID.String()),
		slog.Int("cadence_ms", c.CadenceMS))
	return &ChallengeView{Challenge: c, Problem: problem}, nil
}

func (s *challengeServiceImpl) Get(ctx context.Context, id uuid.UUID) (*ChallengeView, error) {
	c, problem, err := s.load(ctx, id, "get")
	if err != nil {
		return nil, err
	}
	return &ChallengeView{Challenge: c, Problem: problem}, nil
}

func (s *challengeServiceImpl) List(ctx context.Context, limit, offset int) ([]*domain.Challenge, error) {
	list, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, NewServiceError("challenge", "list", "failed to list challenges", err)
	}
	return list, nil
}

func (s *challengeServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.inTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.store.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return NewServiceError("challenge", "delete", "failed to delete challenge", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("challenge deleted",
		slog.String("challenge_id", id.String()))
	return nil
}

func (s *challengeServiceImpl) Schedule(ctx context.Context, id uuid.UUID) ([]drill.Tick, error) {
	c, problem, err := s.load(ctx, id, "schedule")
	if err != nil {
		return nil, err
	}

	player, err := drill.NewPlayer(c.Settings.FormulaType, c.Cadence(), s.logger)
	if err != nil {
		return nil, NewServiceError("challenge", "schedule", "invalid cadence", err)
	}
	if err := player.Verify(problem); err != nil {
		return nil, NewServiceError("challenge", "schedule", "problem failed verification", err)
	}
	return drill.Schedule(problem, c.Cadence())
}

func (s *challengeServiceImpl) CheckAnswer(ctx context.Context, id uuid.UUID, answer int) (*AnswerResult, error) {
	_, problem, err := s.load(ctx, id, "check_answer")
	if err != nil {
		return nil, err
	}

	result := &AnswerResult{
		Correct:  answer == problem.FinalAnswer,
		Answer:   answer,
		Expected: problem.FinalAnswer,
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("answer checked",
		slog.String("challenge_id", id.String()),
		slog.Bool("correct", result.Correct))
	return result, nil
}

func (s *challengeServiceImpl) load(
	ctx context.Context,
	id uuid.UUID,
	operation string,
) (*domain.Challenge, *soroban.Problem, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, nil, NewServiceError("challenge", operation, "failed to load challenge", err)
	}
	problem, err := s.gen.Generate(c.Settings.Config())
	if err != nil {
		return nil, nil, err
	}
	return c, problem, nil
}
