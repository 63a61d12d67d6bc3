package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/soroban-api/internal/platform/logger"
	"github.com/phrazzld/soroban-api/internal/soroban"
)

// GeneratorService produces single problems without persisting anything.
type GeneratorService interface {
	// Generate builds one problem for cfg.
	Generate(ctx context.Context, cfg soroban.Config) (*soroban.Problem, error)

	// Formulas lists the selectable formula types.
	Formulas() []soroban.Binding
}

type generatorServiceImpl struct {
	gen    *soroban.Generator
	logger *slog.Logger
}

// NewGeneratorService returns a GeneratorService over gen.
func NewGeneratorService(gen *soroban.Generator, logger *slog.Logger) GeneratorService {
	if gen == nil {
		gen = soroban.NewGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &generatorServiceImpl{
		gen:    gen,
		logger: logger.With(slog.String("component", "generator_service")),
	}
}

func (s *generatorServiceImpl) Generate(ctx context.Context, cfg soroban.Config) (*soroban.Problem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	p, err := s.gen.Generate(cfg)
	if err != nil {
		log.Warn("problem generation failed",
			slog.String("formula_type", cfg.FormulaType),
			slog.Int("digit_count", cfg.DigitCount),
			slog.Int("operation_count", cfg.OperationCount),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("problem generated",
		slog.String("formula_type", soroban.Canonical(cfg.FormulaType)),
		slog.Int64("seed", cfg.Seed),
		slog.Int("final_answer", p.FinalAnswer))
	return p, nil
}

func (s *generatorServiceImpl) Formulas() []soroban.Binding {
	return soroban.Formulas()
}
