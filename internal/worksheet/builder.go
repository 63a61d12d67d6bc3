package worksheet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/soroban-api/internal/soroban"
	"github.com/phrazzld/soroban-api/internal/task"
)

// DefaultMaxProblems bounds the rows of one sheet unless overridden.
const DefaultMaxProblems = 200

const taskTypeRow = "worksheet_row"

// Spec describes a sheet to build. Config.Seed is the outer seed.
type Spec struct {
	Title        string
	Config       soroban.Config
	ProblemCount int
}

// Row is one generated problem of a sheet.
type Row struct {
	Index   int              `json:"index"`
	Seed    int64            `json:"seed"`
	Problem *soroban.Problem `json:"problem"`
}

// Sheet is a built worksheet.
type Sheet struct {
	Title  string         `json:"title"`
	Config soroban.Config `json:"config"`
	Rows   []Row          `json:"rows"`
}

// Builder generates sheets on a worker pool. It holds no per-sheet state
// and may be shared.
type Builder struct {
	gen         *soroban.Generator
	workers     int
	maxProblems int
	logger      *slog.Logger
}

// BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

// WithWorkers sets the number of goroutines used per sheet.
func WithWorkers(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithMaxProblems sets the largest accepted ProblemCount.
func WithMaxProblems(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.maxProblems = n
		}
	}
}

// WithLogger sets the builder's logger.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder returns a Builder over gen, or the default generator when gen is nil.
func NewBuilder(gen *soroban.Generator, opts ...BuilderOption) *Builder {
	if gen == nil {
		gen = soroban.NewGenerator()
	}
	b := &Builder{
		gen:         gen,
		workers:     task.DefaultWorkerPoolConfig().WorkerCount,
		maxProblems: DefaultMaxProblems,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With(slog.String("component", "worksheet_builder"))
	return b
}

// MaxProblems returns the largest ProblemCount Build accepts.
func (b *Builder) MaxProblems() int {
	return b.maxProblems
}

// Build generates every row of spec. Each row task writes only its own
// slot, so the result is identical for any worker count.
func (b *Builder) Build(ctx context.Context, spec Spec) (*Sheet, error) {
	if spec.ProblemCount < 1 || spec.ProblemCount > b.maxProblems {
		return nil, &soroban.ConfigError{
			Field:   "problem_count",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", b.maxProblems, spec.ProblemCount),
		}
	}
	if err := b.gen.Validate(spec.Config); err != nil {
		return nil, err
	}

	rows := make([]Row, spec.ProblemCount)
	tasks := make([]task.Task, spec.ProblemCount)
	for i := range rows {
		cfg := spec.Config
		cfg.Seed = spec.Config.Seed + int64(i)
		tasks[i] = task.NewFuncTask(taskTypeRow, func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := b.gen.Generate(cfg)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			rows[i] = Row{Index: i, Seed: cfg.Seed, Problem: p}
			return nil
		})
	}

	if err := task.RunAll(ctx, tasks, b.workers, b.logger); err != nil {
		b.logger.Warn("worksheet build failed",
			slog.String("title", spec.Title),
			slog.String("error", err.Error()))
		return nil, err
	}

	b.logger.Debug("worksheet built",
		slog.String("title", spec.Title),
		slog.Int("rows", len(rows)),
		slog.Int("workers", b.workers))

	return &Sheet{Title: spec.Title, Config: spec.Config, Rows: rows}, nil
}
