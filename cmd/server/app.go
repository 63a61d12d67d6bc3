package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/soroban-api/internal/config"
	"github.com/phrazzld/soroban-api/internal/platform/postgres"
	"github.com/phrazzld/soroban-api/internal/service"
	"github.com/phrazzld/soroban-api/internal/soroban"
	"github.com/phrazzld/soroban-api/internal/store"
	"github.com/phrazzld/soroban-api/internal/worksheet"
)

// application holds the shared dependencies of the server and releases
// them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	worksheetStore store.WorksheetStore
	challengeStore store.ChallengeStore

	generator        *soroban.Generator
	generatorService service.GeneratorService
	worksheetService service.WorksheetService
	challengeService service.ChallengeService
}

// newApplication wires the PostgreSQL stores and the services over db.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		worksheetStore: postgres.NewPostgresWorksheetStore(db, logger),
		challengeStore: postgres.NewPostgresChallengeStore(db, logger),
	}

	algorithm, err := soroban.ParseAlgorithm(cfg.Generator.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid generator algorithm: %w", err)
	}
	app.generator = soroban.NewGenerator(
		soroban.WithMaxOperations(cfg.Generator.MaxOperations),
		soroban.WithAlgorithm(algorithm),
	)
	app.generatorService = service.NewGeneratorService(app.generator, logger)

	builder := worksheet.NewBuilder(app.generator,
		worksheet.WithWorkers(cfg.Worksheet.WorkerCount),
		worksheet.WithMaxProblems(cfg.Worksheet.MaxProblems),
		worksheet.WithLogger(logger),
	)
	inTx := service.SQLTransactor(db)

	app.worksheetService, err = service.NewWorksheetService(app.worksheetStore, inTx, app.generator, builder, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create worksheet service: %w", err)
	}

	app.challengeService, err = service.NewChallengeService(
		app.challengeStore,
		inTx,
		app.generator,
		cfg.Challenge.DefaultCadenceMillis,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge service: %w", err)
	}

	logger.Info("application initialized",
		slog.String("algorithm", string(app.generator.Algorithm())),
		slog.Int("worksheet_workers", cfg.Worksheet.WorkerCount))
	return app, nil
}

// Run serves HTTP until ctx is canceled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}
	app.logger.Info("application shutdown completed")
}
