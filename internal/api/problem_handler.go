package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/soroban-api/internal/api/shared"
	"github.com/phrazzld/soroban-api/internal/platform/logger"
	"github.com/phrazzld/soroban-api/internal/service"
)

// ProblemHandler serves stateless problem generation.
type ProblemHandler struct {
	generator service.GeneratorService
	newSeed   func() int64
	logger    *slog.Logger
}

// NewProblemHandler creates a new ProblemHandler
func NewProblemHandler(generator service.GeneratorService, logger *slog.Logger) *ProblemHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProblemHandler{
		generator: generator,
		newSeed:   randomSeed,
		logger:    logger.With(slog.String("component", "problem_handler")),
	}
}

// ListFormulas handles GET /api/formulas requests
func (h *ProblemHandler) ListFormulas(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, FormulasResponse{Formulas: h.generator.Formulas()})
}

// GenerateProblem handles POST /api/problems requests
func (h *ProblemHandler) GenerateProblem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateProblemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	cfg := req.toSettings(h.newSeed).Config()
	cfg.StrictFormula = req.StrictFormula

	problem, err := h.generator.Generate(r.Context(), cfg)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate problem")
		return
	}

	log.Debug("problem generated", slog.Int64("seed", cfg.Seed))
	shared.RespondWithJSON(w, r, http.StatusOK, ProblemResponse{Config: cfg, Problem: problem})
}
