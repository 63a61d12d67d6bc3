package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/soroban-api/internal/api/shared"
	"github.com/phrazzld/soroban-api/internal/platform/logger"
	"github.com/phrazzld/soroban-api/internal/service"
)

// WorksheetHandler handles worksheet-related HTTP requests
type WorksheetHandler struct {
	worksheets service.WorksheetService
	newSeed    func() int64
	logger     *slog.Logger
}

// NewWorksheetHandler creates a new WorksheetHandler
func NewWorksheetHandler(worksheets service.WorksheetService, logger *slog.Logger) *WorksheetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorksheetHandler{
		worksheets: worksheets,
		newSeed:    randomSeed,
		logger:     logger.With(slog.String("component", "worksheet_handler")),
	}
}

// CreateWorksheet handles POST /api/worksheets requests
func (h *WorksheetHandler) CreateWorksheet(w http.ResponseWriter, r *http.Request) {
	var req CreateWorksheetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	view, err := h.worksheets.Create(r.Context(), service.CreateWorksheetRequest{
		Title:        req.Title,
		Settings:     req.Settings.toSettings(h.newSeed),
		ProblemCount: req.ProblemCount,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create worksheet")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

// ListWorksheets handles GET /api/worksheets requests
func (h *WorksheetHandler) ListWorksheets(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := getPagination(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	worksheets, err := h.worksheets.List(r.Context(), limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list worksheets")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, WorksheetListResponse{
		Worksheets: worksheets,
		Limit:      limit,
		Offset:     offset,
	})
}

// GetWorksheet handles GET /api/worksheets/{id} requests
func (h *WorksheetHandler) GetWorksheet(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	view, err := h.worksheets.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load worksheet")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// PrintWorksheet handles GET /api/worksheets/{id}/print requests with a
// printable HTML page.
func (h *WorksheetHandler) PrintWorksheet(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	page, err := h.worksheets.Render(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to render worksheet")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to write worksheet page",
			slog.String("worksheet_id", id.String()),
			slog.String("error", err.Error()))
	}
}

// DeleteWorksheet handles DELETE /api/worksheets/{id} requests
func (h *WorksheetHandler) DeleteWorksheet(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.worksheets.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete worksheet")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
