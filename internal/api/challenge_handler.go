package api

import (
	"net/http"

	"github.com/phrazzld/soroban-api/internal/api/shared"
	"github.com/phrazzld/soroban-api/internal/service"
)

// ChallengeHandler handles live challenge HTTP requests
type ChallengeHandler struct {
	challenges service.ChallengeService
	newSeed    func() int64
}

// NewChallengeHandler creates a new ChallengeHandler
func NewChallengeHandler(challenges service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		challenges: challenges,
		newSeed:    randomSeed,
	}
}

// CreateChallenge handles POST /api/challenges requests
func (h *ChallengeHandler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req CreateChallengeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	view, err := h.challenges.Create(r.Context(), service.CreateChallengeRequest{
		Title:     req.Title,
		Settings:  req.Settings.toSettings(h.newSeed),
		CadenceMS: req.CadenceMS,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create challenge")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

// ListChallenges handles GET /api/challenges requests
func (h *ChallengeHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := getPagination(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	challenges, err := h.challenges.List(r.Context(), limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list challenges")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ChallengeListResponse{
		Challenges: challenges,
		Limit:      limit,
		Offset:     offset,
	})
}

// GetChallenge handles GET /api/challenges/{id} requests
func (h *ChallengeHandler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	view, err := h.challenges.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load challenge")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// GetTicks handles GET /api/challenges/{id}/ticks requests
func (h *ChallengeHandler) GetTicks(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ticks, err := h.challenges.Schedule(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to schedule challenge")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTicksResponse(id, ticks))
}

// SubmitAnswer handles POST /api/challenges/{id}/answers requests
func (h *ChallengeHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.challenges.CheckAnswer(r.Context(), id, *req.Answer)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check answer")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// DeleteChallenge handles DELETE /api/challenges/{id} requests
func (h *ChallengeHandler) DeleteChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.challenges.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete challenge")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
