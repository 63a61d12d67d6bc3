package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/soroban-api/internal/domain"
	"github.com/phrazzld/soroban-api/internal/drill"
	"github.com/phrazzld/soroban-api/internal/soroban"
)

// SettingsRequest is the generation configuration shared by every create
// endpoint. An omitted seed is filled in by the server and echoed back.
type SettingsRequest struct {
	FormulaType    string `json:"formula_type"    validate:"required,max=64"`
	DigitCount     int    `json:"digit_count"     validate:"required,min=1,max=3"`
	OperationCount int    `json:"operation_count" validate:"required,min=1"`
	Seed           *int64 `json:"seed,omitempty"`
	EnsurePositive bool   `json:"ensure_positive"`
	Algorithm      string `json:"algorithm,omitempty" validate:"omitempty,max=32"`
}

// toSettings converts the request, drawing a seed from newSeed when none
// was given.
func (s SettingsRequest) toSettings(newSeed func() int64) domain.GenerationSettings {
	settings := domain.GenerationSettings{
		FormulaType:    s.FormulaType,
		DigitCount:     s.DigitCount,
		OperationCount: s.OperationCount,
		EnsurePositive: s.EnsurePositive,
		Algorithm:      s.Algorithm,
	}
	if s.Seed != nil {
		settings.Seed = *s.Seed
	} else {
		settings.Seed = newSeed()
	}
	return settings
}

// GenerateProblemRequest is the payload for POST /api/problems.
type GenerateProblemRequest struct {
	SettingsRequest

	// StrictFormula rejects unknown formula types instead of falling back
	// to the direct bead model.
	StrictFormula bool `json:"strict_formula"`
}

// ProblemResponse is a generated problem with the configuration that
// reproduces it.
type ProblemResponse struct {
	Config  soroban.Config   `json:"config"`
	Problem *soroban.Problem `json:"problem"`
}

// FormulasResponse lists the formula bindings a client may request.
type FormulasResponse struct {
	Formulas []soroban.Binding `json:"formulas"`
}

// CreateWorksheetRequest is the payload for POST /api/worksheets.
type CreateWorksheetRequest struct {
	Title        string          `json:"title"         validate:"required,max=200"`
	Settings     SettingsRequest `json:"settings"`
	ProblemCount int             `json:"problem_count" validate:"required,min=1"`
}

// WorksheetListResponse is one page of stored worksheets.
type WorksheetListResponse struct {
	Worksheets []*domain.Worksheet `json:"worksheets"`
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
}

// CreateChallengeRequest is the payload for POST /api/challenges. A zero
// cadence selects the server default.
type CreateChallengeRequest struct {
	Title     string          `json:"title"      validate:"required,max=200"`
	Settings  SettingsRequest `json:"settings"`
	CadenceMS int             `json:"cadence_ms" validate:"omitempty,min=100,max=60000"`
}

// ChallengeListResponse is one page of stored challenges.
type ChallengeListResponse struct {
	Challenges []*domain.Challenge `json:"challenges"`
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
}

// TicksResponse is the reveal schedule of a challenge.
type TicksResponse struct {
	ChallengeID uuid.UUID    `json:"challenge_id"`
	CadenceMS   int64        `json:"cadence_ms"`
	DurationMS  int64        `json:"duration_ms"`
	Ticks       []drill.Tick `json:"ticks"`
}

// newTicksResponse reads the cadence off the first operand tick.
func newTicksResponse(id uuid.UUID, ticks []drill.Tick) TicksResponse {
	var cadence time.Duration
	if len(ticks) > 1 {
		cadence = ticks[1].At
	}
	return TicksResponse{
		ChallengeID: id,
		CadenceMS:   cadence.Milliseconds(),
		DurationMS:  drill.Duration(ticks).Milliseconds(),
		Ticks:       ticks,
	}
}

// SubmitAnswerRequest is the payload for POST /api/challenges/{id}/answers.
type SubmitAnswerRequest struct {
	Answer *int `json:"answer" validate:"required"`
}
