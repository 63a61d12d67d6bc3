package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/soroban-api/internal/soroban"
)

// MaxTitleLength bounds worksheet and challenge titles.
const MaxTitleLength = 200

// Worksheet is a printable batch of problems. Only the generation settings
// are stored; row i is regenerated from Seed+i.
type Worksheet struct {
	ID           uuid.UUID          `json:"id"`
	Title        string             `json:"title"`
	Settings     GenerationSettings `json:"settings"`
	ProblemCount int                `json:"problem_count"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// NewWorksheet creates a validated Worksheet with a fresh ID.
// maxProblems bounds ProblemCount; gen supplies the generator limits.
func NewWorksheet(
	title string,
	settings GenerationSettings,
	problemCount, maxProblems int,
	gen *soroban.Generator,
) (*Worksheet, error) {
	now := time.Now().UTC()
	settings.normalize(gen)
	w := &Worksheet{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(title),
		Settings:     settings,
		ProblemCount: problemCount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := w.Validate(maxProblems, gen); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate checks if the Worksheet has valid data.
func (w *Worksheet) Validate(maxProblems int, gen *soroban.Generator) error {
	if w.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if err := validateTitle(w.Title); err != nil {
		return err
	}
	if w.ProblemCount < 1 || (maxProblems > 0 && w.ProblemCount > maxProblems) {
		return NewValidationError("problem_count", "is out of range", ErrValidation)
	}
	return w.Settings.Validate(gen)
}

// RowSeed returns the seed used for row i of the sheet.
func (w *Worksheet) RowSeed(i int) int64 {
	return w.Settings.Seed + int64(i)
}

func validateTitle(title string) error {
	if title == "" {
		return NewValidationError("title", "cannot be empty", ErrValidation)
	}
	if len(title) > MaxTitleLength {
		return NewValidationError("title", "is too long", ErrValidation)
	}
	return nil
}
