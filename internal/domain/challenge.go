package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/soroban-api/internal/soroban"
)

// Cadence limits for live challenges, in milliseconds.
const (
	MinCadenceMS = 100
	MaxCadenceMS = 60000
)

// Challenge is a shared live drill: every participant regenerates the same
// problem from Settings and watches it tick at CadenceMS.
type Challenge struct {
	ID        uuid.UUID          `json:"id"`
	Title     string             `json:"title"`
	Settings  GenerationSettings `json:"settings"`
	CadenceMS int                `json:"cadence_ms"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewChallenge creates a validated Challenge with a fresh ID.
func NewChallenge(
	title string,
	settings GenerationSettings,
	cadenceMS int,
	gen *soroban.Generator,
) (*Challenge, error) {
	settings.normalize(gen)
	c := &Challenge{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		Settings:  settings,
		CadenceMS: cadenceMS,
		CreatedAt: time.Now().UTC(),
	}

	if err := c.Validate(gen); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the Challenge has valid data.
func (c *Challenge) Validate(gen *soroban.Generator) error {
	if c.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if err := validateTitle(c.Title); err != nil {
		return err
	}
	if c.CadenceMS < MinCadenceMS || c.CadenceMS > MaxCadenceMS {
		return NewValidationError("cadence_ms", "is out of range", ErrValidation)
	}
	return c.Settings.Validate(gen)
}

// Cadence returns CadenceMS as a duration.
func (c *Challenge) Cadence() time.Duration {
	return time.Duration(c.CadenceMS) * time.Millisecond
}
