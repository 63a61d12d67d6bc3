package domain

import (
	"errors"

	"github.com/phrazzld/soroban-api/internal/soroban"
)

// GenerationSettings is the persisted subset of soroban.Config shared by
// worksheets and challenges. The seed is stored so any problem can be
// regenerated on demand instead of storing its sequence.
type GenerationSettings struct {
	FormulaType    string `json:"formula_type"`
	DigitCount     int    `json:"digit_count"`
	OperationCount int    `json:"operation_count"`
	Seed           int64  `json:"seed"`
	EnsurePositive bool   `json:"ensure_positive"`
	Algorithm      string `json:"algorithm"`
}

// Config converts the settings into a generator configuration. The formula
// type is canonicalized so the stored value is stable.
func (s GenerationSettings) Config() soroban.Config {
	return soroban.Config{
		FormulaType:          s.FormulaType,
		DigitCount:           s.DigitCount,
		OperationCount:       s.OperationCount,
		Seed:                 s.Seed,
		EnsurePositiveResult: s.EnsurePositive,
		Algorithm:            soroban.Algorithm(s.Algorithm),
	}
}

// Validate checks the settings with gen's limits. Generator errors come back
// as ValidationErrors naming the offending field.
func (s GenerationSettings) Validate(gen *soroban.Generator) error {
	if gen == nil {
		gen = soroban.NewGenerator()
	}
	err := gen.Validate(s.Config())
	if err == nil {
		return nil
	}
	var cfgErr *soroban.ConfigError
	if errors.As(err, &cfgErr) {
		return NewValidationError(cfgErr.Field, cfgErr.Message, ErrValidation)
	}
	return NewValidationError("", err.Error(), ErrValidation)
}

// normalize canonicalizes FormulaType and resolves an empty Algorithm to
// gen's default, so stored settings regenerate identically even if the
// configured default later changes.
func (s *GenerationSettings) normalize(gen *soroban.Generator) {
	if gen == nil {
		gen = soroban.NewGenerator()
	}
	s.FormulaType = soroban.Canonical(s.FormulaType)
	if alg, err := gen.ResolveAlgorithm(s.Config()); err == nil {
		s.Algorithm = string(alg)
	}
}
