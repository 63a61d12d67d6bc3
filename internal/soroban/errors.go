package soroban

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when a generation configuration or a custom
	// rule table cannot be used.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrGenerationExhausted is returned when no legal candidate exists at some
	// step. The default tables never produce it; a malformed custom table can.
	ErrGenerationExhausted = errors.New("no legal operation available")
)

// ConfigError describes which field of a configuration was rejected.
// It wraps ErrInvalidConfig so callers can match it with errors.Is.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidConfig.Error(), e.Field, e.Message)
}

// Unwrap returns ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func configError(field, format string, args ...any) error {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ExhaustedError reports the state in which no candidate was left.
type ExhaustedError struct {
	Step      int
	Total     int
	OnesDigit int
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: step %d, total %d, ones digit %d",
		ErrGenerationExhausted.Error(), e.Step, e.Total, e.OnesDigit)
}

// Unwrap returns ErrGenerationExhausted.
func (e *ExhaustedError) Unwrap() error {
	return ErrGenerationExhausted
}
