package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/soroban-api/internal/api/shared"
	"github.com/phrazzld/soroban-api/internal/domain"
	"github.com/phrazzld/soroban-api/internal/service"
	"github.com/phrazzld/soroban-api/internal/soroban"
	"github.com/phrazzld/soroban-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	// A generator that runs out of candidates needs a different
	// configuration; retrying the same one cannot help.
	case errors.Is(err, soroban.ErrGenerationExhausted):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, soroban.ErrInvalidConfig),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &verrs):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, service.ErrWorksheetNotFound),
		errors.Is(err, service.ErrChallengeNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var (
		configErr     *soroban.ConfigError
		validationErr *domain.ValidationError
		verrs         validator.ValidationErrors
	)

	switch {
	case errors.Is(err, soroban.ErrGenerationExhausted):
		return "No problem can be generated for these settings; choose a different formula or digit count"

	// Configuration and validation messages name a field and a bound, never
	// internal state, so they are passed through.
	case errors.As(err, &configErr):
		return fmt.Sprintf("Invalid %s: %s", configErr.Field, configErr.Message)

	case errors.As(err, &validationErr):
		if validationErr.Field == "" {
			return "Invalid request: " + validationErr.Message
		}
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)

	case errors.As(err, &verrs):
		return SanitizeValidationError(err)

	case errors.Is(err, soroban.ErrInvalidConfig):
		return "Invalid generator configuration"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, service.ErrWorksheetNotFound):
		return "Worksheet not found"

	case errors.Is(err, service.ErrChallengeNotFound):
		return "Challenge not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a message naming the
// first failing field. Other errors yield a generic message.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag(), fe.Param()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "must be at least " + param
	case "max", "lte":
		return "must be at most " + param
	case "oneof":
		return "must be one of " + param
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and message for err. A non-empty
// message replaces the default client message for 5xx errors only.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	userMessage := GetSafeErrorMessage(err)
	if message != "" && status >= http.StatusInternalServerError {
		userMessage = message
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
