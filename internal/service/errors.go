package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/soroban-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in ServiceError
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrWorksheetNotFound indicates that the worksheet does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrWorksheetNotFound = errors.New("worksheet not found")

	// ErrChallengeNotFound indicates that the challenge does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrChallengeNotFound = errors.New("challenge not found")
)

// ServiceError wraps errors from a service with the failing operation.
type ServiceError struct {
	// Service names the service (e.g., "worksheet", "challenge")
	Service string
	// Operation is the operation that failed (e.g., "create", "delete")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError. Store not-found errors come back
// as the service sentinels, unwrapped.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrWorksheetNotFound), errors.Is(err, store.ErrWorksheetNotFound):
		return ErrWorksheetNotFound
	case errors.Is(err, ErrChallengeNotFound), errors.Is(err, store.ErrChallengeNotFound):
		return ErrChallengeNotFound
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
