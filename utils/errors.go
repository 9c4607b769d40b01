package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy for the cleaning tracker. Controllers map these onto
// HTTP codes with RespondAppError; anything unrecognized is a store
// failure whose cause is logged, not leaked.

// ValidationError: bad input shape or domain (unknown location, empty
// report text, duplicate email). No state change happened.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// AuthError: failed authentication. Deliberately generic so callers
// cannot tell an inactive account from bad credentials.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

var ErrInvalidOrInactive = &AuthError{Message: "usuario inactivo o credenciales incorrectas"}

// NotFoundError: the referenced record does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " no encontrado" }

// PreconditionFailedError: the record exists but is not in the state
// the operation requires (e.g. a report reviewed twice). Surfaced as
// "state already changed, refresh and retry", never retried silently.
type PreconditionFailedError struct {
	Message string
}

func (e *PreconditionFailedError) Error() string { return e.Message }

// ProvisionError: account provisioning ended half-done. Must stay
// distinguishable so an operator can reconcile by hand.
type ProvisionError struct {
	Message string
	Cause   error
}

func (e *ProvisionError) Error() string { return e.Message }
func (e *ProvisionError) Unwrap() error { return e.Cause }

// ErrNoPermission gates admin-only endpoints.
var ErrNoPermission = errors.New("no tienes permiso para esta operación")

// StatusForError maps the taxonomy to HTTP codes.
func StatusForError(err error) int {
	var (
		ve *ValidationError
		ae *AuthError
		nf *NotFoundError
		pf *PreconditionFailedError
		pe *ProvisionError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &ae):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNoPermission):
		return http.StatusForbidden
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &pf):
		return http.StatusConflict
	case errors.As(err, &pe):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
