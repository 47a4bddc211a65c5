package services

import (
	"errors"
	"strings"
)

// Error kinds returned by the auth and task services. Controllers map these
// onto HTTP statuses; services never see status codes.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("not allowed to perform this action")
	ErrConflict           = errors.New("operation conflicts with current state")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// ValidationError aggregates every violation found at the operation
// boundary, not just the first one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// NewValidationError wraps the violations unless the list is empty.
func NewValidationError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}
