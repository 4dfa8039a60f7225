package domain

import (
	"errors"
	"fmt"

	"fuelpass/internal/adapters/persistence/models"
)

// Common domain errors. Handlers map these onto HTTP status codes; callers
// can distinguish every kind with errors.Is / errors.As.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrAccessDenied       = errors.New("access denied")
	ErrConflict           = errors.New("conflicting concurrent update")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IllegalTransitionError reports a disallowed order status change,
// naming both states.
type IllegalTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.To)
}
