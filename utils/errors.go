package utils

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all services. Controllers translate kinds into
// HTTP status codes; services never translate, only classify.

// ValidationError reports malformed or missing input, with optional
// field-level messages.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// NotFoundError reports an absent or inactive entity.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Entity) }

func NewNotFoundError(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}

// AuthenticationError reports a missing or invalid identity (401).
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

func NewAuthenticationError(message string) *AuthenticationError {
	if message == "" {
		message = "authentication required"
	}
	return &AuthenticationError{Message: message}
}

// AuthorizationError reports a valid identity with insufficient role or
// ownership (403). Distinct from AuthenticationError so callers can pick
// the right response code.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

func NewAuthorizationError(message string) *AuthorizationError {
	if message == "" {
		message = "insufficient permissions"
	}
	return &AuthorizationError{Message: message}
}

// ConflictError reports a uniqueness violation or a delete blocked by
// dependent records; Count carries the number of blockers when known.
type ConflictError struct {
	Message string
	Count   int
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(message string, count int) *ConflictError {
	return &ConflictError{Message: message, Count: count}
}

// ExternalServiceError reports a failure in object storage or another
// collaborator.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func NewExternalServiceError(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Err: err}
}

// TimeoutError reports an external call that exceeded its deadline.
type TimeoutError struct {
	Service string
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("%s: operation timed out", e.Service) }

func NewTimeoutError(service string) *TimeoutError {
	return &TimeoutError{Service: service}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsAuthentication(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

func IsAuthorization(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsTimeout(err error) bool {
	var target *TimeoutError
	return errors.As(err, &target)
}
