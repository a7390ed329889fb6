package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", NewValidationError("bad input", "title is required"), IsValidation},
		{"not found", NewNotFoundError("resource"), IsNotFound},
		{"authentication", NewAuthenticationError(""), IsAuthentication},
		{"authorization", NewAuthorizationError(""), IsAuthorization},
		{"conflict", NewConflictError("folder is not empty", 3), IsConflict},
		{"timeout", NewTimeoutError("object storage"), IsTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.NotEmpty(t, tt.err.Error())

			// A wrapped error keeps its classification.
			wrapped := fmt.Errorf("handling request: %w", tt.err)
			assert.True(t, tt.check(wrapped))
		})
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	err := NewAuthorizationError("")
	assert.False(t, IsAuthentication(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
}

func TestConflictErrorCount(t *testing.T) {
	err := NewConflictError("department has resources", 12)

	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, 12, conflict.Count)
}

func TestExternalServiceErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewExternalServiceError("object storage", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "object storage")
}

func TestDefaultMessages(t *testing.T) {
	assert.Equal(t, "authentication required", NewAuthenticationError("").Error())
	assert.Equal(t, "insufficient permissions", NewAuthorizationError("").Error())
	assert.Equal(t, "resource not found", NewNotFoundError("resource").Error())
}
