package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct(t *testing.T) {
	type form struct {
		Name  string `json:"name" validate:"required,min=2"`
		Email string `json:"email" validate:"required,email"`
		Kind  string `json:"kind" validate:"omitempty,oneof=file link"`
	}

	assert.NoError(t, ValidateStruct(&form{Name: "Ada", Email: "ada@example.com", Kind: "file"}))

	err := ValidateStruct(&form{Name: "x", Email: "nope", Kind: "folder"})
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "name must be at least 2 characters long")
	assert.Contains(t, ve.Fields, "email must be a valid email address")
	assert.Contains(t, ve.Fields, "kind must be one of: file link")
}
