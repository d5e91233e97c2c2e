package utils

import (
	"errors"
	"testing"

	apperrors "equipment-tracker/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("Correct-Horse-9")
	require.NoError(t, err)
	assert.NotEqual(t, "Correct-Horse-9", hashed)

	assert.NoError(t, ComparePasswords(hashed, "Correct-Horse-9"))
	assert.Error(t, ComparePasswords(hashed, "correct-horse-9"))
}

func TestValidateReportsFields(t *testing.T) {
	type form struct {
		Email string `validate:"required"`
		Token string `validate:"required,uuid"`
	}
	cv := NewValidator(validator.New())

	err := cv.Validate(&form{Token: "nope"})
	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"email", "token"}, vErr.Fields)

	var raw validator.ValidationErrors
	assert.True(t, errors.As(err, &raw))

	assert.NoError(t, cv.Validate(&form{Email: "a", Token: "6f1c1c9e-3f5d-4f7a-9a41-1a2b3c4d5e6f"}))
}
