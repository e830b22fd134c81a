package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=3,alphanum"`
	Bio      string `validate:"max=10"`
}

func TestValidateStructOK(t *testing.T) {
	err := ValidateStruct(sample{Email: "jane@example.com", Username: "jane42"})
	assert.NoError(t, err)
}

func TestValidateStructNonStruct(t *testing.T) {
	// Must error, not panic, when handed something validator cannot walk.
	assert.Error(t, ValidateStruct(42))
	assert.Error(t, ValidateStruct("not a struct"))
	assert.Error(t, ValidateStruct(nil))
}

func TestValidateStructMessages(t *testing.T) {
	err := ValidateStruct(sample{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email is required")
	assert.Contains(t, err.Error(), "Username is required")

	err = ValidateStruct(sample{Email: "nope", Username: "ab"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email must be a valid email")
	assert.Contains(t, err.Error(), "Username must be at least 3 characters")

	err = ValidateStruct(sample{Email: "jane@example.com", Username: "jane", Bio: "much too long bio"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bio must be at most 10 characters")
}
