package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/auth-api/internal/payload"
)

func TestValidateStruct_Valid(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	messages := v.ValidateStruct(payload.SignupRequest{
		Name:     "A",
		Email:    "a@x.com",
		Password: "Abc12345!",
	})
	assert.Nil(t, messages)
}

func TestValidateStruct_MissingFields(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	messages := v.ValidateStruct(payload.SignupRequest{})
	require.Len(t, messages, 3)
	for _, msg := range messages {
		assert.Contains(t, msg, "required")
	}
}

func TestValidateStruct_InvalidEmail(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	messages := v.ValidateStruct(payload.SignupRequest{
		Name:     "A",
		Email:    "not-an-email",
		Password: "Abc12345!",
	})
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "email")
}
