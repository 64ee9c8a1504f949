package exceptions

import (
	"carecapture-service/internal/pkg/constvars"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNewCustomError(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrBatchSubmission(cause)

	assert.Equal(t, constvars.StatusBadGateway, err.StatusCode)
	assert.Equal(t, constvars.ErrClientSubmissionFailed, err.ClientMessage)
	assert.Contains(t, err.DevMessage, "connection refused")
	assert.True(t, errors.Is(err, cause))
	require.Len(t, err.Locations, 1)
	assert.Contains(t, err.Locations[0].File, "error_test.go")
}

func TestBuildNewCustomErrorWithoutCause(t *testing.T) {
	err := ErrSubmissionInProgress(nil, "d-1")

	assert.Equal(t, constvars.StatusConflict, err.StatusCode)
	assert.Equal(t, "submission lock for draft d-1 is held", err.DevMessage)
	assert.Nil(t, err.Unwrap())
}

func TestFormatValidationErrors(t *testing.T) {
	type payload struct {
		Name  string `validate:"required"`
		Level string `validate:"oneof=low high"`
		Count int    `validate:"min=2"`
	}
	err := validator.New().Struct(payload{Level: "mid", Count: 1})
	require.Error(t, err)

	assert.Equal(t, "name is required", FormatFirstValidationError(err))
	assert.Equal(t, "name is required, level must be one of [low, high], count must be at least 2", FormatAllValidationErrors(err))
	assert.Equal(t, constvars.ErrDevInvalidInput, FormatFirstValidationError(errors.New("other")))
}
