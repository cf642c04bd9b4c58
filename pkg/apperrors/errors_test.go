package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("disk gone")
	err := Wrap(cause, CodeStorageError, "jobs", "Could not persist job")

	assert.Equal(t, "[jobs:STORAGE_ERROR] Could not persist job (disk gone)", err.Error())
	assert.True(t, Is(err, cause))

	var appErr *AppError
	require.True(t, As(fmt.Errorf("outer: %w", err), &appErr))
	assert.Equal(t, CodeStorageError, appErr.Code)
}

func TestDomainSentinels(t *testing.T) {
	assert.True(t, Is(ErrAlreadyApplied, ErrAlreadyApplied))
	assert.False(t, Is(ErrAlreadyApplied, ErrJobNotFound))
	assert.Equal(t, "Email already in use", ErrEmailAlreadyExists.Message)
}

func TestMarshalHidesCause(t *testing.T) {
	err := InternalError(errors.New("secret detail"))
	data, merr := json.Marshal(err)
	require.NoError(t, merr)
	assert.NotContains(t, string(data), "secret detail")
	assert.Contains(t, string(data), string(CodeInternalError))
}
