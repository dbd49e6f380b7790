package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorWrapsSentinel(t *testing.T) {
	err := Newf(ErrMalformedInput, "line %d: bad json", 7)

	require.ErrorIs(t, err, ErrMalformedInput)
	assert.Equal(t, "malformed input: line 7: bad json", err.Error())

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "line 7: bad json", appErr.Message)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{New(ErrMalformedInput, "x"), ExitMalformedInput},
		{New(ErrInsufficientTrainingData, "x"), ExitInsufficientData},
		{New(ErrCorruptArtifact, "x"), ExitCorruptArtifact},
		{New(ErrFilesystemConflict, "x"), ExitFilesystemConflict},
		{New(ErrInvalidInput, "x"), ExitInvalidInput},
		{errors.New("something else"), ExitInternal},
		{fmt.Errorf("wrapped: %w", New(ErrCorruptArtifact, "x")), ExitCorruptArtifact},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err))
	}
}
