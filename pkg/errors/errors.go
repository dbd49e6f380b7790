package errors

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInput           = errors.New("malformed input")
	ErrInsufficientTrainingData = errors.New("insufficient training data")
	ErrCorruptArtifact          = errors.New("corrupt model artifact")
	ErrFilesystemConflict       = errors.New("output directory conflict")
	ErrInvalidInput             = errors.New("invalid input")
	ErrInternal                 = errors.New("internal error")
)

// Process exit codes reported at the CLI boundary.
const (
	ExitOK                 = 0
	ExitInternal           = 1
	ExitMalformedInput     = 2
	ExitInsufficientData   = 3
	ExitCorruptArtifact    = 4
	ExitFilesystemConflict = 5
	ExitInvalidInput       = 6
)

type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, message string) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: message,
	}
}

func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
	}
}

// ExitCode maps an error to the process exit code reported at the CLI
// boundary.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	switch {
	case errors.Is(err, ErrMalformedInput):
		return ExitMalformedInput
	case errors.Is(err, ErrInsufficientTrainingData):
		return ExitInsufficientData
	case errors.Is(err, ErrCorruptArtifact):
		return ExitCorruptArtifact
	case errors.Is(err, ErrFilesystemConflict):
		return ExitFilesystemConflict
	case errors.Is(err, ErrInvalidInput):
		return ExitInvalidInput
	default:
		return ExitInternal
	}
}
