package main

import (
	"errors"

	taskerrors "github.com/abatilo/tasks/internal/errors"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
	exitNotFound   = 3
	exitCorrupt    = 4
)

// usageError wraps a command-line parsing failure.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

// invalidIDError reports a positional task ID that is not a positive integer.
func invalidIDError(arg string) error {
	return taskerrors.ValidationError{Field: "id", Value: arg, Reason: "must be a positive integer"}
}

// exitCode maps an error returned by a command to the process exit status.
func exitCode(err error) int {
	var (
		corrupt    taskerrors.CorruptStateError
		notFound   taskerrors.NotFoundError
		validation taskerrors.ValidationError
		usage      usageError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &corrupt):
		return exitCorrupt
	case errors.As(err, &notFound):
		return exitNotFound
	case errors.As(err, &validation), errors.As(err, &usage):
		return exitValidation
	default:
		return exitFailure
	}
}
