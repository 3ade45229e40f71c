package cli

import (
	"context"
	"errors"
)

type userInputError struct {
	err error
}

func (e *userInputError) Error() string {
	return e.err.Error()
}

func (e *userInputError) Unwrap() error {
	return e.err
}

func newUserInputError(err error) error {
	if err == nil {
		return nil
	}

	var inputErr *userInputError
	if errors.As(err, &inputErr) {
		return err
	}

	return &userInputError{err: err}
}

// ExitCode returns the process exit code for the provided error.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return 0
	}

	var inputErr *userInputError
	if errors.As(err, &inputErr) {
		return 2
	}

	return 1
}
