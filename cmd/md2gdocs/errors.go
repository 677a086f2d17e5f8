package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	goerrors "github.com/goliatone/go-errors"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitInput    = 65
	exitRemote   = 69
	exitConfig   = 78
	exitCanceled = 130
)

type errorCode string

const (
	errCodeConfig   errorCode = "config_error"
	errCodeInput    errorCode = "invalid_input"
	errCodeRemote   errorCode = "remote_error"
	errCodeCanceled errorCode = "canceled"
	errCodeInternal errorCode = "internal_error"
)

var errConfig = errors.New("configuration problem")

func configError(err error) error {
	return fmt.Errorf("%w: %w", errConfig, err)
}

// inputError marks a source file that could not be read as bad input.
func inputError(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).WithTextCode("INPUT_UNREADABLE")
}

func classify(err error) (errorCode, int) {
	switch {
	case errors.Is(err, errConfig):
		return errCodeConfig, exitConfig
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errCodeCanceled, exitCanceled
	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		return errCodeInput, exitInput
	case goerrors.IsCategory(err, goerrors.CategoryCommand):
		return errCodeRemote, exitRemote
	default:
		return errCodeInternal, exitFailure
	}
}

func exitCode(err error) int {
	_, code := classify(err)
	return code
}

func writeError(w io.Writer, err error) {
	code, _ := classify(err)
	s := newStyles(w)
	fmt.Fprintf(w, "%s %s %v\n", s.Failure.Render("error"), s.Dim.Render("["+string(code)+"]"), err)
}
