package markdown

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrMalformedTable = errors.New("markdown: malformed table")
	ErrHeadingLevel   = errors.New("markdown: heading level out of range")
	ErrTableNotFound  = errors.New("markdown: inserted table not found")
	ErrNoDocument     = errors.New("markdown: tables need a target document")
)

const (
	CodeMalformedTable = "MALFORMED_TABLE"
	CodeHeadingLevel   = "HEADING_LEVEL"
	CodeTableNotFound  = "TABLE_NOT_FOUND"
	CodeNoDocument     = "NO_DOCUMENT"
	CodeRemoteFailure  = "REMOTE_FAILURE"
)

func inputError(err error, code, message string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).WithTextCode(code)
}

// RemoteError marks a failure of the target document. Compilation never
// retries these.
func RemoteError(err error, code, message string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}
