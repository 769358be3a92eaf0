package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes set on errors returned by Handler.Execute. Errors that already
// carry a go-errors code keep it, so body resolution failures surface their
// BODY_* code unchanged.
const (
	CodeInvalidCommand = "ADF_COMMAND_INVALID"
	CodeDisabled       = "ADF_COMMAND_DISABLED"
	CodeCanceled       = "ADF_COMMAND_CANCELED"
	CodeTimeout        = "ADF_COMMAND_TIMEOUT"
	CodeFailed         = "ADF_COMMAND_FAILED"
)

// ErrDisabled is returned by command functions when the commands feature is
// switched off after registration.
var ErrDisabled = errors.New("adf commands are disabled")

// ErrorCode returns the text code carried by an Execute error, or "" when err
// did not pass through a handler.
func ErrorCode(err error) string {
	var tagged *goerrors.Error
	if errors.As(err, &tagged) {
		return tagged.TextCode
	}
	return ""
}

// Rejected reports whether err blames the caller's input (an invalid command
// or an unresolvable body) rather than the converter.
func Rejected(err error) bool {
	return goerrors.HasCategory(err, goerrors.CategoryValidation)
}

// invalidCommand retags go-command's validation errors with the adf code.
func invalidCommand(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid adf command").
		WithTextCode(CodeInvalidCommand)
}

func interrupted(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "adf command timed out").
			WithTextCode(CodeTimeout)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "adf command canceled").
		WithTextCode(CodeCanceled)
}

// classify tags an error returned by a command function. Unrecognised errors
// fall back to CodeFailed.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case goerrors.IsWrapped(err):
		return err
	case errors.Is(err, ErrDisabled):
		return goerrors.Wrap(err, goerrors.CategoryOperation, "adf commands are disabled").
			WithTextCode(CodeDisabled)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return interrupted(err)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "adf command failed").
			WithTextCode(CodeFailed)
	}
}
