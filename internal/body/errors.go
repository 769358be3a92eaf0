package body

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-adf/internal/validation"
)

const (
	CodeRequired    = "BODY_REQUIRED"
	CodeInvalidADF  = "BODY_INVALID_ADF"
	CodeUnsupported = "BODY_UNSUPPORTED"
)

var (
	ErrBodyRequired    = errors.New("body: value is required")
	ErrInvalidADF      = errors.New("body: invalid ADF document")
	ErrUnsupportedType = errors.New("body: unsupported value type")
)

// ResolveError describes why a body value could not be resolved. It is
// returned wrapped in a go-errors validation error carrying Code as text code.
type ResolveError struct {
	Code   string
	Field  string
	Issues []validation.ValidationIssue
	Err    error
}

func (e *ResolveError) Error() string {
	var b strings.Builder
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString(strings.ToLower(e.Code))
	}
	if len(e.Issues) > 0 {
		parts := make([]string, 0, len(e.Issues))
		for _, issue := range e.Issues {
			location := issue.Location
			if location == "" {
				location = "#"
			}
			parts = append(parts, fmt.Sprintf("%s %s", location, issue.Message))
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString(")")
	}
	return b.String()
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Code returns the resolution error code carried by err, or "" when err did
// not come from a Resolver.
func Code(err error) string {
	var resolveErr *ResolveError
	if errors.As(err, &resolveErr) && resolveErr != nil {
		return resolveErr.Code
	}
	return ""
}

func failure(code, field string, cause error, issues []validation.ValidationIssue) error {
	resolveErr := &ResolveError{
		Code:   code,
		Field:  field,
		Issues: issues,
		Err:    cause,
	}
	return goerrors.Wrap(resolveErr, goerrors.CategoryValidation, resolveErr.Error()).
		WithTextCode(code)
}
