package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-adf/internal/body"
	"github.com/goliatone/go-adf/internal/markdown"
	"github.com/goliatone/go-adf/pkg/document"
)

const (
	convertMarkdownMessageType = "adf.markdown.convert"
	resolveBodyMessageType     = "adf.body.resolve"
)

// ConvertResult receives the output of a ConvertMarkdownCommand.
type ConvertResult struct {
	Document *document.Doc
	Report   markdown.Report
	// Detected reports whether the input looked like Markdown.
	Detected bool
}

// ConvertMarkdownCommand converts Markdown into an ADF document. Empty input
// is allowed and produces an empty document.
type ConvertMarkdownCommand struct {
	// Markdown is the source text.
	Markdown string `json:"markdown"`
	// DetectOnly skips conversion and only fills Result.Detected.
	DetectOnly bool `json:"detect_only,omitempty"`
	// Result is filled in by the handler.
	Result *ConvertResult `json:"-"`
}

// Type implements command.Message.
func (ConvertMarkdownCommand) Type() string { return convertMarkdownMessageType }

// Validate ensures a result sink is present before handlers execute.
func (cmd ConvertMarkdownCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Result, validation.NotNil.ErrorObject(
			validation.NewError("adf.markdown.convert.result_required", "result is required"),
		)),
	)
}

// ResolveBodyCommand resolves a loosely typed body value into a document.
type ResolveBodyCommand struct {
	// Field names the input in errors and log entries.
	Field string `json:"field,omitempty"`
	// Value is Markdown, plain text, ADF JSON, an ADF map or a typed document.
	Value any `json:"value"`
	// Result is filled in by the handler.
	Result *body.Result `json:"-"`
}

// Type implements command.Message.
func (ResolveBodyCommand) Type() string { return resolveBodyMessageType }

// Validate ensures the field name is well formed and a result sink is present.
// Value checks are left to the resolver so callers get body error codes.
func (cmd ResolveBodyCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Field, validation.By(func(value any) error {
			field, _ := value.(string)
			if field != strings.TrimSpace(field) {
				return validation.NewError("adf.body.resolve.field_untrimmed", "field must not have surrounding whitespace")
			}
			return nil
		})),
		validation.Field(&cmd.Result, validation.NotNil.ErrorObject(
			validation.NewError("adf.body.resolve.result_required", "result is required"),
		)),
	)
}
