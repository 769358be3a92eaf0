// Package body turns loosely typed field values into ADF documents. Callers
// may hand over Markdown, plain text, a typed document, or an ADF document
// that is already serialised; the resolver decides which one it got.
package body

import (
	"encoding/json"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-adf/internal/logging"
	schema "github.com/goliatone/go-adf/internal/validation"
	"github.com/goliatone/go-adf/pkg/document"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

// Source names where a resolved document came from.
type Source string

const (
	SourceADF      Source = "adf"
	SourceDocument Source = "document"
	SourceMarkdown Source = "markdown"
	SourcePlain    Source = "plain"
)

// Request is a single body value to resolve. Field names the input for
// error messages and log entries.
type Request struct {
	Field string `json:"field,omitempty"`
	Value any    `json:"value"`
}

// Validate rejects nil values, nil string pointers and strings that hold
// only whitespace. Zero numbers, false and empty maps are present values;
// Resolve reports them as unsupported or invalid ADF instead.
func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Value, validation.By(presentValue)),
	)
}

func presentValue(value any) error {
	switch v := value.(type) {
	case nil:
		return validation.NewError("body.value_required", "value is required")
	case string:
		if strings.TrimSpace(v) == "" {
			return validation.NewError("body.value_blank", "value must not be blank")
		}
	case *string:
		if v == nil {
			return validation.NewError("body.value_required", "value is required")
		}
		if strings.TrimSpace(*v) == "" {
			return validation.NewError("body.value_blank", "value must not be blank")
		}
	}
	return nil
}

// Result is a resolved body. Exactly one of Raw and Document is set.
type Result struct {
	Field    string
	Source   Source
	Raw      map[string]any
	Document *document.Doc
}

// Payload returns the value to serialise: the caller's ADF map untouched, or
// the typed document.
func (r *Result) Payload() any {
	if r == nil {
		return nil
	}
	if r.Raw != nil {
		return r.Raw
	}
	return r.Document
}

// Options toggles the resolution paths.
type Options struct {
	// DetectMarkdown sends strings that look like Markdown through the
	// converter. When false every string becomes a literal paragraph.
	DetectMarkdown bool
	// AllowADF accepts ADF maps and JSON strings. When false, maps are
	// unsupported and JSON strings are handled as text.
	AllowADF bool
}

// DefaultOptions enables every path.
func DefaultOptions() Options {
	return Options{DetectMarkdown: true, AllowADF: true}
}

// Resolver resolves body values. It is stateless and safe to share.
type Resolver struct {
	converter interfaces.MarkdownConverter
	detector  interfaces.MarkdownDetector
	opts      Options
	logger    interfaces.Logger
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for resolution entries.
func WithLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithOptions overrides DefaultOptions.
func WithOptions(opts Options) ResolverOption {
	return func(r *Resolver) {
		r.opts = opts
	}
}

// NewResolver builds a resolver on top of a converter and a detector. Both
// are usually the same markdown.Service.
func NewResolver(converter interfaces.MarkdownConverter, detector interfaces.MarkdownDetector, opts ...ResolverOption) *Resolver {
	if converter == nil {
		panic("body: converter cannot be nil")
	}
	if detector == nil {
		panic("body: detector cannot be nil")
	}
	r := &Resolver{
		converter: converter,
		detector:  detector,
		opts:      DefaultOptions(),
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve inspects req.Value and returns the document it describes.
func (r *Resolver) Resolve(req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, failure(CodeRequired, req.Field, fmt.Errorf("%w: %v", ErrBodyRequired, err), nil)
	}

	result, err := r.resolve(req)
	if err != nil {
		logging.WithBodyContext(r.logger, req.Field, "").Debug("body.resolve.rejected", "error", err)
		return nil, err
	}
	result.Field = req.Field
	logging.WithBodyContext(r.logger, req.Field, string(result.Source)).Debug("body.resolve.completed")
	return result, nil
}

func (r *Resolver) resolve(req Request) (*Result, error) {
	switch value := req.Value.(type) {
	case string:
		return r.resolveString(req.Field, value)
	case *string:
		if value == nil {
			return nil, failure(CodeRequired, req.Field, ErrBodyRequired, nil)
		}
		return r.resolve(Request{Field: req.Field, Value: *value})
	case map[string]any:
		if !r.opts.AllowADF {
			return nil, failure(CodeUnsupported, req.Field, fmt.Errorf("%w: map", ErrUnsupportedType), nil)
		}
		return r.resolveMap(req.Field, value)
	case *document.Doc:
		if value == nil {
			return nil, failure(CodeRequired, req.Field, ErrBodyRequired, nil)
		}
		return &Result{Source: SourceDocument, Document: value}, nil
	case document.Doc:
		doc := document.New(value.Content...)
		return &Result{Source: SourceDocument, Document: doc}, nil
	default:
		return nil, failure(CodeUnsupported, req.Field, fmt.Errorf("%w: %T", ErrUnsupportedType, req.Value), nil)
	}
}

func (r *Resolver) resolveString(field, value string) (*Result, error) {
	trimmed := strings.TrimSpace(value)
	if r.opts.AllowADF && strings.HasPrefix(trimmed, "{") {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
			return nil, failure(CodeInvalidADF, field, fmt.Errorf("%w: %v", ErrInvalidADF, err), nil)
		}
		return r.resolveMap(field, decoded)
	}

	if r.opts.DetectMarkdown && r.detector.LooksLikeMarkdown(value) {
		return &Result{Source: SourceMarkdown, Document: r.converter.Convert(value)}, nil
	}
	return &Result{Source: SourcePlain, Document: document.Plain(value)}, nil
}

func (r *Resolver) resolveMap(field string, value map[string]any) (*Result, error) {
	if err := schema.ValidateEnvelope(value); err != nil {
		return nil, failure(CodeInvalidADF, field, ErrInvalidADF, schema.Issues(err))
	}
	return &Result{Source: SourceADF, Raw: value}, nil
}
