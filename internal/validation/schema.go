package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// EnvelopeSchema describes the outer shape every ADF document must have. Node
// contents are checked structurally only: a string type, optional attrs and
// marks, and nested content of the same shape.
const EnvelopeSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "type", "content"],
  "properties": {
    "version": {"const": 1},
    "type": {"const": "doc"},
    "content": {"type": "array", "items": {"$ref": "#/$defs/node"}}
  },
  "$defs": {
    "node": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": {"type": "string", "minLength": 1},
        "text": {"type": "string"},
        "attrs": {"type": "object"},
        "marks": {"type": "array", "items": {"$ref": "#/$defs/mark"}},
        "content": {"type": "array", "items": {"$ref": "#/$defs/node"}}
      }
    },
    "mark": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": {"type": "string", "minLength": 1},
        "attrs": {"type": "object"}
      }
    }
  }
}`

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with their JSON pointer
// locations.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

var (
	envelopeOnce   sync.Once
	envelopeSchema *jsonschema.Schema
	envelopeErr    error
)

func compiledEnvelope() (*jsonschema.Schema, error) {
	envelopeOnce.Do(func() {
		envelopeSchema, envelopeErr = compileSchema(EnvelopeSchema)
	})
	return envelopeSchema, envelopeErr
}

// ValidateEnvelope checks that payload is a decoded ADF document: version 1,
// type "doc" and a content array of typed nodes. payload must come from
// encoding/json decoding (maps, slices, float64 or json.Number).
func ValidateEnvelope(payload any) error {
	compiled, err := compiledEnvelope()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if err := compiled.Validate(payload); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

func compileSchema(schema string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", strings.NewReader(schema)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
