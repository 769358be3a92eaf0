package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-adf/pkg/interfaces"
)

const (
	rootModule     = "adf"
	markdownModule = "adf.markdown"
	mentionModule  = "adf.mentions"
	bodyModule     = "adf.body"
)

const (
	fieldBodyField  = "body_field"
	fieldBodySource = "body_source"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. Entries carry the module
// name as a "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// MarkdownLogger returns the logger used by the conversion service.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// MentionLogger returns the logger used by mention diagnostics.
func MentionLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mentionModule)
}

// BodyLogger returns the logger used by body resolution.
func BodyLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, bodyModule)
}

// WithBodyContext tags a logger with the request field name and the resolved
// body source. Empty values are ignored.
func WithBodyContext(logger interfaces.Logger, field, source string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(field); trimmed != "" {
		fields[fieldBodyField] = trimmed
	}
	if trimmed := strings.TrimSpace(source); trimmed != "" {
		fields[fieldBodySource] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
