// Package adf converts Markdown into Atlassian Document Format (ADF)
// documents. Inline @[id:name] references become mention nodes, and a
// permissive detector tells callers whether a string is worth converting.
//
// The package level Convert and LooksLikeMarkdown use default settings. Use
// New for configured logging, mention user types, parser extensions, body
// resolution and command handlers.
package adf

import (
	"context"
	"sync"

	"github.com/goliatone/go-adf/internal/body"
	markdowncmd "github.com/goliatone/go-adf/internal/commands/markdown"
	"github.com/goliatone/go-adf/internal/detect"
	"github.com/goliatone/go-adf/internal/di"
	"github.com/goliatone/go-adf/internal/markdown"
	"github.com/goliatone/go-adf/pkg/document"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

// Document is the ADF root node.
type Document = document.Doc

// BodyRequest is a loosely typed body value to resolve.
type BodyRequest = body.Request

// BodyResult is a resolved body.
type BodyResult = body.Result

// Report describes a single conversion.
type Report = markdown.Report

// CommandHandlers groups the go-command handlers.
type CommandHandlers = markdowncmd.HandlerSet

// Module is the configured converter runtime.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Convert turns markdown into a document. It never fails; see Service.Convert.
func (m *Module) Convert(markdown string) *Document {
	return m.container.MarkdownService().Convert(markdown)
}

// ConvertWithReport is Convert plus a description of what happened.
func (m *Module) ConvertWithReport(markdown string) (*Document, Report) {
	return m.container.MarkdownService().ConvertWithReport(markdown)
}

// ConvertFile converts a Markdown file, returning its front matter when the
// module strips it.
func (m *Module) ConvertFile(ctx context.Context, path string) (*Document, map[string]any, error) {
	return m.container.MarkdownService().ConvertFile(ctx, path)
}

// LooksLikeMarkdown reports whether text carries Markdown or mention syntax.
func (m *Module) LooksLikeMarkdown(text string) bool {
	return m.container.MarkdownService().LooksLikeMarkdown(text)
}

// ResolveBody resolves a field value into a document or a validated ADF map.
func (m *Module) ResolveBody(req BodyRequest) (*BodyResult, error) {
	return m.container.BodyResolver().Resolve(req)
}

// Commands returns the command handlers, or nil unless Features.Commands is set.
func (m *Module) Commands() *CommandHandlers {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CommandHandlers()
}

// Converter exposes the conversion service behind the shared interface.
func (m *Module) Converter() interfaces.MarkdownConverter {
	return m.container.MarkdownService()
}

var defaultService = sync.OnceValue(func() *markdown.Service {
	return markdown.NewService(markdown.Config{})
})

// Convert turns markdown into a document with default settings. Empty or
// whitespace-only input yields an empty document. Input the lexer cannot
// handle yields a single paragraph holding the raw text.
func Convert(markdown string) *Document {
	return defaultService().Convert(markdown)
}

// LooksLikeMarkdown reports whether text carries any Markdown or mention syntax.
func LooksLikeMarkdown(text string) bool {
	return detect.LooksLikeMarkdown(text)
}

// Plain wraps text verbatim in a single-paragraph document.
func Plain(text string) *Document {
	return document.Plain(text)
}
