package markdowncmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-adf/internal/body"
	"github.com/goliatone/go-adf/internal/commands"
	"github.com/goliatone/go-adf/internal/logging"
	"github.com/goliatone/go-adf/internal/markdown"
	"github.com/goliatone/go-adf/pkg/document"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

const (
	convertOperation = "markdown.convert"
	resolveOperation = "body.resolve"
)

// ErrCommandsDisabled is returned when the commands feature flag is off at runtime.
var ErrCommandsDisabled = commands.ErrDisabled

// Converter is the conversion contract the convert handler needs.
type Converter interface {
	interfaces.MarkdownDetector
	ConvertWithReport(text string) (*document.Doc, markdown.Report)
}

// BodyResolver is the resolution contract the resolve handler needs.
type BodyResolver interface {
	Resolve(req body.Request) (*body.Result, error)
}

var (
	_ command.Commander[ConvertMarkdownCommand] = (*ConvertMarkdownHandler)(nil)
	_ command.Commander[ResolveBodyCommand]     = (*ResolveBodyHandler)(nil)
)

// ConvertMarkdownHandler runs Markdown conversion through the shared command handler foundation.
type ConvertMarkdownHandler struct {
	inner *commands.Handler[ConvertMarkdownCommand]
}

// NewConvertMarkdownHandler creates a handler bound to the supplied converter.
func NewConvertMarkdownHandler(converter Converter, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ConvertMarkdownCommand]) *ConvertMarkdownHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ConvertMarkdownCommand) error {
		if !gates.commandsEnabled() {
			return ErrCommandsDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg.Result.Detected = converter.LooksLikeMarkdown(msg.Markdown)
		if msg.DetectOnly {
			return nil
		}

		doc, report := converter.ConvertWithReport(msg.Markdown)
		msg.Result.Document = doc
		msg.Result.Report = report

		logging.WithFields(baseLogger, map[string]any{
			"blocks":   report.Blocks,
			"mentions": report.Mentions,
			"fallback": report.Fallback,
		}).WithContext(ctx).Info("markdown.command.convert.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ConvertMarkdownCommand]{
		commands.WithLogger[ConvertMarkdownCommand](baseLogger),
		commands.WithOperation[ConvertMarkdownCommand](convertOperation),
		commands.WithMessageFields[ConvertMarkdownCommand](func(msg ConvertMarkdownCommand) map[string]any {
			fields := map[string]any{
				"length": len(msg.Markdown),
			}
			if msg.DetectOnly {
				fields["detect_only"] = true
			}
			return fields
		}),
		commands.WithTelemetry[ConvertMarkdownCommand](commands.DefaultTelemetry[ConvertMarkdownCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConvertMarkdownHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ConvertMarkdownCommand].
func (h *ConvertMarkdownHandler) Execute(ctx context.Context, msg ConvertMarkdownCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ResolveBodyHandler runs body resolution through the shared command handler foundation.
type ResolveBodyHandler struct {
	inner *commands.Handler[ResolveBodyCommand]
}

// NewResolveBodyHandler creates a handler bound to the supplied resolver.
func NewResolveBodyHandler(resolver BodyResolver, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ResolveBodyCommand]) *ResolveBodyHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ResolveBodyCommand) error {
		if !gates.commandsEnabled() {
			return ErrCommandsDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := resolver.Resolve(body.Request{Field: msg.Field, Value: msg.Value})
		if err != nil {
			return err
		}
		*msg.Result = *result

		logging.WithBodyContext(baseLogger, msg.Field, string(result.Source)).
			WithContext(ctx).
			Info("markdown.command.resolve_body.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ResolveBodyCommand]{
		commands.WithLogger[ResolveBodyCommand](baseLogger),
		commands.WithOperation[ResolveBodyCommand](resolveOperation),
		commands.WithMessageFields[ResolveBodyCommand](func(msg ResolveBodyCommand) map[string]any {
			if msg.Field == "" {
				return nil
			}
			return map[string]any{"body_field": msg.Field}
		}),
		commands.WithTelemetry[ResolveBodyCommand](commands.DefaultTelemetry[ResolveBodyCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ResolveBodyHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ResolveBodyCommand].
func (h *ResolveBodyHandler) Execute(ctx context.Context, msg ResolveBodyCommand) error {
	return h.inner.Execute(ctx, msg)
}
