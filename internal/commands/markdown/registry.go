package markdowncmd

import (
	"errors"

	"github.com/goliatone/go-adf/internal/commands"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterMarkdownCommands.
type HandlerSet struct {
	Convert *ConvertMarkdownHandler
	Resolve *ResolveBodyHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	convertHandlerOpts []commands.HandlerOption[ConvertMarkdownCommand]
	resolveHandlerOpts []commands.HandlerOption[ResolveBodyCommand]
}

// WithConvertHandlerOptions forwards options to the ConvertMarkdownHandler constructor.
func WithConvertHandlerOptions(opts ...commands.HandlerOption[ConvertMarkdownCommand]) Option {
	return func(cfg *options) {
		cfg.convertHandlerOpts = append(cfg.convertHandlerOpts, opts...)
	}
}

// WithResolveHandlerOptions forwards options to the ResolveBodyHandler constructor.
func WithResolveHandlerOptions(opts ...commands.HandlerOption[ResolveBodyCommand]) Option {
	return func(cfg *options) {
		cfg.resolveHandlerOpts = append(cfg.resolveHandlerOpts, opts...)
	}
}

// RegisterMarkdownCommands builds the conversion handlers and registers them with reg when it is
// non-nil. The handlers are returned so callers can dispatch to them directly.
func RegisterMarkdownCommands(reg CommandRegistry, converter Converter, resolver BodyResolver, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if converter == nil {
		return nil, errors.New("markdown command registration: converter is nil")
	}
	if resolver == nil {
		return nil, errors.New("markdown command registration: resolver is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "markdown")

	convertHandler := NewConvertMarkdownHandler(converter, logger, gates, cfg.convertHandlerOpts...)
	resolveHandler := NewResolveBodyHandler(resolver, logger, gates, cfg.resolveHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(convertHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(resolveHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Convert: convertHandler,
		Resolve: resolveHandler,
	}, nil
}
