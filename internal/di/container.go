package di

import (
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-adf/internal/body"
	markdowncmd "github.com/goliatone/go-adf/internal/commands/markdown"
	"github.com/goliatone/go-adf/internal/logging"
	"github.com/goliatone/go-adf/internal/logging/console"
	"github.com/goliatone/go-adf/internal/logging/gologger"
	"github.com/goliatone/go-adf/internal/markdown"
	"github.com/goliatone/go-adf/internal/runtimeconfig"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

// Container wires module dependencies from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	lexer          markdown.Lexer
	registry       markdowncmd.CommandRegistry

	markdownSvc *markdown.Service
	resolver    *body.Resolver
	handlers    *markdowncmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLexer replaces the goldmark lexer used by the markdown service.
func WithLexer(lexer markdown.Lexer) Option {
	return func(c *Container) {
		c.lexer = lexer
	}
}

// WithCommandRegistry registers command handlers with reg when the commands
// feature is enabled.
func WithCommandRegistry(reg markdowncmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureMarkdown()
	c.configureBody()
	if err := c.configureCommands(); err != nil {
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "adf").Debug("adf.container.ready",
		"mentions", cfg.Features.Mentions,
		"commands", cfg.Features.Commands,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{Writer: os.Stderr}
		if level, ok := logging.ParseLevel(c.Config.Logging.Level); ok {
			opts.Level = level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureMarkdown() {
	cfg := markdown.Config{
		Parser:           interfaces.ParseOptions{Extensions: c.Config.Markdown.Extensions},
		MentionUserType:  c.Config.Mentions.UserType,
		DisableMentions:  !c.Config.Features.Mentions,
		StripFrontMatter: c.Config.Markdown.StripFrontMatter,
	}
	opts := []markdown.ServiceOption{
		markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)),
		markdown.WithMentionLogger(logging.MentionLogger(c.loggerProvider)),
	}
	if c.lexer != nil {
		opts = append(opts, markdown.WithLexer(c.lexer))
	}
	c.markdownSvc = markdown.NewService(cfg, opts...)
}

func (c *Container) configureBody() {
	c.resolver = body.NewResolver(c.markdownSvc, c.markdownSvc,
		body.WithOptions(body.Options{
			DetectMarkdown: c.Config.Body.DetectMarkdown,
			AllowADF:       c.Config.Body.AllowADF,
		}),
		body.WithLogger(logging.BodyLogger(c.loggerProvider)),
	)
}

func (c *Container) configureCommands() error {
	if !c.Config.Features.Commands {
		return nil
	}
	gates := markdowncmd.FeatureGates{
		CommandsEnabled: func() bool { return c.Config.Features.Commands },
	}
	handlers, err := markdowncmd.RegisterMarkdownCommands(c.registry, c.markdownSvc, c.resolver, c.loggerProvider, gates)
	if err != nil {
		return fmt.Errorf("di: register markdown commands: %w", err)
	}
	c.handlers = handlers
	return nil
}

// LoggerProvider exposes the configured provider. Nil means logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// MarkdownService returns the conversion service.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownSvc
}

// BodyResolver returns the body resolver.
func (c *Container) BodyResolver() *body.Resolver {
	return c.resolver
}

// CommandHandlers returns the command handlers, or nil when the commands
// feature is disabled.
func (c *Container) CommandHandlers() *markdowncmd.HandlerSet {
	return c.handlers
}
