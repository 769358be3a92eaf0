package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-adf/internal/logging"
	"github.com/goliatone/go-adf/internal/markdown"
	"github.com/goliatone/go-adf/pkg/document"
)

var ErrLoggingProviderRequired = errors.New("adf config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("adf config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("adf config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("adf config: logging format is invalid")

// ErrMarkdownExtensionUnknown flags parser extension names the lexer cannot load.
var ErrMarkdownExtensionUnknown = errors.New("adf config: markdown extension is unknown")

// ErrMentionUserTypeRequired guards against stamping mentions with an empty userType.
var ErrMentionUserTypeRequired = errors.New("adf config: mention user type is required when mentions are enabled")

// Config aggregates feature flags and options for the converter module.
type Config struct {
	Features Features
	Markdown MarkdownConfig
	Mentions MentionsConfig
	Logging  LoggingConfig
	Body     BodyConfig
}

// Features toggles module functionality.
type Features struct {
	// Logger builds a logger provider from Logging instead of staying silent.
	Logger bool
	// Mentions runs the @[id:name] pass after conversion.
	Mentions bool
	// Commands builds go-command handlers for conversion and body resolution.
	Commands bool
}

// MarkdownConfig captures parser behaviour.
type MarkdownConfig struct {
	// Extensions names goldmark extensions. Empty means GFM, linkify and task lists.
	Extensions       []string
	StripFrontMatter bool
}

// MentionsConfig captures mention node attributes.
type MentionsConfig struct {
	UserType string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// BodyConfig controls how loosely typed body values are resolved.
type BodyConfig struct {
	DetectMarkdown bool
	AllowADF       bool
}

// DefaultConfig returns the defaults used by the package level helpers.
func DefaultConfig() Config {
	return Config{
		Features: Features{
			Mentions: true,
		},
		Markdown: MarkdownConfig{},
		Mentions: MentionsConfig{
			UserType: document.DefaultUserType,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
		Body: BodyConfig{
			DetectMarkdown: true,
			AllowADF:       true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	for _, name := range cfg.Markdown.Extensions {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if !markdown.KnownExtension(name) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, name)
		}
	}
	if cfg.Features.Mentions && strings.TrimSpace(cfg.Mentions.UserType) == "" {
		return ErrMentionUserTypeRequired
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	_, ok := logging.ParseLevel(level)
	return ok
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
