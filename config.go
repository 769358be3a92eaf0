package adf

import "github.com/goliatone/go-adf/internal/runtimeconfig"

var (
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrMarkdownExtensionUnknown = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrMentionUserTypeRequired  = runtimeconfig.ErrMentionUserTypeRequired
)

type (
	Config         = runtimeconfig.Config
	Features       = runtimeconfig.Features
	MarkdownConfig = runtimeconfig.MarkdownConfig
	MentionsConfig = runtimeconfig.MentionsConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	BodyConfig     = runtimeconfig.BodyConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
