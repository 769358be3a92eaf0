package interfaces

import "context"

// Logger receives conversion and body resolution diagnostics. Conversion
// never returns an error, so Warn entries are how a lexer fallback surfaces.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// WithFields returns a child that stamps fields on every entry.
	WithFields(fields map[string]any) Logger
	// WithContext returns a child bound to ctx. Command handlers store the
	// request id there.
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out loggers by module name, e.g. "adf.markdown".
type LoggerProvider interface {
	GetLogger(module string) Logger
}
