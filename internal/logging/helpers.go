package logging

import (
	"maps"

	"github.com/goliatone/go-adf/pkg/interfaces"
)

// WithFields attaches a copy of fields to logger. Nil loggers and empty maps
// are returned as-is.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	return logger.WithFields(maps.Clone(fields))
}
