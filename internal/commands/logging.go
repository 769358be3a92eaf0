package commands

import (
	"strings"

	"github.com/goliatone/go-adf/internal/logging"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

const commandModuleRoot = "adf.commands"

// CommandLogger returns the logger for a command module ("adf.commands.<module>").
// Entries carry component and command_module fields.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
