package commands

import (
	"strings"

	"github.com/dianliyang/portfolio/internal/logging"
	"github.com/dianliyang/portfolio/pkg/interfaces"
)

// CommandLogger returns the commands logger for module with the component
// fields every command handler logs with.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
