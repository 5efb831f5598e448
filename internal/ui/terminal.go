package ui

import (
	"os"

	"github.com/muesli/termenv"
)

// IsAgentMode reports whether output is being consumed by an automated
// agent rather than a human. Agents get plain text with no ANSI styling.
func IsAgentMode() bool {
	return os.Getenv("KB_AGENT_MODE") != ""
}

// ShouldUseColor reports whether styled output is appropriate: a real
// terminal, colors not disabled, and not agent mode.
func ShouldUseColor() bool {
	if IsAgentMode() {
		return false
	}
	if termenv.EnvNoColor() {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}
