// Package aienv classifies the AI interaction surface the user is working
// in. "ide" means an agent with direct file access (the wizard watches the
// scaffold file for completion); "web" means a browser chat the user copies
// prompts into and pastes results back from.
package aienv

import "os"

// Environment is the AI interaction mode, fixed for a whole wizard session.
type Environment string

const (
	IDE Environment = "ide"
	Web Environment = "web"
)

// IsValid reports whether e is a known environment.
func (e Environment) IsValid() bool {
	return e == IDE || e == Web
}

// Label returns the human-facing description of the environment.
func (e Environment) Label() string {
	switch e {
	case IDE:
		return "IDE agent (writes files directly)"
	case Web:
		return "Web chat (manual copy/paste)"
	}
	return string(e)
}

// ideMarkers are environment variables whose presence indicates an editor
// or agent with direct filesystem access.
var ideMarkers = []string{
	"CURSOR_TRACE_ID",
	"VSCODE_PID",
	"VSCODE_IPC_HOOK",
	"VSCODE_IPC_HOOK_CLI",
	"CLAUDECODE",
	"CLAUDE_CODE",
	"ZED_TERM",
}

// Detect classifies the current environment. An explicit configured value
// ("ide" or "web") wins; otherwise process environment markers decide, and
// the conservative default is Web (manual paste always works).
func Detect(configured string) Environment {
	switch Environment(configured) {
	case IDE:
		return IDE
	case Web:
		return Web
	}

	for _, name := range ideMarkers {
		if os.Getenv(name) != "" {
			return IDE
		}
	}
	if os.Getenv("TERM_PROGRAM") == "vscode" {
		return IDE
	}
	return Web
}
