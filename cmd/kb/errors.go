package main

import (
	"fmt"
	"os"

	"github.com/kodebase-io/kodebase/internal/ui"
)

// FatalError writes an error message to stderr and exits with code 1.
// Use this for fatal errors that prevent the command from completing.
func FatalError(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, ui.RenderFail("Error: "+fmt.Sprintf(format, args...)))
	os.Exit(1)
}

// FatalErrorWithHint writes an error message with a hint to stderr and exits.
// Use this when you can provide an actionable suggestion to fix the error.
func FatalErrorWithHint(message, hint string) {
	fmt.Fprintln(os.Stderr, ui.RenderFail("Error: "+message))
	fmt.Fprintln(os.Stderr, ui.RenderMuted("Hint: "+hint))
	os.Exit(1)
}

// WarnError writes a warning message to stderr and returns.
// Use this for optional operations that enhance functionality but aren't
// required.
func WarnError(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, ui.RenderWarn("Warning: "+fmt.Sprintf(format, args...)))
}
