package artifact

import (
	"strings"

	"github.com/kodebase-io/kodebase/internal/types"
)

// blockScalarMarkers are the bare YAML block-scalar introducers an AI (or a
// template) sometimes leaves behind as the entire field value. A field equal
// to one of these carries no content.
var blockScalarMarkers = map[string]bool{
	">":  true,
	">-": true,
	"|":  true,
	"|-": true,
}

// isPlaceholder reports whether a content field is still in its scaffold
// state: empty, a bare block-scalar marker, or containing a TODO.
func isPlaceholder(field string) bool {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return true
	}
	if blockScalarMarkers[trimmed] {
		return true
	}
	return strings.Contains(trimmed, "TODO")
}

// initiativeIsScaffold reports whether an initiative's content is still
// placeholder. Any of the three narrative fields left unfilled keeps the
// artifact in scaffold state.
func initiativeIsScaffold(a *types.Artifact) bool {
	return isPlaceholder(a.Vision) || isPlaceholder(a.Scope) || isPlaceholder(a.SuccessCriteria)
}

// summaryIsScaffold reports whether a milestone or issue is still placeholder.
func summaryIsScaffold(a *types.Artifact) bool {
	return isPlaceholder(a.Summary)
}

// IsScaffold reports whether a looks like an unfilled scaffold rather than a
// completed artifact. The completion watcher ignores events on files that
// are still scaffold.
func IsScaffold(a *types.Artifact) bool {
	if a.Type() == types.TypeInitiative {
		return initiativeIsScaffold(a)
	}
	return summaryIsScaffold(a)
}
