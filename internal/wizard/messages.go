package wizard

import (
	"github.com/kodebase-io/kodebase/internal/types"
	"github.com/kodebase-io/kodebase/internal/watcher"
)

// Async step results carry the sequence number of the transition that
// issued them. The model discards any message whose seq is no longer
// current, so completions from an abandoned step (user went back or
// cancelled mid-call) can never mutate state.

// parentsLoadedMsg delivers the eligible-parent query result.
type parentsLoadedMsg struct {
	seq     int
	parents []*types.Artifact
	err     error
}

// promptReadyMsg delivers ID allocation, scaffold write, prompt generation,
// and the best-effort clipboard outcome.
type promptReadyMsg struct {
	seq          int
	id           string
	slug         string
	path         string
	prompt       string
	clipboardErr error
	err          error
}

// watchDoneMsg delivers the completion watcher outcome (IDE path).
type watchDoneMsg struct {
	seq int
	res *watcher.Result
	err error
}

// scanDoneMsg delivers the manual-confirmation store scan (web path).
type scanDoneMsg struct {
	seq      int
	artifact *types.Artifact
	path     string
	err      error
}
