package wizard

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kodebase-io/kodebase/internal/aienv"
	"github.com/kodebase-io/kodebase/internal/artifact"
	"github.com/kodebase-io/kodebase/internal/idgen"
	"github.com/kodebase-io/kodebase/internal/prompt"
	"github.com/kodebase-io/kodebase/internal/types"
	"github.com/kodebase-io/kodebase/internal/watcher"
)

// loadParentsCmd queries the eligible parents for the selected child type.
func (m *Model) loadParentsCmd(seq int) tea.Cmd {
	store := m.opts.Store
	childType := m.state.ArtifactType
	return func() tea.Msg {
		parents, err := store.EligibleParents(context.Background(), childType)
		return parentsLoadedMsg{seq: seq, parents: parents, err: err}
	}
}

// generateCmd allocates the artifact ID, scaffolds the file (IDE mode),
// builds the prompt, and attempts a best-effort clipboard write.
func (m *Model) generateCmd(seq int) tea.Cmd {
	store := m.opts.Store
	typ := m.state.ArtifactType
	parent := m.state.ParentID
	objective := m.state.Objective
	preallocated := m.opts.PreallocatedID
	if preallocated == "" {
		preallocated = m.state.AllocatedID // re-entry keeps the same ID
	}
	actor := m.opts.Actor
	assignee := m.opts.Assignee
	env := m.state.Environment

	return func() tea.Msg {
		ctx := context.Background()

		// The authoritative allocator's ID wins; the scan below is only the
		// fallback.
		id := preallocated
		if id == "" {
			ids, err := store.ListIDs(ctx)
			if err != nil {
				return promptReadyMsg{seq: seq, err: fmt.Errorf("listing artifacts: %w", err)}
			}
			if typ == types.TypeInitiative {
				id = idgen.NextRootID(ids)
			} else {
				id = idgen.NextChildID(parent, ids)
			}
		}
		slug := idgen.Slug(objective)

		// IDE mode scaffolds the file so the agent has an exact target and
		// the watcher an exact path. Web mode leaves creation to the paste.
		path := ""
		if env == aienv.IDE {
			scaffold := artifact.NewScaffold(id, typ, objective, parent, actor, assignee)
			p, err := store.WriteScaffold(ctx, scaffold)
			if err == nil {
				path = p
			} else {
				// A retry after regeneration may find the scaffold already
				// on disk; reuse it rather than failing the step.
				existing, perr := store.PathFor(ctx, id)
				if perr != nil {
					return promptReadyMsg{seq: seq, err: fmt.Errorf("scaffolding %s: %w", id, err)}
				}
				path = existing
			}
		}

		req := prompt.Request{
			Type:      typ,
			ID:        id,
			ParentID:  parent,
			Objective: objective,
			Path:      path,
			CreatedBy: actor,
			Assignee:  assignee,
		}
		var text string
		if env == aienv.IDE {
			text = prompt.ForIDE(req)
		} else {
			text = prompt.ForWeb(req)
		}

		clipErr := prompt.CopyToClipboard(text)
		return promptReadyMsg{
			seq:          seq,
			id:           id,
			slug:         slug,
			path:         path,
			prompt:       text,
			clipboardErr: clipErr,
		}
	}
}

// regenerateCmd removes an invalid completion and redoes prompt generation
// with a fresh scaffold.
func (m *Model) regenerateCmd(seq int) tea.Cmd {
	path := m.state.Path
	m.state.AllocatedID = "" // reallocate against the pruned tree
	gen := m.generateCmd(seq)
	return func() tea.Msg {
		if path != "" {
			_ = os.Remove(path)
		}
		return gen()
	}
}

// watchCmd runs the completion watcher until resolution, rejection,
// timeout, or cancellation.
func (m *Model) watchCmd(ctx context.Context, seq int) tea.Cmd {
	opts := watcher.Options{
		Path:     m.state.Path,
		Dir:      m.opts.Store.Root(),
		Timeout:  m.opts.WatchTimeout,
		Debounce: m.opts.WatchDebounce,
	}
	if opts.Path == "" {
		// Legacy mode: no scaffold yet, watch for any new child file.
		glob, err := artifact.GlobForChildren(m.opts.Store.Root(), m.state.ParentID)
		if err != nil {
			return func() tea.Msg { return watchDoneMsg{seq: seq, err: err} }
		}
		opts.Glob = glob
	}
	return func() tea.Msg {
		res, err := watcher.Wait(ctx, opts)
		return watchDoneMsg{seq: seq, res: res, err: err}
	}
}

// scanCmd implements manual completion confirmation (web path): find the
// newly pasted artifact in the store, preferring the exact allocated ID and
// falling back to the lexicographically-last candidate as a recency proxy.
func (m *Model) scanCmd(seq int) tea.Cmd {
	store := m.opts.Store
	expected := m.state.AllocatedID
	parent := m.state.ParentID
	typ := m.state.ArtifactType

	return func() tea.Msg {
		ctx := context.Background()
		ids, err := store.ListIDs(ctx)
		if err != nil {
			return scanDoneMsg{seq: seq, err: fmt.Errorf("scanning artifacts: %w", err)}
		}

		id := pickCandidate(ids, expected, parent, typ)
		if id == "" {
			return scanDoneMsg{seq: seq, err: fmt.Errorf("no %s found under %s yet; paste the YAML into the artifact tree and confirm again", typ, describeScope(parent))}
		}

		a, err := store.Get(ctx, id)
		if err != nil {
			return scanDoneMsg{seq: seq, err: err}
		}
		if artifact.IsScaffold(a) {
			return scanDoneMsg{seq: seq, err: fmt.Errorf("artifact %s still contains placeholder content", id)}
		}
		if problems := artifact.Validate(a); len(problems) > 0 {
			return scanDoneMsg{seq: seq, err: fmt.Errorf("artifact %s failed validation: %s", id, strings.Join(problems, "; "))}
		}
		path, err := store.PathFor(ctx, id)
		if err != nil {
			return scanDoneMsg{seq: seq, err: err}
		}
		return scanDoneMsg{seq: seq, artifact: a, path: path}
	}
}

// pickCandidate selects the created artifact's ID from the store listing.
// An exact expected-ID match always wins. Otherwise candidates matching the
// parent prefix (or the root-initiative pattern) are ordered reverse-
// lexicographically and the last-sorting one is taken as "most recent".
// This is a heuristic, not a guarantee.
func pickCandidate(ids []string, expected, parent string, typ types.ArtifactType) string {
	var candidates []string
	for _, id := range ids {
		if !matchesScope(id, parent, typ) {
			continue
		}
		if id == expected {
			return id
		}
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Sort(sort.Reverse(sort.StringSlice(candidates)))
	return candidates[0]
}

func matchesScope(id, parent string, typ types.ArtifactType) bool {
	derived, err := types.TypeForID(id)
	if err != nil || derived != typ {
		return false
	}
	if parent == "" {
		return types.Depth(id) == 1
	}
	return strings.HasPrefix(id, parent+".") && types.Depth(id) == types.Depth(parent)+1
}

func describeScope(parent string) string {
	if parent == "" {
		return "the artifact root"
	}
	return parent
}
