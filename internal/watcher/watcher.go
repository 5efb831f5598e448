// Package watcher detects when an AI agent has finished filling in a
// scaffolded artifact file.
//
// The watch is an explicit state machine (watching -> stabilizing ->
// resolved|rejected) driven by one select loop: fsnotify events re-arm a
// short debounce timer so half-written files are never parsed mid-write, a
// timeout timer bounds the whole wait, and context cancellation tears
// everything down. Events on files still in scaffold state are ignored and
// the watch continues.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kodebase-io/kodebase/internal/artifact"
	"github.com/kodebase-io/kodebase/internal/types"
)

const (
	// DefaultTimeout bounds how long we wait for the AI to complete the
	// artifact before handing control back to the user.
	DefaultTimeout = 60 * time.Second

	// DefaultDebounce is the stability window after the last write event.
	// Agents write files incrementally; parsing on the first event would
	// see a torn file.
	DefaultDebounce = 500 * time.Millisecond
)

// ErrTimeout is returned when no qualifying completion lands in time.
var ErrTimeout = errors.New("timed out waiting for artifact completion")

// ValidationError is returned when the completed (non-scaffold) file fails
// structural validation. The watch terminates; the caller regenerates or
// goes back rather than waiting further.
type ValidationError struct {
	Path     string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("artifact %s failed validation: %s", filepath.Base(e.Path), strings.Join(e.Problems, "; "))
}

// Options configures one watch.
type Options struct {
	// Path is the exact scaffold file to watch (preferred mode).
	Path string

	// Glob matches candidate files when no scaffold exists yet (legacy
	// mode). Ignored when Path is set.
	Glob string

	// Dir is the directory tree root to watch. Derived from Path when empty.
	Dir string

	// Timeout and Debounce default to DefaultTimeout / DefaultDebounce.
	Timeout  time.Duration
	Debounce time.Duration
}

// Result is a successful completion.
type Result struct {
	Artifact *types.Artifact
	Path     string
	ID       string
}

type watchState int

const (
	stateWatching watchState = iota
	stateStabilizing
)

// Wait blocks until the watched artifact is completed, fails validation,
// times out, or ctx is cancelled. The fsnotify handle and all timers are
// released before Wait returns, on every path.
func Wait(ctx context.Context, opts Options) (*Result, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Path == "" && opts.Glob == "" {
		return nil, errors.New("watcher needs a target path or a glob pattern")
	}

	dir := opts.Dir
	if dir == "" {
		dir = filepath.Dir(opts.Path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := addWatches(w, dir, opts); err != nil {
		return nil, err
	}

	// The agent may have finished before the watch was armed.
	if opts.Path != "" {
		if res, done, err := evaluate(opts.Path); done {
			return res, err
		}
	}

	timeout := time.NewTimer(opts.Timeout)
	defer timeout.Stop()

	debounce := time.NewTimer(opts.Debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	state := stateWatching
	var pending string

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-timeout.C:
			return nil, ErrTimeout

		case ev, ok := <-w.Events:
			if !ok {
				return nil, errors.New("file watcher closed unexpectedly")
			}
			// In glob mode new artifact directories appear under the root;
			// start watching them as they are created.
			if opts.Path == "" && ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.Add(ev.Name)
					continue
				}
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !matches(ev.Name, opts) {
				continue
			}
			pending = ev.Name
			state = stateStabilizing
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(opts.Debounce)

		case <-debounce.C:
			if state != stateStabilizing {
				continue
			}
			res, done, err := evaluate(pending)
			if done {
				return res, err
			}
			// Still scaffold (or torn): keep watching.
			state = stateWatching

		case werr, ok := <-w.Errors:
			if !ok {
				return nil, errors.New("file watcher closed unexpectedly")
			}
			return nil, fmt.Errorf("file watcher: %w", werr)
		}
	}
}

// addWatches arms the fsnotify handle. Exact mode watches the file's
// directory; glob mode watches the root plus every existing subdirectory.
func addWatches(w *fsnotify.Watcher, dir string, opts Options) error {
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	if opts.Path != "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := w.Add(filepath.Join(dir, entry.Name())); err != nil {
				return fmt.Errorf("watching %s: %w", entry.Name(), err)
			}
		}
	}
	return nil
}

// matches reports whether an event path is the watch target.
func matches(name string, opts Options) bool {
	if opts.Path != "" {
		return filepath.Clean(name) == filepath.Clean(opts.Path)
	}
	ok, err := filepath.Match(opts.Glob, name)
	return err == nil && ok
}

// evaluate parses the candidate file and classifies it.
//
// done=false means keep watching: the file is unreadable, torn, or still a
// scaffold. done=true terminates the watch, either successfully (res) or
// with a *ValidationError.
func evaluate(path string) (*Result, bool, error) {
	a, err := artifact.Load(path)
	if err != nil {
		return nil, false, nil
	}
	if artifact.IsScaffold(a) {
		return nil, false, nil
	}
	// A filled-in file with structural problems (a missing id included) is
	// a terminal rejection, not something further writes will fix.
	if problems := artifact.Validate(a); len(problems) > 0 {
		return nil, true, &ValidationError{Path: path, Problems: problems}
	}
	return &Result{Artifact: a, Path: path, ID: a.Metadata.ID}, true, nil
}
