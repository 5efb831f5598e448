package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kodebase-io/kodebase/internal/artifact"
	"github.com/kodebase-io/kodebase/internal/types"
)

// Short durations keep these tests fast while leaving enough slack for slow
// CI filesystems.
const (
	testDebounce = 50 * time.Millisecond
	testTimeout  = 3 * time.Second
)

func scaffoldIssue(t *testing.T, dir string) string {
	t.Helper()
	a := artifact.NewScaffold("A.1.1", types.TypeIssue, "Watcher shutdown", "A.1", "tester", "")
	path := filepath.Join(dir, "A.1.1.watcher_shutdown.yml")
	writeArtifact(t, path, a)
	return path
}

func writeArtifact(t *testing.T, path string, a *types.Artifact) {
	t.Helper()
	data, err := yaml.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func completedIssue() *types.Artifact {
	a := artifact.NewScaffold("A.1.1", types.TypeIssue, "Watcher shutdown", "A.1", "tester", "")
	a.Summary = "Close the fsnotify handle when the wizard cancels the wait."
	a.Description = "The handle currently outlives the step."
	return a
}

type waitResult struct {
	res *Result
	err error
}

func startWait(ctx context.Context, opts Options) chan waitResult {
	ch := make(chan waitResult, 1)
	go func() {
		res, err := Wait(ctx, opts)
		ch <- waitResult{res, err}
	}()
	return ch
}

func TestWaitResolvesOnCompletion(t *testing.T) {
	dir := t.TempDir()
	path := scaffoldIssue(t, dir)

	// Overwrite the scaffold once the watch is running.
	go func() {
		time.Sleep(150 * time.Millisecond)
		writeArtifact(t, path, completedIssue())
	}()

	res, err := Wait(context.Background(), Options{Path: path, Timeout: testTimeout, Debounce: testDebounce})
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if res.ID != "A.1.1" {
		t.Errorf("resolved ID = %q, want A.1.1", res.ID)
	}
	if res.Path != path {
		t.Errorf("resolved path = %q, want %q", res.Path, path)
	}
	if artifact.IsScaffold(res.Artifact) {
		t.Error("resolved artifact must not be scaffold")
	}
}

func TestWaitIgnoresScaffoldWrites(t *testing.T) {
	dir := t.TempDir()
	path := scaffoldIssue(t, dir)

	// Rewriting the file while it is still scaffold must not resolve the
	// watch; only a timeout ends it.
	go func() {
		time.Sleep(100 * time.Millisecond)
		a := artifact.NewScaffold("A.1.1", types.TypeIssue, "Watcher shutdown", "A.1", "tester", "")
		a.Summary = ">"
		writeArtifact(t, path, a)
	}()

	_, err := Wait(context.Background(), Options{Path: path, Timeout: 700 * time.Millisecond, Debounce: testDebounce})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Wait error = %v, want ErrTimeout", err)
	}
}

func TestWaitRejectsInvalidCompletion(t *testing.T) {
	dir := t.TempDir()
	path := scaffoldIssue(t, dir)

	go func() {
		time.Sleep(100 * time.Millisecond)
		a := completedIssue()
		a.Metadata.Title = ""
		a.Metadata.Relationships.Parent = "B.2"
		writeArtifact(t, path, a)
	}()

	_, err := Wait(context.Background(), Options{Path: path, Timeout: testTimeout, Debounce: testDebounce})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Wait error = %v, want *ValidationError", err)
	}
	if len(verr.Problems) < 2 {
		t.Errorf("validation error should carry every problem, got %v", verr.Problems)
	}
}

func TestWaitRejectsCompletionMissingID(t *testing.T) {
	dir := t.TempDir()
	path := scaffoldIssue(t, dir)

	// Filled-in content but no metadata.id: a terminal rejection, not a
	// wait-for-more-writes state.
	go func() {
		time.Sleep(100 * time.Millisecond)
		a := completedIssue()
		a.Metadata.ID = ""
		writeArtifact(t, path, a)
	}()

	_, err := Wait(context.Background(), Options{Path: path, Timeout: testTimeout, Debounce: testDebounce})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Wait error = %v, want *ValidationError", err)
	}
	found := false
	for _, p := range verr.Problems {
		if strings.Contains(p, "id") {
			found = true
		}
	}
	if !found {
		t.Errorf("validation problems should name the missing id, got %v", verr.Problems)
	}
}

func TestWaitResolvesPreexistingCompletion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "A.1.1.watcher_shutdown.yml")
	writeArtifact(t, path, completedIssue())

	res, err := Wait(context.Background(), Options{Path: path, Timeout: testTimeout, Debounce: testDebounce})
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if res.ID != "A.1.1" {
		t.Errorf("resolved ID = %q, want A.1.1", res.ID)
	}
}

func TestWaitTimesOut(t *testing.T) {
	dir := t.TempDir()
	path := scaffoldIssue(t, dir)

	start := time.Now()
	_, err := Wait(context.Background(), Options{Path: path, Timeout: 300 * time.Millisecond, Debounce: testDebounce})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Wait error = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %v, should be close to the configured bound", elapsed)
	}
}

func TestWaitHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	path := scaffoldIssue(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	ch := startWait(ctx, Options{Path: path, Timeout: testTimeout, Debounce: testDebounce})

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case r := <-ch:
		if !errors.Is(r.err, context.Canceled) {
			t.Fatalf("Wait error = %v, want context.Canceled", r.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after cancellation")
	}
}

func TestWaitGlobMode(t *testing.T) {
	root := t.TempDir()
	milestoneDir := filepath.Join(root, "A.1.storage_layer")
	if err := os.MkdirAll(milestoneDir, 0o755); err != nil {
		t.Fatal(err)
	}

	opts := Options{
		Glob:     filepath.Join(root, "A.1.*", "A.1.*.*.yml"),
		Dir:      root,
		Timeout:  testTimeout,
		Debounce: testDebounce,
	}
	ch := startWait(context.Background(), opts)

	time.Sleep(150 * time.Millisecond)
	writeArtifact(t, filepath.Join(milestoneDir, "A.1.1.watcher_shutdown.yml"), completedIssue())

	select {
	case r := <-ch:
		if r.err != nil {
			t.Fatalf("Wait returned error: %v", r.err)
		}
		if r.res.ID != "A.1.1" {
			t.Errorf("resolved ID = %q, want A.1.1", r.res.ID)
		}
	case <-time.After(testTimeout + time.Second):
		t.Fatal("glob watch did not resolve")
	}
}
