// Package artifact reads and writes the YAML artifact tree under
// <root>/.kodebase/artifacts. The wizard core consumes it through the Store
// interface; the completion watcher additionally parses candidate files
// directly via Load.
package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kodebase-io/kodebase/internal/idgen"
	"github.com/kodebase-io/kodebase/internal/types"
)

// Store is the narrow interface the wizard core uses to query and scaffold
// artifacts.
type Store interface {
	// List returns every artifact in the tree, ordered by ID.
	List(ctx context.Context) ([]*types.Artifact, error)

	// ListIDs returns every artifact ID, ordered.
	ListIDs(ctx context.Context) ([]string, error)

	// Get returns the artifact with the given ID.
	Get(ctx context.Context, id string) (*types.Artifact, error)

	// Children returns the direct children of id in child-listing order
	// (ascending child number).
	Children(ctx context.Context, id string) ([]*types.Artifact, error)

	// EligibleParents returns open artifacts that can parent a new child of
	// childType (initiatives for milestones, milestones for issues),
	// excluding any whose most recent lifecycle event closed them.
	EligibleParents(ctx context.Context, childType types.ArtifactType) ([]*types.Artifact, error)

	// WriteScaffold writes a placeholder artifact file for a and returns its
	// path. It refuses to overwrite an existing file.
	WriteScaffold(ctx context.Context, a *types.Artifact) (string, error)

	// PathFor returns the file path of an existing artifact.
	PathFor(ctx context.Context, id string) (string, error)

	// Root returns the artifacts directory path.
	Root() string
}

// ErrNotFound is reported via wrapped errors when an artifact does not exist.
var ErrNotFound = fmt.Errorf("artifact not found")

// FileStore is the on-disk Store implementation.
type FileStore struct {
	dir string
}

// NewFileStore opens (creating if needed) the artifact tree at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifacts directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Root returns the artifacts directory path.
func (s *FileStore) Root() string {
	return s.dir
}

// Load parses one artifact file.
func Load(path string) (*types.Artifact, error) {
	data, err := os.ReadFile(path) // #nosec G304 - paths come from the artifact tree
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	var a types.Artifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing artifact %s: %w", filepath.Base(path), err)
	}
	return &a, nil
}

// walk visits every artifact file in the tree.
func (s *FileStore) walk(visit func(path string, a *types.Artifact) error) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("listing artifacts directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(s.dir, entry.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("listing %s: %w", entry.Name(), err)
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".yml") {
				continue
			}
			path := filepath.Join(dir, f.Name())
			a, err := Load(path)
			if err != nil {
				// A half-written or foreign file must not break listing.
				continue
			}
			if a.Metadata.ID == "" {
				continue
			}
			if err := visit(path, a); err != nil {
				return err
			}
		}
	}
	return nil
}

// List returns every artifact in the tree, ordered by ID.
func (s *FileStore) List(ctx context.Context) ([]*types.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var all []*types.Artifact
	err := s.walk(func(_ string, a *types.Artifact) error {
		all = append(all, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return idLess(all[i].ID(), all[j].ID()) })
	return all, nil
}

// ListIDs returns every artifact ID, ordered.
func (s *FileStore) ListIDs(ctx context.Context) ([]string, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, a := range all {
		ids[i] = a.ID()
	}
	return ids, nil
}

// Get returns the artifact with the given ID.
func (s *FileStore) Get(ctx context.Context, id string) (*types.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var found *types.Artifact
	err := s.walk(func(_ string, a *types.Artifact) error {
		if a.Metadata.ID == id {
			found = a
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return found, nil
}

// PathFor returns the file path of an existing artifact.
func (s *FileStore) PathFor(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var found string
	err := s.walk(func(path string, a *types.Artifact) error {
		if a.Metadata.ID == id {
			found = path
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return found, nil
}

// Children returns the direct children of id in child-listing order.
func (s *FileStore) Children(ctx context.Context, id string) ([]*types.Artifact, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	prefix := id + "."
	var children []*types.Artifact
	for _, a := range all {
		cid := a.ID()
		if strings.HasPrefix(cid, prefix) && !strings.Contains(cid[len(prefix):], ".") {
			children = append(children, a)
		}
	}
	return children, nil
}

// EligibleParents returns open artifacts that can parent a child of childType.
func (s *FileStore) EligibleParents(ctx context.Context, childType types.ArtifactType) ([]*types.Artifact, error) {
	var parentType types.ArtifactType
	switch childType {
	case types.TypeMilestone:
		parentType = types.TypeInitiative
	case types.TypeIssue:
		parentType = types.TypeMilestone
	default:
		return nil, fmt.Errorf("artifact type %s has no parent type", childType)
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var eligible []*types.Artifact
	for _, a := range all {
		if a.Type() == parentType && !a.IsClosed() {
			eligible = append(eligible, a)
		}
	}
	return eligible, nil
}

// WriteScaffold writes a placeholder file for a new artifact and returns its
// path. Parent directories are created for initiatives and milestones; issue
// files land in their parent milestone's existing directory.
func (s *FileStore) WriteScaffold(ctx context.Context, a *types.Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.scaffoldPath(a)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("artifact file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating artifact directory: %w", err)
	}
	data, err := yaml.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encoding artifact %s: %w", a.ID(), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing scaffold: %w", err)
	}
	return path, nil
}

// scaffoldPath computes where a new artifact's file belongs.
func (s *FileStore) scaffoldPath(a *types.Artifact) (string, error) {
	id := a.ID()
	slug := idgen.Slug(a.Metadata.Title)
	switch a.Type() {
	case types.TypeInitiative, types.TypeMilestone:
		return filepath.Join(s.dir, DirName(id, slug), FileName(id, slug, a.Type())), nil
	case types.TypeIssue:
		parent, err := types.ParentID(id)
		if err != nil {
			return "", err
		}
		parentDir, err := s.dirFor(parent)
		if err != nil {
			return "", fmt.Errorf("locating parent milestone %s: %w", parent, err)
		}
		return filepath.Join(parentDir, FileName(id, slug, types.TypeIssue)), nil
	}
	return "", fmt.Errorf("unknown artifact type %q for %s", a.Type(), id)
}

// dirFor finds the directory owned by an initiative or milestone.
func (s *FileStore) dirFor(id string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, id+".*"))
	if err != nil {
		return "", err
	}
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.IsDir() {
			continue
		}
		// "A.1" must not match the "A.10.xyz" directory: the segment after
		// the ID prefix has to be the slug, not more of another ID.
		rest := strings.TrimPrefix(filepath.Base(m), id+".")
		if rest == "" || (rest[0] >= '0' && rest[0] <= '9') {
			continue
		}
		return m, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, id)
}

// NewScaffold builds the in-memory placeholder artifact the store writes for
// the AI to fill in. Content fields carry TODO markers the completion
// watcher's scaffold heuristics recognize.
func NewScaffold(id string, typ types.ArtifactType, title, parent, createdBy, assignee string) *types.Artifact {
	a := &types.Artifact{
		Metadata: types.Metadata{
			ID:            id,
			Title:         title,
			ArtifactType:  typ,
			SchemaVersion: types.SchemaVersion,
			Priority:      "P2",
			CreatedBy:     createdBy,
			Assignee:      assignee,
			Relationships: types.Relationships{Parent: parent},
		},
		Lifecycle: []types.LifecycleEvent{
			{Event: types.EventCreated, Actor: createdBy, At: time.Now().UTC()},
		},
	}
	if typ == types.TypeInitiative {
		a.Vision = "TODO"
		a.Scope = "TODO"
		a.SuccessCriteria = "TODO"
	} else {
		a.Metadata.Estimation = "M"
		a.Summary = "TODO"
	}
	return a
}

// idLess orders IDs segment-wise: root codes by length then lexicographically,
// numeric segments numerically, parents before children.
func idLess(a, b string) bool {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		if i == 0 {
			if len(as[0]) != len(bs[0]) {
				return len(as[0]) < len(bs[0])
			}
			return as[0] < bs[0]
		}
		an, aerr := atoiSafe(as[i])
		bn, berr := atoiSafe(bs[i])
		if aerr == nil && berr == nil {
			return an < bn
		}
		return as[i] < bs[i]
	}
	return len(as) < len(bs)
}

func atoiSafe(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, fmt.Errorf("empty segment")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric segment %q", s)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}
