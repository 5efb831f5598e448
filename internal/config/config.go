// Package config locates the kodebase workspace and loads its configuration.
//
// A workspace is any directory containing a .kodebase/ directory. Settings
// come from .kodebase/config.yml, overridable via KB_* environment variables
// (KB_AI_ENVIRONMENT, KB_ACTOR, ...).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// WorkspaceDirName is the marker directory at the workspace root.
	WorkspaceDirName = ".kodebase"

	// ConfigFileName is the workspace config file inside WorkspaceDirName.
	ConfigFileName = "config.yml"

	// ArtifactsDirName holds the artifact tree inside WorkspaceDirName.
	ArtifactsDirName = "artifacts"
)

// Config holds workspace settings relevant to artifact creation.
type Config struct {
	// Root is the workspace root (the directory containing .kodebase).
	Root string

	// AIEnvironment pins the AI interaction mode ("ide" or "web").
	// Empty means auto-detect from the process environment.
	AIEnvironment string

	// Actor is recorded as created_by on new artifacts.
	Actor string

	// DefaultAssignee pre-fills the assignee metadata field.
	DefaultAssignee string
}

// ArtifactsDir returns the absolute path of the artifact tree.
func (c *Config) ArtifactsDir() string {
	return filepath.Join(c.Root, WorkspaceDirName, ArtifactsDirName)
}

// FindRoot walks up from dir looking for a .kodebase directory.
func FindRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving workspace path: %w", err)
	}
	for {
		marker := filepath.Join(dir, WorkspaceDirName)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s directory found in %s or any parent", WorkspaceDirName, dir)
		}
		dir = parent
	}
}

// Load reads the workspace config rooted at root. A missing config file is
// not an error; defaults and environment variables still apply.
func Load(root string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(filepath.Join(root, WorkspaceDirName, ConfigFileName))

	v.SetEnvPrefix("KB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("ai.environment", "")
	v.SetDefault("actor", defaultActor())
	v.SetDefault("assignee", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
		}
	}

	cfg := &Config{
		Root:            root,
		AIEnvironment:   strings.ToLower(strings.TrimSpace(v.GetString("ai.environment"))),
		Actor:           v.GetString("actor"),
		DefaultAssignee: v.GetString("assignee"),
	}
	return cfg, nil
}

func defaultActor() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if u := os.Getenv("USERNAME"); u != "" {
		return u
	}
	return "unknown"
}
