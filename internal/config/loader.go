package config

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/agentskills/statusline/internal/defs"
)

// Loader merges configuration files over the defaults.
// It is thread-safe via sync.RWMutex.
type Loader struct {
	mu          sync.RWMutex
	loadedFiles []string
	logger      *slog.Logger
}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{
		logger: slog.Default().With("module", "config"),
	}
}

// Load applies the user file and then the project file over the defaults.
// A value present in a later file overrides the earlier one.
// Missing files are skipped silently; invalid YAML files are skipped with a
// warning. The merged result is validated; on validation failure the merged
// Config is still returned together with the error so callers can decide
// whether to fall back to NewDefaultConfig.
func (l *Loader) Load(paths Paths) (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.loadedFiles = nil
	cfg := NewDefaultConfig()

	for _, path := range []string{paths.User, paths.Project} {
		if path == "" {
			continue
		}
		loaded, err := loadYAMLFile(path, cfg)
		if err != nil {
			l.logger.Warn("failed to load config file, skipping", "path", path, "error", err)
			continue
		}
		if loaded {
			l.loadedFiles = append(l.loadedFiles, path)
		}
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadedFiles returns the files successfully merged by the last Load.
func (l *Loader) LoadedFiles() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.loadedFiles)
}

// loadYAMLFile reads a YAML file and unmarshals it over target.
// Returns (true, nil) if the file was found and parsed, (false, nil) if the
// file does not exist, or (false, error) on failure. On failure target is
// left untouched.
func loadYAMLFile(path string, target *Config) (bool, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	// Decode into a copy so a half-applied document never leaks into target.
	scratch := cloneConfig(target)
	if err := yaml.Unmarshal(data, scratch); err != nil {
		return false, fmt.Errorf("parse %s: %w: %v", path, ErrInvalidYAML, err)
	}

	*target = *scratch
	return true, nil
}

// cloneConfig deep-copies the reference-typed fields of cfg.
func cloneConfig(cfg *Config) *Config {
	c := *cfg
	c.Statusline.Segments = make(map[string]bool, len(cfg.Statusline.Segments))
	maps.Copy(c.Statusline.Segments, cfg.Statusline.Segments)
	c.Statusline.MCP.ConfigPaths = slices.Clone(cfg.Statusline.MCP.ConfigPaths)
	c.Statusline.MCP.Keys = slices.Clone(cfg.Statusline.MCP.Keys)
	return &c
}

// UserConfigPath returns the user-level config file:
// $XDG_CONFIG_HOME/statusline/config.yaml, else ~/.config/statusline/config.yaml.
func UserConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, defs.AppDirName, defs.UserConfigYAML), nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", ErrNoConfigDir
	}
	return filepath.Join(home, ".config", defs.AppDirName, defs.UserConfigYAML), nil
}

// ProjectConfigPath returns the project-level config file for projectDir.
func ProjectConfigPath(projectDir string) string {
	if projectDir == "" {
		projectDir = "."
	}
	return filepath.Join(projectDir, defs.ClaudeDir, defs.ProjectConfigYAML)
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// Save validates cfg and writes it to path, creating parent directories.
// Returns ErrConfigExists when path exists and force is false.
func Save(path string, cfg *Config, force bool) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	path = filepath.Clean(path)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("save %s: %w", path, ErrConfigExists)
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
