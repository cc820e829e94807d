package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_NoFiles(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader()

	cfg, err := l.Load(Paths{
		User:    filepath.Join(dir, "missing.yaml"),
		Project: ProjectConfigPath(dir),
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Statusline.Git.Timeout != DefaultGitTimeout {
		t.Errorf("Git.Timeout = %v, want %v", cfg.Statusline.Git.Timeout, DefaultGitTimeout)
	}
	if len(l.LoadedFiles()) != 0 {
		t.Errorf("LoadedFiles() = %v, want empty", l.LoadedFiles())
	}
}

func TestLoad_EmptyPaths(t *testing.T) {
	cfg, err := NewLoader().Load(Paths{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
}

func TestLoad_ProjectOverridesUser(t *testing.T) {
	dir := t.TempDir()
	userPath := filepath.Join(dir, "user", "config.yaml")
	projectDir := filepath.Join(dir, "project")

	writeConfigFile(t, userPath, `statusline:
  color: true
  git:
    timeout: 1s
  segments:
    cost: false
log:
  level: debug
`)
	writeConfigFile(t, ProjectConfigPath(projectDir), `statusline:
  git:
    timeout: 250ms
  mcp:
    config_paths: [".mcp.json", "tools/mcp.json"]
`)

	l := NewLoader()
	cfg, err := l.Load(Paths{User: userPath, Project: ProjectConfigPath(projectDir)})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !cfg.Statusline.Color {
		t.Error("Color = false, want true from user file")
	}
	if cfg.Statusline.Git.Timeout != 250*time.Millisecond {
		t.Errorf("Git.Timeout = %v, want 250ms from project file", cfg.Statusline.Git.Timeout)
	}
	if cfg.Statusline.SegmentEnabled("cost") {
		t.Error("cost segment should be disabled by user file")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	wantPaths := []string{".mcp.json", "tools/mcp.json"}
	if !slices.Equal(cfg.Statusline.MCP.ConfigPaths, wantPaths) {
		t.Errorf("MCP.ConfigPaths = %v, want %v", cfg.Statusline.MCP.ConfigPaths, wantPaths)
	}
	// Untouched sections keep their defaults.
	if cfg.Statusline.Stdin.MaxBytes != DefaultStdinMaxBytes {
		t.Errorf("Stdin.MaxBytes = %d, want default %d", cfg.Statusline.Stdin.MaxBytes, DefaultStdinMaxBytes)
	}

	if got := l.LoadedFiles(); len(got) != 2 {
		t.Errorf("LoadedFiles() = %v, want 2 entries", got)
	}
}

func TestLoad_MalformedYAMLSkipped(t *testing.T) {
	dir := t.TempDir()
	userPath := filepath.Join(dir, "config.yaml")
	writeConfigFile(t, userPath, "{{invalid yaml")

	l := NewLoader()
	cfg, err := l.Load(Paths{User: userPath})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Statusline.Color {
		t.Error("malformed file must not change defaults")
	}
	if len(l.LoadedFiles()) != 0 {
		t.Errorf("LoadedFiles() = %v, want empty", l.LoadedFiles())
	}
}

func TestLoad_TypeErrorLeavesDefaults(t *testing.T) {
	dir := t.TempDir()
	userPath := filepath.Join(dir, "config.yaml")
	// color parses, git.timeout does not; neither may be applied.
	writeConfigFile(t, userPath, "statusline:\n  color: true\n  git:\n    timeout: [1, 2]\n")

	cfg, err := NewLoader().Load(Paths{User: userPath})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Statusline.Color {
		t.Error("a partially invalid document must not be half-applied")
	}
}

func TestLoad_ValidationError(t *testing.T) {
	dir := t.TempDir()
	userPath := filepath.Join(dir, "config.yaml")
	writeConfigFile(t, userPath, "log:\n  level: loud\n")

	cfg, err := NewLoader().Load(Paths{User: userPath})
	if err == nil {
		t.Fatal("Load() should report invalid log level")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
	if cfg == nil {
		t.Fatal("Load() should still return the merged config")
	}
}

func TestUserConfigPath(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)

		got, err := UserConfigPath()
		if err != nil {
			t.Fatal(err)
		}
		want := filepath.Join(xdg, "statusline", "config.yaml")
		if got != want {
			t.Errorf("UserConfigPath() = %q, want %q", got, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", home)

		got, err := UserConfigPath()
		if err != nil {
			t.Fatal(err)
		}
		want := filepath.Join(home, ".config", "statusline", "config.yaml")
		if got != want {
			t.Errorf("UserConfigPath() = %q, want %q", got, want)
		}
	})
}

func TestProjectConfigPath(t *testing.T) {
	if got, want := ProjectConfigPath("/work/app"), filepath.Join("/work/app", ".claude", "statusline.yaml"); got != want {
		t.Errorf("ProjectConfigPath() = %q, want %q", got, want)
	}
	if got, want := ProjectConfigPath(""), filepath.Join(".", ".claude", "statusline.yaml"); got != want {
		t.Errorf("ProjectConfigPath(\"\") = %q, want %q", got, want)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := NewDefaultConfig()
	cfg.Statusline.Color = true
	cfg.Statusline.Segments["mcp"] = false
	cfg.Statusline.Git.Timeout = 750 * time.Millisecond

	if err := Save(path, cfg, false); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := NewLoader().Load(Paths{User: path})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !loaded.Statusline.Color {
		t.Error("Color not persisted")
	}
	if loaded.Statusline.SegmentEnabled("mcp") {
		t.Error("mcp segment toggle not persisted")
	}
	if loaded.Statusline.Git.Timeout != 750*time.Millisecond {
		t.Errorf("Git.Timeout = %v, want 750ms", loaded.Statusline.Git.Timeout)
	}
}

func TestSave_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfigFile(t, path, "statusline: {}\n")

	err := Save(path, NewDefaultConfig(), false)
	if !errors.Is(err, ErrConfigExists) {
		t.Fatalf("Save() error = %v, want ErrConfigExists", err)
	}

	if err := Save(path, NewDefaultConfig(), true); err != nil {
		t.Fatalf("Save(force) error: %v", err)
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := NewDefaultConfig()
	cfg.Statusline.Stdin.MaxBytes = 0

	if err := Save(path, cfg, false); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Save() error = %v, want ErrInvalidConfig", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid config must not be written")
	}
}
