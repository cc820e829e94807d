package statusline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestMCPCollector(home string, paths, keys []string) *MCPCollector {
	c := NewMCPCollector(paths, keys)
	c.home = func() (string, error) { return home, nil }
	return c
}

func TestCountServersFile(t *testing.T) {
	dir := t.TempDir()
	keys := []string{"mcpServers"}

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"object", `{"mcpServers":{"a":{},"b":{}}}`, 2},
		{"array", `{"mcpServers":[{"name":"a"},{"name":"b"},{"name":"c"}]}`, 3},
		{"empty object", `{"mcpServers":{}}`, 0},
		{"missing key", `{"other":{"a":{}}}`, 0},
		{"string value", `{"mcpServers":"a,b"}`, 0},
		{"null value", `{"mcpServers":null}`, 0},
		{"malformed json", `{"mcpServers":{`, 0},
		{"top-level array", `[{"mcpServers":{"a":{}}}]`, 0},
		{"empty file", ``, 0},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "case"+string(rune('a'+i))+".json")
			writeFile(t, path, tt.content)
			if got := countServers(path, keys); got != tt.want {
				t.Errorf("countServers() = %d, want %d", got, tt.want)
			}
		})
	}

	if got := countServers(filepath.Join(dir, "missing.json"), keys); got != 0 {
		t.Errorf("countServers(missing) = %d, want 0", got)
	}
}

func TestCountServersFile_FirstPresentKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servers.json")
	writeFile(t, path, `{"servers":{"x":{}},"mcpServers":{"a":{},"b":{}}}`)

	if got := countServers(path, []string{"mcpServers", "servers"}); got != 2 {
		t.Errorf("countServers() = %d, want 2", got)
	}
	if got := countServers(path, []string{"servers", "mcpServers"}); got != 1 {
		t.Errorf("countServers() = %d, want 1", got)
	}
}

func TestMCPCollector_SumsUserAndProject(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	writeFile(t, filepath.Join(home, ".claude.json"), `{"mcpServers":{"github":{},"linear":{}}}`)
	writeFile(t, filepath.Join(project, ".mcp.json"), `{"mcpServers":{"postgres":{}}}`)

	c := newTestMCPCollector(home, nil, nil)
	got, err := c.CountServers(context.Background(), project)
	if err != nil {
		t.Fatalf("CountServers() error: %v", err)
	}
	if got != 3 {
		t.Errorf("CountServers() = %d, want 3", got)
	}
}

func TestMCPCollector_NoFiles(t *testing.T) {
	c := newTestMCPCollector(t.TempDir(), nil, nil)
	got, err := c.CountServers(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("CountServers() error: %v", err)
	}
	if got != 0 {
		t.Errorf("CountServers() = %d, want 0", got)
	}
}

func TestMCPCollector_MalformedFileContributesZero(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	writeFile(t, filepath.Join(home, ".claude.json"), `not json`)
	writeFile(t, filepath.Join(project, ".mcp.json"), `{"mcpServers":{"a":{},"b":{}}}`)

	got, err := newTestMCPCollector(home, nil, nil).CountServers(context.Background(), project)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("CountServers() = %d, want 2", got)
	}
}

func TestMCPCollector_DuplicatePathsReadOnce(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".mcp.json"), `{"mcpServers":{"a":{}}}`)

	paths := []string{".mcp.json", filepath.Join(project, ".mcp.json"), "./.mcp.json"}
	got, err := newTestMCPCollector(t.TempDir(), paths, nil).CountServers(context.Background(), project)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("CountServers() = %d, want 1", got)
	}
}

func TestMCPCollector_CancelledContext(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".mcp.json"), `{"mcpServers":{"a":{}}}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestMCPCollector(t.TempDir(), nil, nil).CountServers(ctx, project)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestMCPCollector_ResolvePaths(t *testing.T) {
	home := filepath.Join(string(filepath.Separator), "home", "dev")
	project := filepath.Join(string(filepath.Separator), "work", "app")
	abs := filepath.Join(string(filepath.Separator), "etc", "mcp.json")

	c := newTestMCPCollector(home, []string{"~/.claude.json", ".mcp.json", abs, "", "~"}, nil)
	got := c.ResolvePaths(project)
	want := []string{
		filepath.Join(home, ".claude.json"),
		filepath.Join(project, ".mcp.json"),
		abs,
		home,
	}
	if !slices.Equal(got, want) {
		t.Errorf("ResolvePaths() = %v, want %v", got, want)
	}
}

func TestMCPCollector_NoHomeSkipsTildePaths(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".mcp.json"), `{"mcpServers":{"a":{}}}`)

	c := NewMCPCollector(nil, nil)
	c.home = func() (string, error) { return "", errors.New("no home") }

	got := c.ResolvePaths(project)
	if len(got) != 1 || got[0] != filepath.Join(project, ".mcp.json") {
		t.Errorf("ResolvePaths() = %v, want only the project file", got)
	}
}
