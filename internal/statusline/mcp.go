package statusline

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/agentskills/statusline/internal/defs"
)

// Compile-time interface compliance check.
var _ MCPProvider = (*MCPCollector)(nil)

// MCPCollector counts MCP servers declared across a list of JSON files.
type MCPCollector struct {
	paths  []string
	keys   []string
	home   func() (string, error)
	logger *slog.Logger
}

// NewMCPCollector creates a collector over the candidate paths, counting the
// first present key of keys in each file. Nil arguments select the defaults.
func NewMCPCollector(paths, keys []string) *MCPCollector {
	if paths == nil {
		paths = defs.DefaultMCPConfigPaths()
	}
	if len(keys) == 0 {
		keys = []string{defs.MCPServersKey}
	}
	return &MCPCollector{
		paths:  slices.Clone(paths),
		keys:   slices.Clone(keys),
		home:   os.UserHomeDir,
		logger: slog.Default().With("module", "statusline.mcp"),
	}
}

// CountServers sums the server entries of every readable candidate file.
// Missing or malformed files contribute zero. The only error is a done ctx,
// in which case the partial sum is returned.
func (c *MCPCollector) CountServers(ctx context.Context, projectDir string) (int, error) {
	total := 0
	for _, path := range c.ResolvePaths(projectDir) {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n := countServers(path, c.keys)
		c.logger.Debug("mcp config read", "path", path, "servers", n)
		total += n
	}
	return total, nil
}

// ResolvePaths expands "~", anchors relative paths at projectDir and drops
// duplicates, preserving order.
func (c *MCPCollector) ResolvePaths(projectDir string) []string {
	if projectDir == "" {
		projectDir = DefaultProjectDir
	}

	resolved := make([]string, 0, len(c.paths))
	for _, p := range c.paths {
		abs, ok := c.resolve(p, projectDir)
		if !ok || slices.Contains(resolved, abs) {
			continue
		}
		resolved = append(resolved, abs)
	}
	return resolved
}

func (c *MCPCollector) resolve(p, projectDir string) (string, bool) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", false
	}

	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := c.home()
		if err != nil || home == "" {
			c.logger.Debug("home directory unavailable, skipping", "path", p)
			return "", false
		}
		p = filepath.Join(home, p[1:])
	} else if !filepath.IsAbs(p) {
		p = filepath.Join(projectDir, p)
	}

	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return filepath.Clean(p), true
}

// countServers returns the entry count under the first present key of
// keys in the JSON object stored at path. Arrays and objects count their
// length; anything else counts zero.
func countServers(path string, keys []string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0
	}

	for _, key := range keys {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0
		}
		switch servers := v.(type) {
		case map[string]any:
			return len(servers)
		case []any:
			return len(servers)
		default:
			return 0
		}
	}
	return 0
}
