// Package statusline renders the one-line Claude Code status summary:
// branch, model, context usage, MCP server count and session cost.
package statusline

import (
	"context"
	"io"
	"time"
)

// Input defaults applied when the payload omits a field or cannot be parsed.
const (
	DefaultModel      = "?"
	DefaultProjectDir = "."
)

// Input is the subset of the Claude Code statusline payload that is rendered.
type Input struct {
	Model          string
	UsedPercentage float64
	CostUSD        float64
	ProjectDir     string

	// Valid is false when the payload was empty or not a JSON object.
	Valid bool
}

// StatusData is everything the Renderer needs for one line.
type StatusData struct {
	Branch         string
	Model          string
	ContextPercent float64
	MCPServers     int
	CostUSD        float64
}

// Builder turns a statusline payload into the rendered line.
type Builder interface {
	// Build reads the payload from r and returns the line without a
	// trailing newline. Input and lookup problems never produce an error;
	// they degrade to defaults.
	Build(ctx context.Context, r io.Reader) (string, error)
}

// BranchProvider resolves the checked-out branch of a project directory.
type BranchProvider interface {
	CurrentBranch(ctx context.Context, projectDir string) (string, error)
}

// MCPProvider counts the MCP servers configured for a project directory.
type MCPProvider interface {
	CountServers(ctx context.Context, projectDir string) (int, error)
}

// Options configures a new Builder instance.
type Options struct {
	// BranchProvider resolves the git branch. If nil, a GitCollector
	// using GitTimeout is created.
	BranchProvider BranchProvider

	// MCPProvider counts MCP servers. If nil, an MCPCollector over
	// MCPConfigPaths and MCPKeys is created.
	MCPProvider MCPProvider

	// ProjectDir overrides the project directory found in the payload.
	ProjectDir string

	// GitTimeout bounds the branch lookup. Zero uses the git package default.
	GitTimeout time.Duration

	// MCPConfigPaths are candidate MCP files; nil uses defs.DefaultMCPConfigPaths.
	MCPConfigPaths []string

	// MCPKeys are the JSON keys counted in each MCP file; nil counts "mcpServers".
	MCPKeys []string

	// MaxInputBytes caps the payload read. Zero means no cap.
	MaxInputBytes int64

	// SegmentConfig maps segment keys to enabled state.
	// When nil or empty, all segments are displayed.
	SegmentConfig map[string]bool

	// Color enables ANSI styling of segments.
	Color bool
}
