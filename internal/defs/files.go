package defs

import "path/filepath"

// Files read from the Claude Code environment.
const (
	// ClaudeJSON is the user-level Claude Code state file holding global MCP servers.
	ClaudeJSON = ".claude.json"

	// MCPJSON is the project-level MCP server configuration file.
	MCPJSON = ".mcp.json"

	// MCPServersKey is the JSON key listing MCP servers in both files above.
	MCPServersKey = "mcpServers"
)

// Statusline configuration locations.
const (
	// AppDirName is the directory under the user config root.
	AppDirName = "statusline"

	// UserConfigYAML is the user config file name inside AppDirName.
	UserConfigYAML = "config.yaml"

	// ClaudeDir is the per-project Claude Code directory.
	ClaudeDir = ".claude"

	// ProjectConfigYAML is the project config file name inside ClaudeDir.
	ProjectConfigYAML = "statusline.yaml"
)

// Statusline segment keys, in render order.
const (
	SegmentBranch  = "branch"
	SegmentModel   = "model"
	SegmentContext = "context"
	SegmentMCP     = "mcp"
	SegmentCost    = "cost"
)

// SegmentKeys lists every segment key in render order.
var SegmentKeys = []string{SegmentBranch, SegmentModel, SegmentContext, SegmentMCP, SegmentCost}

// DefaultMCPConfigPaths returns the candidate MCP files checked when none
// are configured: the user-level Claude state file and the project file.
func DefaultMCPConfigPaths() []string {
	return []string{
		filepath.Join("~", ClaudeJSON),
		MCPJSON,
	}
}
