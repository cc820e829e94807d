package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/agentskills/statusline/internal/config"
	"github.com/agentskills/statusline/internal/defs"
	"github.com/agentskills/statusline/internal/ui"
)

// segmentDocs describes each segment in display order.
var segmentDocs = map[string]string{
	defs.SegmentBranch:  "current git branch of the project directory; hidden outside a repository or on a detached HEAD",
	defs.SegmentModel:   "model display name from the payload, `?` when missing",
	defs.SegmentContext: "context window usage as `ctx:N%`, rounded down",
	defs.SegmentMCP:     "number of configured MCP servers as `mcp:N`; hidden when zero",
	defs.SegmentCost:    "session cost as `$X.YY`; hidden when it rounds to zero",
}

// configReference returns a Markdown description of the configuration file.
func configReference() string {
	d := config.NewDefaultConfig()

	var b strings.Builder
	b.WriteString("# statusline configuration\n\n")
	fmt.Fprintf(&b, "User file: `$XDG_CONFIG_HOME/%s/%s`. Project file: `<project>/%s/%s`, merged over the user file.\n\n",
		defs.AppDirName, defs.UserConfigYAML, defs.ClaudeDir, defs.ProjectConfigYAML)

	b.WriteString("## Segments\n\n")
	b.WriteString("Set `statusline.segments.<key>` to `false` to hide a segment.\n\n")
	b.WriteString("| Key | Shows |\n|---|---|\n")
	for _, key := range defs.SegmentKeys {
		fmt.Fprintf(&b, "| `%s` | %s |\n", key, segmentDocs[key])
	}

	b.WriteString("\n## Settings\n\n")
	b.WriteString("| Key | Default |\n|---|---|\n")
	fmt.Fprintf(&b, "| `statusline.color` | `%t` |\n", d.Statusline.Color)
	fmt.Fprintf(&b, "| `statusline.mcp.config_paths` | `%s` |\n", strings.Join(d.Statusline.MCP.ConfigPaths, "`, `"))
	fmt.Fprintf(&b, "| `statusline.mcp.keys` | `%s` |\n", strings.Join(d.Statusline.MCP.Keys, "`, `"))
	fmt.Fprintf(&b, "| `statusline.git.timeout` | `%s` |\n", d.Statusline.Git.Timeout)
	fmt.Fprintf(&b, "| `statusline.stdin.timeout` | `%s` |\n", d.Statusline.Stdin.Timeout)
	fmt.Fprintf(&b, "| `statusline.stdin.max_bytes` | `%d` |\n", d.Statusline.Stdin.MaxBytes)
	fmt.Fprintf(&b, "| `log.level` | `%s` |\n", d.Log.Level)
	b.WriteString("| `log.file` | none, logs are discarded |\n")
	fmt.Fprintf(&b, "| `log.max_size_mb` | `%d` |\n", d.Log.MaxSizeMB)
	fmt.Fprintf(&b, "| `log.max_backups` | `%d` |\n", d.Log.MaxBackups)

	b.WriteString("\nRelative MCP paths are resolved against the project directory; `~` expands to the home directory.\n")
	return b.String()
}

// renderMarkdown renders md for a terminal when styled is true, and as
// plain text otherwise.
func renderMarkdown(md string, styled bool) (string, error) {
	style := "notty"
	if styled {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// isTerminalWriter reports whether w is a terminal.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTerminal(f.Fd())
}
