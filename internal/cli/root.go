package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentskills/statusline/pkg/version"
)

// rootFlags holds flag values shared by the command tree.
type rootFlags struct {
	configPath string
	logFile    string
	logLevel   string

	projectDir string
	mcpConfigs []string
	noColor    bool
}

var rootCmd = newRootCmd()

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newRootCmd builds the command tree. The root command itself renders the
// statusline, since that is how Claude Code invokes it.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "statusline",
		Short: "Render a one-line Claude Code status summary",
		Long: `statusline reads the Claude Code statusline payload from stdin and prints
one line: git branch, model, context usage, MCP server count and cost.

Configure it in ~/.claude/settings.json:

  "statusLine": {"type": "command", "command": "statusline"}`,
		Version:      version.GetVersion(),
		SilenceUsage: true,
		// Claude Code may pass flags a given build does not know; the
		// render path must still print a line.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			installLogger(logSettingsFromFlags(flags))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runStatusline(cmd, flags)
			return nil
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("statusline %s\n", version.GetFullVersion()))

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "user config file (default $XDG_CONFIG_HOME/statusline/config.yaml)")
	pf.StringVar(&flags.logFile, "log-file", "", "write logs to this rotating file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flags.projectDir, "project-dir", "", "override the project directory from the payload")
	pf.StringArrayVar(&flags.mcpConfigs, "mcp-config", nil, "MCP config file to count (repeatable, replaces configured paths)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable ANSI colors")

	cmd.AddCommand(newInitCmd(flags))
	cmd.AddCommand(newConfigCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))

	return cmd
}

// resolveProjectDir returns --project-dir, or the working directory.
func resolveProjectDir(flags *rootFlags) (string, error) {
	if flags.projectDir != "" {
		return flags.projectDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return wd, nil
}
