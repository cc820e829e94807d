package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentskills/statusline/internal/config"
	"github.com/agentskills/statusline/internal/statusline"
	"github.com/agentskills/statusline/internal/ui"
)

// runStatusline renders one line to the command's stdout. It never fails:
// every problem degrades to a default, and a panic prints the fallback line.
func runStatusline(cmd *cobra.Command, flags *rootFlags) {
	out := cmd.OutOrStdout()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("statusline render panicked", "panic", r)
			_, _ = fmt.Fprintln(out, statusline.RenderFallback())
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	userPath := userConfigPath(flags)

	// The user file decides how stdin is read; the project file is only
	// known once the payload names the project directory.
	userCfg := loadConfig(config.Paths{User: userPath})
	installLogger(logSettingsFromConfig(userCfg.Log, flags))

	data := readStdinWithTimeout(cmd.InOrStdin(), userCfg.Statusline.Stdin.Timeout, userCfg.Statusline.Stdin.MaxBytes)

	projectDir := flags.projectDir
	if projectDir == "" {
		projectDir = statusline.ParseInput(bytes.NewReader(data), 0).ProjectDir
	}

	cfg := loadConfig(config.Paths{User: userPath, Project: config.ProjectConfigPath(projectDir)})
	installLogger(logSettingsFromConfig(cfg.Log, flags))

	builder := statusline.New(builderOptions(cfg, flags, projectDir))
	line, err := builder.Build(ctx, bytes.NewReader(data))
	if err != nil {
		slog.Debug("statusline build failed", "error", err)
		line = statusline.RenderFallback()
	}

	_, _ = fmt.Fprintln(out, line)
}

// builderOptions maps the effective configuration and flags to builder options.
func builderOptions(cfg *config.Config, flags *rootFlags, projectDir string) statusline.Options {
	sl := cfg.Statusline

	mcpPaths := sl.MCP.ConfigPaths
	if len(flags.mcpConfigs) > 0 {
		mcpPaths = flags.mcpConfigs
	}

	return statusline.Options{
		ProjectDir:     projectDir,
		GitTimeout:     sl.Git.Timeout,
		MCPConfigPaths: mcpPaths,
		MCPKeys:        sl.MCP.Keys,
		MaxInputBytes:  sl.Stdin.MaxBytes,
		SegmentConfig:  sl.Segments,
		Color:          sl.Color && !flags.noColor,
	}
}

// userConfigPath returns --config, or the default user config location.
func userConfigPath(flags *rootFlags) string {
	if flags.configPath != "" {
		return flags.configPath
	}
	path, err := config.UserConfigPath()
	if err != nil {
		slog.Debug("no user config location", "error", err)
		return ""
	}
	return path
}

// loadConfig loads paths and falls back to defaults when the merged
// configuration is invalid.
func loadConfig(paths config.Paths) *config.Config {
	cfg, err := config.NewLoader().Load(paths)
	if err != nil {
		slog.Warn("invalid configuration, using defaults", "error", err)
		return config.NewDefaultConfig()
	}
	return cfg
}

// readStdinWithTimeout reads at most maxBytes from r. It returns nil when r
// is an interactive terminal, and whatever the read produced if it fails.
// When the read does not finish within timeout, it returns nil.
func readStdinWithTimeout(r io.Reader, timeout time.Duration, maxBytes int64) []byte {
	if r == nil {
		return nil
	}
	if f, ok := r.(*os.File); ok && ui.IsTerminal(f.Fd()) {
		slog.Debug("stdin is a terminal, skipping payload")
		return nil
	}
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes)
	}
	if timeout <= 0 {
		timeout = config.DefaultStdinTimeout
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(r)
		done <- result{data: data, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		if res.err != nil {
			slog.Debug("stdin read failed", "error", res.err)
		}
		return res.data
	case <-timer.C:
		slog.Debug("stdin read timed out", "timeout", timeout)
		return nil
	}
}
