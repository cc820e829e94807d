package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentskills/statusline/internal/config"
	"github.com/agentskills/statusline/internal/statusline"
	"github.com/agentskills/statusline/internal/ui"
)

// previewOptions holds the preview command's flags.
type previewOptions struct {
	payloadFile string
	model       string
	contextPct  float64
	cost        float64
}

func newPreviewCmd(flags *rootFlags) *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the statusline for a directory without a host payload",
		Long: `Render the statusline for the project directory (--project-dir, default
the working directory) from a sample payload, or from --payload.

Unlike the root command, errors are reported and the exit code is non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := resolveProjectDir(flags)
			if err != nil {
				return err
			}

			data, err := previewPayload(opts, projectDir)
			if err != nil {
				return err
			}

			cfg, err := config.NewLoader().Load(config.Paths{
				User:    userConfigPath(flags),
				Project: config.ProjectConfigPath(projectDir),
			})
			if err != nil {
				return err
			}
			installLogger(logSettingsFromConfig(cfg.Log, flags))

			color := cfg.Statusline.Color && !flags.noColor
			spin := ui.NewSpinner(newHeadlessManager(), cmd.ErrOrStderr(), "collecting git and MCP status", color)
			line, err := statusline.New(builderOptions(cfg, flags, projectDir)).Build(cmd.Context(), bytes.NewReader(data))
			spin.Stop()
			if err != nil {
				return fmt.Errorf("build statusline: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.payloadFile, "payload", "", "read the payload from this JSON file")
	f.StringVar(&opts.model, "model", "preview", "model name for the sample payload")
	f.Float64Var(&opts.contextPct, "context", 0, "context used percentage for the sample payload")
	f.Float64Var(&opts.cost, "cost", 0, "total cost in USD for the sample payload")

	return cmd
}

// previewPayload returns the payload file's contents, or a sample payload
// built from opts for projectDir.
func previewPayload(opts *previewOptions, projectDir string) ([]byte, error) {
	if opts.payloadFile != "" {
		data, err := os.ReadFile(opts.payloadFile)
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		return data, nil
	}

	sample := map[string]any{
		"model":          map[string]any{"display_name": opts.model},
		"context_window": map[string]any{"used_percentage": opts.contextPct},
		"cost":           map[string]any{"total_cost_usd": opts.cost},
		"workspace":      map[string]any{"project_dir": projectDir},
	}
	data, err := json.Marshal(sample)
	if err != nil {
		return nil, fmt.Errorf("encode sample payload: %w", err)
	}
	return data, nil
}
