package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentskills/statusline/internal/cli/wizard"
	"github.com/agentskills/statusline/internal/config"
	"github.com/agentskills/statusline/internal/ui"
)

// Swapped in tests.
var (
	runWizard          = wizard.Run
	newHeadlessManager = ui.NewHeadlessManager
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	var (
		project     bool
		useDefaults bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a statusline configuration file",
		Long: `Write a statusline configuration file.

On a terminal, a short form asks which segments to show and whether to use
colors. Without a terminal, or with --defaults, the defaults are written.
The user config is written unless --project is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := initTargetPath(flags, project)
			if err != nil {
				return err
			}

			cfg := config.NewDefaultConfig()

			headless := newHeadlessManager()
			if !useDefaults && !headless.IsHeadless() {
				res, err := runWizard(wizard.Result{
					Segments: cfg.Statusline.Segments,
					Color:    cfg.Statusline.Color,
				})
				if err != nil {
					if errors.Is(err, wizard.ErrCancelled) {
						_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "init cancelled, nothing written")
						return nil
					}
					return err
				}
				cfg.Statusline.Segments = res.Segments
				cfg.Statusline.Color = res.Color
			}

			if err := config.Save(path, cfg, force); err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&project, "project", false, "write the project config (.claude/statusline.yaml) instead of the user config")
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "skip the form and write the defaults")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

// initTargetPath picks the file init writes.
func initTargetPath(flags *rootFlags, project bool) (string, error) {
	if project {
		dir, err := resolveProjectDir(flags)
		if err != nil {
			return "", err
		}
		return config.ProjectConfigPath(dir), nil
	}

	if flags.configPath != "" {
		return flags.configPath, nil
	}
	return config.UserConfigPath()
}
