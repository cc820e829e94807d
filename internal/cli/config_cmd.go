package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentskills/statusline/internal/config"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	var docs bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration the statusline would use for the project
directory (--project-dir, default the working directory): the user file and
the project file merged over the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if docs {
				out := cmd.OutOrStdout()
				text, err := renderMarkdown(configReference(), !flags.noColor && isTerminalWriter(out))
				if err != nil {
					return err
				}
				_, _ = io.WriteString(out, text)
				return nil
			}

			projectDir, err := resolveProjectDir(flags)
			if err != nil {
				return err
			}

			loader := config.NewLoader()
			cfg, loadErr := loader.Load(config.Paths{
				User:    userConfigPath(flags),
				Project: config.ProjectConfigPath(projectDir),
			})

			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			files := loader.LoadedFiles()
			if len(files) == 0 {
				_, _ = fmt.Fprintln(out, "# no config files found, showing defaults")
			}
			for _, f := range files {
				_, _ = fmt.Fprintf(out, "# loaded: %s\n", f)
			}
			_, _ = out.Write(data)

			return loadErr
		},
	}

	cmd.Flags().BoolVar(&docs, "docs", false, "describe every setting instead of printing the configuration")

	return cmd
}
