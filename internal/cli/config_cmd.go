package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/clangoi/judotimer/internal/config"
	"github.com/clangoi/judotimer/internal/errors"
	"github.com/clangoi/judotimer/internal/logging"
)

// AddConfigCommand adds the config command and its subcommands.
func AddConfigCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create configuration files",
		Long: `Show the effective configuration or write a default config file.

Examples:
  judotimer config show              # Effective configuration as YAML
  judotimer config show -o json      # Same, as JSON
  judotimer config init              # Write ~/.judotimer/config.yaml
  judotimer config init --project    # Write .judotimer/config.yaml here`,
	}

	addConfigShowCmd(cmd)
	addConfigInitCmd(cmd)

	root.AddCommand(cmd)
}

func addConfigShowCmd(parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(GetLogger().WithContext(cmd.Context()))
			if err != nil {
				return err
			}
			return writeConfig(cmd.OutOrStdout(), cmd.Flag("output").Value.String(), cfg)
		},
	})
}

func addConfigInitCmd(parent *cobra.Command) {
	var force, project bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the built-in defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ProjectConfigPath()
			if !project {
				var err error
				if path, err = config.GlobalConfigPath(); err != nil {
					return err
				}
			}

			if err := config.WriteFile(path, config.DefaultConfig(), force); err != nil {
				return err
			}
			logger := GetLogger()
			logger.Debug().Str("path", path).Bool("project", project).Msg("config file written")

			w := cmd.OutOrStdout()
			if cmd.Flag("output").Value.String() == OutputJSON {
				return writeJSON(w, map[string]any{"path": path, "written": true})
			}
			_, err := fmt.Fprintf(w, "%s Wrote %s\n", checkmark(), path)
			return err
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing config file")
	cmd.Flags().BoolVar(&project, "project", false, "Write the project config in the current directory")

	parent.AddCommand(cmd)
}

// writeConfig prints cfg in the config file layout. Credentials in the
// redis URL are masked.
func writeConfig(w io.Writer, output string, cfg *config.Config) error {
	shown := *cfg
	shown.Store.RedisURL = logging.FilterSensitiveValue(cfg.Store.RedisURL)

	data, err := config.Marshal(&shown)
	if err != nil {
		return err
	}

	if output != OutputJSON {
		_, err = w.Write(data)
		return err
	}

	// Round trip through YAML so durations print the way the file spells them.
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "failed to decode config")
	}
	return writeJSON(w, doc)
}
