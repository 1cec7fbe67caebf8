package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration solveplot would use, after applying the
--config file, SOLVEPLOT_* environment variables and flags.

The YAML output is a valid configuration file.

Examples:
  solveplot config > solveplot.yaml
  solveplot config --config solveplot.yaml --format svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
