package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/datasets-br/try-psql/internal/cli/config"
)

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration after defaults, the config file, PACK2SQL_*
environment variables and flags have been merged. The output is a valid
pack2sql.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := getConfig(cmd.Context())
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}

			out := cmd.OutOrStdout()
			if path := config.GetConfigFileUsed(); path != "" {
				_, _ = fmt.Fprintf(out, "# config file: %s\n", path)
			}
			_, err = out.Write(data)
			return err
		},
	}
}
