package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/datasets-br/try-psql/internal/cli/output"
)

// NewSourcesCommand creates the sources command.
func NewSourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the configured dataset sources",
		Long: `Print the sources pack2sql will read, in processing order, with the
descriptor URL each one resolves to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := getConfig(cmd.Context())
			if err != nil {
				return err
			}
			fetcher := newFetcher(cfg, nil)

			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
			t := r.Table()
			t.AppendHeader(table.Row{"#", "Repository", "Resource", "Descriptor"})
			for i, s := range cfg.Sources {
				t.AppendRow(table.Row{i + 1, s.Repo, s.ResourceLabel(), fetcher.DescriptorURL(s.Repo)})
			}
			t.Render()
			return nil
		},
	}
}
