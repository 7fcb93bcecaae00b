package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/datasets-br/try-psql/internal/cli/config"
	"github.com/datasets-br/try-psql/internal/cli/output"
	"github.com/datasets-br/try-psql/internal/generator"
)

// Summary row statuses.
const (
	statusGenerated = "generated"
	statusMissing   = "missing"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the download script and foreign table definitions",
		Long: `Fetch the datapackage.json of every configured source and write two scripts
to the output directory:

  step1.sh   wget commands that download each CSV resource
  step1.sql  file_fdw foreign tables reading the downloaded files

Running pack2sql without a subcommand does the same.`,
		Example: `  # Default sources into ./cache
  pack2sql generate

  # One resource of one repository, index-based names
  pack2sql generate --source datasets-br/state-codes:br-state-codes --use-idx

  # Everything from a repository on another branch
  pack2sql generate --source datasets-br/city-codes --branch main`,
		Aliases: []string{"gen"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunGenerate(cmd)
		},
	}
}

// RunGenerate runs the generator with the current configuration and renders
// a summary on the command's error stream. SIGINT cancels pending fetches.
func RunGenerate(cmd *cobra.Command) error {
	cfg, err := getConfig(cmd.Context())
	if err != nil {
		return err
	}
	logger := config.GetLogger(cmd.Context())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	gen := generator.New(generator.Config{
		Sources:     cfg.GeneratorSources(),
		UseIndex:    cfg.UseIndex,
		DownloadDir: cfg.DownloadDir,
		OutputDir:   cfg.OutputDir,
		Server:      cfg.Server,
	}, newFetcher(cfg, logger), logger)

	result, err := gen.Run(ctx)
	if err != nil {
		return err
	}

	r := output.NewRenderer(cmd.ErrOrStderr(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
	renderSummary(r, result)
	return nil
}

func renderSummary(r *output.Renderer, res *generator.Result) {
	styles := r.Styles()
	title := cases.Title(language.English)

	r.Header(1, "pack2sql run "+res.RunID)

	t := r.Table()
	t.AppendHeader(table.Row{"#", "Repository", "Resource", "Table", "Columns", "Status"})
	for _, tbl := range res.Tables {
		t.AppendRow(table.Row{
			tbl.Index, tbl.Repo, tbl.Resource, tbl.Table, tbl.Columns,
			styles.Info.Render(title.String(statusGenerated)),
		})
	}
	for _, m := range res.Missing {
		note := title.String(statusMissing)
		if len(m.Available) > 0 {
			note += " (available: " + strings.Join(m.Available, ", ") + ")"
		}
		t.AppendRow(table.Row{"-", m.Repo, m.Resource, "-", "-", styles.Warning.Render(note)})
	}
	t.Render()

	r.Success(fmt.Sprintf("%d tables from %d sources written to %s and %s",
		len(res.Tables), res.Sources, res.ShellPath, res.SQLPath))
	if n := len(res.Missing); n > 0 {
		r.Warning(fmt.Sprintf("%d requested resources not found", n))
	}
}
