// Package generator drives a pack2sql run: it fetches the descriptor of every
// configured source, selects resources, and accumulates the SQL and shell
// scripts that are written once at the end.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/datasets-br/try-psql/internal/datapackage"
	"github.com/datasets-br/try-psql/internal/script"
	"github.com/datasets-br/try-psql/internal/sqlgen"
)

// Default output file names.
const (
	DefaultOutputDir = "cache"
	DefaultSQLFile   = "step1.sql"
	DefaultShellFile = "step1.sh"
)

// DescriptorSource fetches descriptors and resolves resource download URLs.
// *datapackage.Fetcher implements it.
type DescriptorSource interface {
	Fetch(ctx context.Context, repo string) (*datapackage.Descriptor, error)
	ResourceURL(repo, path string) string
}

// Source is one configured (repository, resource) pair. An empty Resource
// selects every resource of the repository.
type Source struct {
	Repo     string
	Resource string
}

// Config holds generator configuration.
type Config struct {
	Sources []Source
	// UseIndex selects index-based file and table names.
	UseIndex    bool
	DownloadDir string
	OutputDir   string
	Server      string
	SQLFile     string
	ShellFile   string
	// Now returns the generation date; time.Now when nil.
	Now func() time.Time
}

func (c *Config) applyDefaults() {
	if c.DownloadDir == "" {
		c.DownloadDir = script.DefaultDownloadDir
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Server == "" {
		c.Server = script.DefaultServer
	}
	if c.SQLFile == "" {
		c.SQLFile = DefaultSQLFile
	}
	if c.ShellFile == "" {
		c.ShellFile = DefaultShellFile
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Generator owns the state of a single run.
type Generator struct {
	cfg    Config
	source DescriptorSource
	logger *slog.Logger
	naming script.Naming

	idx int
	// tables maps each emitted table name to the repo that produced it.
	tables map[string]string
	sql    *script.Script
	shell  *script.Script
}

// New creates a generator. If logger is nil, a discard logger is used.
func New(cfg Config, source DescriptorSource, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg.applyDefaults()

	return &Generator{
		cfg:    cfg,
		source: source,
		logger: logger,
		naming: script.Naming{UseIndex: cfg.UseIndex, DownloadDir: cfg.DownloadDir},
		tables: make(map[string]string),
		sql:    script.New(cfg.SQLFile),
		shell:  script.New(cfg.ShellFile),
	}
}

// Run processes every source in order and writes both scripts to the output
// directory. A fetch or decode failure aborts the run before any file is
// written; a named resource that does not exist is logged and skipped.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	if g.sql.Fragments() > 0 {
		return nil, errors.New("generator already ran")
	}

	runID := uuid.New().String()
	logger := g.logger.With("run_id", runID)
	start := g.cfg.Now()

	logger.Info("begin cache-scripts generation",
		"use_idx", g.cfg.UseIndex,
		"sources", len(g.cfg.Sources))

	header := script.Header{Date: start}
	g.sql.Append(script.SQLPreamble(header, g.cfg.Server))
	g.shell.Append(script.ShellPreamble(header, g.cfg.DownloadDir))

	result := &Result{RunID: runID, Sources: len(g.cfg.Sources)}

	for _, src := range g.cfg.Sources {
		if err := g.processSource(ctx, logger, src, result); err != nil {
			return nil, err
		}
	}

	if err := g.write(result); err != nil {
		return nil, err
	}

	logger.Info("end of cache-scripts generation",
		"tables", len(result.Tables),
		"missing", len(result.Missing),
		"sql", result.SQLPath,
		"sh", result.ShellPath)

	return result, nil
}

func (g *Generator) processSource(ctx context.Context, logger *slog.Logger, src Source, result *Result) error {
	target := src.Resource
	if target == "" {
		target = datapackage.AllResources
	}

	logger.Info("creating cache-scripts", "repo", src.Repo, "resource", target)

	d, err := g.source.Fetch(ctx, src.Repo)
	if err != nil {
		return fmt.Errorf("source %s: %w", src.Repo, err)
	}

	resources, err := datapackage.Select(d, target)
	if err != nil {
		var nf *datapackage.NotFoundError
		if !errors.As(err, &nf) {
			return fmt.Errorf("source %s: %w", src.Repo, err)
		}
		logger.Error("no resource corresponding to requested name",
			"repo", src.Repo,
			"resource", nf.Name,
			"available", nf.AvailableList())
		result.Missing = append(result.Missing, MissingResource{
			Repo:      src.Repo,
			Resource:  nf.Name,
			Available: nf.Available,
		})
		return nil
	}

	if len(resources) == 0 {
		logger.Warn("descriptor lists no resources", "repo", src.Repo)
		return nil
	}

	for _, r := range resources {
		result.Tables = append(result.Tables, g.emit(logger, src.Repo, r))
	}
	return nil
}

// emit appends the SQL and shell fragments of one resource.
func (g *Generator) emit(logger *slog.Logger, repo string, r datapackage.Resource) Table {
	g.idx++
	target := g.naming.Derive(r, g.idx)
	columns := sqlgen.Columns(r.Schema.Fields)
	url := g.source.ResourceURL(repo, r.Path)

	logger.Info("building table",
		"index", g.idx,
		"table", target.Table,
		"path", r.Path)
	if prev, ok := g.tables[target.Table]; ok {
		logger.Warn("duplicate table name, later definition replaces earlier one",
			"table", target.Table,
			"repo", repo,
			"previous_repo", prev,
			"path", r.Path)
	}
	g.tables[target.Table] = repo

	g.sql.Append(script.ForeignTable(target, columns, g.cfg.Server))
	g.shell.Append(script.Download(target.File, url))

	return Table{
		Index:    g.idx,
		Repo:     repo,
		Resource: r.Name,
		Table:    target.Table,
		File:     target.File,
		URL:      url,
		Columns:  len(columns),
	}
}

// write creates the output directory (one level) and writes both scripts.
func (g *Generator) write(result *Result) error {
	if err := os.Mkdir(g.cfg.OutputDir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("creating output directory: %w", err)
	}

	result.SQLPath = filepath.Join(g.cfg.OutputDir, g.sql.Name())
	result.ShellPath = filepath.Join(g.cfg.OutputDir, g.shell.Name())

	if err := g.shell.WriteFile(result.ShellPath, 0o644); err != nil {
		return err
	}
	if err := g.sql.WriteFile(result.SQLPath, 0o644); err != nil {
		return err
	}
	return nil
}

// SQL returns the SQL script accumulated so far.
func (g *Generator) SQL() string {
	return g.sql.String()
}

// Shell returns the shell script accumulated so far.
func (g *Generator) Shell() string {
	return g.shell.String()
}
