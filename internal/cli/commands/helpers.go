package commands

import (
	"context"
	"log/slog"

	"github.com/datasets-br/try-psql/internal/cli/config"
	"github.com/datasets-br/try-psql/internal/datapackage"
)

// getConfig returns the configuration the root command stored in ctx, loading
// defaults when a command runs on its own.
func getConfig(ctx context.Context) (*config.Config, error) {
	if ctx != nil {
		if cfg := config.FromContext(ctx); cfg != nil {
			return cfg, nil
		}
	}
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg, nil
	}
	return config.LoadConfig("", nil)
}

func newFetcher(cfg *config.Config, logger *slog.Logger) *datapackage.Fetcher {
	return datapackage.NewFetcher(datapackage.FetcherConfig{
		RawBaseURL: cfg.RawBaseURL,
		Branch:     cfg.Branch,
		Timeout:    cfg.Timeout,
		Logger:     logger,
	})
}
