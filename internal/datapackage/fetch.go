package datapackage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Default locations for descriptors hosted on GitHub.
const (
	DefaultRawBaseURL = "https://raw.githubusercontent.com"
	DefaultBranch     = "master"
	DescriptorFile    = "datapackage.json"
	DefaultTimeout    = 30 * time.Second
)

// Fetcher retrieves descriptors from "<RawBaseURL>/<repo>/<Branch>/datapackage.json".
type Fetcher struct {
	client     *http.Client
	rawBaseURL string
	branch     string
	logger     *slog.Logger
}

// FetcherConfig holds Fetcher settings. Zero values fall back to the defaults.
type FetcherConfig struct {
	RawBaseURL string
	Branch     string
	Timeout    time.Duration
	// Client overrides the HTTP client; Timeout is ignored when set.
	Client *http.Client
	Logger *slog.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(cfg FetcherConfig) *Fetcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	base := strings.TrimRight(cfg.RawBaseURL, "/")
	if base == "" {
		base = DefaultRawBaseURL
	}

	branch := cfg.Branch
	if branch == "" {
		branch = DefaultBranch
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Fetcher{
		client:     client,
		rawBaseURL: base,
		branch:     branch,
		logger:     logger,
	}
}

// RepoBaseURL returns the raw content root of a repository branch.
func (f *Fetcher) RepoBaseURL(repo string) string {
	return f.rawBaseURL + "/" + strings.Trim(repo, "/") + "/" + f.branch
}

// DescriptorURL returns the URL of the repository's datapackage.json.
func (f *Fetcher) DescriptorURL(repo string) string {
	return f.RepoBaseURL(repo) + "/" + DescriptorFile
}

// ResourceURL returns the download URL of a resource path. Paths that are
// already absolute http(s) URLs are returned unchanged.
func (f *Fetcher) ResourceURL(repo, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return f.RepoBaseURL(repo) + "/" + strings.TrimLeft(path, "/")
}

// Fetch downloads and decodes the descriptor of repo. Any transport error,
// non-2xx status or invalid document is returned as an error.
func (f *Fetcher) Fetch(ctx context.Context, repo string) (*Descriptor, error) {
	url := f.DescriptorURL(repo)
	f.logger.Debug("fetching descriptor", "repo", repo, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("fetch %s: unexpected status %s: %s", url, resp.Status, strings.TrimSpace(string(snippet)))
	}

	d, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}

	f.logger.Debug("descriptor fetched", "repo", repo, "resources", len(d.Resources))
	return d, nil
}
