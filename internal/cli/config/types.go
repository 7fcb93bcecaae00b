// Package config provides configuration management for the pack2sql CLI.
//
// Configuration is layered with koanf: built-in defaults, then a YAML
// config file, then PACK2SQL_* environment variables, then explicitly set
// command-line flags.
package config

import (
	"time"

	"github.com/datasets-br/try-psql/internal/datapackage"
	"github.com/datasets-br/try-psql/internal/generator"
	"github.com/datasets-br/try-psql/internal/script"
)

// SourceEntry is one configured dataset source. In YAML it is either a
// string ("owner/repo" or "owner/repo:resource") or a mapping with repo and
// resource keys.
type SourceEntry struct {
	Repo     string `koanf:"repo" yaml:"repo" validate:"required,contains=/"`
	Resource string `koanf:"resource" yaml:"resource,omitempty"`
}

// Config holds all CLI configuration options.
type Config struct {
	Sources     []SourceEntry `koanf:"sources" yaml:"sources" validate:"min=1,dive"`
	UseIndex    bool          `koanf:"use_idx" yaml:"use_idx"`
	OutputDir   string        `koanf:"output_dir" yaml:"output_dir" validate:"required"`
	DownloadDir string        `koanf:"download_dir" yaml:"download_dir" validate:"required"`
	RawBaseURL  string        `koanf:"raw_base_url" yaml:"raw_base_url" validate:"required,url"`
	Branch      string        `koanf:"branch" yaml:"branch" validate:"required"`
	Server      string        `koanf:"server" yaml:"server" validate:"required"`
	Timeout     time.Duration `koanf:"timeout" yaml:"timeout" validate:"gt=0"`
	Verbose     bool          `koanf:"verbose" yaml:"verbose"`
	LogFormat   string        `koanf:"log_format" yaml:"log_format" validate:"oneof=text json"`
	Output      string        `koanf:"output" yaml:"output" validate:"oneof=auto text plain"`
}

// Default configuration values.
const (
	DefaultOutputDir = generator.DefaultOutputDir
	DefaultLogFormat = "text"
	DefaultOutput    = "auto" // TTY=styled text, otherwise plain
)

// DefaultSources is the dataset list used when no sources are configured.
var DefaultSources = []string{
	"datasets/country-codes",
	"datasets-br/state-codes:br-state-codes",
	"datasets-br/city-codes",
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"sources":      DefaultSources,
		"use_idx":      false,
		"output_dir":   DefaultOutputDir,
		"download_dir": script.DefaultDownloadDir,
		"raw_base_url": datapackage.DefaultRawBaseURL,
		"branch":       datapackage.DefaultBranch,
		"server":       script.DefaultServer,
		"timeout":      datapackage.DefaultTimeout.String(),
		"verbose":      false,
		"log_format":   DefaultLogFormat,
		"output":       DefaultOutput,
	}
}

// GeneratorSources converts the configured entries for the generator.
func (c *Config) GeneratorSources() []generator.Source {
	out := make([]generator.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		out = append(out, generator.Source{Repo: s.Repo, Resource: s.Resource})
	}
	return out
}

// ResourceLabel returns the resource name of s, or the wildcard sentinel.
func (s SourceEntry) ResourceLabel() string {
	if datapackage.IsWildcard(s.Resource) {
		return datapackage.AllResources
	}
	return s.Resource
}
