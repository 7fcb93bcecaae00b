// Package commands_test provides tests for CLI command creation.
package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/datasets-br/try-psql/internal/cli/config"
	"github.com/datasets-br/try-psql/internal/cli/testutil"
)

// execute runs cmd with no arguments and returns its stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// setupEnv points a fresh configuration at srv and an output directory
// inside a temporary working directory.
func setupEnv(t *testing.T, srvURL, sources string) string {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PACK2SQL_RAW_BASE_URL", srvURL)
	t.Setenv("PACK2SQL_SOURCES", sources)
	t.Setenv("PACK2SQL_OUTPUT_DIR", filepath.Join(dir, "cache"))
	return dir
}

func TestNewGenerateCommand(t *testing.T) {
	cmd := NewGenerateCommand()

	assert.Equal(t, "generate", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.Equal(t, []string{"gen"}, cmd.Aliases)
}

func TestGenerateCommand_WritesScripts(t *testing.T) {
	srv := testutil.SetupDescriptorServer(t, "master", map[string]string{
		"owner/state": "state-codes.json",
		"owner/city":  "city-codes.json",
	})
	dir := setupEnv(t, srv.URL, "owner/state:br-state-codes,owner/state:nope,owner/city")

	_, stderr, err := execute(t, NewGenerateCommand())
	require.NoError(t, err)

	sql, err := os.ReadFile(filepath.Join(dir, "cache", "step1.sql"))
	require.NoError(t, err)
	sh, err := os.ReadFile(filepath.Join(dir, "cache", "step1.sh"))
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(string(sql), "CREATE FOREIGN TABLE"))
	for _, table := range []string{"tmpcsv_br_state_codes", "tmpcsv_br_city_codes", "tmpcsv_br_city_synonyms"} {
		assert.Contains(t, string(sql), "CREATE FOREIGN TABLE "+table+" (")
	}
	assert.NotContains(t, string(sql), "br_region_codes")
	assert.Contains(t, string(sh),
		"wget -O /tmp/tmpcsv/br_state_codes.csv -c "+srv.URL+"/owner/state/master/data/br-state-codes.csv\n")

	testutil.AssertNoANSI(t, stderr)
	assert.Contains(t, stderr, "Generated")
	assert.Contains(t, stderr, "Missing (available: br-state-codes, br-region-codes)")
	assert.Contains(t, stderr, "ok 3 tables from 3 sources")
	assert.Contains(t, stderr, "! 1 requested resources not found")

	// Each repository is fetched once per configured source.
	assert.Len(t, srv.Requests(), 3)
}

func TestGenerateCommand_FetchFailure(t *testing.T) {
	srv := testutil.SetupDescriptorServer(t, "master", map[string]string{
		"owner/city": "city-codes.json",
	})
	dir := setupEnv(t, srv.URL, "owner/city,owner/unknown")

	_, _, err := execute(t, NewGenerateCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source owner/unknown")
	assert.Contains(t, err.Error(), "404")

	_, statErr := os.Stat(filepath.Join(dir, "cache"))
	assert.True(t, os.IsNotExist(statErr), "no output should be written on fatal errors")
}

func TestSourcesCommand(t *testing.T) {
	setupEnv(t, "https://example.test", "datasets/country-codes,datasets-br/state-codes:br-state-codes")

	stdout, _, err := execute(t, NewSourcesCommand())
	require.NoError(t, err)

	testutil.AssertNoANSI(t, stdout)
	lines := strings.Split(stdout, "\n")
	var rows []string
	for _, line := range lines {
		if strings.Contains(line, "datasets") {
			rows = append(rows, line)
		}
	}
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0], "datasets/country-codes")
	assert.Contains(t, rows[0], "_ALL_")
	assert.Contains(t, rows[0], "https://example.test/datasets/country-codes/master/datapackage.json")
	assert.Contains(t, rows[1], "br-state-codes")
}

func TestConfigCommand(t *testing.T) {
	setupEnv(t, "https://example.test", "a/b:c")

	stdout, _, err := execute(t, NewConfigCommand())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "https://example.test", got["raw_base_url"])
	assert.Equal(t, "30s", got["timeout"])
	assert.Equal(t, []any{map[string]any{"repo": "a/b", "resource": "c"}}, got["sources"])
}

func TestConfigCommand_ReadsConfigFromContext(t *testing.T) {
	setupEnv(t, "https://example.test", "a/b:c")

	cfg := &config.Config{
		Sources:   []config.SourceEntry{{Repo: "x/y", Resource: "z"}},
		Server:    "ctx_server",
		LogFormat: "text",
		Output:    "plain",
	}
	cmd := NewConfigCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	ctx := context.WithValue(context.Background(), config.ConfigKey(), cfg)
	require.NoError(t, cmd.ExecuteContext(ctx))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "ctx_server", got["server"])
	assert.Equal(t, []any{map[string]any{"repo": "x/y", "resource": "z"}}, got["sources"])
	assert.Nil(t, config.GetCurrentConfig(), "context config must be used without loading")
}
