// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/datasets-br/try-psql/internal/cli/output"
)

// DescriptorServer serves datapackage.json files the way
// raw.githubusercontent.com lays them out: /<owner>/<repo>/<branch>/datapackage.json.
type DescriptorServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []string
}

// SetupDescriptorServer starts a server answering for the given repos.
// descriptors maps "owner/repo" to a descriptor file name under
// testdata/descriptors. Unknown repos get 404.
func SetupDescriptorServer(t *testing.T, branch string, descriptors map[string]string) *DescriptorServer {
	t.Helper()

	dir := filepath.Join(GetTestdataDir(t), "descriptors")
	bodies := make(map[string][]byte, len(descriptors))
	for repo, name := range descriptors {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("failed to read descriptor %s: %v", name, err)
		}
		bodies["/"+repo+"/"+branch+"/datapackage.json"] = data
	}

	ds := &DescriptorServer{}
	ds.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ds.mu.Lock()
		ds.requests = append(ds.requests, r.URL.Path)
		ds.mu.Unlock()

		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(ds.Close)
	return ds
}

// Requests returns the request paths seen so far.
func (ds *DescriptorServer) Requests() []string {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return append([]string(nil), ds.requests...)
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererPlain creates a new test renderer in plain mode.
func NewTestRendererPlain() *TestRenderer {
	return NewTestRenderer(output.ModePlain, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// GetTestdataDir returns the path to the testdata directory.
func GetTestdataDir(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	// Try different relative paths based on where tests are run from
	candidates := []string{
		filepath.Join(wd, "testdata"),
		filepath.Join(wd, "..", "testdata"),
		filepath.Join(wd, "..", "..", "testdata"),
		filepath.Join(wd, "..", "..", "..", "testdata"),
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	t.Fatalf("testdata directory not found, tried: %v", candidates)
	return ""
}
