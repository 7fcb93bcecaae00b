package generator

// Result summarizes a completed run.
type Result struct {
	RunID     string
	Sources   int
	SQLPath   string
	ShellPath string
	Tables    []Table
	Missing   []MissingResource
}

// Table describes one foreign table emitted during a run.
type Table struct {
	Index    int
	Repo     string
	Resource string
	Table    string
	File     string
	URL      string
	Columns  int
}

// MissingResource records a requested resource name that matched nothing.
type MissingResource struct {
	Repo      string
	Resource  string
	Available []string
}
