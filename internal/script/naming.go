package script

import (
	"path"
	"strconv"

	"github.com/datasets-br/try-psql/internal/datapackage"
	"github.com/datasets-br/try-psql/internal/sqlgen"
)

// DefaultDownloadDir is the scratch directory the shell script downloads into.
const DefaultDownloadDir = "/tmp/tmpcsv"

// Name prefixes for the two naming modes.
const (
	indexPrefix = "tmpcsc"
	tablePrefix = "tmpcsv_"
)

// Naming derives local file and table names for resources.
type Naming struct {
	// UseIndex selects "tmpcsc<IDX>" names instead of names derived from
	// the resource path.
	UseIndex    bool
	DownloadDir string
}

// Target holds the names derived for one resource.
type Target struct {
	// Stem is the file name without directory and ".csv".
	Stem  string
	Table string
	File  string
}

// Derive returns the target names of r at the 1-based run-wide index idx.
func (n Naming) Derive(r datapackage.Resource, idx int) Target {
	dir := n.DownloadDir
	if dir == "" {
		dir = DefaultDownloadDir
	}

	var stem, table string
	if n.UseIndex {
		stem = indexPrefix + strconv.Itoa(idx)
		table = stem
	} else {
		stem = sqlgen.NormalizeName(sqlgen.BaseName(r.Path))
		table = tablePrefix + stem
	}

	return Target{
		Stem:  stem,
		Table: table,
		File:  path.Join(dir, stem+".csv"),
	}
}
