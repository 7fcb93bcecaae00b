// Package script renders the SQL and shell scripts produced by a run.
//
// Fragment builders (SQLPreamble, ShellPreamble, ForeignTable, Download) are
// pure functions returning text. Script accumulates fragments and is the only
// type here that touches the filesystem.
package script

import (
	"fmt"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/lib/pq"

	"github.com/datasets-br/try-psql/internal/sqlgen"
)

// DefaultServer is the file_fdw server name declared by SQLPreamble.
const DefaultServer = "csv_files"

// Generation messages written at the top of both scripts.
const (
	generatedBy = "Script generated by datapackage.json files and pack2sql generator."
	dateLayout  = "2006-01-02"
)

// Header describes the comment block at the top of a script.
type Header struct {
	Date time.Time
}

func (h Header) lines() []string {
	return []string{generatedBy, "Created in " + h.Date.Format(dateLayout)}
}

func commentBlock(prefix string, lines []string) string {
	var b strings.Builder
	b.WriteString(prefix + "\n")
	for _, l := range lines {
		b.WriteString(prefix + " " + l + "\n")
	}
	b.WriteString(prefix + "\n")
	return b.String()
}

// SQLPreamble returns the SQL header and the one-time file_fdw setup.
func SQLPreamble(h Header, server string) string {
	var b strings.Builder
	b.WriteString(commentBlock("--", h.lines()))
	b.WriteString("\n")
	b.WriteString("CREATE EXTENSION IF NOT EXISTS file_fdw;\n")
	server = sqlgen.QuoteIdentifier(server)
	fmt.Fprintf(&b, "-- DROP SERVER IF EXISTS %s CASCADE; -- danger when using with other tools.\n", server)
	fmt.Fprintf(&b, "CREATE SERVER IF NOT EXISTS %s FOREIGN DATA WRAPPER file_fdw;\n", server)
	return b.String()
}

// ShellPreamble returns the shell header and the scratch directory creation.
func ShellPreamble(h Header, downloadDir string) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString(commentBlock("##", h.lines()))
	b.WriteString("\n")
	b.WriteString("mkdir -p " + shellescape.Quote(downloadDir) + "\n")
	return b.String()
}

// ForeignTable returns the DROP/CREATE FOREIGN TABLE pair for one resource.
// The DROP cascades to dependent views.
func ForeignTable(t Target, columns []sqlgen.Column, server string) string {
	defs := make([]string, 0, len(columns))
	for _, c := range columns {
		defs = append(defs, "\t"+c.Definition())
	}

	table := sqlgen.QuoteIdentifier(t.Table)

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "DROP FOREIGN TABLE IF EXISTS %s CASCADE; -- danger drop VIEWS\n", table)
	fmt.Fprintf(&b, "CREATE FOREIGN TABLE %s (\n", table)
	if len(defs) > 0 {
		b.WriteString(strings.Join(defs, ",\n"))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, ") SERVER %s OPTIONS (\n", sqlgen.QuoteIdentifier(server))
	fmt.Fprintf(&b, "\tfilename %s,\n", sqlLiteral(t.File))
	b.WriteString("\tformat 'csv',\n")
	b.WriteString("\theader 'true'\n")
	b.WriteString(");\n")
	return b.String()
}

// Download returns the command that fetches url into file, continuing a
// partial download when the file exists.
func Download(file, url string) string {
	return "wget -O " + shellescape.Quote(file) + " -c " + shellescape.Quote(url) + "\n"
}

// sqlLiteral quotes s as a string constant. Backslashes switch to the E''
// escape form.
func sqlLiteral(s string) string {
	return strings.TrimSpace(pq.QuoteLiteral(s))
}
