// Package main provides the pack2sql CLI.
package main

import (
	"os"

	"github.com/datasets-br/try-psql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
