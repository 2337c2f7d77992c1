// Package main is the entry point for the studioctl maintenance binary.
package main

import (
	"os"

	"studio-site/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
