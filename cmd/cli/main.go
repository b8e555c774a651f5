// Package main is the entry point for the addoncatalog CLI.
package main

import (
	"os"

	"addon-catalog/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
