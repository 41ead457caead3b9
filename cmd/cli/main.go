// Package main is the entry point for the mff-cost CLI.
package main

import (
	"os"

	"github.com/MidwestFurryFandom/mff-rams-plugin/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
