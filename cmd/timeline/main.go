// Package main is the entry point for the timeline command-line tool.
package main

import (
	"os"

	"github.com/epiwatch/backend/cmd/timeline/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
