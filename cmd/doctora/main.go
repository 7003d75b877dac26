// Package main is the entry point for the doctora CLI.
package main

import (
	"errors"
	"os"

	"github.com/intergrado-cg/doctora/internal/cli"
	"github.com/intergrado-cg/doctora/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, cli.ErrParseIssuesFound) {
		// ErrParseIssuesFound only selects the exit code; everything
		// else is worth a log line.
		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}
