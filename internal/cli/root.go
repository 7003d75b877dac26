// Package cli provides the Cobra command structure for doctora.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/intergrado-cg/doctora/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root doctora command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "doctora",
		Short: "An error-tolerant AsciiDoc parser",
		Long: `doctora parses AsciiDoc documents into a syntax tree and reports every
problem it finds without stopping at the first one.

It understands sections, delimited blocks, lists, tables, inline formatting,
document attributes with substitution, conditional directives, and safe
include resolution. Malformed input never aborts a parse: doctora recovers
at the nearest block boundary and keeps going.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
