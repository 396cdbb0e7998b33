// Package cli provides the Cobra command structure for orgtree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/orgtree/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root orgtree command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "orgtree",
		Short: "Parse, normalize and inspect structured-markup documents",
		Long: `orgtree parses structured-markup documents into a typed syntax tree,
interprets trees back to canonical text, and keeps the tree synchronized
incrementally while a document is being edited.

The parse command dumps the tree, fmt normalizes a document through a
parse/interpret round-trip, outline shows the headline skeleton, and langs
reports the source languages used by the document's code blocks.`,
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

	globals := &globalFlags{debug: &debug, configPath: &configPath, color: &color}

	// Add subcommands.
	rootCmd.AddCommand(newParseCommand(globals))
	rootCmd.AddCommand(newFmtCommand(globals))
	rootCmd.AddCommand(newOutlineCommand(globals))
	rootCmd.AddCommand(newLangsCommand(globals))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// globalFlags carries the persistent flag targets to subcommands.
type globalFlags struct {
	debug      *bool
	configPath *string
	color      *string
}
