package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for batchkit
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batchkit",
		Short: "Batch file renaming and Word document processing",
		Long: `batchkit previews and applies batch renames and drives a document
service for Word find/replace, merge and extraction.

Renames are computed by an engine (pattern rules, numbered or dated
sequences, or a list of names from a spreadsheet), reviewed for invalid
and colliding names, and shown as a preview. With --apply the reviewed
mapping is written to a manifest for the file executor.

Configuration is loaded from .batchkit/config.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				color.NoColor = true
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default: .batchkit/config.yaml)")
	pf.String("log-level", "", "Log level: trace, debug, info, warn, error")
	pf.String("log-dir", "", "Directory for run logs")
	pf.Bool("no-color", false, "Disable colored output")

	cmd.AddCommand(NewRenameCommand())
	cmd.AddCommand(NewSequenceCommand())
	cmd.AddCommand(NewImportCommand())
	cmd.AddCommand(NewPresetCommand())
	cmd.AddCommand(NewWordCommand())
	cmd.AddCommand(NewExcelCommand())
	cmd.AddCommand(NewSizeCommand())

	return cmd
}
