package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for exhume
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exhume",
		Short: "Export classification-flagged entries from a file catalog",
		Long: `Exhume extracts interesting files and directory subtrees from a forensic
image's recovered file catalog and materializes them into a conventional
directory tree, grouped by the interest set that flagged each entry.

Flagged files are saved under an identifier-prefixed name so entries that
share a display name never collide. Flagged directories are rebuilt
recursively from the catalog's parent/child relation.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewLsCommand())
	cmd.AddCommand(NewSeedCommand())

	return cmd
}
