package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-depextract/internal/filesystem"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, newClient ClientFactory) *cobra.Command {
	return newRootCommand(fs, newClient, time.Now)
}

func newRootCommand(fs filesystem.FileSystem, newClient ClientFactory, now func() time.Time) *cobra.Command {
	e := &env{fs: fs, newClient: newClient, now: now}
	browse := &BrowseCommand{env: e}

	rootCmd := &cobra.Command{
		Use:   "depextract",
		Short: "Pick PHP files and export them with their dependencies",
		Long: `A terminal front end for the PHP dependency extractor.

Scan a project, pick files from the tree, analyze their class and
include dependencies, and copy the resolved file set to an output
directory.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive browser when no subcommand is provided.
			return browse.Run(cmd, args)
		},
	}

	e.bindFlags(rootCmd)
	browse.bindBrowseFlags(rootCmd)

	rootCmd.AddCommand(NewBrowseCommand(e))
	rootCmd.AddCommand(NewTreeCommand(e))
	rootCmd.AddCommand(NewExportCommand(e))
	rootCmd.AddCommand(NewPlanCommand(e))
	rootCmd.AddCommand(NewSettingsCommand(e))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	rootCmd := NewRootCommand(fs, NewHTTPClientFactory())

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
