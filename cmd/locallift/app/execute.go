package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/locallift/internal/cmd/globals"
	"github.com/agentstation/locallift/internal/cmd/output"
)

// Execute runs the locallift CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	a.ctx = ctx

	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "locallift",
		Short:   "Local business catalog",
		Version: a.version,
		Long: `LocalLift keeps a catalog of independent local businesses.

Businesses are imported from a local JSONL dataset, the Yelp business
search API and OpenStreetMap. Chains are filtered out, duplicates are
merged, and your favorites and reviews survive every re-import.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	globals.AddFlags(rootCmd)
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel,
		"log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().StringVar(&a.config.DataFile, "data-file", a.config.DataFile,
		"catalog file")
	rootCmd.PersistentFlags().StringVar(&a.config.DatasetFile, "dataset", a.config.DatasetFile,
		"JSONL business dataset file")

	rootCmd.SetVersionTemplate("locallift {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags := globals.Parse(cmd)
	if _, err := output.ParseFormat(flags.Output); err != nil {
		return err
	}
	a.config.UpdateFromFlags(flags.Verbose, flags.Quiet, flags.Output, a.config.LogLevel)

	logger := NewLogger(a.config)
	a.logger = &logger
	return nil
}

// ExitOnError prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
