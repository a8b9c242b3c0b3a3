package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/locallift/cmd/locallift/cmd/browse"
	"github.com/agentstation/locallift/cmd/locallift/cmd/credentials"
	"github.com/agentstation/locallift/cmd/locallift/cmd/edit"
	"github.com/agentstation/locallift/cmd/locallift/cmd/imports"
	"github.com/agentstation/locallift/cmd/locallift/cmd/serve"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(browse.NewListCommand(a))
	rootCmd.AddCommand(browse.NewShowCommand(a))
	rootCmd.AddCommand(browse.NewFavoritesCommand(a))
	rootCmd.AddCommand(browse.NewDealsCommand(a))
	rootCmd.AddCommand(browse.NewStatsCommand(a))
	rootCmd.AddCommand(edit.NewFavoriteCommand(a))
	rootCmd.AddCommand(edit.NewReviewCommand(a))
	rootCmd.AddCommand(imports.NewSearchCommand(a))
	rootCmd.AddCommand(imports.NewImportCommand(a))
	rootCmd.AddCommand(imports.NewCategoriesCommand(a))

	// Management commands
	rootCmd.AddCommand(credentials.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("locallift %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
