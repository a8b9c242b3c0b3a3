// Package browse provides the read-only catalog commands: list, show,
// favorites, deals and stats.
package browse

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/locallift"
	"github.com/agentstation/locallift/internal/appcontext"
	"github.com/agentstation/locallift/internal/cmd/output"
	"github.com/agentstation/locallift/internal/cmd/table"
	"github.com/agentstation/locallift/pkg/catalogs"
	"github.com/agentstation/locallift/pkg/errors"
)

// NewListCommand creates the list command.
func NewListCommand(app appcontext.Interface) *cobra.Command {
	var f catalogs.Filter
	var sortBy string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		GroupID: "core",
		Short:   "List businesses in the catalog",
		Example: `  locallift list                         # All businesses
  locallift list --min-rating 4          # Average rating of 4 or more
  locallift list --category coffee       # Category contains "coffee"
  locallift list --deals --sort rating   # Businesses with a deal, best first
  locallift list -o wide                 # Include deals and sources`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch sortBy {
			case "", "id":
			case "rating":
				f.SortByRating = true
			default:
				return &errors.ValidationError{Field: "sort", Value: sortBy, Message: "must be 'id' or 'rating'"}
			}

			client, err := app.Client()
			if err != nil {
				return err
			}
			return printBusinesses(cmd, app, client, client.Businesses(f))
		},
	}

	cmd.Flags().Float64Var(&f.MinRating, "min-rating", 0, "Minimum average rating (1-5)")
	cmd.Flags().StringVarP(&f.Category, "category", "c", "", "Category substring")
	cmd.Flags().StringVarP(&f.Name, "name", "n", "", "Name substring")
	cmd.Flags().BoolVar(&f.FavoritesOnly, "favorites", false, "Only favorites")
	cmd.Flags().BoolVar(&f.DealsOnly, "deals", false, "Only businesses with a deal")
	cmd.Flags().StringVar(&sortBy, "sort", "id", "Sort order: id, rating")

	return cmd
}

// NewFavoritesCommand creates the favorites command.
func NewFavoritesCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"favs"},
		GroupID: "core",
		Short:   "List favorite businesses",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			return printBusinesses(cmd, app, client, client.Favorites())
		},
	}
}

// NewDealsCommand creates the deals command.
func NewDealsCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "deals",
		GroupID: "core",
		Short:   "List businesses advertising a deal",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			deals := client.Deals()
			p := output.NewPrinter(app.OutputFormat(), cmd.OutOrStdout())
			return p.Print(deals, func(bool) table.Data {
				// deals always show the deal column
				return table.BusinessesToTableData(deals, favoriteFunc(client), true)
			})
		},
	}
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		GroupID: "core",
		Short:   "Summarize the catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			stats := client.Stats()
			p := output.NewPrinter(app.OutputFormat(), cmd.OutOrStdout())
			return p.Print(stats, func(bool) table.Data {
				return table.StatsToTableData(stats)
			})
		},
	}
}

func printBusinesses(cmd *cobra.Command, app appcontext.Interface, client locallift.Client, businesses []catalogs.Business) error {
	p := output.NewPrinter(app.OutputFormat(), cmd.OutOrStdout())
	return p.Print(businesses, func(wide bool) table.Data {
		return table.BusinessesToTableData(businesses, favoriteFunc(client), wide)
	})
}

func favoriteFunc(client locallift.Client) func(*catalogs.Business) bool {
	cat := client.Catalog()
	return func(b *catalogs.Business) bool {
		return cat.IsFavorite(b)
	}
}
