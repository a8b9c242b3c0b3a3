// Package imports provides the commands that replace the catalog from
// external sources: search, import and categories.
//
// An import that finds nothing leaves the catalog untouched; the commands
// report that as a warning, not a failure.
package imports

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/locallift"
	"github.com/agentstation/locallift/internal/appcontext"
	"github.com/agentstation/locallift/internal/cmd/alerts"
	"github.com/agentstation/locallift/internal/cmd/output"
	"github.com/agentstation/locallift/internal/cmd/table"
	"github.com/agentstation/locallift/pkg/constants"
	"github.com/agentstation/locallift/pkg/errors"
	"github.com/agentstation/locallift/pkg/normalize"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(app appcontext.Interface) *cobra.Command {
	var req locallift.SearchRequest

	cmd := &cobra.Command{
		Use:     "search [location]",
		GroupID: "core",
		Short:   "Replace the catalog with a search across all sources",
		Long: `Search the dataset, the Yelp business search API and OpenStreetMap
for local businesses and replace the catalog with the merged result.

Sources are merged in that order; the first source to list a business
wins. Chains are dropped. Without a location argument the stored default
location is used (see 'locallift config set-location').`,
		Example: `  locallift search "Austin, TX"
  locallift search Reno --category coffee --limit 50
  locallift search Boston --tags "cafe|bakery"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				req.Location = args[0]
			} else {
				creds, err := app.Credentials().Load()
				if err != nil {
					return err
				}
				req.Location = creds.DefaultLocation
			}
			if strings.TrimSpace(req.Location) == "" {
				return errors.NewValidationError("location", "", "pass a location or set a default with 'locallift config set-location'")
			}

			client, err := app.Client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			result, err := client.Search(ctx, req)
			if errors.IsNoResults(err) {
				suggestCategories(ctx, cmd, client, req.Category)
			}
			return report(cmd, app, result, err)
		},
	}

	cmd.Flags().StringVarP(&req.Category, "category", "c", "", "Category to search for")
	cmd.Flags().StringVar(&req.Tags, "tags", "", "OpenStreetMap tag alternation, e.g. \"cafe|bakery\"")
	cmd.Flags().IntVarP(&req.Limit, "limit", "l", 0, "Businesses per source (0 for the default, negative for no limit)")

	return cmd
}

// NewImportCommand creates the import command with its source subcommands.
func NewImportCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "import",
		GroupID: "core",
		Short:   "Replace the catalog from a single source",
	}
	cmd.AddCommand(newDatasetCommand(app), newOSMCommand(app))
	return cmd
}

func newDatasetCommand(app appcontext.Interface) *cobra.Command {
	var req locallift.DatasetImport

	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Import businesses from the local dataset",
		Example: `  locallift import dataset --city "Las Vegas" --category pizza
  locallift import dataset --limit -1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			result, err := client.ImportDataset(ctx, req)
			if errors.IsNoResults(err) {
				suggestCategories(ctx, cmd, client, req.Category)
			}
			return report(cmd, app, result, err)
		},
	}

	cmd.Flags().StringVar(&req.City, "city", "", "City to import (substring, case-insensitive)")
	cmd.Flags().StringVarP(&req.Category, "category", "c", "", "Category substring")
	cmd.Flags().IntVarP(&req.Limit, "limit", "l", 0, "Maximum businesses (0 for the default, negative for no limit)")

	return cmd
}

func newOSMCommand(app appcontext.Interface) *cobra.Command {
	var req locallift.OSMImport

	cmd := &cobra.Command{
		Use:     "osm <location>",
		Aliases: []string{"openstreetmap"},
		Short:   "Import businesses from OpenStreetMap",
		Example: `  locallift import osm "Portland, OR" --tags "cafe|restaurant"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Location = args[0]
			client, err := app.Client()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()

			result, err := client.ImportOSM(ctx, req)
			return report(cmd, app, result, err)
		},
	}

	cmd.Flags().StringVar(&req.Tags, "tags", "", "Tag alternation for amenity, shop and craft")
	cmd.Flags().IntVarP(&req.Limit, "limit", "l", 0, "Maximum businesses (0 for the default, negative for no limit)")

	return cmd
}

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		GroupID: "core",
		Short:   "List the categories found in the dataset",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			categories, err := client.DatasetCategories(cmd.Context())
			if err != nil {
				return err
			}
			p := output.NewPrinter(app.OutputFormat(), cmd.OutOrStdout())
			return p.Print(categories, func(bool) table.Data {
				return table.CategoriesToTableData(categories)
			})
		},
	}
}

// suggestCategories hints at dataset categories close to a category that
// matched nothing.
func suggestCategories(ctx context.Context, cmd *cobra.Command, client locallift.Client, category string) {
	if strings.TrimSpace(category) == "" {
		return
	}
	categories, err := client.DatasetCategories(ctx)
	if err != nil {
		return
	}
	if hints := normalize.Suggest(category, categories, 3); len(hints) > 0 {
		alerts.ForCommand(cmd).Info("Did you mean: %s?", strings.Join(hints, ", "))
	}
}

// report prints an import result. Failed sources become warnings and an
// empty import is a warning rather than an error.
func report(cmd *cobra.Command, app appcontext.Interface, result *locallift.ImportResult, err error) error {
	w := alerts.ForCommand(cmd)
	if result != nil {
		for _, s := range result.Sources {
			if s.Error != "" {
				w.Warning(nil, "%s failed: %s", s.Source, s.Error)
			}
		}
	}

	if errors.IsNoResults(err) {
		w.Warning(nil, "No businesses found; catalog unchanged")
		return nil
	}
	if err != nil {
		return err
	}

	p := output.NewPrinter(app.OutputFormat(), cmd.OutOrStdout())
	if p.Format().IsTable() {
		w.Success("Imported %d businesses (%d favorites kept)", result.Businesses, result.Favorites)
	}
	return p.Print(result, func(bool) table.Data {
		return table.ImportResultToTableData(result)
	})
}
