// Package edit provides the commands that change a business: favorite
// toggling and reviews. Changes are saved immediately.
package edit

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/locallift/cmd/locallift/cmd/browse"
	"github.com/agentstation/locallift/internal/appcontext"
	"github.com/agentstation/locallift/internal/cmd/alerts"
	"github.com/agentstation/locallift/internal/cmd/output"
	"github.com/agentstation/locallift/internal/cmd/table"
	"github.com/agentstation/locallift/pkg/catalogs"
)

// FavoriteResult is printed by the favorite command.
type FavoriteResult struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Favorite bool   `json:"favorite" yaml:"favorite"`
}

// NewFavoriteCommand creates the favorite command.
func NewFavoriteCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "favorite <id>",
		Aliases: []string{"fav"},
		GroupID: "core",
		Short:   "Add or remove a business from favorites",
		Long: `Toggle a business in the favorites list.

Favorites are stored by normalized name and address, so they survive
re-imports even though business ids change.`,
		Example: `  locallift favorite 3   # favorite business 3, or remove it again`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := browse.ParseID(args[0])
			if err != nil {
				return err
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			on, err := client.ToggleFavorite(id)
			if err != nil {
				return err
			}
			b, err := client.Business(id)
			if err != nil {
				return err
			}

			p := output.NewPrinter(app.OutputFormat(), cmd.OutOrStdout())
			if !p.Format().IsTable() {
				return p.Print(FavoriteResult{ID: id, Name: b.Name, Favorite: on}, nil)
			}
			if on {
				alerts.ForCommand(cmd).Success("Added %s to favorites", b.Name)
			} else {
				alerts.ForCommand(cmd).Success("Removed %s from favorites", b.Name)
			}
			return nil
		},
	}
}

// NewReviewCommand creates the review command.
func NewReviewCommand(app appcontext.Interface) *cobra.Command {
	var (
		rating int
		text   string
	)

	cmd := &cobra.Command{
		Use:     "review <id>",
		GroupID: "core",
		Short:   "Add a review to a business",
		Example: `  locallift review 3 --rating 5 --text "Fixed my screen in ten minutes"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := browse.ParseID(args[0])
			if err != nil {
				return err
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			review, err := client.AddReview(id, rating, text)
			if err != nil {
				return err
			}

			p := output.NewPrinter(app.OutputFormat(), cmd.OutOrStdout())
			if !p.Format().IsTable() {
				return p.Print(review, nil)
			}
			alerts.ForCommand(cmd).Success("Review saved")
			return p.Print(nil, func(bool) table.Data {
				return table.ReviewsToTableData([]catalogs.Review{review})
			})
		},
	}

	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "Rating from 1 to 5")
	cmd.Flags().StringVarP(&text, "text", "t", "", "Review text")
	_ = cmd.MarkFlagRequired("rating")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}
