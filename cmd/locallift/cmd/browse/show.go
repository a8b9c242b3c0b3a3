package browse

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/locallift/internal/appcontext"
	"github.com/agentstation/locallift/internal/cmd/output"
	"github.com/agentstation/locallift/internal/cmd/table"
	"github.com/agentstation/locallift/pkg/catalogs"
	"github.com/agentstation/locallift/pkg/errors"
)

// Details is a business with its derived fields, as printed by show.
type Details struct {
	catalogs.Business `yaml:",inline"`
	AverageRating     float64 `json:"average_rating" yaml:"average_rating"`
	Favorite          bool    `json:"favorite" yaml:"favorite"`
}

// NewShowCommand creates the show command.
func NewShowCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		GroupID: "core",
		Short:   "Show a business and its reviews",
		Example: `  locallift show 3
  locallift show 3 -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ParseID(args[0])
			if err != nil {
				return err
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			b, err := client.Business(id)
			if err != nil {
				return err
			}
			favorite := client.IsFavorite(id)

			p := output.NewPrinter(app.OutputFormat(), cmd.OutOrStdout())
			if !p.Format().IsTable() {
				return p.Print(Details{Business: b, AverageRating: b.AverageRating(), Favorite: favorite}, nil)
			}

			if err := p.Print(nil, func(bool) table.Data {
				return table.BusinessToTableData(&b, favorite)
			}); err != nil {
				return err
			}
			if len(b.Reviews) == 0 {
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return p.Print(nil, func(bool) table.Data {
				return table.ReviewsToTableData(b.Reviews)
			})
		},
	}
}

// ParseID parses a business id argument.
func ParseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, errors.NewValidationError("id", arg, "must be a positive integer")
	}
	return id, nil
}
