// Package credentials provides the config command, which shows and edits
// the Yelp API key and the default search location.
package credentials

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/locallift/internal/appcontext"
	"github.com/agentstation/locallift/internal/cmd/alerts"
	"github.com/agentstation/locallift/internal/cmd/output"
	"github.com/agentstation/locallift/internal/config"
)

// View is what config show prints. The API key is masked.
type View struct {
	APIKey          string `json:"api_key" yaml:"api_key"`
	DefaultLocation string `json:"default_location" yaml:"default_location"`
	File            string `json:"file" yaml:"file"`
}

// NewCommand creates the config command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		GroupID: "management",
		Short:   "Manage the API key and default location",
		Long: `Manage the credential file used by searches.

YELP_API_KEY and YELP_DEFAULT_LOCATION override the stored values.`,
	}
	cmd.AddCommand(
		newShowCommand(app),
		newSetKeyCommand(app),
		newSetLocationCommand(app),
	)
	return cmd
}

func newShowCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := app.Credentials()
			creds, err := store.Load()
			if err != nil {
				alerts.ForCommand(cmd).Warning(err, "Credential file is unreadable")
			}
			return output.NewPrinter(app.OutputFormat(), cmd.OutOrStdout()).Print(view(store, creds), nil)
		},
	}
}

func newSetKeyCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "set-key <api-key>",
		Short:   "Store the Yelp API key",
		Example: `  locallift config set-key "$YELP_KEY"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.Credentials()
			if err := store.SaveAPIKey(args[0]); err != nil {
				return err
			}
			alerts.ForCommand(cmd).Success("API key saved to %s", store.Path())
			return nil
		},
	}
}

func newSetLocationCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "set-location <location>",
		Short:   "Store the default search location",
		Example: `  locallift config set-location "Austin, TX"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.Credentials()
			if err := store.SaveDefaultLocation(args[0]); err != nil {
				return err
			}
			alerts.ForCommand(cmd).Success("Default location set to %s", args[0])
			return nil
		},
	}
}

func view(store *config.Store, creds *config.Credentials) View {
	masked := creds.Masked()
	return View{
		APIKey:          masked.APIKey,
		DefaultLocation: masked.DefaultLocation,
		File:            store.Path(),
	}
}
