// Package appcontext provides the shared application context interface
// used by all commands.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/locallift"
	"github.com/agentstation/locallift/internal/config"
)

// Interface defines what commands need from the application.
// The App struct from cmd/locallift/app implements it; tests use Mock.
type Interface interface {
	// Client returns the catalog client, creating it lazily if needed.
	Client() (locallift.Client, error)

	// Credentials returns the credential store for the business search API.
	Credentials() *config.Store

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string
}
