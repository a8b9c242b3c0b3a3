// Package app provides the application context and dependency management
// for the locallift CLI: configuration, logging, the lazily created
// catalog client and its lifecycle.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/locallift"
	"github.com/agentstation/locallift/internal/appcontext"
	"github.com/agentstation/locallift/internal/config"
	"github.com/agentstation/locallift/pkg/errors"
	"github.com/agentstation/locallift/pkg/logging"
)

// Compile-time interface check.
var _ appcontext.Interface = (*App)(nil)

// App represents the locallift application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// ctx is the command context, used for the first-run import.
	ctx context.Context

	// Client instance (lazy-initialized, singleton)
	mu            sync.Mutex
	client        locallift.Client
	clientOptions []locallift.Option
	credentials   *config.Store
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		ctx:     context.Background(),
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Output
}

// Credentials returns the credential store.
func (a *App) Credentials() *config.Store {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.credentials == nil {
		a.credentials = config.New(a.config.CredentialsFile)
	}
	return a.credentials
}

// Client returns the catalog client, creating it lazily. The first call
// also runs the first-run dataset import; its failure is only logged.
func (a *App) Client() (locallift.Client, error) {
	creds := a.Credentials()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client != nil {
		return a.client, nil
	}

	loaded, err := creds.Load()
	if err != nil {
		a.logger.Warn().Err(err).Str("file", creds.Path()).Msg("Ignoring unreadable credential file")
	}

	opts := []locallift.Option{
		locallift.WithDataFile(a.config.DataFile),
		locallift.WithDatasetFile(a.config.DatasetFile),
		locallift.WithAPIKey(loaded.APIKey),
		locallift.WithLogger(a.logger),
		locallift.WithAutoImport(a.config.AutoImportCity, a.config.AutoImportLimit),
	}
	opts = append(opts, a.clientOptions...)

	c, err := locallift.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	ctx := logging.WithLogger(a.ctx, a.logger)
	if result, err := c.Bootstrap(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("First-run import failed")
	} else if result != nil {
		a.logger.Info().Int("businesses", result.Businesses).Str("city", a.config.AutoImportCity).Msg("Imported first-run businesses")
	}

	a.client = c
	return c, nil
}

// Shutdown releases the client. Every mutation is already saved, so
// nothing is flushed here.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client != nil {
		a.logger.Debug().Str("file", a.client.DataFile()).Msg("Shutting down")
		a.client = nil
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return &errors.ValidationError{Field: "config", Message: "cannot be nil"}
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		a.logger = logger
		return nil
	}
}

// WithClientOptions adds options applied when the client is created.
// They run after the configuration-derived options.
func WithClientOptions(opts ...locallift.Option) Option {
	return func(a *App) error {
		a.clientOptions = append(a.clientOptions, opts...)
		return nil
	}
}

// WithCredentials sets the credential store.
func WithCredentials(store *config.Store) Option {
	return func(a *App) error {
		a.credentials = store
		return nil
	}
}
