package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/locallift"
	"github.com/agentstation/locallift/internal/config"
	"github.com/agentstation/locallift/pkg/logging"
)

// Compile-time interface check.
var _ Interface = (*Mock)(nil)

// Mock is an Interface backed by fixed values, for command tests.
type Mock struct {
	ClientValue      locallift.Client
	ClientErr        error
	CredentialsValue *config.Store
	LoggerValue      *zerolog.Logger
	Format           string
	VersionValue     string
}

// Client returns the configured client or error.
func (m *Mock) Client() (locallift.Client, error) {
	return m.ClientValue, m.ClientErr
}

// Credentials returns the configured credential store.
func (m *Mock) Credentials() *config.Store {
	return m.CredentialsValue
}

// Logger returns the configured logger or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerValue != nil {
		return m.LoggerValue
	}
	return logging.NewNopLogger()
}

// OutputFormat returns the configured format.
func (m *Mock) OutputFormat() string {
	return m.Format
}

// Version returns the configured version or "dev".
func (m *Mock) Version() string {
	if m.VersionValue == "" {
		return "dev"
	}
	return m.VersionValue
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }
