package serve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/locallift/internal/appcontext"
	"github.com/agentstation/locallift/internal/server"
	"github.com/agentstation/locallift/pkg/errors"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("HTTP_HOST", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv(EnvAPIKey, "")

	cmd := NewCommand(&appcontext.Mock{})
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := parseConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, server.DefaultConfig(), cfg)
}

func TestParseConfigFlagsAndEnv(t *testing.T) {
	t.Setenv("HTTP_HOST", "0.0.0.0")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv(EnvAPIKey, "secret")

	cmd := NewCommand(&appcontext.Mock{})
	require.NoError(t, cmd.ParseFlags([]string{
		"--port", "3000",
		"--auth",
		"--cors-origins", "https://a.example,https://b.example",
		"--rate-limit", "0",
		"--cache-ttl", "1m",
	}))

	cfg, err := parseConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 9090, cfg.Port, "environment wins over flags")
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.True(t, cfg.CORSEnabled, "origins imply cors")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 0, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
}

func TestParseConfigRejectsBadPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	cmd := NewCommand(&appcontext.Mock{})
	require.NoError(t, cmd.ParseFlags([]string{"--port", "70000"}))
	_, err := parseConfig(cmd)
	assert.True(t, errors.IsValidationError(err))

	t.Setenv("HTTP_PORT", "http")
	cmd = NewCommand(&appcontext.Mock{})
	_, err = parseConfig(cmd)
	assert.True(t, errors.IsValidationError(err))
}
