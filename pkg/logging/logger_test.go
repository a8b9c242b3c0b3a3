package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/locallift/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.InfoLevel))

	logging.Default().Debug().Msg("debug message")
	logging.Default().Info().Msg("info message")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.NotContains(t, output, "debug message")
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithSource(ctx, "osm")
	ctx = logging.WithOperation(ctx, "search")
	ctx = logging.WithRequestID(ctx, "req-1")

	logging.FromContext(ctx).Info().Msg("fetched candidates")

	testLogger.AssertContains(t, `"source":"osm"`)
	testLogger.AssertContains(t, `"operation":"search"`)
	testLogger.AssertContains(t, `"request_id":"req-1"`)
	assert.Equal(t, "req-1", logging.RequestID(ctx))

	entries := testLogger.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "fetched candidates", entries[0]["message"])
	assert.Equal(t, "info", entries[0]["level"])
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Same(t, logging.Default(), logging.FromContext(nil)) //nolint:staticcheck
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "locallift.log")

	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:   "info",
		Format:  "json",
		Output:  "discard",
		LogFile: path,
		Fields:  map[string]any{"app": "locallift"},
	})
	logger.Info().Msg("catalog reset")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "catalog reset"))
	assert.Contains(t, string(data), `"app":"locallift"`)
}

func TestLogFileFailureIsIgnored(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	assert.NotPanics(t, func() {
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:   "warning",
			Output:  "discard",
			LogFile: filepath.Join(blocker, "nested", "app.log"),
		})
		logger.Warn().Msg("still works")
	})
}

func TestEnvConfig(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		level  string
		format string
	}{
		{"defaults", nil, "info", "auto"},
		{"prefixed wins", map[string]string{logging.EnvLevel: "warn", "LOG_LEVEL": "error"}, "warn", "auto"},
		{"fallback names", map[string]string{"LOG_LEVEL": "error", "LOG_FORMAT": "json"}, "error", "json"},
		{"debug switch", map[string]string{"DEBUG": "1"}, "debug", "auto"},
		{"explicit level beats debug", map[string]string{"DEBUG": "1", logging.EnvLevel: "info"}, "info", "auto"},
		{"format", map[string]string{logging.EnvFormat: "console"}, "info", "console"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := logging.EnvConfig(func(k string) string { return tt.env[k] })
			assert.Equal(t, tt.level, cfg.Level)
			assert.Equal(t, tt.format, cfg.Format)
		})
	}
}

func TestConfigureReplacesDefault(t *testing.T) {
	original := *logging.Default()
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(level)
	})

	path := filepath.Join(t.TempDir(), "app.log")
	logger := logging.Configure(&logging.Config{Level: "warn", Output: "discard", LogFile: path})
	assert.Same(t, logging.Default(), logger)

	logging.Default().Info().Msg("below level")
	logging.Default().Warn().Msg("dataset missing")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dataset missing")
	assert.NotContains(t, string(data), "below level")
}
