package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/locallift"
	"github.com/agentstation/locallift/internal/config"
	"github.com/agentstation/locallift/pkg/logging"
)

func newTestApp(t *testing.T) (*App, afero.Fs) {
	t.Helper()
	isolate(t)
	fs := afero.NewMemMapFs()
	cfg := &Config{
		DataFile:        "/data/catalog.json",
		CredentialsFile: "/data/config.json",
		LogFormat:       "json",
		LogOutput:       "stderr",
	}
	a, err := New("1.2.3", "abc123", "2024-01-01", "test",
		WithConfig(cfg),
		WithLogger(logging.NewNopLogger()),
		WithCredentials(config.New(cfg.CredentialsFile, config.WithFs(fs), config.WithEnv(func(string) string { return "" }))),
		WithClientOptions(locallift.WithFs(fs), locallift.WithSources()),
	)
	require.NoError(t, err)
	return a, fs
}

func TestClientIsSingleton(t *testing.T) {
	a, fs := newTestApp(t)

	first, err := a.Client()
	require.NoError(t, err)
	second, err := a.Client()
	require.NoError(t, err)
	assert.Same(t, first, second)

	exists, err := afero.Exists(fs, "/data/catalog.json")
	require.NoError(t, err)
	assert.True(t, exists, "first load writes the seed catalog")

	require.NoError(t, a.Shutdown(context.Background()))
	third, err := a.Client()
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestNewRejectsNilOptions(t *testing.T) {
	isolate(t)
	_, err := New("dev", "", "", "", WithConfig(nil))
	assert.Error(t, err)

	_, err = New("dev", "", "", "", WithLogger(nil))
	assert.Error(t, err)
}

func TestExecuteVersion(t *testing.T) {
	a, _ := newTestApp(t)

	root := a.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Equal(t, "locallift 1.2.3\n", out.String())
}

func TestExecuteRejectsUnknownFormat(t *testing.T) {
	a, _ := newTestApp(t)
	err := a.Execute(context.Background(), []string{"stats", "-o", "xml"})
	assert.Error(t, err)
}

func TestExecuteStats(t *testing.T) {
	a, _ := newTestApp(t)

	root := a.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"stats", "-o", "json"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), `"total": 3`)
}
