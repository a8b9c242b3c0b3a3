package credentials

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/locallift/internal/appcontext"
	"github.com/agentstation/locallift/internal/config"
	"github.com/agentstation/locallift/pkg/errors"
)

func newApp(env map[string]string) *appcontext.Mock {
	store := config.New("/home/user/.locallift/config.json",
		config.WithFs(afero.NewMemMapFs()),
		config.WithEnv(func(k string) string { return env[k] }),
	)
	return &appcontext.Mock{CredentialsValue: store, Format: "json"}
}

func execute(t *testing.T, app *appcontext.Mock, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSetAndShow(t *testing.T) {
	app := newApp(nil)

	_, stderr, err := execute(t, app, "set-key", "abcd1234efgh5678")
	require.NoError(t, err)
	assert.Contains(t, stderr, "API key saved")

	_, _, err = execute(t, app, "set-location", "Austin, TX")
	require.NoError(t, err)

	out, _, err := execute(t, app, "show")
	require.NoError(t, err)

	var v View
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "abcd********5678", v.APIKey)
	assert.Equal(t, "Austin, TX", v.DefaultLocation)
	assert.Equal(t, "/home/user/.locallift/config.json", v.File)
}

func TestShowPrefersEnvironment(t *testing.T) {
	app := newApp(map[string]string{config.EnvDefaultLocation: "Reno"})
	_, _, err := execute(t, app, "set-location", "Austin")
	require.NoError(t, err)

	out, _, err := execute(t, app, "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"default_location": "Reno"`)
}

func TestSetRejectsEmpty(t *testing.T) {
	_, _, err := execute(t, newApp(nil), "set-key", "  ")
	assert.True(t, errors.IsValidationError(err))

	_, _, err = execute(t, newApp(nil), "set-location", "")
	assert.True(t, errors.IsValidationError(err))
}
