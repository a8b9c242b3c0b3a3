package imports

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/locallift"
	"github.com/agentstation/locallift/internal/appcontext"
	"github.com/agentstation/locallift/internal/config"
	"github.com/agentstation/locallift/internal/sources/dataset"
	"github.com/agentstation/locallift/pkg/errors"
	"github.com/agentstation/locallift/pkg/logging"
	"github.com/agentstation/locallift/pkg/sources"
)

type fakeSource struct {
	id    sources.ID
	cands []sources.Candidate
	err   error
	got   sources.Query
}

func (f *fakeSource) ID() sources.ID { return f.id }

func (f *fakeSource) Fetch(_ context.Context, q sources.Query) ([]sources.Candidate, error) {
	f.got = q
	return f.cands, f.err
}

const datasetFile = "/data/businesses.jsonl"

const datasetLines = `{"business_id":"a1","name":"Blue Door Cafe","address":"1 Main St","city":"Reno","state":"NV","stars":4.5,"categories":"Cafes, Coffee & Tea"}
{"business_id":"b2","name":"Taco Shack","address":"9 Elm St","city":"Reno","state":"NV","stars":3.0,"categories":"Mexican, Restaurants"}
{"business_id":"c3","name":"Harbor Books","address":"5 Dock Rd","city":"Sparks","state":"NV","stars":5,"categories":"Bookstores"}
`

func newApp(t *testing.T, fs afero.Fs, srcs ...sources.Source) *appcontext.Mock {
	t.Helper()
	client, err := locallift.New(
		locallift.WithFs(fs),
		locallift.WithDataFile("/data/catalog.json"),
		locallift.WithLogger(logging.NewNopLogger()),
		locallift.WithSources(srcs...),
	)
	require.NoError(t, err)

	creds := config.New("/data/config.json", config.WithFs(fs), config.WithEnv(func(string) string { return "" }))
	return &appcontext.Mock{ClientValue: client, CredentialsValue: creds, Format: "json"}
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSearchUsesArgument(t *testing.T) {
	src := &fakeSource{id: sources.OSMID, cands: []sources.Candidate{
		{ExternalID: "osm:node/1", Name: "Old Town Pub", Address: "9 Elm St", Category: "pub"},
	}}
	app := newApp(t, afero.NewMemMapFs(), src)

	out, _, err := run(t, NewSearchCommand(app), "Reno", "--category", "bar", "--limit", "5")
	require.NoError(t, err)
	assert.Equal(t, "Reno", src.got.Location)
	assert.Equal(t, "bar", src.got.Category)
	assert.Equal(t, 5, src.got.Limit)

	var result locallift.ImportResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Businesses)
	assert.True(t, result.Replaced)
}

func TestSearchFallsBackToDefaultLocation(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := &fakeSource{id: sources.OSMID, cands: []sources.Candidate{{Name: "A", Address: "B"}}}
	app := newApp(t, fs, src)
	require.NoError(t, app.CredentialsValue.SaveDefaultLocation("Sparks"))

	_, _, err := run(t, NewSearchCommand(app))
	require.NoError(t, err)
	assert.Equal(t, "Sparks", src.got.Location)
}

func TestSearchWithoutLocation(t *testing.T) {
	app := newApp(t, afero.NewMemMapFs())
	_, _, err := run(t, NewSearchCommand(app))
	assert.True(t, errors.IsValidationError(err))
}

func TestSearchNoResultsIsAWarning(t *testing.T) {
	failing := &fakeSource{id: sources.YelpID, err: errors.ErrAPIKeyRequired}
	empty := &fakeSource{id: sources.OSMID}
	app := newApp(t, afero.NewMemMapFs(), failing, empty)

	out, stderr, err := run(t, NewSearchCommand(app), "Nowhere")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "yelp failed")
	assert.Contains(t, stderr, "catalog unchanged")
	assert.Len(t, app.ClientValue.Catalog().Businesses, 3)
}

func TestImportDatasetAndCategories(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, datasetFile, []byte(datasetLines), 0o644))
	app := newApp(t, fs, dataset.New(datasetFile, dataset.WithFs(fs), dataset.WithLogger(logging.NewNopLogger())))

	_, _, err := run(t, NewImportCommand(app), "dataset", "--city", "reno")
	require.NoError(t, err)
	names := []string{}
	for _, b := range app.ClientValue.Catalog().Businesses {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Blue Door Cafe", "Taco Shack"}, names)

	out, _, err := run(t, NewCategoriesCommand(app))
	require.NoError(t, err)
	var categories []string
	require.NoError(t, json.Unmarshal([]byte(out), &categories))
	assert.Contains(t, categories, "Bookstores")
	assert.Contains(t, categories, "Coffee & Tea")
}

func TestImportDatasetCityIsSubstring(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, datasetFile, []byte(datasetLines), 0o644))
	app := newApp(t, fs, dataset.New(datasetFile, dataset.WithFs(fs), dataset.WithLogger(logging.NewNopLogger())))

	cmd := NewImportCommand(app)
	_, _, err := run(t, cmd, "dataset", "--city", "PARK")
	require.NoError(t, err)
	businesses := app.ClientValue.Catalog().Businesses
	require.Len(t, businesses, 1)
	assert.Equal(t, "Harbor Books", businesses[0].Name)

	sub, _, err := cmd.Find([]string{"dataset"})
	require.NoError(t, err)
	assert.Contains(t, sub.Flags().Lookup("city").Usage, "substring")
}

func TestImportDatasetNotConfigured(t *testing.T) {
	app := newApp(t, afero.NewMemMapFs())
	_, _, err := run(t, NewImportCommand(app), "dataset")
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestImportOSM(t *testing.T) {
	src := &fakeSource{id: sources.OSMID, cands: []sources.Candidate{{Name: "Corner Bakery Co", Address: "3 Pine St"}}}
	app := newApp(t, afero.NewMemMapFs(), src)

	_, _, err := run(t, NewImportCommand(app), "osm", "Portland", "--tags", "bakery")
	require.NoError(t, err)
	assert.Equal(t, "bakery", src.got.Tags)
	assert.Equal(t, "Corner Bakery Co", app.ClientValue.Catalog().Businesses[0].Name)
}

func TestImportDatasetSuggestsCategories(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, datasetFile, []byte(datasetLines), 0o644))
	app := newApp(t, fs, dataset.New(datasetFile, dataset.WithFs(fs), dataset.WithLogger(logging.NewNopLogger())))

	_, stderr, err := run(t, NewImportCommand(app), "dataset", "--category", "bookstore", "--city", "reno")
	require.NoError(t, err)
	assert.Contains(t, stderr, "catalog unchanged")
	assert.Contains(t, stderr, "Did you mean: Bookstores?")
}
