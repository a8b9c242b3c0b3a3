package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/locallift"
	"github.com/agentstation/locallift/internal/server"
	"github.com/agentstation/locallift/pkg/logging"
	"github.com/agentstation/locallift/pkg/sources"
)

type fakeSource struct {
	id    sources.ID
	cands []sources.Candidate
}

func (f *fakeSource) ID() sources.ID { return f.id }

func (f *fakeSource) Fetch(_ context.Context, _ sources.Query) ([]sources.Candidate, error) {
	return f.cands, nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T, cfg server.Config, srcs ...sources.Source) (*server.Server, http.Handler) {
	t.Helper()
	client, err := locallift.New(
		locallift.WithFs(afero.NewMemMapFs()),
		locallift.WithDataFile("/data/catalog.json"),
		locallift.WithLogger(logging.NewNopLogger()),
		locallift.WithSources(srcs...),
	)
	require.NoError(t, err)

	srv, err := server.New(client, cfg, logging.NewNopLogger())
	require.NoError(t, err)
	return srv, srv.Handler()
}

func testConfig() server.Config {
	cfg := server.DefaultConfig()
	cfg.RateLimit = 0
	return cfg
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t, testConfig())

	rec, env := do(t, h, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, env.Error)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, _ = do(t, h, http.MethodGet, "/api/v1/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListBusinesses(t *testing.T) {
	_, h := newTestServer(t, testConfig())

	rec, env := do(t, h, http.MethodGet, "/api/v1/businesses?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	var page struct {
		Businesses []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"businesses"`
		Count int `json:"count"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 2, page.Count)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.Businesses[0].ID)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/businesses?limit=2", "")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	rec, env = do(t, h, http.MethodGet, "/api/v1/businesses?min_rating=nine", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestGetBusiness(t *testing.T) {
	_, h := newTestServer(t, testConfig())

	rec, env := do(t, h, http.MethodGet, "/api/v1/businesses/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var b struct {
		Name     string `json:"name"`
		Favorite bool   `json:"favorite"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Equal(t, "Corner Book Nook", b.Name)
	assert.False(t, b.Favorite)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/businesses/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/businesses/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleFavoriteInvalidatesCache(t *testing.T) {
	srv, h := newTestServer(t, testConfig())

	do(t, h, http.MethodGet, "/api/v1/favorites", "")
	assert.Equal(t, 1, srv.Cache().ItemCount())

	rec, env := do(t, h, http.MethodPost, "/api/v1/businesses/1/favorite", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"favorite":true}`, string(env.Data))
	assert.Equal(t, 0, srv.Cache().ItemCount())

	rec, env = do(t, h, http.MethodGet, "/api/v1/favorites", "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	var favs []struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &favs))
	require.Len(t, favs, 1)
	assert.Equal(t, 1, favs[0].ID)
}

func TestReviews(t *testing.T) {
	_, h := newTestServer(t, testConfig())

	rec, env := do(t, h, http.MethodPost, "/api/v1/businesses/3/reviews", `{"rating":4,"text":"Quick and friendly"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var review struct {
		Rating int    `json:"rating"`
		Text   string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &review))
	assert.Equal(t, 4, review.Rating)

	rec, env = do(t, h, http.MethodGet, "/api/v1/businesses/3/reviews", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var reviews []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &reviews))
	assert.Len(t, reviews, 1)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"rating too high", `{"rating":6,"text":"x"}`, http.StatusBadRequest},
		{"empty text", `{"rating":3,"text":"  "}`, http.StatusBadRequest},
		{"unknown field", `{"stars":3}`, http.StatusBadRequest},
		{"malformed", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := do(t, h, http.MethodPost, "/api/v1/businesses/3/reviews", tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}

	rec, _ = do(t, h, http.MethodPost, "/api/v1/businesses/42/reviews", `{"rating":3,"text":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchReplacesCatalog(t *testing.T) {
	src := &fakeSource{id: sources.DatasetID, cands: []sources.Candidate{
		{ExternalID: "dataset:a", Name: "Blue Door Cafe", Address: "1 Main St", Category: "cafe"},
		{ExternalID: "dataset:b", Name: "Starbucks", Address: "2 Main St", Category: "cafe"},
	}}
	_, h := newTestServer(t, testConfig(), src)

	rec, env := do(t, h, http.MethodPost, "/api/v1/search", `{"location":"Springfield"}`)
	require.Equal(t, http.StatusOK, rec.Code, string(env.Data))
	var result locallift.ImportResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.Businesses)
	assert.Equal(t, 1, result.Chains)

	rec, env = do(t, h, http.MethodGet, "/api/v1/businesses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Blue Door Cafe")

	rec, _ = do(t, h, http.MethodPost, "/api/v1/search", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchWithoutResults(t *testing.T) {
	_, h := newTestServer(t, testConfig(), &fakeSource{id: sources.OSMID})

	rec, env := do(t, h, http.MethodPost, "/api/v1/search", `{"location":"Nowhere"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NO_RESULTS", env.Error.Code)

	_, env = do(t, h, http.MethodGet, "/api/v1/stats", "")
	assert.Contains(t, string(env.Data), `"total":3`)
}

func TestUnknownRoute(t *testing.T) {
	_, h := newTestServer(t, testConfig())
	rec, env := do(t, h, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
}

func TestAuth(t *testing.T) {
	cfg := testConfig()
	cfg.AuthEnabled = true
	cfg.APIKey = "secret"
	_, h := newTestServer(t, cfg)

	rec, _ := do(t, h, http.MethodGet, "/api/v1/businesses", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses", nil)
	req.Header.Set("X-API-Key", "secret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRequiresKeyWhenAuthEnabled(t *testing.T) {
	client, err := locallift.New(
		locallift.WithFs(afero.NewMemMapFs()),
		locallift.WithLogger(logging.NewNopLogger()),
		locallift.WithSources(),
	)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.AuthEnabled = true
	_, err = server.New(client, cfg, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestHooksPublishEvents(t *testing.T) {
	srv, h := newTestServer(t, testConfig())
	srv.Start()
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	do(t, h, http.MethodPost, "/api/v1/businesses/1/favorite", "")
	do(t, h, http.MethodPost, "/api/v1/businesses/1/reviews", `{"rating":5,"text":"great"}`)

	assert.Eventually(t, func() bool {
		return srv.Broker().EventsPublished() == 2
	}, time.Second, 10*time.Millisecond)
}
