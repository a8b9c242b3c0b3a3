package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/locallift/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]int{"total": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decode(t, rec)
	assert.Nil(t, resp.Error)
	assert.Equal(t, map[string]any{"total": float64(3)}, resp.Data)
}

func TestErrorFromType(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errors.NewNotFoundError("business", "9"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", errors.NewValidationError("rating", 7, "must be between 1 and 5"), http.StatusBadRequest, "BAD_REQUEST"},
		{"no results", errors.ErrNoResults, http.StatusUnprocessableEntity, "NO_RESULTS"},
		{"no dataset", errors.NewConfigError("dataset", "no dataset file configured", nil), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"rate limited", &errors.APIError{Source: "yelp", StatusCode: 429}, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"upstream", &errors.APIError{Source: "osm", StatusCode: 504}, http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ErrorFromType(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Nil(t, resp.Data)
		})
	}
}
