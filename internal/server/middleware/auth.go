package middleware

import (
	"crypto/subtle"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/locallift/internal/server/response"
)

// AuthConfig holds API key authentication configuration.
type AuthConfig struct {
	APIKey     string
	HeaderName string

	// PublicPaths skip authentication entirely.
	PublicPaths []string

	// StreamPaths also accept the key in the api_key query parameter,
	// since browsers cannot set headers on EventSource or WebSocket.
	StreamPaths []string
}

// QueryParam is the query parameter read on StreamPaths.
const QueryParam = "api_key"

// Auth rejects requests without the API key. The key is read from
// HeaderName, then "Authorization: Bearer", then QueryParam on stream paths.
func Auth(config AuthConfig, logger *zerolog.Logger) func(http.Handler) http.Handler {
	want := []byte(config.APIKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || slices.Contains(config.PublicPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			key := presentedKey(r, config)
			if key != "" && subtle.ConstantTimeCompare([]byte(key), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			logger.Warn().
				Str("path", r.URL.Path).
				Str("client", clientAddr(r)).
				Bool("key_provided", key != "").
				Msg("Rejected request without a valid API key")
			response.JSON(w, http.StatusUnauthorized, response.Fail("UNAUTHORIZED",
				"Invalid or missing API key", "Send the key in the "+config.HeaderName+" header"))
		})
	}
}

func presentedKey(r *http.Request, config AuthConfig) string {
	if key := r.Header.Get(config.HeaderName); key != "" {
		return key
	}
	if key, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(key)
	}
	if slices.Contains(config.StreamPaths, r.URL.Path) {
		return r.URL.Query().Get(QueryParam)
	}
	return ""
}
