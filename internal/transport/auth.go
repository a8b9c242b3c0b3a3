package transport

import "net/http"

// Authenticator adds credentials to an outgoing request.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// AuthFunc adapts a function to Authenticator.
type AuthFunc func(req *http.Request, apiKey string)

// Apply calls f.
func (f AuthFunc) Apply(req *http.Request, apiKey string) {
	f(req, apiKey)
}

// Built-in authenticators. Nominatim and Overpass are anonymous; Yelp
// expects a bearer token.
var (
	NoAuth Authenticator = AuthFunc(func(*http.Request, string) {})

	BearerAuth Authenticator = AuthFunc(func(req *http.Request, apiKey string) {
		if apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+apiKey)
		}
	})
)
