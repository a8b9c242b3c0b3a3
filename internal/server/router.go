package server

import (
	"net/http"

	"github.com/agentstation/locallift/internal/server/handlers"
	"github.com/agentstation/locallift/internal/server/middleware"
	"github.com/agentstation/locallift/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.client,
		s.cache,
		s.wsHub,
		s.sseBroadcaster,
		s.upgrader,
		s.logger,
	)

	s.registerRoutes(mux, h)
	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health (public)
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	// Browsing
	mux.HandleFunc("GET "+prefix+"/businesses", h.HandleListBusinesses)
	mux.HandleFunc("GET "+prefix+"/businesses/{id}", h.HandleGetBusiness)
	mux.HandleFunc("GET "+prefix+"/businesses/{id}/reviews", h.HandleListReviews)
	mux.HandleFunc("GET "+prefix+"/favorites", h.HandleListFavorites)
	mux.HandleFunc("GET "+prefix+"/deals", h.HandleDeals)
	mux.HandleFunc("GET "+prefix+"/stats", h.HandleStats)
	mux.HandleFunc("GET "+prefix+"/categories", h.HandleCategories)

	// Editing
	mux.HandleFunc("POST "+prefix+"/businesses/{id}/reviews", h.HandleAddReview)
	mux.HandleFunc("POST "+prefix+"/businesses/{id}/favorite", h.HandleToggleFavorite)

	// Imports
	mux.HandleFunc("POST "+prefix+"/search", h.HandleSearch)
	mux.HandleFunc("POST "+prefix+"/imports/dataset", h.HandleImportDataset)
	mux.HandleFunc("POST "+prefix+"/imports/osm", h.HandleImportOSM)

	// Real-time
	mux.HandleFunc("GET "+prefix+"/updates/ws", h.HandleWebSocket)
	mux.HandleFunc("GET "+prefix+"/updates/stream", h.HandleSSE)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found", r.Method+" "+r.URL.Path)
	})
}

// applyMiddleware wraps the mux, outermost first: logging, recovery,
// CORS, request id, then the optional auth and rate limit.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		middleware.Logger(s.logger),
		middleware.Recovery(s.logger),
	}

	if s.config.CORSEnabled {
		cors := middleware.DefaultCORSConfig()
		if len(s.config.CORSOrigins) > 0 {
			cors.AllowedOrigins = s.config.CORSOrigins
			cors.AllowAll = false
		}
		chain = append(chain, middleware.CORS(cors))
	}

	chain = append(chain, middleware.RequestID())

	if s.config.AuthEnabled {
		chain = append(chain, middleware.Auth(middleware.AuthConfig{
			APIKey:     s.config.APIKey,
			HeaderName: s.config.AuthHeader,
			PublicPaths: []string{
				"/health",
				"/favicon.ico",
				s.config.PathPrefix + "/health",
				s.config.PathPrefix + "/ready",
			},
			StreamPaths: []string{
				s.config.PathPrefix + "/updates/ws",
				s.config.PathPrefix + "/updates/stream",
			},
		}, s.logger))
	}

	if s.config.RateLimit > 0 {
		chain = append(chain, middleware.RateLimit(middleware.NewRateLimiter(s.config.RateLimit, s.logger)))
	}

	return middleware.Chain(chain...)(handler)
}
