// Package server provides the HTTP API for the Local Lift catalog.
//
// The server exposes browsing, editing and import endpoints under a path
// prefix and streams catalog changes over WebSocket and SSE. Catalog
// hooks clear the response cache and publish to the event broker.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/locallift"
	"github.com/agentstation/locallift/internal/server/cache"
	"github.com/agentstation/locallift/internal/server/events"
	"github.com/agentstation/locallift/internal/server/events/adapters"
	"github.com/agentstation/locallift/internal/server/sse"
	ws "github.com/agentstation/locallift/internal/server/websocket"
	"github.com/agentstation/locallift/pkg/catalogs"
	"github.com/agentstation/locallift/pkg/errors"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	client         locallift.Client
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	startTime      time.Time
}

// New creates a new server instance with the given configuration.
func New(client locallift.Client, cfg Config, logger *zerolog.Logger) (*Server, error) {
	if client == nil {
		return nil, errors.NewValidationError("client", nil, "cannot be nil")
	}
	if cfg.AuthEnabled && cfg.APIKey == "" {
		return nil, errors.NewConfigError("server", "authentication enabled without an API key", nil)
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = "X-API-Key"
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)

	broker.Subscribe(adapters.WebSocket(wsHub))
	broker.Subscribe(adapters.SSE(sseBroadcaster))

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		client:         client,
		cache:          cache.New(cfg.CacheTTL),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
	s.connectHooks()

	logger.Debug().Str("addr", cfg.Addr()).Msg("Server instance created")
	return s, nil
}

// connectHooks invalidates the cache and publishes an event on every
// catalog change.
func (s *Server) connectHooks() {
	s.client.OnCatalogReplaced(func(old, updated *catalogs.Catalog) {
		s.cache.Invalidate()
		s.broker.Publish(events.CatalogReplaced, map[string]any{
			"previous":   len(old.Businesses),
			"businesses": len(updated.Businesses),
			"favorites":  len(updated.Favorites),
		})
	})

	s.client.OnFavoriteToggled(func(b catalogs.Business, favorite bool) {
		s.cache.Invalidate()
		s.broker.Publish(events.FavoriteToggled, map[string]any{
			"id":       b.ID,
			"name":     b.Name,
			"favorite": favorite,
		})
	})

	s.client.OnReviewAdded(func(b catalogs.Business, review catalogs.Review) {
		s.cache.Invalidate()
		s.broker.Publish(events.ReviewAdded, map[string]any{
			"id":     b.ID,
			"name":   b.Name,
			"review": review,
		})
	})
}

// Start starts background services (broker, WebSocket hub, SSE broadcaster).
func (s *Server) Start() {
	go s.broker.Run(s.ctx)
	go s.wsHub.Run(s.ctx)
	go s.sseBroadcaster.Run(s.ctx)
	s.logger.Debug().Msg("Background services started")
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer returns an http.Server for the configured address and timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// Shutdown stops the background services.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()
	return nil
}

// Config returns the server configuration.
func (s *Server) Config() Config {
	return s.config
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Broker returns the event broker.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
