// Package handlers provides HTTP request handlers for the Local Lift API.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/locallift"
	"github.com/agentstation/locallift/internal/server/cache"
	"github.com/agentstation/locallift/internal/server/response"
	"github.com/agentstation/locallift/internal/server/sse"
	ws "github.com/agentstation/locallift/internal/server/websocket"
	"github.com/agentstation/locallift/pkg/errors"
)

// maxBodySize caps request bodies.
const maxBodySize = 1 << 20

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	client         locallift.Client
	cache          *cache.Cache
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	startTime      time.Time
}

// New creates a new Handlers instance.
func New(
	client locallift.Client,
	cache *cache.Cache,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		client:         client,
		cache:          cache,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader:       upgrader,
		logger:         logger,
		startTime:      time.Now(),
	}
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (int, error) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.NewValidationError("id", raw, "must be a positive integer")
	}
	return id, nil
}

// decodeBody decodes a JSON request body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return errors.NewValidationError("body", nil, "invalid JSON: "+err.Error())
	}
	return nil
}

// cached serves key from the cache or computes and stores it.
func (h *Handlers) cached(w http.ResponseWriter, key string, compute func() any) {
	v, hit := h.cache.Fetch(key, compute)
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	response.OK(w, v)
}
