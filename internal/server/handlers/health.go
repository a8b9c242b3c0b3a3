package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/locallift/internal/server/response"
	"github.com/agentstation/locallift/pkg/store"
)

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "locallift-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. The API is not ready while the
// catalog file could not be read.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	loaded := h.client.LoadResult()
	if loaded.Status == store.StatusUnreadable {
		response.ServiceUnavailable(w, "Catalog file is unreadable")
		return
	}

	response.OK(w, map[string]any{
		"status":            "ready",
		"catalog":           loaded.Status.String(),
		"businesses":        len(h.client.Catalog().Businesses),
		"sources":           h.client.Sources(),
		"cache":             h.cache.Stats(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
		"uptime":            time.Since(h.startTime).Round(time.Second).String(),
	})
}
