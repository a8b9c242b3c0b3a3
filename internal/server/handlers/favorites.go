package handlers

import (
	"net/http"

	"github.com/agentstation/locallift/internal/server/response"
)

// HandleListFavorites handles GET /api/v1/favorites.
func (h *Handlers) HandleListFavorites(w http.ResponseWriter, _ *http.Request) {
	h.cached(w, "favorites", func() any {
		return h.views(h.client.Favorites())
	})
}

// HandleToggleFavorite handles POST /api/v1/businesses/{id}/favorite.
func (h *Handlers) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	on, err := h.client.ToggleFavorite(id)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{
		"id":       id,
		"favorite": on,
	})
}
