package handlers

import (
	"net/http"

	"github.com/agentstation/locallift"
	"github.com/agentstation/locallift/internal/server/response"
	"github.com/agentstation/locallift/pkg/logging"
)

// HandleSearch handles POST /api/v1/search with a locallift.SearchRequest body.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req locallift.SearchRequest
	if err := decodeBody(r, &req); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	result, err := h.client.Search(r.Context(), req)
	h.importDone(w, r, "search", result, err)
}

// HandleImportDataset handles POST /api/v1/imports/dataset.
func (h *Handlers) HandleImportDataset(w http.ResponseWriter, r *http.Request) {
	var req locallift.DatasetImport
	if err := decodeBody(r, &req); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	result, err := h.client.ImportDataset(r.Context(), req)
	h.importDone(w, r, "dataset", result, err)
}

// HandleImportOSM handles POST /api/v1/imports/osm.
func (h *Handlers) HandleImportOSM(w http.ResponseWriter, r *http.Request) {
	var req locallift.OSMImport
	if err := decodeBody(r, &req); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	result, err := h.client.ImportOSM(r.Context(), req)
	h.importDone(w, r, "osm", result, err)
}

// HandleCategories handles GET /api/v1/categories.
func (h *Handlers) HandleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.client.DatasetCategories(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, categories)
}

func (h *Handlers) importDone(w http.ResponseWriter, r *http.Request, op string, result *locallift.ImportResult, err error) {
	logger := logging.FromContext(r.Context())
	if err != nil {
		logger.Warn().Err(err).Str("operation", op).Msg("Import failed")
		response.ErrorFromType(w, err)
		return
	}
	logger.Info().
		Str("operation", op).
		Int("businesses", result.Businesses).
		Int("favorites", result.Favorites).
		Msg("Catalog replaced")
	response.OK(w, result)
}
