package handlers

import (
	"net/http"

	"github.com/agentstation/locallift/internal/server/filter"
	"github.com/agentstation/locallift/internal/server/response"
	"github.com/agentstation/locallift/pkg/catalogs"
)

// BusinessView is a business with its derived fields.
type BusinessView struct {
	catalogs.Business
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
	Favorite      bool    `json:"favorite"`
}

// BusinessPage is one page of a business listing.
type BusinessPage struct {
	Businesses []BusinessView `json:"businesses"`
	Count      int            `json:"count"`
	Total      int            `json:"total"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
}

// HandleListBusinesses handles GET /api/v1/businesses.
func (h *Handlers) HandleListBusinesses(w http.ResponseWriter, r *http.Request) {
	f, err := filter.ParseBusinessFilter(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.cached(w, f.CacheKey(), func() any {
		matched := h.client.Businesses(f.Filter)
		page := f.Page(matched)
		return BusinessPage{
			Businesses: h.views(page),
			Count:      len(page),
			Total:      len(matched),
			Limit:      f.Limit,
			Offset:     f.Offset,
		}
	})
}

// HandleGetBusiness handles GET /api/v1/businesses/{id}.
func (h *Handlers) HandleGetBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	b, err := h.client.Business(id)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, h.view(b))
}

// HandleDeals handles GET /api/v1/deals.
func (h *Handlers) HandleDeals(w http.ResponseWriter, _ *http.Request) {
	h.cached(w, "deals", func() any {
		return h.views(h.client.Deals())
	})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, _ *http.Request) {
	h.cached(w, "stats", func() any {
		return h.client.Stats()
	})
}

func (h *Handlers) view(b catalogs.Business) BusinessView {
	return BusinessView{
		Business:      b,
		AverageRating: b.AverageRating(),
		ReviewCount:   b.ReviewCount(),
		Favorite:      h.client.IsFavorite(b.ID),
	}
}

func (h *Handlers) views(businesses []catalogs.Business) []BusinessView {
	out := make([]BusinessView, len(businesses))
	for i, b := range businesses {
		out[i] = h.view(b)
	}
	return out
}
