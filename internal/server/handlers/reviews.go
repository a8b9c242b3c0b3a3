package handlers

import (
	"net/http"

	"github.com/agentstation/locallift/internal/server/response"
	"github.com/agentstation/locallift/pkg/catalogs"
)

// ReviewRequest is the body of POST /api/v1/businesses/{id}/reviews.
type ReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// HandleListReviews handles GET /api/v1/businesses/{id}/reviews.
func (h *Handlers) HandleListReviews(w http.ResponseWriter, r *http.Request) {
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
	reviews := b.Reviews
	if reviews == nil {
		reviews = []catalogs.Review{}
	}
	response.OK(w, reviews)
}

// HandleAddReview handles POST /api/v1/businesses/{id}/reviews.
func (h *Handlers) HandleAddReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	var req ReviewRequest
	if err := decodeBody(r, &req); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	review, err := h.client.AddReview(id, req.Rating, req.Text)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.Created(w, review)
}
