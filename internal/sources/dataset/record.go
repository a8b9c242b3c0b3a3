package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/locallift/pkg/catalogs"
	"github.com/agentstation/locallift/pkg/constants"
	"github.com/agentstation/locallift/pkg/sources"
)

// record is one line of the dataset file.
type record struct {
	BusinessID string `json:"business_id"`
	Name       string `json:"name"`
	Categories string `json:"categories"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Stars      *stars `json:"stars"`
}

// stars accepts a JSON number or a numeric string. Anything else decodes
// without error but reports !ok, so the record is kept without a rating.
type stars struct {
	value float64
	ok    bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *stars) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		s.value, s.ok = n, true
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			s.value, s.ok = f, true
		}
	}
	return nil
}

// valid reports whether the record names a business. A line holding null
// or an empty object decodes cleanly but is not one.
func (r *record) valid() bool {
	return strings.TrimSpace(r.Name) != ""
}

// rating rounds half-to-even and clamps to the review scale.
func (s *stars) rating() (int, bool) {
	if !s.ok || math.IsNaN(s.value) || math.IsInf(s.value, 0) {
		return 0, false
	}
	n := math.RoundToEven(s.value)
	return int(max(catalogs.MinRating, min(catalogs.MaxRating, n))), true
}

// categoryTokens splits the comma separated category list into trimmed, non-empty tokens.
func (r *record) categoryTokens() []string {
	parts := strings.Split(r.Categories, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// matchesCategory reports whether any category token contains filter.
// filter must already be folded.
func (r *record) matchesCategory(filter string) bool {
	for _, token := range r.categoryTokens() {
		if strings.Contains(strings.ToLower(token), filter) {
			return true
		}
	}
	return false
}

// candidate converts the record. A numeric star rating becomes exactly one
// seed review stamped at now.
func (r *record) candidate(now time.Time) sources.Candidate {
	c := sources.Candidate{
		Name:     r.Name,
		Category: r.Categories,
		Address:  r.Address + ", " + r.City,
		Reviews:  []catalogs.Review{},
	}
	if r.BusinessID != "" {
		c.ExternalID = sources.ExternalID(sources.DatasetID, r.BusinessID)
	}
	if r.Stars == nil {
		return c
	}
	if rating, ok := r.Stars.rating(); ok {
		c.Reviews = append(c.Reviews, catalogs.Review{
			Rating:    rating,
			Text:      constants.DatasetReviewText,
			Timestamp: catalogs.Timestamp(now),
		})
	}
	return c
}
