package catalogs

import (
	"strings"

	"github.com/agentstation/locallift/pkg/normalize"
)

// Business is a single local business in the catalog.
//
// ID is only unique within one catalog snapshot; every import reassigns it.
// Use Key for an identity that survives imports.
type Business struct {
	ID         int      `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Category   string   `json:"category" yaml:"category"`
	Address    string   `json:"address" yaml:"address"`
	Deal       string   `json:"deal" yaml:"deal"`
	Reviews    []Review `json:"reviews" yaml:"reviews"`
	ExternalID string   `json:"external_id,omitempty" yaml:"external_id,omitempty"`
}

// AverageRating returns the mean review rating, or 0 when there are no reviews.
func (b *Business) AverageRating() float64 {
	if len(b.Reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range b.Reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(b.Reviews))
}

// ReviewCount returns the number of reviews.
func (b *Business) ReviewCount() int {
	return len(b.Reviews)
}

// Key returns the stable favorite key of the business.
func (b *Business) Key() string {
	return normalize.StableKey(b.Name, b.Address)
}

// HasDeal reports whether the business advertises a deal.
func (b *Business) HasDeal() bool {
	return strings.TrimSpace(b.Deal) != ""
}

// Clone returns a deep copy of the business.
func (b Business) Clone() Business {
	if b.Reviews != nil {
		b.Reviews = append([]Review(nil), b.Reviews...)
	}
	return b
}
