package catalogs

import (
	"strings"
	"time"

	"github.com/agentstation/locallift/pkg/constants"
	"github.com/agentstation/locallift/pkg/errors"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating left on a business. Reviews are append-only.
type Review struct {
	Rating    int     `json:"rating" yaml:"rating"`
	Text      string  `json:"text" yaml:"text"`
	Timestamp float64 `json:"timestamp" yaml:"timestamp"` // seconds since epoch
}

// NewReview validates rating and text and stamps the review with at.
func NewReview(rating int, text string, at time.Time) (Review, error) {
	if rating < MinRating || rating > MaxRating {
		return Review{}, errors.NewValidationError("rating", rating, "must be between 1 and 5")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Review{}, errors.NewValidationError("text", text, "cannot be empty")
	}
	if len(text) > constants.MaxReviewLength {
		return Review{}, errors.NewValidationError("text", len(text), "is too long")
	}
	return Review{Rating: rating, Text: text, Timestamp: Timestamp(at)}, nil
}

// Time returns the review creation time.
func (r Review) Time() time.Time {
	sec := int64(r.Timestamp)
	nsec := int64((r.Timestamp - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}

// Timestamp converts t into fractional seconds since epoch.
func Timestamp(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
