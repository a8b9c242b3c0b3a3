package locallift

import (
	"github.com/agentstation/locallift/pkg/catalogs"
)

// Compile-time interface check to ensure proper implementation.
var _ Editor = (*client)(nil)

// Editor handles favorites and reviews. Changes are saved immediately; a
// failed save is returned but the in-memory change is kept.
type Editor interface {
	// ToggleFavorite flips favorite membership and returns the new state.
	ToggleFavorite(id int) (bool, error)

	// AddReview appends a review with rating 1-5 and non-empty text.
	AddReview(id, rating int, text string) (catalogs.Review, error)
}

// ToggleFavorite flips favorite membership and returns the new state.
func (c *client) ToggleFavorite(id int) (bool, error) {
	c.mu.Lock()
	if err := c.writableLocked(); err != nil {
		c.mu.Unlock()
		return false, err
	}
	on, err := c.catalog.ToggleFavorite(id)
	if err != nil {
		c.mu.Unlock()
		return false, err
	}
	b, _ := c.catalog.Find(id)
	business := b.Clone()
	saveErr := c.saveLocked()
	c.mu.Unlock()

	c.logger.Debug().Int("id", id).Str("key", business.Key()).Bool("favorite", on).Msg("Favorite toggled")
	c.hooks.favoriteToggled(business, on)
	return on, saveErr
}

// AddReview appends a review with rating 1-5 and non-empty text.
func (c *client) AddReview(id, rating int, text string) (catalogs.Review, error) {
	c.mu.Lock()
	if err := c.writableLocked(); err != nil {
		c.mu.Unlock()
		return catalogs.Review{}, err
	}
	review, err := c.catalog.AddReview(id, rating, text, c.now())
	if err != nil {
		c.mu.Unlock()
		return catalogs.Review{}, err
	}
	b, _ := c.catalog.Find(id)
	business := b.Clone()
	saveErr := c.saveLocked()
	c.mu.Unlock()

	c.logger.Debug().Int("id", id).Int("rating", rating).Msg("Review added")
	c.hooks.reviewAdded(business, review)
	return review, saveErr
}
