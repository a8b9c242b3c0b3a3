package locallift

import (
	"sync"

	"github.com/agentstation/locallift/pkg/catalogs"
)

// Hook function types for catalog events
type (
	// CatalogReplacedHook is called after an import replaced the catalog
	CatalogReplacedHook func(old, new *catalogs.Catalog)

	// FavoriteToggledHook is called after a favorite was toggled
	FavoriteToggledHook func(business catalogs.Business, favorite bool)

	// ReviewAddedHook is called after a review was appended
	ReviewAddedHook func(business catalogs.Business, review catalogs.Review)
)

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*client)(nil)

// Hooks provides access to event callback registration.
type Hooks interface {
	// OnCatalogReplaced registers a callback for imports
	OnCatalogReplaced(CatalogReplacedHook)

	// OnFavoriteToggled registers a callback for favorite changes
	OnFavoriteToggled(FavoriteToggledHook)

	// OnReviewAdded registers a callback for new reviews
	OnReviewAdded(ReviewAddedHook)
}

// hooks manages event callbacks for catalog changes
type hooks struct {
	mu                sync.RWMutex
	onCatalogReplaced []CatalogReplacedHook
	onFavoriteToggled []FavoriteToggledHook
	onReviewAdded     []ReviewAddedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnCatalogReplaced registers a callback for imports.
func (c *client) OnCatalogReplaced(fn CatalogReplacedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onCatalogReplaced = append(c.hooks.onCatalogReplaced, fn)
}

// OnFavoriteToggled registers a callback for favorite changes.
func (c *client) OnFavoriteToggled(fn FavoriteToggledHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onFavoriteToggled = append(c.hooks.onFavoriteToggled, fn)
}

// OnReviewAdded registers a callback for new reviews.
func (c *client) OnReviewAdded(fn ReviewAddedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onReviewAdded = append(c.hooks.onReviewAdded, fn)
}

// Hooks run synchronously, after the catalog lock was released, with copies.

func (h *hooks) catalogReplaced(old, new *catalogs.Catalog) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onCatalogReplaced {
		fn(old, new)
	}
}

func (h *hooks) favoriteToggled(b catalogs.Business, favorite bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onFavoriteToggled {
		fn(b, favorite)
	}
}

func (h *hooks) reviewAdded(b catalogs.Business, r catalogs.Review) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onReviewAdded {
		fn(b, r)
	}
}
