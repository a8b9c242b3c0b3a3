package locallift

import (
	"github.com/agentstation/locallift/pkg/catalogs"
)

// Compile-time interface check to ensure proper implementation.
var _ Browser = (*client)(nil)

// Browser provides copy-on-read views of the catalog.
type Browser interface {
	// Catalog returns a deep copy of the catalog.
	Catalog() *catalogs.Catalog

	// Businesses returns the businesses matching filter.
	Businesses(filter catalogs.Filter) []catalogs.Business

	// Business returns one business or a NotFoundError.
	Business(id int) (catalogs.Business, error)

	// IsFavorite reports whether the business with id is a favorite.
	IsFavorite(id int) bool

	// Favorites returns the favorited businesses.
	Favorites() []catalogs.Business

	// Deals returns the businesses with a deal.
	Deals() []catalogs.Business

	// Stats summarizes the catalog.
	Stats() catalogs.Stats
}

// Catalog returns a deep copy of the catalog.
func (c *client) Catalog() *catalogs.Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.catalog.Clone()
}

// Businesses returns the businesses matching filter.
func (c *client) Businesses(filter catalogs.Filter) []catalogs.Business {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return filter.Apply(c.catalog)
}

// Business returns one business or a NotFoundError.
func (c *client) Business(id int) (catalogs.Business, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, err := c.catalog.Business(id)
	if err != nil {
		return catalogs.Business{}, err
	}
	return b.Clone(), nil
}

// IsFavorite reports whether the business with id is a favorite.
func (c *client) IsFavorite(id int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.catalog.Find(id)
	return ok && c.catalog.IsFavorite(b)
}

// Favorites returns the favorited businesses.
func (c *client) Favorites() []catalogs.Business {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAll(c.catalog.FavoriteBusinesses())
}

// Deals returns the businesses with a deal.
func (c *client) Deals() []catalogs.Business {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.catalog.Deals()
}

// Stats summarizes the catalog.
func (c *client) Stats() catalogs.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.catalog.ComputeStats()
}

func cloneAll(in []catalogs.Business) []catalogs.Business {
	out := make([]catalogs.Business, len(in))
	for i, b := range in {
		out[i] = b.Clone()
	}
	return out
}
