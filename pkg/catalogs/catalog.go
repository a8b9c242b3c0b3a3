// Package catalogs defines the business catalog: businesses, their
// reviews and the favorite set, plus the derived views (filters, stats,
// deals) shown to users.
//
// A Catalog is a plain value. It is not safe for concurrent mutation;
// callers serialize writes and persist the whole catalog after each one.
package catalogs

import (
	"strconv"
	"time"

	"github.com/agentstation/locallift/pkg/errors"
)

// Catalog is the persisted root object.
type Catalog struct {
	Businesses []Business `json:"businesses" yaml:"businesses"`

	// Favorites holds stable keys. It is a set stored as a sequence:
	// duplicates are tolerated on read and collapsed on write.
	Favorites []string `json:"favorites" yaml:"favorites"`
}

// New returns a catalog holding businesses and favorites.
func New(businesses []Business, favorites []string) *Catalog {
	if businesses == nil {
		businesses = []Business{}
	}
	return &Catalog{Businesses: businesses, Favorites: DedupeFavorites(favorites)}
}

// Len returns the number of businesses.
func (c *Catalog) Len() int {
	return len(c.Businesses)
}

// Find returns the business with the given id.
func (c *Catalog) Find(id int) (*Business, bool) {
	for i := range c.Businesses {
		if c.Businesses[i].ID == id {
			return &c.Businesses[i], true
		}
	}
	return nil, false
}

// Business returns the business with the given id or a NotFoundError.
func (c *Catalog) Business(id int) (*Business, error) {
	b, ok := c.Find(id)
	if !ok {
		return nil, errors.NewNotFoundError("business", strconv.Itoa(id))
	}
	return b, nil
}

// AddReview appends a validated review to the business with the given id.
func (c *Catalog) AddReview(id, rating int, text string, at time.Time) (Review, error) {
	b, err := c.Business(id)
	if err != nil {
		return Review{}, err
	}
	review, err := NewReview(rating, text, at)
	if err != nil {
		return Review{}, err
	}
	b.Reviews = append(b.Reviews, review)
	return review, nil
}

// Replace swaps in a reconciled business list and favorite set.
func (c *Catalog) Replace(businesses []Business, favorites []string) {
	c.Businesses = businesses
	c.Favorites = DedupeFavorites(favorites)
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		Businesses: make([]Business, len(c.Businesses)),
		Favorites:  append([]string{}, c.Favorites...),
	}
	for i, b := range c.Businesses {
		out.Businesses[i] = b.Clone()
	}
	return out
}

// Default returns the seed catalog used on first run and after corruption.
func Default() *Catalog {
	return &Catalog{
		Businesses: []Business{
			{ID: 1, Name: "Chuckeys Cheesesteak", Category: "food", Address: "123 Jolly Ave", Deal: "10 dollars off: JOLLY100", Reviews: []Review{}},
			{ID: 2, Name: "Corner Book Nook", Category: "retail", Address: "55 Maple Ave", Deal: "Buy 2 get 1 (weekends)", Reviews: []Review{}},
			{ID: 3, Name: "QuickFix Phone Repair", Category: "services", Address: "200 Oak Blvd", Deal: "Free screen protector", Reviews: []Review{}},
		},
		Favorites: []string{},
	}
}

// IsDefault reports whether the catalog still holds only the seed businesses.
func (c *Catalog) IsDefault() bool {
	seed := Default().Businesses
	if len(c.Businesses) != len(seed) {
		return false
	}
	for i := range seed {
		if c.Businesses[i].Key() != seed[i].Key() {
			return false
		}
	}
	return true
}
