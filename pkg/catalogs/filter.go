package catalogs

import (
	"sort"
	"strings"

	"github.com/agentstation/locallift/pkg/normalize"
)

// Filter selects businesses for display. Zero values match everything.
type Filter struct {
	MinRating     float64 `json:"min_rating,omitempty"`
	Category      string  `json:"category,omitempty"`
	Name          string  `json:"name,omitempty"`
	FavoritesOnly bool    `json:"favorites_only,omitempty"`
	DealsOnly     bool    `json:"deals_only,omitempty"`
	SortByRating  bool    `json:"sort_by_rating,omitempty"`
}

// IsEmpty reports whether the filter matches everything.
func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// Match reports whether b passes the filter. favorite tells whether b is a favorite.
func (f Filter) Match(b *Business, favorite bool) bool {
	if f.MinRating > 0 && b.AverageRating() < f.MinRating {
		return false
	}
	if f.FavoritesOnly && !favorite {
		return false
	}
	if f.DealsOnly && !b.HasDeal() {
		return false
	}
	if name := normalize.Fold(f.Name); name != "" && !strings.Contains(strings.ToLower(b.Name), name) {
		return false
	}
	if category := normalize.Fold(f.Category); category != "" && !matchCategory(b, category) {
		return false
	}
	return true
}

// matchCategory matches against the whole lowercased category string, so
// a query may span separators. Any single token is a substring of it.
func matchCategory(b *Business, category string) bool {
	return strings.Contains(strings.ToLower(b.Category), category)
}

// Apply returns copies of the businesses in c that match the filter.
func (f Filter) Apply(c *Catalog) []Business {
	favorites := make(map[string]struct{}, len(c.Favorites))
	for _, k := range c.Favorites {
		favorites[k] = struct{}{}
	}

	out := make([]Business, 0, len(c.Businesses))
	for i := range c.Businesses {
		b := &c.Businesses[i]
		_, fav := favorites[b.Key()]
		if f.Match(b, fav) {
			out = append(out, b.Clone())
		}
	}
	if f.SortByRating {
		SortByRating(out)
	}
	return out
}

// SortByRating orders businesses by average rating, highest first.
// Ties keep their current order.
func SortByRating(businesses []Business) {
	sort.SliceStable(businesses, func(i, j int) bool {
		return businesses[i].AverageRating() > businesses[j].AverageRating()
	})
}

// Deals returns the businesses that advertise a deal.
func (c *Catalog) Deals() []Business {
	return Filter{DealsOnly: true}.Apply(c)
}
