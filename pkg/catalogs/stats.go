package catalogs

import (
	"math"
	"sort"
	"strings"
)

// CategoryCount is a category and the number of businesses listing it.
type CategoryCount struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

// Stats summarizes a catalog.
type Stats struct {
	Total              int             `json:"total" yaml:"total"`
	AverageRating      float64         `json:"average_rating" yaml:"average_rating"`
	TopCategories      []CategoryCount `json:"top_categories" yaml:"top_categories"`
	MostReviewed       *Business       `json:"most_reviewed,omitempty" yaml:"most_reviewed,omitempty"`
	RatingDistribution map[int]int     `json:"rating_distribution" yaml:"rating_distribution"`
	Favorites          int             `json:"favorites" yaml:"favorites"`
	Deals              int             `json:"deals" yaml:"deals"`
}

const topCategoryCount = 3

// ComputeStats summarizes the catalog. The average rating is the mean of
// every business's average rating, unreviewed businesses counting as 0,
// rounded to two decimals.
func (c *Catalog) ComputeStats() Stats {
	stats := Stats{
		Total:              len(c.Businesses),
		TopCategories:      []CategoryCount{},
		RatingDistribution: map[int]int{},
		Favorites:          len(c.FavoriteBusinesses()),
	}
	if stats.Total == 0 {
		return stats
	}

	var sum float64
	counts := map[string]int{}
	order := []string{}
	var mostReviewed *Business
	for i := range c.Businesses {
		b := &c.Businesses[i]
		sum += b.AverageRating()
		if b.HasDeal() {
			stats.Deals++
		}
		for _, cat := range strings.Split(b.Category, ",") {
			cat = strings.TrimSpace(cat)
			if _, ok := counts[cat]; !ok {
				order = append(order, cat)
			}
			counts[cat]++
		}
		if mostReviewed == nil || b.ReviewCount() > mostReviewed.ReviewCount() {
			mostReviewed = b
		}
		for _, r := range b.Reviews {
			stats.RatingDistribution[r.Rating]++
		}
	}

	stats.AverageRating = math.Round(sum/float64(stats.Total)*100) / 100

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	for _, cat := range order[:min(topCategoryCount, len(order))] {
		stats.TopCategories = append(stats.TopCategories, CategoryCount{Category: cat, Count: counts[cat]})
	}

	mr := mostReviewed.Clone()
	stats.MostReviewed = &mr
	return stats
}
