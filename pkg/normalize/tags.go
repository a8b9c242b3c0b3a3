package normalize

import "strings"

const (
	// DefaultTags is the broad food and drink tag set used when no category is given.
	DefaultTags = "restaurant|cafe|bar|pub|fast_food|coffee|bakery|ice_cream|deli"

	// narrowRestaurantTags is the old default that ExpandTags widens.
	narrowRestaurantTags = "restaurant|cafe|bar"
)

var categoryAliases = map[string]string{
	"bars":         "bar|pub",
	"bar":          "bar|pub",
	"pubs":         "pub|bar",
	"restaurants":  "restaurant|fast_food",
	"restaurant":   "restaurant|fast_food",
	"cafes":        "cafe|coffee",
	"cafe":         "cafe|coffee",
	"coffee":       "cafe|coffee",
	"coffee shops": "cafe|coffee",
}

// CategoryTags maps a colloquial category to the pipe-delimited tag
// alternation consumed by the POI adapter. Unknown input passes through
// trimmed and lowercased; empty input yields DefaultTags.
func CategoryTags(input string) string {
	s := Fold(input)
	if s == "" {
		return DefaultTags
	}
	if tags, ok := categoryAliases[s]; ok {
		return tags
	}
	return s
}

// ExpandTags widens the narrow restaurant defaults into the full food and drink set.
func ExpandTags(tags string) string {
	switch strings.TrimSpace(tags) {
	case "", "restaurant", narrowRestaurantTags:
		return DefaultTags
	}
	return strings.TrimSpace(tags)
}
