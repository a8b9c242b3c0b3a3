package catalogs

// DedupeFavorites collapses duplicate keys, keeping first-seen order.
// Empty keys are dropped.
func DedupeFavorites(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// IsFavorite reports whether b is in the favorite set.
func (c *Catalog) IsFavorite(b *Business) bool {
	key := b.Key()
	for _, k := range c.Favorites {
		if k == key {
			return true
		}
	}
	return false
}

// ToggleFavorite flips favorite membership of the business with the given
// id and returns the new state.
func (c *Catalog) ToggleFavorite(id int) (bool, error) {
	b, err := c.Business(id)
	if err != nil {
		return false, err
	}
	key := b.Key()

	kept := make([]string, 0, len(c.Favorites)+1)
	removed := false
	for _, k := range c.Favorites {
		if k == key {
			removed = true
			continue
		}
		kept = append(kept, k)
	}
	if !removed {
		kept = append(kept, key)
	}
	c.Favorites = DedupeFavorites(kept)
	return !removed, nil
}

// FavoriteBusinesses returns the favorited businesses in catalog order.
func (c *Catalog) FavoriteBusinesses() []Business {
	keys := make(map[string]struct{}, len(c.Favorites))
	for _, k := range c.Favorites {
		keys[k] = struct{}{}
	}
	out := make([]Business, 0, len(c.Favorites))
	for _, b := range c.Businesses {
		if _, ok := keys[b.Key()]; ok {
			out = append(out, b)
		}
	}
	return out
}
