package normalize

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns up to n candidates closest to term by edit distance.
// Candidates that contain term rank first. Used for "did you mean" hints
// when a category filter matches nothing.
func Suggest(term string, candidates []string, n int) []string {
	term = Fold(term)
	if term == "" || n <= 0 || len(candidates) == 0 {
		return nil
	}

	type scored struct {
		value    string
		distance int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		folded := Fold(c)
		d := levenshtein.ComputeDistance(term, folded)
		if strings.Contains(folded, term) {
			d = 0
		}
		ranked = append(ranked, scored{value: c, distance: d})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].distance < ranked[j].distance
	})

	limit := max(len(term)/2, 2)
	out := make([]string, 0, n)
	for _, r := range ranked {
		if len(out) == n || r.distance > limit {
			break
		}
		out = append(out, r.value)
	}
	return out
}
