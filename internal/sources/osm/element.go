package osm

import (
	"fmt"
	"strings"

	"github.com/agentstation/locallift/pkg/catalogs"
	"github.com/agentstation/locallift/pkg/normalize"
	"github.com/agentstation/locallift/pkg/sources"
)

// addressKeys are joined in order to build an address.
var addressKeys = []string{"addr:housenumber", "addr:street", "addr:city", "addr:postcode"}

// element is one POI returned by the query service.
type element struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Tags map[string]string `json:"tags"`
}

type response struct {
	Elements []element `json:"elements"`
}

func (e element) name() string {
	return e.Tags["name"]
}

func (e element) address() string {
	parts := make([]string, 0, len(addressKeys))
	for _, k := range addressKeys {
		if v := e.Tags[k]; v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return e.Tags["addr:full"]
	}
	return strings.Join(parts, ", ")
}

func (e element) category() string {
	for _, k := range poiKeys {
		if v := e.Tags[k]; v != "" {
			return v
		}
	}
	return ""
}

// convert turns elements into candidates, skipping chains and duplicates
// by normalized name, address and category. At most limit candidates are
// returned; limit <= 0 means no limit.
func (s *Source) convert(elems []element, limit int) []sources.Candidate {
	out := make([]sources.Candidate, 0, len(elems))
	seen := make(map[string]struct{}, len(elems))

	for _, e := range elems {
		name := e.name()
		if s.isChain(name) {
			continue
		}

		address := e.address()
		category := e.category()
		key := normalize.Normalize(name) + "|" + normalize.Normalize(address) + "|" + normalize.Normalize(category)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		display := name
		if display == "" {
			display = category
		}
		if display == "" {
			display = "(no name)"
		}

		out = append(out, sources.Candidate{
			ExternalID: sources.ExternalID(sources.OSMID, fmt.Sprintf("%s/%d", e.Type, e.ID)),
			Name:       display,
			Category:   category,
			Address:    address,
			Reviews:    []catalogs.Review{},
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
