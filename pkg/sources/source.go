// Package sources defines the contract shared by the business source
// adapters. An adapter translates one external record format into
// Candidate records; it never touches the catalog store.
//
// Example usage:
//
//	srcs := sources.NewSources(datasetSource, osmSource)
//	results := sources.FetchAll(ctx, srcs.List(), sources.Query{
//	    Location: "Austin, TX",
//	    Category: "coffee",
//	    Limit:    200,
//	})
//	for _, r := range results {
//	    if r.Err != nil {
//	        log.Warn().Err(r.Err).Str("source", r.Source.String()).Msg("source failed")
//	    }
//	}
package sources

import (
	"context"
	"slices"
	"sync"
)

// ID represents the identifier of a source adapter.
type ID string

// String returns the string representation of a source id.
func (id ID) String() string {
	return string(id)
}

// Source ids. They also prefix candidate external ids.
const (
	DatasetID ID = "dataset"
	YelpID    ID = "yelp"
	OSMID     ID = "osm"
)

// IDs returns all known source ids in merge priority order.
func IDs() []ID {
	return []ID{DatasetID, YelpID, OSMID}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Query describes what to fetch. Each adapter uses the fields it understands.
type Query struct {
	// Location is a free-text place for geographic sources ("Austin, TX").
	Location string

	// City filters dataset records by case-insensitive substring.
	City string

	// Category filters records whose category tokens contain it.
	Category string

	// Tags is the pipe-delimited POI tag alternation ("cafe|coffee").
	Tags string

	// Limit caps the number of candidates; zero or less means no limit.
	Limit int
}

// Source produces candidate businesses from one external collaborator.
type Source interface {
	// ID returns the source id.
	ID() ID

	// Fetch returns candidates for the query. On failure it returns an
	// error and whatever candidates it had; callers treat the source as
	// having contributed nothing.
	Fetch(ctx context.Context, q Query) ([]Candidate, error)
}

// Sources is an ordered, thread-safe set of sources. Order is merge priority.
type Sources struct {
	mu      sync.RWMutex
	sources []Source
}

// NewSources creates a set holding srcs in priority order. Nil sources are skipped.
func NewSources(srcs ...Source) *Sources {
	s := &Sources{}
	for _, src := range srcs {
		s.Set(src)
	}
	return s
}

// Get returns a source by ID.
func (s *Sources) Get(id ID) (Source, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, src := range s.sources {
		if src.ID() == id {
			return src, true
		}
	}
	return nil, false
}

// Set adds src, replacing a source with the same id in place.
func (s *Sources) Set(src Source) {
	if src == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.sources {
		if existing.ID() == src.ID() {
			s.sources[i] = src
			return
		}
	}
	s.sources = append(s.sources, src)
}

// Len returns the number of sources.
func (s *Sources) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sources)
}

// List returns the sources in priority order.
func (s *Sources) List() []Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sources)
}

// IDs returns the source ids in priority order.
func (s *Sources) IDs() []ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]ID, 0, len(s.sources))
	for _, src := range s.sources {
		ids = append(ids, src.ID())
	}
	return ids
}
