// Package osm finds businesses around a free-text location using a
// geocoder (Nominatim) and a POI query service (Overpass).
//
// A fetch geocodes the location, then queries amenities, shops and crafts
// matching a tag alternation within a radius of the centroid. When the
// location cannot be geocoded, or the radius query finds nothing, it
// falls back to a query over the area named exactly like the location.
package osm

import (
	"context"
	"net/url"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/agentstation/locallift/internal/transport"
	"github.com/agentstation/locallift/pkg/constants"
	"github.com/agentstation/locallift/pkg/errors"
	"github.com/agentstation/locallift/pkg/logging"
	"github.com/agentstation/locallift/pkg/normalize"
	"github.com/agentstation/locallift/pkg/sources"
)

// Source queries OpenStreetMap services for points of interest.
type Source struct {
	nominatimURL string
	overpassURL  string
	geocoder     *transport.Client
	overpass     *transport.Client
	cache        *cache.Cache
	isChain      func(string) bool
	logger       *zerolog.Logger
}

// Option configures an OSM source.
type Option func(*Source)

// WithNominatimURL sets the geocoder base URL.
func WithNominatimURL(u string) Option {
	return func(s *Source) {
		s.nominatimURL = strings.TrimSuffix(u, "/")
	}
}

// WithOverpassURL sets the POI query service base URL.
func WithOverpassURL(u string) Option {
	return func(s *Source) {
		s.overpassURL = strings.TrimSuffix(u, "/")
	}
}

// WithGeocodeCache shares a geocode cache between sources.
func WithGeocodeCache(c *cache.Cache) Option {
	return func(s *Source) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithChainFilter replaces the chain detection.
func WithChainFilter(isChain func(string) bool) Option {
	return func(s *Source) {
		if isChain != nil {
			s.isChain = isChain
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an OSM source.
func New(opts ...Option) *Source {
	s := &Source{
		nominatimURL: constants.NominatimURL,
		overpassURL:  constants.OverpassURL,
		geocoder:     transport.New(string(sources.OSMID), transport.WithTimeout(constants.GeocodeTimeout)),
		overpass:     transport.New(string(sources.OSMID), transport.WithTimeout(constants.OverpassTimeout)),
		cache:        cache.New(constants.GeocodeCacheTTL, constants.CacheCleanupInterval),
		isChain:      normalize.IsBigChain,
		logger:       logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the source id.
func (s *Source) ID() sources.ID {
	return sources.OSMID
}

// Fetch returns candidates near q.Location matching q.Tags. Empty tags and
// the narrow restaurant defaults are widened to the common food and drink
// tags. An empty result is not an error.
func (s *Source) Fetch(ctx context.Context, q sources.Query) ([]sources.Candidate, error) {
	location := strings.TrimSpace(q.Location)
	if location == "" {
		return nil, &errors.ValidationError{Field: "location", Message: "cannot be empty"}
	}
	tags := normalize.ExpandTags(strings.ToLower(q.Tags))
	logger := s.logger.With().Str("location", location).Str("tags", tags).Logger()

	var lastErr error

	center, err := s.Geocode(ctx, location)
	switch {
	case err == nil:
		radius := SearchRadius(location)
		elems, err := s.query(ctx, RadiusQuery(tags, radius, center))
		if err == nil && len(elems) > 0 {
			out := s.convert(elems, q.Limit)
			logger.Debug().Int("elements", len(elems)).Int("candidates", len(out)).Int("radius", radius).Msg("POI radius query complete")
			return out, nil
		}
		if err != nil {
			lastErr = err
			logger.Warn().Err(err).Msg("POI radius query failed")
		}
	case errors.IsNotFound(err):
		logger.Debug().Msg("Location not geocoded")
	default:
		lastErr = err
		logger.Warn().Err(err).Msg("Geocoding failed")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	elems, err := s.query(ctx, AreaQuery(tags, location))
	if err != nil {
		logger.Warn().Err(err).Msg("POI area query failed")
		return nil, err
	}
	if len(elems) == 0 {
		logger.Debug().Msg("No POIs found for location and tags")
		return nil, lastErr
	}

	out := s.convert(elems, q.Limit)
	logger.Debug().Int("elements", len(elems)).Int("candidates", len(out)).Msg("POI area query complete")
	return out, nil
}

func (s *Source) query(ctx context.Context, q string) ([]element, error) {
	var resp response
	if err := s.overpass.PostFormJSON(ctx, s.overpassURL+"/interpreter", url.Values{"data": {q}}, &resp); err != nil {
		return nil, err
	}
	return resp.Elements, nil
}
