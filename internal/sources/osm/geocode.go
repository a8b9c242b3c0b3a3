package osm

import (
	"context"
	"net/url"
	"strconv"

	"github.com/patrickmn/go-cache"

	"github.com/agentstation/locallift/pkg/errors"
	"github.com/agentstation/locallift/pkg/normalize"
)

// Point is a latitude/longitude pair.
type Point struct {
	Lat float64
	Lon float64
}

// place is one geocoding result. Coordinates arrive as strings.
type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves location to the centroid of its best match. It returns
// a NotFoundError when the geocoder has no match. Resolved centroids are
// cached.
func (s *Source) Geocode(ctx context.Context, location string) (Point, error) {
	key := normalize.Fold(location)
	if v, ok := s.cache.Get(key); ok {
		return v.(Point), nil
	}

	query := url.Values{
		"q":      {location},
		"format": {"json"},
		"limit":  {"1"},
	}
	var places []place
	if err := s.geocoder.GetJSON(ctx, s.nominatimURL+"/search", query, &places); err != nil {
		return Point{}, err
	}
	if len(places) == 0 {
		return Point{}, errors.NewNotFoundError("location", location)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return Point{}, errors.WrapParse("json", "geocode latitude", err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return Point{}, errors.WrapParse("json", "geocode longitude", err)
	}

	p := Point{Lat: lat, Lon: lon}
	s.cache.Set(key, p, cache.DefaultExpiration)
	return p, nil
}
