package osm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/locallift/pkg/errors"
	"github.com/agentstation/locallift/pkg/logging"
	"github.com/agentstation/locallift/pkg/sources"
)

// fakeOSM serves both the geocoder and the POI query service.
type fakeOSM struct {
	mu       sync.Mutex
	places   []place
	radius   []element
	area     []element
	status   int
	queries  []string
	geocodes int
}

func (f *fakeOSM) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.geocodes++
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(f.places)
	})
	mux.HandleFunc("/interpreter", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		q := r.PostForm.Get("data")
		f.mu.Lock()
		f.queries = append(f.queries, q)
		f.mu.Unlock()
		if f.status != 0 {
			w.WriteHeader(f.status)
			return
		}
		elems := f.radius
		if strings.Contains(q, "area.searchArea") {
			elems = f.area
		}
		_ = json.NewEncoder(w).Encode(response{Elements: elems})
	})
	return mux
}

func newTestSource(t *testing.T, f *fakeOSM) *Source {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return New(
		WithNominatimURL(srv.URL),
		WithOverpassURL(srv.URL+"/"),
		WithLogger(logging.NewNopLogger()),
	)
}

func el(typ string, id int64, tags map[string]string) element {
	return element{Type: typ, ID: id, Tags: tags}
}

var vegas = []place{{Lat: "36.1699", Lon: "-115.1398", DisplayName: "Las Vegas"}}

func TestFetchRadiusQuery(t *testing.T) {
	f := &fakeOSM{
		places: vegas,
		radius: []element{
			el("node", 1, map[string]string{"name": "Blue Door Cafe", "amenity": "cafe", "addr:housenumber": "1", "addr:street": "Main St", "addr:city": "Las Vegas", "addr:postcode": "89101"}),
			el("way", 2, map[string]string{"name": "Starbucks", "amenity": "cafe"}),
			el("node", 3, map[string]string{"name": "blue door cafe!", "amenity": "Cafe", "addr:housenumber": "1", "addr:street": "Main St.", "addr:city": "Las Vegas", "addr:postcode": "89101"}),
			el("node", 4, map[string]string{"shop": "bakery", "addr:full": "9 Oak Ave, Las Vegas"}),
			el("relation", 5, map[string]string{}),
		},
	}
	s := newTestSource(t, f)

	got, err := s.Fetch(context.Background(), sources.Query{Location: "Las Vegas", Tags: "cafe|bakery"})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, sources.Candidate{
		ExternalID: "osm:node/1",
		Name:       "Blue Door Cafe",
		Category:   "cafe",
		Address:    "1, Main St, Las Vegas, 89101",
		Reviews:    got[0].Reviews,
	}, got[0])
	assert.NotNil(t, got[0].Reviews)

	assert.Equal(t, "bakery", got[1].Name, "unnamed POIs use their category")
	assert.Equal(t, "9 Oak Ave, Las Vegas", got[1].Address)
	assert.Equal(t, "osm:node/4", got[1].ExternalID)

	assert.Equal(t, "(no name)", got[2].Name)
	assert.Equal(t, "osm:relation/5", got[2].ExternalID)

	require.Len(t, f.queries, 1)
	assert.Contains(t, f.queries[0], `node["amenity"~"cafe|bakery", i](around:8000,36.1699,-115.1398);`)
	assert.Contains(t, f.queries[0], `relation["craft"~"cafe|bakery", i](around:8000,36.1699,-115.1398);`)
}

func TestFetchLimit(t *testing.T) {
	f := &fakeOSM{places: vegas}
	for i := int64(1); i <= 10; i++ {
		f.radius = append(f.radius, el("node", i, map[string]string{"name": "Place " + string(rune('A'+i)), "amenity": "bar"}))
	}
	s := newTestSource(t, f)

	got, err := s.Fetch(context.Background(), sources.Query{Location: "Las Vegas", Limit: 4})
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestFetchDenseCityRadius(t *testing.T) {
	f := &fakeOSM{
		places: []place{{Lat: "41.88", Lon: "-87.63"}},
		radius: []element{el("node", 1, map[string]string{"name": "Loop Deli", "amenity": "deli"})},
	}
	s := newTestSource(t, f)

	_, err := s.Fetch(context.Background(), sources.Query{Location: "Chicago, IL"})
	require.NoError(t, err)
	require.Len(t, f.queries, 1)
	assert.Contains(t, f.queries[0], "(around:6000,41.88,-87.63)")
	assert.Contains(t, f.queries[0], "restaurant|cafe|bar|pub|fast_food", "empty tags widen to the default set")
}

func TestFetchFallsBackToArea(t *testing.T) {
	area := []element{el("node", 7, map[string]string{"name": "Kwik Diner", "amenity": "restaurant"})}

	t.Run("location not geocoded", func(t *testing.T) {
		f := &fakeOSM{area: area}
		s := newTestSource(t, f)

		got, err := s.Fetch(context.Background(), sources.Query{Location: "Springfield"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Kwik Diner", got[0].Name)

		require.Len(t, f.queries, 1)
		assert.Contains(t, f.queries[0], `area["name"~"^Springfield$", i]->.searchArea;`)
	})

	t.Run("radius query empty", func(t *testing.T) {
		f := &fakeOSM{places: vegas, area: area}
		s := newTestSource(t, f)

		got, err := s.Fetch(context.Background(), sources.Query{Location: "Las Vegas"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Len(t, f.queries, 2)
	})

	t.Run("nothing anywhere", func(t *testing.T) {
		f := &fakeOSM{}
		s := newTestSource(t, f)

		got, err := s.Fetch(context.Background(), sources.Query{Location: "Nowhere"})
		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestFetchServiceFailure(t *testing.T) {
	f := &fakeOSM{places: vegas, status: http.StatusGatewayTimeout}
	s := newTestSource(t, f)

	got, err := s.Fetch(context.Background(), sources.Query{Location: "Las Vegas"})
	assert.Empty(t, got)
	assert.True(t, errors.IsSourceUnavailable(err))
}

func TestFetchRequiresLocation(t *testing.T) {
	s := New(WithLogger(logging.NewNopLogger()))
	_, err := s.Fetch(context.Background(), sources.Query{Location: "   "})
	assert.True(t, errors.IsValidationError(err))
}

func TestGeocodeCache(t *testing.T) {
	f := &fakeOSM{places: vegas}
	s := newTestSource(t, f)

	p1, err := s.Geocode(context.Background(), "Las Vegas")
	require.NoError(t, err)
	p2, err := s.Geocode(context.Background(), "  las vegas ")
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, Point{Lat: 36.1699, Lon: -115.1398}, p1)
	assert.Equal(t, 1, f.geocodes)
}

func TestGeocodeNotFound(t *testing.T) {
	s := newTestSource(t, &fakeOSM{})
	_, err := s.Geocode(context.Background(), "Atlantis")
	assert.True(t, errors.IsNotFound(err))
}

func TestSearchRadius(t *testing.T) {
	tests := []struct {
		location string
		want     int
	}{
		{"Las Vegas", 8000},
		{"Manhattan, NY", 6000},
		{"new york city", 6000},
		{"CHICAGO", 6000},
		{"", 8000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SearchRadius(tt.location), tt.location)
	}
}

func TestQueries(t *testing.T) {
	radius := RadiusQuery("cafe", 100, Point{Lat: 1.5, Lon: -2})
	assert.True(t, strings.HasPrefix(radius, "[out:json][timeout:25];\n("))
	assert.True(t, strings.HasSuffix(radius, ");\nout center;"))
	assert.Equal(t, 9, strings.Count(radius, "(around:100,1.5,-2);"))

	area := AreaQuery(`bar`, "St. Louis (MO)")
	assert.Contains(t, area, `area["name"~"^St\\. Louis \\(MO\\)$", i]->.searchArea;`)
	assert.Equal(t, 9, strings.Count(area, "(area.searchArea);"))

	quoted := RadiusQuery(`ca"fe`, 1, Point{})
	assert.Contains(t, quoted, `~"ca\"fe", i]`)
}
