package sources_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/locallift/pkg/catalogs"
	"github.com/agentstation/locallift/pkg/sources"
)

type stubSource struct {
	id    sources.ID
	delay time.Duration
	out   []sources.Candidate
	err   error
	panic bool
	seen  *sources.Query
}

func (s *stubSource) ID() sources.ID { return s.id }

func (s *stubSource) Fetch(_ context.Context, q sources.Query) ([]sources.Candidate, error) {
	s.seen = &q
	time.Sleep(s.delay)
	if s.panic {
		panic("adapter exploded")
	}
	return s.out, s.err
}

func TestFetchAllKeepsOrder(t *testing.T) {
	slow := &stubSource{id: sources.DatasetID, delay: 20 * time.Millisecond, out: []sources.Candidate{{Name: "Slow"}}}
	fast := &stubSource{id: sources.OSMID, out: []sources.Candidate{{Name: "Fast"}}}

	q := sources.Query{Location: "Austin", Limit: 5}
	results := sources.FetchAll(context.Background(), []sources.Source{slow, fast}, q)

	require.Len(t, results, 2)
	assert.Equal(t, sources.DatasetID, results[0].Source)
	assert.Equal(t, "Slow", results[0].Candidates[0].Name)
	assert.Equal(t, sources.OSMID, results[1].Source)
	assert.Equal(t, q, *fast.seen)

	lists := sources.Lists(results)
	assert.Equal(t, [][]sources.Candidate{slow.out, fast.out}, lists)
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	failing := &stubSource{id: sources.OSMID, out: []sources.Candidate{{Name: "partial"}}, err: errors.New("geocode failed")}
	panicking := &stubSource{id: sources.YelpID, panic: true}
	ok := &stubSource{id: sources.DatasetID, out: []sources.Candidate{{Name: "Blue Door Cafe"}}}

	results := sources.FetchAll(context.Background(), []sources.Source{ok, panicking, failing}, sources.Query{})

	require.Len(t, results, 3)
	assert.False(t, results[0].Failed())
	assert.Len(t, results[0].Candidates, 1)

	assert.True(t, results[1].Failed())
	assert.Contains(t, results[1].Err.Error(), "adapter exploded")
	assert.Nil(t, results[1].Candidates)

	assert.True(t, results[2].Failed())
	assert.Nil(t, results[2].Candidates, "a failed source contributes nothing")
}

func TestSources(t *testing.T) {
	a := &stubSource{id: sources.DatasetID}
	b := &stubSource{id: sources.OSMID}
	s := sources.NewSources(a, nil, b)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []sources.ID{sources.DatasetID, sources.OSMID}, s.IDs())

	replacement := &stubSource{id: sources.DatasetID}
	s.Set(replacement)
	got, ok := s.Get(sources.DatasetID)
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, []sources.ID{sources.DatasetID, sources.OSMID}, s.IDs())

	_, ok = s.Get(sources.YelpID)
	assert.False(t, ok)

	assert.True(t, sources.OSMID.IsValid())
	assert.False(t, sources.ID("carrier-pigeon").IsValid())
}

func TestCandidate(t *testing.T) {
	c := sources.Candidate{
		ExternalID: sources.ExternalID(sources.OSMID, "node/42"),
		Name:       "Old Town Pub",
		Category:   "pub",
		Address:    "9 Elm St",
		Reviews:    []catalogs.Review{{Rating: 4, Text: "x", Timestamp: 1}},
	}
	assert.Equal(t, "osm:node/42", c.ExternalID)
	assert.Equal(t, "oldtownpub|9elmst", c.Key())

	b := c.Business(7)
	assert.Equal(t, 7, b.ID)
	assert.Equal(t, c.ExternalID, b.ExternalID)
	b.Reviews[0].Rating = 1
	assert.Equal(t, 4, c.Reviews[0].Rating)

	empty := sources.Candidate{Name: "x"}.Business(1)
	assert.NotNil(t, empty.Reviews)
}
