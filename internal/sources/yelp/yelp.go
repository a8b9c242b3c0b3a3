// Package yelp searches the Yelp Fusion business search API. The source is
// only usable with an API key.
package yelp

import (
	"context"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/locallift/internal/transport"
	"github.com/agentstation/locallift/pkg/catalogs"
	"github.com/agentstation/locallift/pkg/constants"
	"github.com/agentstation/locallift/pkg/errors"
	"github.com/agentstation/locallift/pkg/logging"
	"github.com/agentstation/locallift/pkg/normalize"
	"github.com/agentstation/locallift/pkg/sources"
)

// ReviewText attributes the seed review built from a business rating.
const ReviewText = "Imported from Yelp (Yelp rating)"

type business struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Rating     float64    `json:"rating"`
	Categories []category `json:"categories"`
	Location   location   `json:"location"`
}

type category struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

type location struct {
	Address1       string   `json:"address1"`
	City           string   `json:"city"`
	DisplayAddress []string `json:"display_address"`
}

type searchResponse struct {
	Businesses []business `json:"businesses"`
	Total      int        `json:"total"`
}

// Source searches businesses by location and category.
type Source struct {
	baseURL string
	apiKey  string
	client  *transport.Client
	now     func() time.Time
	isChain func(string) bool
	logger  *zerolog.Logger
}

// Option configures a Yelp source.
type Option func(*Source)

// WithBaseURL sets the API base URL.
func WithBaseURL(u string) Option {
	return func(s *Source) {
		s.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithClock sets the clock used to stamp seed reviews.
func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		if now != nil {
			s.now = now
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

// New creates a Yelp source authenticating with apiKey.
func New(apiKey string, opts ...Option) *Source {
	s := &Source{
		baseURL: constants.YelpAPIURL,
		apiKey:  apiKey,
		now:     time.Now,
		isChain: normalize.IsBigChain,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = transport.New(string(sources.YelpID),
		transport.WithTimeout(constants.BusinessSearchTimeout),
		transport.WithAuth(transport.BearerAuth, apiKey),
	)
	return s
}

// ID returns the source id.
func (s *Source) ID() sources.ID {
	return sources.YelpID
}

// Fetch searches businesses around q.Location in q.Category. The API
// pages at 50 results, so larger limits are capped.
func (s *Source) Fetch(ctx context.Context, q sources.Query) ([]sources.Candidate, error) {
	if s.apiKey == "" {
		return nil, errors.ErrAPIKeyRequired
	}
	loc := strings.TrimSpace(q.Location)
	if loc == "" {
		return nil, &errors.ValidationError{Field: "location", Message: "cannot be empty"}
	}

	limit := q.Limit
	if limit <= 0 || limit > constants.MaxBusinessSearchLimit {
		limit = constants.MaxBusinessSearchLimit
	}
	params := url.Values{
		"location": {loc},
		"limit":    {strconv.Itoa(limit)},
	}
	if c := normalize.Fold(q.Category); c != "" {
		params.Set("term", c)
	}

	var resp searchResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"/businesses/search", params, &resp); err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]sources.Candidate, 0, len(resp.Businesses))
	for _, b := range resp.Businesses {
		if s.isChain(b.Name) {
			continue
		}
		out = append(out, b.candidate(now))
	}

	s.logger.Debug().
		Str("location", loc).
		Str("category", q.Category).
		Int("total", resp.Total).
		Int("candidates", len(out)).
		Msg("Business search complete")
	return out, nil
}

func (b business) candidate(now time.Time) sources.Candidate {
	titles := make([]string, 0, len(b.Categories))
	for _, c := range b.Categories {
		titles = append(titles, c.Title)
	}

	address := strings.Join(b.Location.DisplayAddress, ", ")
	if address == "" {
		address = b.Location.Address1 + ", " + b.Location.City
	}

	c := sources.Candidate{
		ExternalID: sources.ExternalID(sources.YelpID, b.ID),
		Name:       b.Name,
		Category:   strings.Join(titles, ", "),
		Address:    address,
		Reviews:    []catalogs.Review{},
	}
	if b.Rating > 0 {
		c.Reviews = append(c.Reviews, catalogs.Review{
			Rating:    int(math.RoundToEven(b.Rating)),
			Text:      ReviewText,
			Timestamp: catalogs.Timestamp(now),
		})
	}
	return c
}
