// Package locallift provides the main entry point for the Local Lift
// business catalog. It binds the catalog store, the source adapters and
// the reconciler behind one Client used by the CLI and the HTTP API.
//
// Every mutation is a read-modify-write of the whole catalog followed by
// a save. The client serializes mutations, so one Client may be shared by
// concurrent callers.
//
// Example usage:
//
//	ll, err := locallift.New(
//	    locallift.WithDataFile("catalog.json"),
//	    locallift.WithDatasetFile("yelp_academic_dataset_business.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Replace the catalog with a combined search
//	result, err := ll.Search(ctx, locallift.SearchRequest{
//	    Location: "Las Vegas",
//	    Category: "coffee",
//	})
//	if errors.IsNoResults(err) {
//	    fmt.Println("nothing found, catalog unchanged")
//	}
//
//	// Favorites survive the next search
//	on, err := ll.ToggleFavorite(1)
package locallift

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/locallift/internal/sources/dataset"
	"github.com/agentstation/locallift/internal/sources/osm"
	"github.com/agentstation/locallift/internal/sources/yelp"
	"github.com/agentstation/locallift/pkg/catalogs"
	"github.com/agentstation/locallift/pkg/errors"
	"github.com/agentstation/locallift/pkg/reconciler"
	"github.com/agentstation/locallift/pkg/sources"
	"github.com/agentstation/locallift/pkg/store"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client manages the business catalog.
type Client interface {

	// Browser provides copy-on-read views of the catalog
	Browser

	// Editor handles favorites and reviews
	Editor

	// Importer replaces the catalog from external sources
	Importer

	// Persistence handles catalog persistence operations
	Persistence

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options

	mu      sync.RWMutex
	catalog *catalogs.Catalog

	store      *store.Store
	loaded     store.LoadResult
	sources    *sources.Sources
	dataset    *dataset.Source
	reconciler reconciler.Reconciler
	hooks      *hooks
	logger     *zerolog.Logger
}

// New creates a Client and loads the catalog. A missing or corrupt catalog
// file is replaced with the seed catalog; see LoadResult.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	st, err := store.New(o.dataFile, store.WithFs(o.fs))
	if err != nil {
		return nil, errors.NewResourceError("create", "store", o.dataFile, err)
	}

	rec, err := reconciler.New(reconciler.WithLogger(o.logger))
	if err != nil {
		return nil, errors.NewResourceError("create", "reconciler", "", err)
	}

	c := &client{
		options:    o,
		store:      st,
		reconciler: rec,
		hooks:      newHooks(),
		logger:     o.logger,
	}
	c.sources = c.buildSources()

	c.loaded = st.Load()
	c.catalog = c.loaded.Catalog
	c.logLoad(c.loaded)

	return c, nil
}

// buildSources creates the adapters in merge priority order: dataset,
// business search API, then POI query.
func (c *client) buildSources() *sources.Sources {
	o := c.options
	if o.sources != nil {
		srcs := sources.NewSources(o.sources...)
		if src, ok := srcs.Get(sources.DatasetID); ok {
			c.dataset, _ = src.(*dataset.Source)
		}
		return srcs
	}

	srcs := sources.NewSources()
	if o.datasetFile != "" {
		c.dataset = dataset.New(o.datasetFile,
			dataset.WithFs(o.fs),
			dataset.WithClock(o.now),
			dataset.WithLogger(o.logger),
		)
		srcs.Set(c.dataset)
	}
	if o.apiKey != "" {
		yelpOpts := []yelp.Option{yelp.WithClock(o.now), yelp.WithLogger(o.logger)}
		if o.yelpURL != "" {
			yelpOpts = append(yelpOpts, yelp.WithBaseURL(o.yelpURL))
		}
		srcs.Set(yelp.New(o.apiKey, yelpOpts...))
	}

	osmOpts := []osm.Option{osm.WithLogger(o.logger), osm.WithGeocodeCache(o.geocodeCache)}
	if o.nominatimURL != "" {
		osmOpts = append(osmOpts, osm.WithNominatimURL(o.nominatimURL))
	}
	if o.overpassURL != "" {
		osmOpts = append(osmOpts, osm.WithOverpassURL(o.overpassURL))
	}
	srcs.Set(osm.New(osmOpts...))
	return srcs
}

func (c *client) logLoad(r store.LoadResult) {
	event := c.logger.Debug()
	switch r.Status {
	case store.StatusReset:
		event = c.logger.Warn()
	case store.StatusUnreadable:
		event = c.logger.Error()
	}
	event.
		Str("path", c.store.Path()).
		Str("status", r.Status.String()).
		Int("businesses", r.Catalog.Len()).
		Int("upgraded_favorites", r.Upgraded).
		AnErr("cause", r.Cause).
		AnErr("save_error", r.SaveErr).
		Msg("Catalog loaded")
}

// now returns the configured clock's time.
func (c *client) now() time.Time {
	return c.options.now()
}
