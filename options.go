package locallift

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/locallift/pkg/constants"
	"github.com/agentstation/locallift/pkg/errors"
	"github.com/agentstation/locallift/pkg/logging"
	"github.com/agentstation/locallift/pkg/sources"
)

// options holds the configuration of a Client.
type options struct {
	dataFile    string
	datasetFile string
	apiKey      string
	fs          afero.Fs
	now         func() time.Time
	logger      *zerolog.Logger

	autoImportCity  string
	autoImportLimit int

	nominatimURL string
	overpassURL  string
	yelpURL      string
	geocodeCache *cache.Cache

	// sources replaces the adapters built from the settings above.
	sources []sources.Source
}

func defaults() *options {
	return &options{
		dataFile:        constants.DefaultCatalogFile,
		fs:              afero.NewOsFs(),
		now:             time.Now,
		logger:          logging.Default(),
		autoImportCity:  constants.AutoImportCity,
		autoImportLimit: constants.AutoImportLimit,
	}
}

// Option is a function that configures a Client.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithDataFile sets the catalog file.
func WithDataFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{Field: "data_file", Message: "cannot be empty"}
		}
		o.dataFile = path
		return nil
	}
}

// WithDatasetFile enables the dataset source reading path.
func WithDatasetFile(path string) Option {
	return func(o *options) error {
		o.datasetFile = path
		return nil
	}
}

// WithAPIKey enables the business search API source.
func WithAPIKey(key string) Option {
	return func(o *options) error {
		o.apiKey = key
		return nil
	}
}

// WithFs sets the filesystem holding the catalog and dataset files.
func WithFs(fs afero.Fs) Option {
	return func(o *options) error {
		if fs == nil {
			return &errors.ValidationError{Field: "fs", Message: "cannot be nil"}
		}
		o.fs = fs
		return nil
	}
}

// WithClock sets the clock used for review timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) error {
		if now == nil {
			return &errors.ValidationError{Field: "clock", Message: "cannot be nil"}
		}
		o.now = now
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		o.logger = logger
		return nil
	}
}

// WithAutoImport configures the first-run dataset import done by Bootstrap.
// An empty city disables it.
func WithAutoImport(city string, limit int) Option {
	return func(o *options) error {
		o.autoImportCity = city
		o.autoImportLimit = limit
		return nil
	}
}

// WithEndpoints overrides the remote service base URLs. Empty values keep the defaults.
func WithEndpoints(nominatim, overpass, yelp string) Option {
	return func(o *options) error {
		o.nominatimURL = nominatim
		o.overpassURL = overpass
		o.yelpURL = yelp
		return nil
	}
}

// WithGeocodeCache shares a geocode cache with the POI source.
func WithGeocodeCache(c *cache.Cache) Option {
	return func(o *options) error {
		o.geocodeCache = c
		return nil
	}
}

// WithSources replaces the configured sources. Order is merge priority.
// Calling it without sources disables every source.
func WithSources(srcs ...sources.Source) Option {
	return func(o *options) error {
		o.sources = append([]sources.Source{}, srcs...)
		return nil
	}
}
