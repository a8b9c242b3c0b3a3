// Package constants provides shared constants used throughout locallift.
// This includes timeouts, search radii, file permissions, endpoints and
// default paths that must stay consistent between the CLI, the HTTP API
// and the source adapters.
package constants

import "time"

// Timeout constants
const (
	// GeocodeTimeout bounds a single geocoding lookup.
	GeocodeTimeout = 15 * time.Second

	// OverpassTimeout bounds a single POI query.
	OverpassTimeout = 45 * time.Second

	// OverpassQueryTimeout is the server-side timeout embedded in the query, in seconds.
	OverpassQueryTimeout = 25

	// BusinessSearchTimeout bounds a single business search API call.
	BusinessSearchTimeout = 15 * time.Second

	// DefaultHTTPTimeout is used when a caller does not pick a specific timeout.
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands.
	CommandTimeout = 5 * time.Minute

	// ShutdownTimeout bounds graceful HTTP server shutdown.
	ShutdownTimeout = 10 * time.Second
)

// Search radius constants, in meters.
const (
	// DefaultSearchRadius is the POI search radius around a geocoded centroid.
	DefaultSearchRadius = 8000

	// DenseCitySearchRadius is used for large, dense urban locations.
	DenseCitySearchRadius = 6000
)

// DenseCities lists location fragments that get the reduced search radius.
var DenseCities = []string{"manhattan", "new york", "chicago"}

// File permission constants
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for the credential file holding API keys (rw-------)
	SecureFilePermissions = 0600
)

// Limit constants
const (
	// DefaultImportLimit is the default number of businesses taken from one import.
	DefaultImportLimit = 500

	// DefaultSearchLimit is the per-source limit used by a combined search.
	DefaultSearchLimit = 200

	// MaxBusinessSearchLimit is the page size ceiling of the business search API.
	MaxBusinessSearchLimit = 50

	// AutoImportLimit is the number of businesses imported on first run.
	AutoImportLimit = 200

	// SeedBusinessCount is the number of businesses in the default catalog.
	SeedBusinessCount = 3

	// MaxDatasetLineSize is the largest dataset line the scanner accepts.
	MaxDatasetLineSize = 4 * 1024 * 1024

	// DefaultPageSize is the default number of businesses per API page.
	DefaultPageSize = 100

	// MaxPageSize is the maximum number of businesses per API page.
	MaxPageSize = 1000

	// MaxReviewLength caps review text.
	MaxReviewLength = 4096
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for cached API responses.
	CacheTTL = 5 * time.Minute

	// GeocodeCacheTTL is how long a resolved location centroid is reused.
	GeocodeCacheTTL = 1 * time.Hour

	// CacheCleanupInterval is how often to clean expired cache entries.
	CacheCleanupInterval = 10 * time.Minute
)

// Remote endpoints
const (
	// NominatimURL is the geocoding service base URL.
	NominatimURL = "https://nominatim.openstreetmap.org"

	// OverpassURL is the POI query service base URL.
	OverpassURL = "https://overpass-api.de/api"

	// YelpAPIURL is the business search API base URL.
	YelpAPIURL = "https://api.yelp.com/v3"

	// UserAgent identifies locallift to remote services.
	UserAgent = "LocalLift/1.0 (local business catalog)"
)

// Default file names and settings
const (
	// DefaultDataDir is the data directory under the user's home directory.
	DefaultDataDir = ".locallift"

	// DefaultCatalogFile is the catalog file name inside the data directory.
	DefaultCatalogFile = "catalog.json"

	// DefaultCredentialsFile is the credential file name inside the data directory.
	DefaultCredentialsFile = "config.json"

	// DefaultLogFile is the diagnostic log file name inside the data directory.
	DefaultLogFile = "locallift.log"

	// BackupSuffix replaces the ".json" extension of the catalog file for its backup.
	BackupSuffix = "_backup.json"

	// AutoImportCity is the city used by the first-run dataset import.
	AutoImportCity = "Las Vegas"

	// DatasetReviewText attributes the seed review synthesized from a dataset star rating.
	DatasetReviewText = "Imported from Yelp (Yelp average rating)"
)
