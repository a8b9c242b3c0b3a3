package locallift

import (
	"context"
	"strings"
	"time"

	"github.com/agentstation/locallift/pkg/constants"
	"github.com/agentstation/locallift/pkg/errors"
	"github.com/agentstation/locallift/pkg/logging"
	"github.com/agentstation/locallift/pkg/normalize"
	"github.com/agentstation/locallift/pkg/reconciler"
	"github.com/agentstation/locallift/pkg/sources"
	"github.com/agentstation/locallift/pkg/store"
)

// Compile-time interface check to ensure proper implementation.
var _ Importer = (*client)(nil)

// Importer replaces the catalog with businesses from external sources.
//
// Every import is all-or-nothing: when no business survives
// reconciliation the catalog is left untouched and errors.ErrNoResults is
// returned together with the per-source report. Favorites are carried
// forward by stable key.
type Importer interface {
	// Search queries every configured source concurrently and merges them
	// in priority order: dataset, business search API, POI query.
	Search(ctx context.Context, req SearchRequest) (*ImportResult, error)

	// ImportDataset replaces the catalog with dataset businesses.
	ImportDataset(ctx context.Context, req DatasetImport) (*ImportResult, error)

	// ImportOSM replaces the catalog with POI query businesses.
	ImportOSM(ctx context.Context, req OSMImport) (*ImportResult, error)

	// DatasetCategories lists the categories found in the dataset.
	DatasetCategories(ctx context.Context) ([]string, error)

	// Bootstrap imports the auto-import city from the dataset while the
	// catalog still holds only the seed businesses. It returns nil when
	// nothing had to be done.
	Bootstrap(ctx context.Context) (*ImportResult, error)

	// Sources returns the configured source ids in priority order.
	Sources() []sources.ID
}

// SearchRequest describes a combined search.
type SearchRequest struct {
	// Location is required: a city or area name.
	Location string `json:"location"`

	// Category filters dataset categories and API results. It also picks
	// the POI tags when Tags is empty.
	Category string `json:"category,omitempty"`

	// Tags is a pipe-delimited POI tag alternation, e.g. "cafe|bakery".
	Tags string `json:"tags,omitempty"`

	// Limit caps each source. Zero uses the default; negative means no limit.
	Limit int `json:"limit,omitempty"`
}

// DatasetImport describes a dataset import.
type DatasetImport struct {
	City     string `json:"city,omitempty"`
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// OSMImport describes a POI query import.
type OSMImport struct {
	Location string `json:"location"`
	Tags     string `json:"tags,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// SourceReport is what one source contributed to an import.
type SourceReport struct {
	Source     sources.ID    `json:"source" yaml:"source"`
	Candidates int           `json:"candidates" yaml:"candidates"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// ImportResult reports an import.
type ImportResult struct {
	Sources    []SourceReport `json:"sources" yaml:"sources"`
	Candidates int            `json:"candidates" yaml:"candidates"`
	Duplicates int            `json:"duplicates" yaml:"duplicates"`
	Chains     int            `json:"chains" yaml:"chains"`
	Businesses int            `json:"businesses" yaml:"businesses"`
	Favorites  int            `json:"favorites" yaml:"favorites"`

	// Replaced is false when the catalog was left untouched.
	Replaced bool `json:"replaced" yaml:"replaced"`
}

// Search queries every configured source concurrently and merges them.
func (c *client) Search(ctx context.Context, req SearchRequest) (*ImportResult, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, &errors.ValidationError{Field: "location", Message: "cannot be empty"}
	}
	tags := strings.TrimSpace(req.Tags)
	if tags == "" {
		tags = normalize.CategoryTags(req.Category)
	}

	q := sources.Query{
		Location: location,
		City:     location,
		Category: strings.TrimSpace(req.Category),
		Tags:     tags,
		Limit:    limit(req.Limit, constants.DefaultSearchLimit),
	}
	return c.run(ctx, "search", c.sources.List(), q)
}

// ImportDataset replaces the catalog with dataset businesses.
func (c *client) ImportDataset(ctx context.Context, req DatasetImport) (*ImportResult, error) {
	if c.dataset == nil {
		return nil, &errors.ConfigError{Component: "dataset", Message: "no dataset file configured"}
	}
	q := sources.Query{
		City:     strings.TrimSpace(req.City),
		Category: strings.TrimSpace(req.Category),
		Limit:    limit(req.Limit, constants.DefaultImportLimit),
	}
	return c.run(ctx, "import_dataset", []sources.Source{c.dataset}, q)
}

// ImportOSM replaces the catalog with POI query businesses.
func (c *client) ImportOSM(ctx context.Context, req OSMImport) (*ImportResult, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, &errors.ValidationError{Field: "location", Message: "cannot be empty"}
	}
	src, ok := c.sources.Get(sources.OSMID)
	if !ok {
		return nil, &errors.ConfigError{Component: "osm", Message: "POI source not configured"}
	}
	q := sources.Query{
		Location: location,
		Tags:     req.Tags,
		Limit:    limit(req.Limit, constants.DefaultImportLimit),
	}
	return c.run(ctx, "import_osm", []sources.Source{src}, q)
}

// DatasetCategories lists the categories found in the dataset.
func (c *client) DatasetCategories(ctx context.Context) ([]string, error) {
	if c.dataset == nil {
		return nil, &errors.ConfigError{Component: "dataset", Message: "no dataset file configured"}
	}
	return c.dataset.Categories(ctx)
}

// Bootstrap runs the first-run dataset import.
func (c *client) Bootstrap(ctx context.Context) (*ImportResult, error) {
	if c.dataset == nil || c.options.autoImportCity == "" {
		return nil, nil
	}

	c.mu.RLock()
	needed := c.catalog.IsDefault() && c.loaded.Status != store.StatusUnreadable
	c.mu.RUnlock()
	if !needed {
		return nil, nil
	}

	c.logger.Info().
		Str("city", c.options.autoImportCity).
		Int("limit", c.options.autoImportLimit).
		Msg("Importing initial businesses")
	return c.ImportDataset(ctx, DatasetImport{City: c.options.autoImportCity, Limit: c.options.autoImportLimit})
}

// Sources returns the configured source ids in priority order.
func (c *client) Sources() []sources.ID {
	return c.sources.IDs()
}

// run fetches from srcs, reconciles and, when anything survived, replaces
// and saves the catalog.
func (c *client) run(ctx context.Context, op string, srcs []sources.Source, q sources.Query) (*ImportResult, error) {
	ctx = logging.WithLogger(ctx, c.logger)
	ctx = logging.WithOperation(ctx, op)
	logger := logging.FromContext(ctx)

	fetched := sources.FetchAll(ctx, srcs, q)
	result := &ImportResult{Sources: make([]SourceReport, 0, len(fetched))}
	for _, f := range fetched {
		report := SourceReport{Source: f.Source, Candidates: len(f.Candidates), Duration: f.Duration}
		if f.Err != nil {
			report.Error = f.Err.Error()
		}
		result.Sources = append(result.Sources, report)
		result.Candidates += len(f.Candidates)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	c.mu.Lock()
	if err := c.writableLocked(); err != nil {
		c.mu.Unlock()
		return result, err
	}
	previous := c.catalog
	merged, err := c.reconciler.Merge(ctx, sources.Lists(fetched), previous.Favorites)
	if err != nil {
		c.mu.Unlock()
		if errors.IsNoResults(err) {
			logger.Info().Int("candidates", result.Candidates).Msg("Import found no businesses; catalog unchanged")
		}
		return result, err
	}

	next := merged.Catalog()
	c.catalog = next
	saveErr := c.saveLocked()
	old, replaced := previous.Clone(), next.Clone()
	c.mu.Unlock()

	fill(result, merged)
	logger.Info().
		Int("candidates", result.Candidates).
		Int("duplicates", result.Duplicates).
		Int("chains", result.Chains).
		Int("businesses", result.Businesses).
		Int("favorites", result.Favorites).
		Msg("Catalog replaced")

	c.hooks.catalogReplaced(old, replaced)
	return result, saveErr
}

func fill(result *ImportResult, merged *reconciler.Result) {
	stats := merged.Metadata.Stats
	result.Duplicates = stats.Duplicates
	result.Chains = stats.Chains
	result.Businesses = stats.Businesses
	result.Replaced = true

	cat := merged.Catalog()
	result.Favorites = len(cat.FavoriteBusinesses())
}

// limit applies the default for zero and maps negative values to no limit.
func limit(n, def int) int {
	switch {
	case n == 0:
		return def
	case n < 0:
		return 0
	}
	return n
}
