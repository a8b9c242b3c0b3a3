package reconciler

import (
	"time"

	"github.com/agentstation/locallift/pkg/catalogs"
)

// Result is a new catalog snapshot produced by a merge.
type Result struct {
	Businesses []catalogs.Business
	Favorites  []string
	Metadata   ResultMetadata
}

// ResultMetadata describes how a merge went.
type ResultMetadata struct {
	StartTime time.Time
	Duration  time.Duration
	Stats     ResultStatistics
}

// ResultStatistics counts what each merge step kept and dropped.
type ResultStatistics struct {
	Lists      int
	Candidates int
	Duplicates int
	Chains     int
	Businesses int
}

// Catalog returns the result as a catalog.
func (r *Result) Catalog() *catalogs.Catalog {
	return catalogs.New(r.Businesses, r.Favorites)
}
