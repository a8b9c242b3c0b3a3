// Package reconciler merges candidate businesses from several sources into
// a new catalog snapshot.
//
// A merge concatenates the candidate lists in priority order, drops
// duplicates by normalized name and address (first wins), drops chains,
// assigns fresh sequential ids and carries the previous favorite keys
// forward. An empty outcome is reported as errors.ErrNoResults so the
// caller can leave the existing catalog untouched.
package reconciler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/locallift/pkg/catalogs"
	"github.com/agentstation/locallift/pkg/errors"
	"github.com/agentstation/locallift/pkg/normalize"
	"github.com/agentstation/locallift/pkg/sources"
)

// Reconciler merges candidate lists into a catalog snapshot.
type Reconciler interface {
	// Merge reconciles lists, given in priority order, and carries
	// previousFavorites forward. It returns errors.ErrNoResults when nothing
	// survives.
	Merge(ctx context.Context, lists [][]sources.Candidate, previousFavorites []string) (*Result, error)
}

type reconciler struct {
	isChain func(string) bool
	logger  *zerolog.Logger
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{isChain: o.isChain, logger: o.logger}, nil
}

// Merge implements Reconciler.
func (r *reconciler) Merge(ctx context.Context, lists [][]sources.Candidate, previousFavorites []string) (*Result, error) {
	start := time.Now()
	stats := ResultStatistics{Lists: len(lists)}

	merged := concat(lists)
	stats.Candidates = len(merged)

	unique := Dedupe(merged)
	stats.Duplicates = len(merged) - len(unique)

	kept := r.dropChains(unique)
	stats.Chains = len(unique) - len(kept)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(kept) == 0 {
		r.logger.Debug().
			Int("candidates", stats.Candidates).
			Int("duplicates", stats.Duplicates).
			Int("chains", stats.Chains).
			Msg("Merge produced no businesses")
		return nil, errors.ErrNoResults
	}

	businesses := AssignIDs(kept)
	stats.Businesses = len(businesses)

	result := &Result{
		Businesses: businesses,
		Favorites:  append([]string{}, previousFavorites...),
		Metadata: ResultMetadata{
			StartTime: start,
			Duration:  time.Since(start),
			Stats:     stats,
		},
	}

	r.logger.Debug().
		Int("candidates", stats.Candidates).
		Int("duplicates", stats.Duplicates).
		Int("chains", stats.Chains).
		Int("businesses", stats.Businesses).
		Msg("Merged candidates")
	return result, nil
}

func concat(lists [][]sources.Candidate) []sources.Candidate {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	out := make([]sources.Candidate, 0, total)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Dedupe drops candidates whose normalized name and address were already
// seen. The first occurrence wins regardless of source.
func Dedupe(candidates []sources.Candidate) []sources.Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]sources.Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := normalize.StableKey(c.Name, c.Address)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// dropChains removes chain businesses again. Adapters filter too, but the
// merge does not rely on it.
func (r *reconciler) dropChains(candidates []sources.Candidate) []sources.Candidate {
	out := make([]sources.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if r.isChain(c.Name) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// AssignIDs converts candidates into businesses numbered 1..n in order.
// Prior ids are never reused; they carry no meaning across imports.
func AssignIDs(candidates []sources.Candidate) []catalogs.Business {
	out := make([]catalogs.Business, len(candidates))
	for i, c := range candidates {
		out[i] = c.Business(i + 1)
	}
	return out
}
