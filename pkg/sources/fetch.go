package sources

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/agentstation/locallift/pkg/logging"
)

// Result is what one source contributed to a fetch.
type Result struct {
	Source     ID
	Candidates []Candidate
	Err        error
	Duration   time.Duration
}

// Failed reports whether the source failed. A failed source contributes no candidates.
func (r Result) Failed() bool {
	return r.Err != nil
}

// FetchAll queries every source concurrently and returns one Result per
// source, in the order given. A failing or panicking source yields an
// empty Result with Err set; the other sources are unaffected.
func FetchAll(ctx context.Context, srcs []Source, q Query) []Result {
	results := make([]Result, len(srcs))

	var wg conc.WaitGroup
	for i, src := range srcs {
		wg.Go(func() {
			results[i] = fetchOne(ctx, src, q)
		})
	}
	wg.Wait()

	return results
}

func fetchOne(ctx context.Context, src Source, q Query) Result {
	start := time.Now()
	result := Result{Source: src.ID()}
	logger := logging.FromContext(ctx).With().Str("source", src.ID().String()).Logger()

	var pc panics.Catcher
	pc.Try(func() {
		result.Candidates, result.Err = src.Fetch(ctx, q)
	})
	if r := pc.Recovered(); r != nil {
		result.Err = r.AsError()
	}
	result.Duration = time.Since(start)

	if result.Err != nil {
		result.Candidates = nil
		logger.Warn().Err(result.Err).Dur("duration", result.Duration).Msg("Source fetch failed")
		return result
	}
	logger.Debug().Int("candidates", len(result.Candidates)).Dur("duration", result.Duration).Msg("Source fetch complete")
	return result
}

// Lists returns the candidate lists of results in order, for reconciliation.
func Lists(results []Result) [][]Candidate {
	out := make([][]Candidate, 0, len(results))
	for _, r := range results {
		out = append(out, r.Candidates)
	}
	return out
}
