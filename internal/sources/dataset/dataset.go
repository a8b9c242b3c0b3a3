// Package dataset reads business candidates from a line-delimited JSON
// dataset file, one business object per line.
package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/locallift/pkg/constants"
	"github.com/agentstation/locallift/pkg/errors"
	"github.com/agentstation/locallift/pkg/logging"
	"github.com/agentstation/locallift/pkg/normalize"
	"github.com/agentstation/locallift/pkg/sources"
)

// ctxCheckInterval is how many lines are scanned between cancellation checks.
const ctxCheckInterval = 1024

// Source reads candidates from a dataset file.
type Source struct {
	path    string
	fs      afero.Fs
	now     func() time.Time
	isChain func(string) bool
	logger  *zerolog.Logger
}

// Option configures a dataset source.
type Option func(*Source)

// WithFs sets the filesystem the dataset is read from.
func WithFs(fs afero.Fs) Option {
	return func(s *Source) {
		if fs != nil {
			s.fs = fs
		}
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

// WithChainFilter replaces the chain detection.
func WithChainFilter(isChain func(string) bool) Option {
	return func(s *Source) {
		if isChain != nil {
			s.isChain = isChain
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

// New creates a dataset source reading path.
func New(path string, opts ...Option) *Source {
	s := &Source{
		path:    path,
		fs:      afero.NewOsFs(),
		now:     time.Now,
		isChain: normalize.IsBigChain,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the source id.
func (s *Source) ID() sources.ID {
	return sources.DatasetID
}

// Path returns the dataset file path.
func (s *Source) Path() string {
	return s.path
}

// Fetch returns the candidates matching q.City, q.Category and q.Limit.
//
// Records are filtered in this order: malformed lines are skipped, then
// chains, then records whose city does not contain q.City, then records
// with no category token containing q.Category. Reading stops once
// q.Limit candidates were collected; a limit of zero or less reads the
// whole file.
func (s *Source) Fetch(ctx context.Context, q sources.Query) ([]sources.Candidate, error) {
	city := normalize.Fold(q.City)
	category := normalize.Fold(q.Category)
	now := s.now()

	var (
		out       []sources.Candidate
		malformed int
		chains    int
	)
	err := s.scan(ctx, func(r *record) bool {
		if r == nil {
			malformed++
			return true
		}
		if s.isChain(r.Name) {
			chains++
			return true
		}
		if city != "" && !strings.Contains(normalize.Fold(r.City), city) {
			return true
		}
		if category != "" && !r.matchesCategory(category) {
			return true
		}
		out = append(out, r.candidate(now))
		return q.Limit <= 0 || len(out) < q.Limit
	})

	s.logger.Debug().
		Str("path", s.path).
		Str("city", q.City).
		Str("category", q.Category).
		Int("candidates", len(out)).
		Int("malformed", malformed).
		Int("chains", chains).
		Msg("Dataset scan complete")

	return out, err
}

// Categories returns the sorted, unique category tokens found in the dataset.
func (s *Source) Categories(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	err := s.scan(ctx, func(r *record) bool {
		if r == nil {
			return true
		}
		for _, token := range r.categoryTokens() {
			seen[token] = struct{}{}
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// scan calls fn with every decoded line, or with nil for a malformed one,
// until fn returns false or the file ends.
func (s *Source) scan(ctx context.Context, fn func(*record) bool) error {
	if s.path == "" {
		return &errors.ValidationError{Field: "dataset_file", Message: "no dataset file configured"}
	}

	f, err := s.fs.Open(s.path)
	if err != nil {
		return errors.WrapIO("open", s.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), constants.MaxDatasetLineSize)

	line := 0
	for scanner.Scan() {
		line++
		if line%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}

		var r record
		if err := json.Unmarshal(text, &r); err != nil || !r.valid() {
			if !fn(nil) {
				return nil
			}
			continue
		}
		if !fn(&r) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return &errors.ParseError{Format: "jsonl", File: s.path, Line: line + 1, Message: "read failed", Err: err}
	}
	return nil
}
