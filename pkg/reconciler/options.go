package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/locallift/pkg/errors"
	"github.com/agentstation/locallift/pkg/logging"
	"github.com/agentstation/locallift/pkg/normalize"
)

type options struct {
	isChain func(name string) bool
	logger  *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		isChain: normalize.IsBigChain,
		logger:  logging.Default(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithChainFilter replaces the chain detection used in the filter step.
func WithChainFilter(isChain func(name string) bool) Option {
	return func(o *options) error {
		if isChain == nil {
			return &errors.ValidationError{Field: "chain_filter", Message: "cannot be nil"}
		}
		o.isChain = isChain
		return nil
	}
}

// WithLogger sets the logger used for merge diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		o.logger = logger
		return nil
	}
}
