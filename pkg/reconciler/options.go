package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/inetmap/pkg/constants"
)

// options configures a reconciler.
type options struct {
	threshold int
	logger    *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		threshold: constants.DefaultYearThreshold,
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

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithThreshold sets the minimum year eligible for selection.
func WithThreshold(year int) Option {
	return func(o *options) error {
		o.threshold = year
		return nil
	}
}

// WithLogger sets the logger. The context logger is used otherwise.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
