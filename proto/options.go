package proto

import (
	"github.com/rs/zerolog"
)

// Option configures how a strategy is compiled.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

func collectOptions(opts ...Option) *options {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithLogger sets the logger used by the strategy and every object created
// from it. By default nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
