package trie

import "github.com/rs/zerolog"

// Option configures a Trie
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

func defaultOptions() options {
	return options{
		logger: zerolog.Nop(),
	}
}

// WithLogger sets the logger used for structural events such as pruning
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
