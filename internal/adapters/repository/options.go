package repository

import "github.com/okian/teamforge/pkg/logger"

// Option applies a configuration option to the CSV stores.
type Option func(*csvOptions)

type csvOptions struct {
	logger          logger.Logger
	caseInsensitive bool
}

func defaultOptions() csvOptions {
	return csvOptions{logger: logger.Get().Named("repository")}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(o *csvOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCaseInsensitiveIDs treats participant IDs that differ only in case as
// the same ID.
func WithCaseInsensitiveIDs() Option {
	return func(o *csvOptions) {
		o.caseInsensitive = true
	}
}
