package console

import (
	"context"

	service "github.com/okian/teamforge/internal/app"
	"github.com/okian/teamforge/pkg/logger"
)

// Option applies a configuration option to the Menu.
type Option func(*Menu)

// WithTeamSize sets the size offered when the user leaves it blank.
func WithTeamSize(n int) Option {
	return func(m *Menu) {
		if n > 0 {
			m.teamSize = n
		}
	}
}

// WithIDGenerator replaces the generator used for blank IDs.
func WithIDGenerator(fn func() string) Option {
	return func(m *Menu) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// WithOnFormed registers a callback run after every successful formation.
func WithOnFormed(fn func(ctx context.Context, res *service.Result) error) Option {
	return func(m *Menu) {
		m.onFormed = fn
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(m *Menu) {
		if l != nil {
			m.logger = l
		}
	}
}
