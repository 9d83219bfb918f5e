package generator

import "github.com/okian/teamforge/pkg/logger"

// Mix holds relative weights of the three personality archetypes.
type Mix struct {
	Leaders  int
	Thinkers int
	Balanced int
}

// DefaultMix yields roughly one leader per five people, enough thinkers for
// one or two per team and balanced people for the rest.
var DefaultMix = Mix{Leaders: 20, Thinkers: 30, Balanced: 50} //nolint:gochecknoglobals // default value

func (m Mix) total() int { return m.Leaders + m.Thinkers + m.Balanced }

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithMix sets the archetype weights. Negative weights or an all-zero mix
// are ignored.
func WithMix(m Mix) Option {
	return func(g *Generator) {
		if m.Leaders >= 0 && m.Thinkers >= 0 && m.Balanced >= 0 && m.total() > 0 {
			g.mix = m
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}
