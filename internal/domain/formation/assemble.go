package formation

import (
	"github.com/okian/teamforge/internal/domain/model"
)

// AssembleOption configures one assembly task.
type AssembleOption func(*assembleConfig)

type assembleConfig struct {
	returnUnclaimed bool
}

// WithReturnUnclaimed hands people claimed by a failed task back to their
// pools. Without it they are dropped, which matches the historical behavior.
func WithReturnUnclaimed(enabled bool) AssembleOption {
	return func(c *assembleConfig) {
		c.returnUnclaimed = enabled
	}
}

// Outcome describes a finished assembly task. Team is nil when the task
// failed; Err then holds the reason and Claimed the people it had taken.
type Outcome struct {
	Team     *model.Team
	Err      error
	Claimed  []model.Person
	Returned bool
}

// OK reports whether a valid team was produced.
func (o Outcome) OK() bool { return o.Team != nil }

// AssembleTeam tries to build one valid team of the given size from pools.
//
// It claims one compatible leader, then one or two compatible thinkers
// (decided by a coin flip on rng), then fills the remaining seats from the
// balanced pool. A failed attempt is reported through Outcome.Err and never
// retried; the caller is expected to discard it.
func AssembleTeam(id int, pools *Pools, size int, rng *Rand, opts ...AssembleOption) Outcome {
	var cfg assembleConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if size < 1 {
		return Outcome{Err: ErrInvalidTeamSize}
	}

	members := make([]model.Person, 0, size)

	leader, ok := pools.Leaders.ClaimCompatible(members)
	if !ok {
		return Outcome{Err: ErrNoLeader}
	}
	members = append(members, leader)

	if pools.Thinkers.Len() == 0 {
		return fail(pools, members, ErrNoThinker, cfg)
	}
	target := MinThinkers + rng.Intn(MaxThinkers-MinThinkers+1)
	thinkers := 0
	for thinkers < target && len(members) < size {
		p, ok := pools.Thinkers.ClaimCompatible(members)
		if !ok {
			break
		}
		members = append(members, p)
		thinkers++
	}
	if thinkers == 0 {
		return fail(pools, members, ErrNoThinker, cfg)
	}

	// A short fill is allowed here; Validate rejects it below.
	for len(members) < size {
		p, ok := pools.Balanced.ClaimCompatible(members)
		if !ok {
			break
		}
		members = append(members, p)
	}

	if err := Validate(members, size); err != nil {
		return fail(pools, members, err, cfg)
	}
	return Outcome{Team: model.NewTeam(id, members...)}
}

func fail(pools *Pools, claimed []model.Person, err error, cfg assembleConfig) Outcome {
	out := Outcome{Err: err, Claimed: claimed}
	if cfg.returnUnclaimed {
		for _, p := range claimed {
			if pool := pools.For(p.Category); pool != nil {
				pool.Return(p)
			}
		}
		out.Returned = true
	}
	return out
}
