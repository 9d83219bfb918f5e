package formation

import (
	"github.com/okian/teamforge/internal/domain/model"
)

// Balancer defaults.
const (
	DefaultMaxIterations = 500
	DefaultTolerance     = 1.0
)

// StopReason explains why a balancing pass ended.
type StopReason string

// Stop reasons. None of them is an error.
const (
	StopConverged        StopReason = "converged"
	StopNoSwap           StopReason = "no_improving_swap"
	StopIterationCeiling StopReason = "iteration_ceiling"
	StopTooFewTeams      StopReason = "too_few_teams"
)

// BalanceReport summarizes one balancing pass.
type BalanceReport struct {
	Iterations    int
	Swaps         int
	InitialSpread float64
	FinalSpread   float64
	Reason        StopReason
}

// BalanceOption configures a Balancer.
type BalanceOption func(*Balancer)

// WithMaxIterations caps the number of iterations. Non-positive values are ignored.
func WithMaxIterations(n int) BalanceOption {
	return func(b *Balancer) {
		if n > 0 {
			b.maxIterations = n
		}
	}
}

// WithTolerance sets the spread under which teams count as balanced.
func WithTolerance(tol float64) BalanceOption {
	return func(b *Balancer) {
		if tol > 0 {
			b.tolerance = tol
		}
	}
}

// WithSwapHook registers a callback run after every applied swap.
func WithSwapHook(fn func(strong, weak *model.Team, out, in model.Person)) BalanceOption {
	return func(b *Balancer) {
		b.onSwap = fn
	}
}

// Balancer narrows the average-skill spread between teams by swapping
// same-category members between the weakest and the strongest team.
type Balancer struct {
	maxIterations int
	tolerance     float64
	onSwap        func(strong, weak *model.Team, out, in model.Person)
}

// NewBalancer creates a Balancer with the default ceiling and tolerance.
func NewBalancer(opts ...BalanceOption) *Balancer {
	b := &Balancer{
		maxIterations: DefaultMaxIterations,
		tolerance:     DefaultTolerance,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Balance rebalances teams in place and reports what it did. It never adds,
// removes or resizes teams, and every swap keeps both teams valid.
func (b *Balancer) Balance(teams []*model.Team) BalanceReport {
	report := BalanceReport{}
	if len(teams) < 2 {
		report.Reason = StopTooFewTeams
		return report
	}

	report.InitialSpread = Spread(teams)
	report.Reason = StopIterationCeiling

	for report.Iterations < b.maxIterations {
		report.Iterations++

		weak, strong := extremes(teams)
		gap := strong.AverageSkill() - weak.AverageSkill()
		if gap < b.tolerance {
			report.Reason = StopConverged
			break
		}

		si, wi, ok := findSwap(strong, weak, gap)
		if !ok {
			report.Reason = StopNoSwap
			break
		}

		out, in := strong.Members[si], weak.Members[wi]
		strong.Members[si], weak.Members[wi] = in, out
		report.Swaps++
		if b.onSwap != nil {
			b.onSwap(strong, weak, out, in)
		}
	}

	report.FinalSpread = Spread(teams)
	return report
}

// Spread returns the gap between the highest and lowest team average.
func Spread(teams []*model.Team) float64 {
	if len(teams) == 0 {
		return 0
	}
	weak, strong := extremes(teams)
	return strong.AverageSkill() - weak.AverageSkill()
}

// extremes returns the first weakest and first strongest team in scan order.
func extremes(teams []*model.Team) (weak, strong *model.Team) {
	weak, strong = teams[0], teams[0]
	weakAvg, strongAvg := weak.AverageSkill(), strong.AverageSkill()
	for _, t := range teams[1:] {
		avg := t.AverageSkill()
		if avg < weakAvg {
			weak, weakAvg = t, avg
		}
		if avg > strongAvg {
			strong, strongAvg = t, avg
		}
	}
	return weak, strong
}

// findSwap returns the first strong/weak member pair of the same category
// whose exchange narrows the gap between the two teams and leaves both valid.
//
// Both teams have the same size, so moving d skill points changes the gap
// by 2d/size; the swap narrows it only while d < gap*size.
func findSwap(strong, weak *model.Team, gap float64) (int, int, bool) {
	limit := gap * float64(len(strong.Members))
	for si, s := range strong.Members {
		for wi, w := range weak.Members {
			if s.Category != w.Category || s.Skill <= w.Skill {
				continue
			}
			if float64(s.Skill-w.Skill) >= limit {
				continue
			}
			if swapKeepsValid(strong, weak, si, wi) {
				return si, wi, true
			}
		}
	}
	return 0, 0, false
}

// swapKeepsValid evaluates both teams on the hypothetical post-swap membership.
func swapKeepsValid(strong, weak *model.Team, si, wi int) bool {
	nextStrong := append([]model.Person(nil), strong.Members...)
	nextWeak := append([]model.Person(nil), weak.Members...)
	nextStrong[si], nextWeak[wi] = weak.Members[wi], strong.Members[si]

	return Validate(nextStrong, len(strong.Members)) == nil &&
		Validate(nextWeak, len(weak.Members)) == nil
}
