package service

import (
	"fmt"

	"github.com/okian/teamforge/internal/domain/formation"
	"github.com/okian/teamforge/internal/domain/model"
)

// Result is the outcome of one formation run.
type Result struct {
	RunID string
	// Teams are ordered by ID. IDs are submission indices, so gaps mark
	// discarded attempts.
	Teams []*model.Team
	// Possible is the leader pool size, the upper bound on Teams.
	Possible int
	// Abandoned counts tasks that missed the wait deadline.
	Abandoned int
	Balance   formation.BalanceReport
	// Unassigned holds people left in the pools. It is empty when tasks
	// were abandoned, since those may still be running.
	Unassigned []model.Person
	// Discarded holds people claimed by failed tasks and dropped.
	Discarded []model.Person
}

// Formed returns the number of teams produced.
func (r *Result) Formed() int { return len(r.Teams) }

// Summary returns the "teams formed: K of N possible" line.
func (r *Result) Summary() string {
	return fmt.Sprintf("Teams formed: %d of %d possible", r.Formed(), r.Possible)
}
