package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/pkg/logger"
)

// SummaryMarker fills the PlayerID column of a team summary row.
const SummaryMarker = "SUMMARY"

// CSVTeamWriter implements TeamWriter on a single CSV file.
type CSVTeamWriter struct {
	path string
	opts csvOptions
}

var _ TeamWriter = (*CSVTeamWriter)(nil)

// NewCSVTeamWriter creates a writer targeting path.
func NewCSVTeamWriter(path string, opts ...Option) *CSVTeamWriter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &CSVTeamWriter{path: path, opts: o}
}

// Path returns the target file.
func (w *CSVTeamWriter) Path() string { return w.path }

// Save replaces the file with one row per member, then one summary row and a
// blank separator line per team.
func (w *CSVTeamWriter) Save(ctx context.Context, teams []*model.Team) error {
	rows := [][]string{TeamHeader}
	for _, t := range teams {
		label := "Team " + strconv.Itoa(t.ID)
		for _, p := range t.Members {
			rows = append(rows, []string{
				label,
				p.ID,
				p.Name,
				p.Role.String(),
				p.Game,
				strconv.Itoa(p.Skill),
				p.Category.String(),
			})
		}
		c := t.CategoryCounts()
		rows = append(rows,
			[]string{
				label,
				SummaryMarker,
				fmt.Sprintf("avg=%.1f", t.AverageSkill()),
				fmt.Sprintf("roles=%d", t.UniqueRoleCount()),
				fmt.Sprintf("%dL/%dB/%dT", c.Leaders, c.Balanced, c.Thinkers),
			},
			[]string{},
		)
	}

	if err := writeCSV(w.path, rows); err != nil {
		return err
	}
	w.opts.logger.Info(ctx, "teams saved",
		logger.String("path", w.path),
		logger.Int("teams", len(teams)),
	)
	return nil
}
