// Package repository persists participants and formed teams as CSV files.
package repository

import (
	"context"

	"github.com/okian/teamforge/internal/domain/model"
)

// ParticipantHeader is the first row of a participants file.
var ParticipantHeader = []string{ //nolint:gochecknoglobals // file format
	"ID", "Name", "Email", "PreferredGame", "SkillLevel", "PreferredRole", "PersonalityScore", "PersonalityType",
}

// TeamHeader is the first row of a formed-teams file.
var TeamHeader = []string{ //nolint:gochecknoglobals // file format
	"TeamID", "PlayerID", "Name", "Role", "Game", "Skill", "PersonalityType",
}

// ParticipantStore provides read/write access to registered participants.
type ParticipantStore interface {
	// Load returns every participant in file order. A missing file is
	// created with just the header.
	Load(ctx context.Context) ([]model.Person, error)

	// Save replaces the stored participants.
	Save(ctx context.Context, people []model.Person) error

	// Append adds one participant. Returns ErrDuplicateID if the ID exists.
	Append(ctx context.Context, p model.Person) error
}

// TeamWriter persists the result of a formation run.
type TeamWriter interface {
	Save(ctx context.Context, teams []*model.Team) error
}
