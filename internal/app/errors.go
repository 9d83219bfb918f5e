package service

import (
	"errors"

	"github.com/okian/teamforge/internal/domain/formation"
)

// Run input errors.
var (
	ErrNoPeople        = errors.New("no people to form teams from")
	ErrInvalidTeamSize = formation.ErrInvalidTeamSize
)
