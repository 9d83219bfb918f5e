package formation

import (
	"fmt"

	"github.com/okian/teamforge/internal/domain/model"
)

// Composition limits.
const (
	GameCap        = 2
	MinThinkers    = 1
	MaxThinkers    = 2
	MinUniqueRoles = 3
	leadersPerTeam = 1
)

// Compatible reports whether candidate can join members without breaking the
// game cap.
func Compatible(members []model.Person, candidate model.Person) bool {
	return model.CountGame(members, candidate.Game) < GameCap
}

// Validate returns the first composition rule that members violate for a
// team of the given size, or nil.
func Validate(members []model.Person, size int) error {
	if len(members) != size {
		return fmt.Errorf("%w: have %d, want %d", ErrWrongSize, len(members), size)
	}

	counts := model.CountCategories(members)
	if counts.Leaders != leadersPerTeam {
		return fmt.Errorf("%w: have %d", ErrLeaderCount, counts.Leaders)
	}
	if counts.Thinkers < MinThinkers || counts.Thinkers > MaxThinkers {
		return fmt.Errorf("%w: have %d", ErrThinkerCount, counts.Thinkers)
	}

	games := make(map[string]int, len(members))
	for _, m := range members {
		games[m.Game]++
		if games[m.Game] > GameCap {
			return fmt.Errorf("%w: %q", ErrGameCap, m.Game)
		}
	}

	if roles := model.UniqueRoleCount(members); roles < MinUniqueRoles {
		return fmt.Errorf("%w: have %d", ErrRoleDiversity, roles)
	}
	return nil
}

// ValidateTeam validates the members of t for a team of the given size.
func ValidateTeam(t *model.Team, size int) error {
	return Validate(t.Members, size)
}
