package formation

import "errors"

// Composition rule violations.
var (
	ErrWrongSize       = errors.New("team size mismatch")
	ErrLeaderCount     = errors.New("team needs exactly one leader")
	ErrThinkerCount    = errors.New("team needs one or two thinkers")
	ErrGameCap         = errors.New("too many members share a game")
	ErrRoleDiversity   = errors.New("too few distinct roles")
	ErrNoLeader        = errors.New("no compatible leader available")
	ErrNoThinker       = errors.New("no compatible thinker available")
	ErrInvalidTeamSize = errors.New("team size must be positive")
)

// FailureReason maps an assembly error to a short label for metrics and logs.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoLeader):
		return "no_leader"
	case errors.Is(err, ErrNoThinker):
		return "no_thinker"
	case errors.Is(err, ErrWrongSize):
		return "wrong_size"
	case errors.Is(err, ErrLeaderCount):
		return "leader_count"
	case errors.Is(err, ErrThinkerCount):
		return "thinker_count"
	case errors.Is(err, ErrGameCap):
		return "game_cap"
	case errors.Is(err, ErrRoleDiversity):
		return "role_diversity"
	default:
		return "other"
	}
}
