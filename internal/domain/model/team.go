package model

import "fmt"

// CategoryCounts is the per-category member breakdown of a team.
type CategoryCounts struct {
	Leaders  int
	Thinkers int
	Balanced int
}

// Team is a numbered group of people. Member order carries no meaning.
// Derived attributes are recomputed on every call.
type Team struct {
	ID      int
	Members []Person
}

// NewTeam creates a team owning a copy of members.
func NewTeam(id int, members ...Person) *Team {
	return &Team{ID: id, Members: append([]Person(nil), members...)}
}

// Size returns the number of members.
func (t *Team) Size() int { return len(t.Members) }

// AverageSkill returns the mean member skill, 0 for an empty team.
func (t *Team) AverageSkill() float64 { return AverageSkill(t.Members) }

// UniqueRoleCount returns the number of distinct roles present.
func (t *Team) UniqueRoleCount() int { return UniqueRoleCount(t.Members) }

// CategoryCounts returns the per-category member counts.
func (t *Team) CategoryCounts() CategoryCounts { return CountCategories(t.Members) }

// Summary formats the team stats for console output.
func (t *Team) Summary() string {
	c := t.CategoryCounts()
	return fmt.Sprintf("Team %d → Avg Skill: %.1f | Roles: %d | Personality: %dL/%dB/%dT",
		t.ID, t.AverageSkill(), t.UniqueRoleCount(), c.Leaders, c.Balanced, c.Thinkers)
}

// AverageSkill returns the mean skill of members, 0 when empty.
func AverageSkill(members []Person) float64 {
	if len(members) == 0 {
		return 0
	}
	total := 0
	for _, m := range members {
		total += m.Skill
	}
	return float64(total) / float64(len(members))
}

// UniqueRoleCount counts distinct roles among members.
func UniqueRoleCount(members []Person) int {
	seen := make(map[Role]struct{}, len(members))
	for _, m := range members {
		seen[m.Role] = struct{}{}
	}
	return len(seen)
}

// CountCategories tallies members per category.
func CountCategories(members []Person) CategoryCounts {
	var c CategoryCounts
	for _, m := range members {
		switch m.Category {
		case CategoryLeader:
			c.Leaders++
		case CategoryThinker:
			c.Thinkers++
		case CategoryBalanced:
			c.Balanced++
		}
	}
	return c
}

// CountGame returns how many members prefer game.
func CountGame(members []Person, game string) int {
	n := 0
	for _, m := range members {
		if m.Game == game {
			n++
		}
	}
	return n
}
