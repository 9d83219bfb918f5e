// Package model contains the people and teams passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Role is the gameplay function a person prefers.
type Role int

// Known roles. RoleUnknown is never valid on a Person.
const (
	RoleUnknown Role = iota
	RoleStrategist
	RoleAttacker
	RoleDefender
	RoleSupporter
	RoleCoordinator
)

var roleNames = map[Role]string{
	RoleStrategist:  "STRATEGIST",
	RoleAttacker:    "ATTACKER",
	RoleDefender:    "DEFENDER",
	RoleSupporter:   "SUPPORTER",
	RoleCoordinator: "COORDINATOR",
}

// Roles lists the valid roles in menu order.
func Roles() []Role {
	return []Role{RoleStrategist, RoleAttacker, RoleDefender, RoleSupporter, RoleCoordinator}
}

// String returns the upper-case name used in persisted rows.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for role, n := range roleNames {
		if n == name {
			return role, nil
		}
	}
	return RoleUnknown, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// RoleFromChoice maps a 1-based menu choice to a role.
func RoleFromChoice(choice int) Role {
	roles := Roles()
	if choice < 1 || choice > len(roles) {
		return RoleUnknown
	}
	return roles[choice-1]
}

// Games lists the game labels offered by the registration menu, in menu order.
func Games() []string {
	return []string{"CS:GO", "Valorant", "Chess", "FIFA", "Dota 2"}
}

// GameFromChoice maps a 1-based menu choice to a game label.
func GameFromChoice(choice int) (string, bool) {
	games := Games()
	if choice < 1 || choice > len(games) {
		return "", false
	}
	return games[choice-1], true
}

// Category is the personality classification derived from the survey score.
type Category int

// Known categories.
const (
	CategoryUnknown Category = iota
	CategoryLeader
	CategoryThinker
	CategoryBalanced
)

var categoryNames = map[Category]string{
	CategoryLeader:   "LEADER",
	CategoryThinker:  "THINKER",
	CategoryBalanced: "BALANCED",
}

// Categories lists the valid categories.
func Categories() []Category {
	return []Category{CategoryLeader, CategoryThinker, CategoryBalanced}
}

// String returns the upper-case name used in persisted rows.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether c is Leader, Thinker or Balanced.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory parses a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Person is one participant. The formation engine only moves Person values
// between collections and never changes their fields.
type Person struct {
	ID       string
	Name     string
	Email    string
	Game     string
	Skill    int
	Role     Role
	Category Category
	Score    int
}

// String is a short human-readable form used in logs.
func (p Person) String() string {
	return fmt.Sprintf("%s(%s %s %s skill=%d)", p.ID, p.Category, p.Role, p.Game, p.Skill)
}
