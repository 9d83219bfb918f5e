package model_test

import (
	"errors"
	"testing"

	model "github.com/okian/teamforge/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRole(t *testing.T) {
	convey.Convey("Given role names", t, func() {
		convey.Convey("When parsing known names in any case", func() {
			r, err := model.ParseRole(" defender ")

			convey.Convey("Then the role is recognized", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(r, convey.ShouldEqual, model.RoleDefender)
				convey.So(r.String(), convey.ShouldEqual, "DEFENDER")
				convey.So(r.Valid(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When parsing an unknown name", func() {
			_, err := model.ParseRole("goalkeeper")

			convey.Convey("Then ErrUnknownRole is returned", func() {
				convey.So(errors.Is(err, model.ErrUnknownRole), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When mapping menu choices", func() {
			convey.So(model.RoleFromChoice(1), convey.ShouldEqual, model.RoleStrategist)
			convey.So(model.RoleFromChoice(5), convey.ShouldEqual, model.RoleCoordinator)
			convey.So(model.RoleFromChoice(0), convey.ShouldEqual, model.RoleUnknown)
			convey.So(model.RoleFromChoice(6).Valid(), convey.ShouldBeFalse)
		})
	})
}

func TestGames(t *testing.T) {
	convey.Convey("Given the game menu", t, func() {
		convey.So(model.Games(), convey.ShouldHaveLength, 5)

		g, ok := model.GameFromChoice(1)
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(g, convey.ShouldEqual, "CS:GO")

		g, ok = model.GameFromChoice(5)
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(g, convey.ShouldEqual, "Dota 2")

		_, ok = model.GameFromChoice(6)
		convey.So(ok, convey.ShouldBeFalse)
	})
}

func TestCategory(t *testing.T) {
	convey.Convey("Given category names", t, func() {
		c, err := model.ParseCategory("Leader")
		convey.So(err, convey.ShouldBeNil)
		convey.So(c, convey.ShouldEqual, model.CategoryLeader)

		_, err = model.ParseCategory("introvert")
		convey.So(errors.Is(err, model.ErrUnknownCategory), convey.ShouldBeTrue)
		convey.So(model.CategoryUnknown.Valid(), convey.ShouldBeFalse)
		convey.So(len(model.Categories()), convey.ShouldEqual, 3)
	})
}

func TestTeam(t *testing.T) {
	convey.Convey("Given a team of four", t, func() {
		team := model.NewTeam(2,
			model.Person{ID: "a", Skill: 8, Role: model.RoleAttacker, Category: model.CategoryLeader, Game: "Chess"},
			model.Person{ID: "b", Skill: 4, Role: model.RoleDefender, Category: model.CategoryThinker, Game: "Chess"},
			model.Person{ID: "c", Skill: 6, Role: model.RoleDefender, Category: model.CategoryBalanced, Game: "FIFA"},
			model.Person{ID: "d", Skill: 2, Role: model.RoleSupporter, Category: model.CategoryBalanced, Game: "Valorant"},
		)

		convey.Convey("Then derived attributes are computed from members", func() {
			convey.So(team.Size(), convey.ShouldEqual, 4)
			convey.So(team.AverageSkill(), convey.ShouldEqual, 5.0)
			convey.So(team.UniqueRoleCount(), convey.ShouldEqual, 3)
			convey.So(team.CategoryCounts(), convey.ShouldResemble, model.CategoryCounts{Leaders: 1, Thinkers: 1, Balanced: 2})
			convey.So(model.CountGame(team.Members, "Chess"), convey.ShouldEqual, 2)
			convey.So(team.Summary(), convey.ShouldEqual, "Team 2 → Avg Skill: 5.0 | Roles: 3 | Personality: 1L/2B/1T")
		})

		convey.Convey("When a member is swapped out", func() {
			team.Members[3] = model.Person{ID: "e", Skill: 10, Role: model.RoleCoordinator, Category: model.CategoryBalanced}

			convey.Convey("Then the averages are not cached", func() {
				convey.So(team.AverageSkill(), convey.ShouldEqual, 7.0)
				convey.So(team.UniqueRoleCount(), convey.ShouldEqual, 4)
			})
		})
	})

	convey.Convey("Given an empty team", t, func() {
		team := model.NewTeam(1)
		convey.So(team.AverageSkill(), convey.ShouldEqual, 0)
		convey.So(team.UniqueRoleCount(), convey.ShouldEqual, 0)
	})
}
