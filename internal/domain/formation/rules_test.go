package formation_test

import (
	"errors"
	"testing"

	"github.com/okian/teamforge/internal/domain/formation"
	"github.com/okian/teamforge/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompatible(t *testing.T) {
	Convey("Given a partial team with two Chess players", t, func() {
		members := []model.Person{
			person("a", model.CategoryLeader, model.RoleAttacker, "Chess", 5),
			person("b", model.CategoryThinker, model.RoleDefender, "Chess", 5),
		}

		Convey("Then a third Chess player is incompatible", func() {
			So(formation.Compatible(members, person("c", model.CategoryBalanced, model.RoleSupporter, "Chess", 5)), ShouldBeFalse)
		})

		Convey("And a FIFA player is compatible", func() {
			So(formation.Compatible(members, person("c", model.CategoryBalanced, model.RoleSupporter, "FIFA", 5)), ShouldBeTrue)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given a valid team of four", t, func() {
		members := []model.Person{
			person("l", model.CategoryLeader, model.RoleStrategist, "CS:GO", 5),
			person("t", model.CategoryThinker, model.RoleAttacker, "Valorant", 5),
			person("b1", model.CategoryBalanced, model.RoleDefender, "Chess", 5),
			person("b2", model.CategoryBalanced, model.RoleDefender, "FIFA", 5),
		}

		Convey("Then it validates, repeatedly", func() {
			So(formation.Validate(members, 4), ShouldBeNil)
			So(formation.Validate(members, 4), ShouldBeNil)
			So(formation.ValidateTeam(model.NewTeam(1, members...), 4), ShouldBeNil)
		})

		Convey("When the requested size differs", func() {
			So(errors.Is(formation.Validate(members, 5), formation.ErrWrongSize), ShouldBeTrue)
		})

		Convey("When there are two leaders", func() {
			members[2].Category = model.CategoryLeader
			So(errors.Is(formation.Validate(members, 4), formation.ErrLeaderCount), ShouldBeTrue)
		})

		Convey("When there is no thinker", func() {
			members[1].Category = model.CategoryBalanced
			So(errors.Is(formation.Validate(members, 4), formation.ErrThinkerCount), ShouldBeTrue)
		})

		Convey("When there are three thinkers", func() {
			members[2].Category = model.CategoryThinker
			members[3].Category = model.CategoryThinker
			So(errors.Is(formation.Validate(members, 4), formation.ErrThinkerCount), ShouldBeTrue)
		})

		Convey("When three members share a game", func() {
			for i := range members {
				if i < 3 {
					members[i].Game = "Dota 2"
				}
			}
			So(errors.Is(formation.Validate(members, 4), formation.ErrGameCap), ShouldBeTrue)
		})

		Convey("When only two roles are present", func() {
			members[0].Role = model.RoleDefender
			members[1].Role = model.RoleDefender
			members[2].Role = model.RoleSupporter
			err := formation.Validate(members, 4)
			So(errors.Is(err, formation.ErrRoleDiversity), ShouldBeTrue)
			So(formation.FailureReason(err), ShouldEqual, "role_diversity")
		})
	})

	Convey("Given failure reasons", t, func() {
		So(formation.FailureReason(nil), ShouldEqual, "")
		So(formation.FailureReason(formation.ErrNoLeader), ShouldEqual, "no_leader")
		So(formation.FailureReason(errors.New("x")), ShouldEqual, "other")
	})
}
