package formation_test

import (
	"errors"
	"testing"

	"github.com/okian/teamforge/internal/domain/formation"
	"github.com/okian/teamforge/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAssembleTeam(t *testing.T) {
	Convey("Given one leader, one thinker and two balanced people on distinct games", t, func() {
		people := []model.Person{
			person("L", model.CategoryLeader, model.RoleStrategist, "CS:GO", 7),
			person("T", model.CategoryThinker, model.RoleAttacker, "Valorant", 5),
			person("B1", model.CategoryBalanced, model.RoleDefender, "Chess", 6),
			person("B2", model.CategoryBalanced, model.RoleSupporter, "FIFA", 4),
		}
		pools := formation.Partition(people, formation.NewRand(1))

		Convey("When assembling a team of four", func() {
			out := formation.AssembleTeam(1, pools, 4, formation.NewRand(1))

			Convey("Then all four form one valid team", func() {
				So(out.OK(), ShouldBeTrue)
				So(out.Err, ShouldBeNil)
				So(out.Team.ID, ShouldEqual, 1)
				So(out.Team.Size(), ShouldEqual, 4)
				So(formation.ValidateTeam(out.Team, 4), ShouldBeNil)
				So(len(pools.Remaining()), ShouldEqual, 0)
			})
		})
	})

	Convey("Given no leaders", t, func() {
		pools := formation.Partition(population(2, 0, 3, 6), formation.NewRand(1))

		Convey("When assembling", func() {
			out := formation.AssembleTeam(1, pools, 4, formation.NewRand(1))

			Convey("Then the task fails with ErrNoLeader and touches nothing", func() {
				So(out.OK(), ShouldBeFalse)
				So(errors.Is(out.Err, formation.ErrNoLeader), ShouldBeTrue)
				So(len(pools.Remaining()), ShouldEqual, 9)
			})
		})
	})

	Convey("Given a leader but no thinkers", t, func() {
		people := population(3, 1, 0, 6)

		Convey("When assembling in the default mode", func() {
			pools := formation.Partition(people, formation.NewRand(1))
			out := formation.AssembleTeam(1, pools, 4, formation.NewRand(1))

			Convey("Then the claimed leader is lost", func() {
				So(errors.Is(out.Err, formation.ErrNoThinker), ShouldBeTrue)
				So(len(out.Claimed), ShouldEqual, 1)
				So(out.Returned, ShouldBeFalse)
				So(pools.Leaders.Len(), ShouldEqual, 0)
			})
		})

		Convey("When assembling with return-to-pool enabled", func() {
			pools := formation.Partition(people, formation.NewRand(1))
			out := formation.AssembleTeam(1, pools, 4, formation.NewRand(1), formation.WithReturnUnclaimed(true))

			Convey("Then the leader goes back to its pool", func() {
				So(errors.Is(out.Err, formation.ErrNoThinker), ShouldBeTrue)
				So(out.Returned, ShouldBeTrue)
				So(pools.Leaders.Len(), ShouldEqual, 1)
			})
		})
	})

	Convey("Given too few balanced people to fill the seats", t, func() {
		people := []model.Person{
			person("L", model.CategoryLeader, model.RoleStrategist, "CS:GO", 7),
			person("T", model.CategoryThinker, model.RoleAttacker, "Valorant", 5),
			person("B1", model.CategoryBalanced, model.RoleDefender, "Chess", 6),
		}
		pools := formation.Partition(people, formation.NewRand(1))

		Convey("When assembling a team of five", func() {
			out := formation.AssembleTeam(1, pools, 5, formation.NewRand(1))

			Convey("Then the short team is rejected and its members are dropped", func() {
				So(errors.Is(out.Err, formation.ErrWrongSize), ShouldBeTrue)
				So(len(out.Claimed), ShouldEqual, 3)
				So(len(pools.Remaining()), ShouldEqual, 0)
			})
		})
	})

	Convey("Given balanced people who all share the leader's game", t, func() {
		people := []model.Person{
			person("L", model.CategoryLeader, model.RoleStrategist, "Chess", 7),
			person("T", model.CategoryThinker, model.RoleAttacker, "FIFA", 5),
			person("B1", model.CategoryBalanced, model.RoleDefender, "Chess", 6),
			person("B2", model.CategoryBalanced, model.RoleSupporter, "Chess", 4),
		}
		pools := formation.Partition(people, formation.NewRand(1))

		Convey("When assembling a team of four", func() {
			out := formation.AssembleTeam(1, pools, 4, formation.NewRand(1))

			Convey("Then the game cap stops the fill and the third Chess player stays pooled", func() {
				So(errors.Is(out.Err, formation.ErrWrongSize), ShouldBeTrue)
				So(pools.Balanced.Len(), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a full team with only two roles", t, func() {
		people := []model.Person{
			person("L", model.CategoryLeader, model.RoleDefender, "CS:GO", 7),
			person("T", model.CategoryThinker, model.RoleDefender, "Valorant", 5),
			person("B1", model.CategoryBalanced, model.RoleAttacker, "Chess", 6),
			person("B2", model.CategoryBalanced, model.RoleAttacker, "FIFA", 4),
		}
		pools := formation.Partition(people, formation.NewRand(1))

		Convey("When assembling", func() {
			out := formation.AssembleTeam(1, pools, 4, formation.NewRand(1))

			Convey("Then role diversity rejects it", func() {
				So(errors.Is(out.Err, formation.ErrRoleDiversity), ShouldBeTrue)
			})
		})
	})

	Convey("Given a non-positive team size", t, func() {
		pools := formation.Partition(population(4, 2, 2, 4), formation.NewRand(1))
		out := formation.AssembleTeam(1, pools, 0, formation.NewRand(1))
		So(errors.Is(out.Err, formation.ErrInvalidTeamSize), ShouldBeTrue)
		So(len(pools.Remaining()), ShouldEqual, 8)
	})

	Convey("Given a large population assembled repeatedly", t, func() {
		pools := formation.Partition(population(9, 10, 15, 40), formation.NewRand(9))
		rng := formation.NewRand(9)

		Convey("Then every produced team satisfies every rule", func() {
			for id := 1; id <= 10; id++ {
				out := formation.AssembleTeam(id, pools, 5, rng)
				if !out.OK() {
					continue
				}
				So(formation.ValidateTeam(out.Team, 5), ShouldBeNil)
				c := out.Team.CategoryCounts()
				So(c.Leaders, ShouldEqual, 1)
				So(c.Thinkers, ShouldBeBetweenOrEqual, 1, 2)
			}
		})
	})
}
