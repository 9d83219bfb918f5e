package formation_test

import (
	"fmt"
	"math/rand"

	"github.com/okian/teamforge/internal/domain/model"
)

func person(id string, c model.Category, role model.Role, game string, skill int) model.Person {
	return model.Person{ID: id, Name: "name-" + id, Category: c, Role: role, Game: game, Skill: skill}
}

// population builds a random but reproducible set of people.
func population(seed int64, leaders, thinkers, balanced int) []model.Person {
	r := rand.New(rand.NewSource(seed))
	games := model.Games()
	var out []model.Person
	add := func(prefix string, n int, c model.Category) {
		for i := 0; i < n; i++ {
			out = append(out, person(
				fmt.Sprintf("%s%d", prefix, i),
				c,
				model.Roles()[r.Intn(len(model.Roles()))],
				games[r.Intn(len(games))],
				1+r.Intn(10),
			))
		}
	}
	add("L", leaders, model.CategoryLeader)
	add("T", thinkers, model.CategoryThinker)
	add("B", balanced, model.CategoryBalanced)
	return out
}

func ids(people []model.Person) map[string]int {
	out := make(map[string]int, len(people))
	for _, p := range people {
		out[p.ID]++
	}
	return out
}
