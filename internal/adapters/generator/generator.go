// Package generator produces synthetic participants for demos and load
// tests. Output is reproducible for a given seed.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/personality"
	"github.com/okian/teamforge/pkg/logger"
)

// Skill range of generated people.
const (
	minSkill = 1
	maxSkill = 10
)

// Survey answer sums that land in each category after scoring.
var answerSums = map[model.Category][2]int{ //nolint:gochecknoglobals // lookup table
	model.CategoryLeader:   {23, 25},
	model.CategoryBalanced: {18, 22},
	model.CategoryThinker:  {10, 17},
}

var firstNames = []string{ //nolint:gochecknoglobals // lookup table
	"Ava", "Ben", "Chloe", "Dev", "Elif", "Farid", "Gia", "Hugo", "Ines", "Jon",
	"Kai", "Lena", "Milo", "Nora", "Omar", "Pia", "Quinn", "Rosa", "Sami", "Tara",
}

// Generator builds random participants from a private seeded source.
// It is not safe for concurrent use.
type Generator struct {
	rng    *rand.Rand
	mix    Mix
	logger logger.Logger
	serial int
}

// New creates a Generator. A zero seed means time-seeded.
func New(seed int64, opts ...Option) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Generator{
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // sample data
		mix:    DefaultMix,
		logger: logger.Get().Named("generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// People generates n participants with unique IDs.
func (g *Generator) People(ctx context.Context, n int) ([]model.Person, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	people := make([]model.Person, 0, n)
	for i := 0; i < n; i++ {
		p, err := g.Person()
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}

	counts := model.CountCategories(people)
	g.logger.Info(ctx, "generated participants",
		logger.Int("count", n),
		logger.Int("leaders", counts.Leaders),
		logger.Int("thinkers", counts.Thinkers),
		logger.Int("balanced", counts.Balanced),
	)
	return people, nil
}

// Person generates one participant. The category comes from scoring the
// generated survey answers, not from the drawn archetype directly.
func (g *Generator) Person() (model.Person, error) {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return model.Person{}, fmt.Errorf("generate id: %w", err)
	}

	g.serial++
	first := firstNames[g.rng.Intn(len(firstNames))]
	name := fmt.Sprintf("%s %d", first, g.serial)
	games := model.Games()
	roles := model.Roles()

	score, category, err := personality.Evaluate(g.Answers(g.archetype()))
	if err != nil {
		return model.Person{}, fmt.Errorf("score generated answers: %w", err)
	}

	return model.Person{
		ID:       id.String(),
		Name:     name,
		Email:    fmt.Sprintf("%s.%d@example.com", strings.ToLower(first), g.serial),
		Game:     games[g.rng.Intn(len(games))],
		Skill:    minSkill + g.rng.Intn(maxSkill-minSkill+1),
		Role:     roles[g.rng.Intn(len(roles))],
		Score:    score,
		Category: category,
	}, nil
}

// Answers returns five ratings whose sum classifies as category.
func (g *Generator) Answers(category model.Category) []int {
	bounds, ok := answerSums[category]
	if !ok {
		bounds = answerSums[model.CategoryBalanced]
	}
	sum := bounds[0] + g.rng.Intn(bounds[1]-bounds[0]+1)

	answers := make([]int, personality.QuestionCount)
	for i := range answers {
		answers[i] = personality.MinRating
	}
	for extra := sum - personality.QuestionCount*personality.MinRating; extra > 0; {
		i := g.rng.Intn(len(answers))
		if answers[i] < personality.MaxRating {
			answers[i]++
			extra--
		}
	}
	return answers
}

func (g *Generator) archetype() model.Category {
	n := g.rng.Intn(g.mix.total())
	switch {
	case n < g.mix.Leaders:
		return model.CategoryLeader
	case n < g.mix.Leaders+g.mix.Thinkers:
		return model.CategoryThinker
	default:
		return model.CategoryBalanced
	}
}
