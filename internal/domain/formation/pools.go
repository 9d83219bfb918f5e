package formation

import (
	"sync"

	"github.com/okian/teamforge/internal/domain/model"
)

// Pool is a shuffled queue of people of one category. Claims are destructive
// and visible to every holder of the pool.
type Pool struct {
	mu       sync.Mutex
	category model.Category
	people   []model.Person
}

// NewPool creates a pool owning a copy of people.
func NewPool(category model.Category, people []model.Person) *Pool {
	return &Pool{category: category, people: append([]model.Person(nil), people...)}
}

// Category returns the category served by the pool.
func (p *Pool) Category() model.Category { return p.category }

// ClaimCompatible removes and returns the first person compatible with
// selected. The scan and the removal happen under one lock, so two callers
// never claim the same person.
func (p *Pool) ClaimCompatible(selected []model.Person) (model.Person, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, candidate := range p.people {
		if Compatible(selected, candidate) {
			p.people = append(p.people[:i], p.people[i+1:]...)
			return candidate, true
		}
	}
	return model.Person{}, false
}

// Return appends people back to the end of the pool.
func (p *Pool) Return(people ...model.Person) {
	if len(people) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.people = append(p.people, people...)
}

// Len returns the number of people left.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.people)
}

// Snapshot returns a copy of the people left, in queue order.
func (p *Pool) Snapshot() []model.Person {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Person(nil), p.people...)
}

// Pools groups the three category pools. Tasks always touch them in
// Leaders, Thinkers, Balanced order and never hold two locks at once.
type Pools struct {
	Leaders  *Pool
	Thinkers *Pool
	Balanced *Pool
}

// Partition splits people by category and shuffles each pool with rng.
// People with an unknown category are left out.
func Partition(people []model.Person, rng *Rand) *Pools {
	var leaders, thinkers, balanced []model.Person
	for _, p := range people {
		switch p.Category {
		case model.CategoryLeader:
			leaders = append(leaders, p)
		case model.CategoryThinker:
			thinkers = append(thinkers, p)
		case model.CategoryBalanced:
			balanced = append(balanced, p)
		}
	}

	for _, group := range [][]model.Person{leaders, thinkers, balanced} {
		g := group
		rng.Shuffle(len(g), func(i, j int) { g[i], g[j] = g[j], g[i] })
	}

	return &Pools{
		Leaders:  NewPool(model.CategoryLeader, leaders),
		Thinkers: NewPool(model.CategoryThinker, thinkers),
		Balanced: NewPool(model.CategoryBalanced, balanced),
	}
}

// For returns the pool serving category, or nil.
func (ps *Pools) For(category model.Category) *Pool {
	switch category {
	case model.CategoryLeader:
		return ps.Leaders
	case model.CategoryThinker:
		return ps.Thinkers
	case model.CategoryBalanced:
		return ps.Balanced
	default:
		return nil
	}
}

// All returns the pools in lock order.
func (ps *Pools) All() []*Pool {
	return []*Pool{ps.Leaders, ps.Thinkers, ps.Balanced}
}

// Remaining returns everyone still unclaimed across the three pools.
func (ps *Pools) Remaining() []model.Person {
	var out []model.Person
	for _, p := range ps.All() {
		out = append(out, p.Snapshot()...)
	}
	return out
}
