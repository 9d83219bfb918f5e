package formation

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is a goroutine-safe, seedable random source shared by the pools and
// the assembly tasks.
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a source seeded with seed. A zero seed means time-seeded.
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{r: rand.New(rand.NewSource(seed))} //nolint:gosec // fairness shuffle, not security
}

// Intn returns a uniform int in [0, n).
func (r *Rand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Intn(n)
}

// Shuffle permutes n elements with Fisher-Yates.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.r.Shuffle(n, swap)
}
