// Package source produces the random bar heights a visualization starts from.
//
// The generator is consumed through the single-method [Intn] interface so
// tests and replays can substitute a deterministic stream. [New] returns a
// seeded generator: the same seed always yields the same arrays.
package source

import (
	"math/rand/v2"
	"time"

	"github.com/matzehuels/sortviz/pkg/errors"
)

// Intn yields uniform integers in [0,n). Implementations may panic for n <= 0;
// [Generate] never calls them that way.
type Intn interface {
	IntN(n int) int
}

// Source is a seeded pseudo-random generator. Not safe for concurrent use.
type Source struct {
	seed uint64
	rng  *rand.Rand
}

// New returns a generator whose output is fully determined by seed.
func New(seed uint64) *Source {
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
	}
}

// NewRandom returns a generator seeded from the clock and the runtime's
// entropy source.
func NewRandom() *Source {
	return New(uint64(time.Now().UnixNano()) ^ rand.Uint64())
}

// Seed returns the seed the generator was created with.
func (s *Source) Seed() uint64 { return s.seed }

// IntN implements [Intn].
func (s *Source) IntN(n int) int { return s.rng.IntN(n) }

// Generate draws n heights, each independently uniform in [0,maxValue).
// Every call draws fresh values from rng.
func Generate(rng Intn, n, maxValue int) ([]int, error) {
	if n < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "array size cannot be negative, got %d", n)
	}
	if err := errors.ValidateMaxValue(maxValue); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New(errors.ErrCodeInternal, "no random source")
	}

	values := make([]int, n)
	for i := range values {
		values[i] = rng.IntN(maxValue)
	}
	return values, nil
}
