// Package progression gives every arrangement decision of a tune its own
// reproducible stream of pseudo-random numbers. Decisions in different
// groups never share entropy, so adding or changing one decision does not
// shift the outcome of another.
package progression

import (
	"math/rand/v2"

	"github.com/datatune/datatune"
	"github.com/pkg/errors"
)

type (
	// Group scopes one kind of decision within one tune. ID must be unique
	// per decision kind in the program.
	Group struct {
		TuneSeed int64
		ID       int
	}

	// Distribution picks an index in [0,n) using r. n is always > 0.
	Distribution interface {
		Index(n int, r *rand.Rand) int
	}

	// AlwaysFirst always picks index 0.
	AlwaysFirst struct{}

	// Uniform picks every index with the same probability.
	Uniform struct{}

	// Geometric picks index 0 with probability P, index 1 with P(1-P) and so
	// on, wrapping the tail onto the last index. P outside (0,1] means 1/2.
	Geometric struct {
		P float64
	}
)

// Favoured is the default distribution: biased towards the first choice.
var Favoured Distribution = Geometric{P: 0.5}

const (
	golden = 0x9E3779B97F4A7C15
	mixA   = 0xBF58476D1CE4E5B9
	mixB   = 0x94D049BB133111EB
)

// DeriveSeed folds the tune seed, group id and progression values into one
// 64-bit seed. The same inputs always give the same seed.
func DeriveSeed(tuneSeed int64, groupID int, progression ...int) uint64 {
	s := uint64(tuneSeed)
	s ^= (uint64(int64(groupID)) + golden) << 1
	s = mix(s)
	for i, p := range progression {
		s ^= uint64(int64(p)) + golden + uint64(i)<<32
		s = (s << 13) | (s >> 51)
		s = mix(s)
	}
	return s
}

// mix is the splitmix64 finaliser.
func mix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * mixA
	z = (z ^ (z >> 27)) * mixB
	return z ^ (z >> 31)
}

// NoRandomness reports whether the group always takes the first choice.
func (g Group) NoRandomness() bool { return g.TuneSeed == 0 }

// Seed returns the seed of the group for the given progression values.
func (g Group) Seed(progression ...int) uint64 {
	return DeriveSeed(g.TuneSeed, g.ID, progression...)
}

// Rand returns a new generator for the group and progression values. The
// generator is owned by the caller.
func (g Group) Rand(progression ...int) *rand.Rand {
	s := g.Seed(progression...)
	return rand.New(rand.NewPCG(s, mix(s^golden)))
}

// PickOne chooses one of choices. With no randomness it returns choices[0]
// without building a generator; otherwise d chooses the index using the
// group's generator for the given progression values.
func PickOne[T any](g Group, d Distribution, choices []T, progression ...int) (T, error) {
	var zero T
	if len(choices) == 0 {
		return zero, errors.Wrapf(datatune.ErrInvalidArgument, "group %d: nothing to choose from", g.ID)
	}
	if g.NoRandomness() || len(choices) == 1 {
		return choices[0], nil
	}
	if d == nil {
		d = Favoured
	}
	i := d.Index(len(choices), g.Rand(progression...))
	if i < 0 || i >= len(choices) {
		return zero, errors.Wrapf(datatune.ErrInvalidArgument, "group %d: distribution picked %d of %d", g.ID, i, len(choices))
	}
	return choices[i], nil
}

// Chance reports whether an event of probability p happens. With no
// randomness it happens only when p >= 1/2.
func Chance(g Group, p float64, progression ...int) bool {
	if g.NoRandomness() {
		return p >= 0.5
	}
	return g.Rand(progression...).Float64() < p
}

func (AlwaysFirst) Index(int, *rand.Rand) int { return 0 }

func (Uniform) Index(n int, r *rand.Rand) int { return r.IntN(n) }

func (g Geometric) Index(n int, r *rand.Rand) int {
	p := g.P
	if p <= 0 || p > 1 {
		p = 0.5
	}
	for i := 0; i < n-1; i++ {
		if r.Float64() < p {
			return i
		}
	}
	return n - 1
}
