// Package rng provides the seeded random source used for weight initialization.
//
// There is no process-wide generator: every caller that needs randomness is
// handed a *Random explicitly.
package rng

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/born-ml/minigrad/internal/matrix"
)

// Random is a deterministic generator seeded once at construction.
//
// It is not safe for concurrent use.
type Random struct {
	src *rand.Rand
}

// New creates a generator from seed. Equal seeds produce equal streams.
func New(seed uint64) *Random {
	//nolint:gosec // G404: weight initialization is not security-critical
	return &Random{src: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Uniform returns a sample from [lo, hi).
func (r *Random) Uniform(lo, hi float32) float32 {
	v := lo + (hi-lo)*r.src.Float32()
	// Rounding in the affine map can land exactly on hi.
	if v >= hi && hi > lo {
		return math.Nextafter32(hi, lo)
	}
	return v
}

// XavierUniform returns a sample from [-a, a] with a = sqrt(6/(fanIn+fanOut)).
//
// Returns matrix.ErrInvalidArgument if fanIn+fanOut is not positive.
func (r *Random) XavierUniform(fanIn, fanOut int) (float32, error) {
	bound, err := XavierBound(fanIn, fanOut)
	if err != nil {
		return 0, err
	}
	return r.Uniform(-bound, bound), nil
}

// Perm returns a random permutation of [0, n).
func (r *Random) Perm(n int) []int {
	return r.src.Perm(n)
}

// XavierBound returns sqrt(6/(fanIn+fanOut)).
func XavierBound(fanIn, fanOut int) (float32, error) {
	if fanIn+fanOut <= 0 {
		return 0, fmt.Errorf("%w: fanIn+fanOut cannot be %d", matrix.ErrInvalidArgument, fanIn+fanOut)
	}
	return math32.Sqrt(6 / float32(fanIn+fanOut)), nil
}

var _ matrix.Sampler = (*Random)(nil)
