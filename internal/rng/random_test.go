package rng

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/matrix"
)

func TestRandom_Deterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uniform(-1, 1), b.Uniform(-1, 1))
	}
}

func TestRandom_UniformRange(t *testing.T) {
	r := New(7)
	for i := 0; i < 10000; i++ {
		v := r.Uniform(-0.5, 2)
		require.GreaterOrEqual(t, v, float32(-0.5))
		require.Less(t, v, float32(2))
	}
}

func TestRandom_XavierUniform(t *testing.T) {
	r := New(1)
	bound := math32.Sqrt(6.0 / 30.0)
	for i := 0; i < 1000; i++ {
		v, err := r.XavierUniform(10, 20)
		require.NoError(t, err)
		assert.LessOrEqual(t, math32.Abs(v), bound)
	}
}

func TestRandom_XavierUniformZeroFan(t *testing.T) {
	_, err := New(1).XavierUniform(0, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
}

func TestRandom_Perm(t *testing.T) {
	p := New(9).Perm(10)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, p)
	assert.Equal(t, p, New(9).Perm(10))
}
