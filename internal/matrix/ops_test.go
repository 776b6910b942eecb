package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/minigrad/internal/matrix"
	"github.com/born-ml/minigrad/internal/rng"
)

func TestElementwise(t *testing.T) {
	a := mustRows(t, [][]float32{{1, 2}, {3, 4}})
	b := mustRows(t, [][]float32{{5, 6}, {7, 8}})

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, []float32{6, 8, 10, 12}, sum.Data())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, []float32{-4, -4, -4, -4}, diff.Data())

	prod, err := a.Hadamard(b)
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 12, 21, 32}, prod.Data())

	// Inputs are untouched.
	assert.Equal(t, []float32{1, 2, 3, 4}, a.Data())
}

func TestElementwise_ShapeMismatch(t *testing.T) {
	a := matrix.New(2, 2)
	b := matrix.New(2, 3)

	ops := map[string]func(matrix.Matrix) (matrix.Matrix, error){
		"add":      a.Add,
		"subtract": a.Sub,
		"hadamard": a.Hadamard,
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			_, err := op(b)
			require.ErrorIs(t, err, matrix.ErrShapeMismatch)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestMatMul(t *testing.T) {
	a := mustRows(t, [][]float32{{1, 2, 3}, {4, 5, 6}})
	b := mustRows(t, [][]float32{{4, 5, 6}, {1, 2, 3}, {1, 2, 3}})

	c, err := a.MatMul(b)
	require.NoError(t, err)
	assert.Equal(t, matrix.Shape{Rows: 2, Cols: 3}, c.Shape())
	assert.Equal(t, []float32{9, 15, 21, 27, 42, 57}, c.Data())
}

func TestMatMul_Errors(t *testing.T) {
	_, err := matrix.New(2, 3).MatMul(matrix.New(2, 3))
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)

	_, err = matrix.Matrix{}.MatMul(matrix.New(2, 2))
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
}

func TestMatMul_MatchesGonum(t *testing.T) {
	r := rng.New(3)
	a := matrix.New(4, 5)
	a.FillUniform(r, -1, 1)
	b := matrix.New(5, 3)
	b.FillUniform(r, -1, 1)

	got, err := a.MatMul(b)
	require.NoError(t, err)

	var want mat.Dense
	want.Mul(a.Dense(), b.Dense())
	assert.True(t, got.AllClose(matrix.FromDense(&want), 1e-5))
}

func TestMatMul_LargeMatchesGonum(t *testing.T) {
	r := rng.New(5)
	a := matrix.New(128, 256)
	a.FillUniform(r, -1, 1)
	b := matrix.New(256, 64)
	b.FillUniform(r, -1, 1)

	got, err := a.MatMul(b)
	require.NoError(t, err)

	var want mat.Dense
	want.Mul(a.Dense(), b.Dense())
	assert.True(t, got.AllClose(matrix.FromDense(&want), 1e-3))
}

func TestTranspose_ProductProperty(t *testing.T) {
	r := rng.New(11)
	for _, dims := range [][3]int{{1, 1, 1}, {2, 3, 4}, {5, 1, 2}, {3, 3, 3}} {
		a := matrix.New(dims[0], dims[1])
		a.FillUniform(r, -2, 2)
		b := matrix.New(dims[1], dims[2])
		b.FillUniform(r, -2, 2)

		ab, err := a.MatMul(b)
		require.NoError(t, err)
		btat, err := b.Transpose().MatMul(a.Transpose())
		require.NoError(t, err)

		assert.True(t, ab.Transpose().AllClose(btat, 1e-5), "(AB)ᵗ == BᵗAᵗ for %v", dims)
	}
}

func TestTranspose(t *testing.T) {
	m := mustRows(t, [][]float32{{1, 2, 3}, {4, 5, 6}})
	tr := m.Transpose()
	assert.Equal(t, matrix.Shape{Rows: 3, Cols: 2}, tr.Shape())
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, tr.Data())
	assert.Equal(t, matrix.Shape{}, matrix.Matrix{}.Transpose().Shape())
}

func TestScaleAndAddScalar(t *testing.T) {
	m := mustRows(t, [][]float32{{1, -2}})
	assert.Equal(t, []float32{-3, 6}, m.Scale(-3).Data())
	assert.Equal(t, []float32{1.5, -1.5}, m.AddScalar(0.5).Data())
}

func TestAccumulateInPlace(t *testing.T) {
	m := mustRows(t, [][]float32{{1, 1}})
	require.NoError(t, m.AddInPlace(mustRows(t, [][]float32{{2, 3}})))
	require.NoError(t, m.AxpyInPlace(-2, mustRows(t, [][]float32{{1, 1}})))
	assert.Equal(t, []float32{1, 2}, m.Data())

	require.ErrorIs(t, m.AddInPlace(matrix.New(2, 2)), matrix.ErrShapeMismatch)
}

func TestDenseRoundTrip(t *testing.T) {
	m := mustRows(t, [][]float32{{1, 2}, {3, 4}})
	assert.True(t, m.Equal(matrix.FromDense(m.Dense())))
	assert.Nil(t, matrix.Matrix{}.Dense())
}
