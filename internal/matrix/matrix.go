// Package matrix implements the dense 2-D float32 container used by the
// autodiff engine.
//
// A Matrix is an ordered sequence of equally long rows stored row-major in a
// single backing slice. Matrices behave as values: every operation allocates
// a new backing array and never aliases its inputs. Only the Fill* methods,
// Set, AppendRow and the *InPlace accumulators mutate the receiver.
//
// Example:
//
//	a, _ := matrix.FromRows([][]float32{{1, 2}, {3, 4}})
//	b := matrix.Identity(2)
//	c, err := a.MatMul(b)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(c.Shape()) // [2, 2]
package matrix

import (
	"math"

	"github.com/chewxy/math32"
)

// Matrix is a fixed-shape dense 2-D array of float32.
//
// The zero value is the empty 0×0 matrix.
type Matrix struct {
	rows int
	cols int
	data []float32
}

// New creates a zero-filled rows×cols matrix.
//
// A matrix with zero rows is normalized to shape (0, 0).
func New(rows, cols int) Matrix {
	if rows <= 0 || cols <= 0 {
		return Matrix{}
	}
	return Matrix{rows: rows, cols: cols, data: make([]float32, rows*cols)}
}

// Scalar creates a 1×1 matrix holding v.
func Scalar(v float32) Matrix {
	return Matrix{rows: 1, cols: 1, data: []float32{v}}
}

// Ones creates a rows×cols matrix filled with ones.
func Ones(rows, cols int) Matrix {
	m := New(rows, cols)
	for i := range m.data {
		m.data[i] = 1
	}
	return m
}

// Identity creates an n×n identity matrix.
func Identity(n int) Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// ZerosLike returns a zero-filled matrix with the shape of m.
func ZerosLike(m Matrix) Matrix {
	return New(m.rows, m.cols)
}

// FromRows builds a matrix from row slices. The rows are copied.
//
// Returns a ShapeError if the rows have different lengths.
func FromRows(rows [][]float32) (Matrix, error) {
	var m Matrix
	for _, row := range rows {
		if err := m.AppendRow(row); err != nil {
			return Matrix{}, err
		}
	}
	return m, nil
}

// FromSlice builds a rows×cols matrix from row-major data. The data is copied.
func FromSlice(rows, cols int, data []float32) (Matrix, error) {
	if rows < 0 || cols < 0 {
		return Matrix{}, invalidArgf("negative dimensions %dx%d", rows, cols)
	}
	if len(data) != rows*cols {
		return Matrix{}, invalidArgf("data length %d does not match shape %dx%d", len(data), rows, cols)
	}
	m := New(rows, cols)
	copy(m.data, data)
	return m, nil
}

// AppendRow appends a copy of row to the matrix.
//
// The first row fixes the column count; every later row must match it.
// An empty first row is rejected since it cannot define a column count.
func (m *Matrix) AppendRow(row []float32) error {
	if m.rows == 0 {
		if len(row) == 0 {
			return invalidArgf("cannot append an empty row")
		}
		m.cols = len(row)
	} else if len(row) != m.cols {
		return &ShapeError{Op: "append_row", Left: m.Shape(), Right: Shape{Rows: 1, Cols: len(row)}}
	}
	m.data = append(m.data, row...)
	m.rows++
	return nil
}

// Shape returns the (rows, cols) pair.
func (m Matrix) Shape() Shape {
	return Shape{Rows: m.rows, Cols: m.cols}
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m Matrix) Cols() int { return m.cols }

// Len returns the number of elements.
func (m Matrix) Len() int { return len(m.data) }

// At returns the element at (i, j). It panics if the index is out of range.
func (m Matrix) At(i, j int) float32 {
	m.checkIndex(i, j)
	return m.data[i*m.cols+j]
}

// Set stores v at (i, j). It panics if the index is out of range.
func (m *Matrix) Set(i, j int, v float32) {
	m.checkIndex(i, j)
	m.data[i*m.cols+j] = v
}

func (m Matrix) checkIndex(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic("matrix: index out of range")
	}
}

// Row returns a copy of row i.
func (m Matrix) Row(i int) []float32 {
	m.checkIndex(i, 0)
	row := make([]float32, m.cols)
	copy(row, m.data[i*m.cols:(i+1)*m.cols])
	return row
}

// Data returns a copy of the row-major elements.
func (m Matrix) Data() []float32 {
	out := make([]float32, len(m.data))
	copy(out, m.data)
	return out
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	if len(m.data) == 0 {
		return Matrix{}
	}
	return Matrix{rows: m.rows, cols: m.cols, data: m.Data()}
}

// Equal reports whether both matrices have the same shape and bit-identical elements.
func (m Matrix) Equal(other Matrix) bool {
	if !m.Shape().Equal(other.Shape()) {
		return false
	}
	for i, v := range m.data {
		if math.Float32bits(v) != math.Float32bits(other.data[i]) {
			return false
		}
	}
	return true
}

// AllClose reports whether both matrices have the same shape and every pair of
// elements differs by at most tol.
func (m Matrix) AllClose(other Matrix, tol float32) bool {
	if !m.Shape().Equal(other.Shape()) {
		return false
	}
	for i, v := range m.data {
		if math32.Abs(v-other.data[i]) > tol {
			return false
		}
	}
	return true
}

// Flatten returns the elements as a single 1×(rows·cols) row vector.
func (m Matrix) Flatten() Matrix {
	if len(m.data) == 0 {
		return Matrix{}
	}
	return Matrix{rows: 1, cols: len(m.data), data: m.Data()}
}

// Sum returns the sum of all elements.
func (m Matrix) Sum() float32 {
	var sum float32
	for _, v := range m.data {
		sum += v
	}
	return sum
}

// Max returns the largest element, or -Inf for an empty matrix.
func (m Matrix) Max() float32 {
	maxVal := math32.Inf(-1)
	for _, v := range m.data {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// ArgMaxRow returns the column index of the largest element in row i.
// Ties resolve to the lowest index.
func (m Matrix) ArgMaxRow(i int) int {
	m.checkIndex(i, 0)
	row := m.data[i*m.cols : (i+1)*m.cols]
	best := 0
	for j := 1; j < len(row); j++ {
		if row[j] > row[best] {
			best = j
		}
	}
	return best
}
