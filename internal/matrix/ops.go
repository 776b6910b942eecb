package matrix

// elementwise applies fn to every pair of elements of two equally shaped matrices.
func (m Matrix) elementwise(op string, other Matrix, fn func(a, b float32) float32) (Matrix, error) {
	if !m.Shape().Equal(other.Shape()) {
		return Matrix{}, &ShapeError{Op: op, Left: m.Shape(), Right: other.Shape()}
	}
	out := New(m.rows, m.cols)
	for i, a := range m.data {
		out.data[i] = fn(a, other.data[i])
	}
	return out, nil
}

// Add returns m + other. Shapes must be identical.
func (m Matrix) Add(other Matrix) (Matrix, error) {
	return m.elementwise("add", other, func(a, b float32) float32 { return a + b })
}

// Sub returns m - other. Shapes must be identical.
func (m Matrix) Sub(other Matrix) (Matrix, error) {
	return m.elementwise("subtract", other, func(a, b float32) float32 { return a - b })
}

// Hadamard returns the element-wise product m ⊙ other. Shapes must be identical.
func (m Matrix) Hadamard(other Matrix) (Matrix, error) {
	return m.elementwise("hadamard", other, func(a, b float32) float32 { return a * b })
}

// MatMul returns the matrix product m · other.
//
// The right operand is transposed first so the inner loop walks two
// contiguous rows. Empty operands are rejected with ErrInvalidArgument;
// m.Cols() != other.Rows() yields a ShapeError.
func (m Matrix) MatMul(other Matrix) (Matrix, error) {
	if m.Shape().IsEmpty() || other.Shape().IsEmpty() {
		return Matrix{}, invalidArgf("matmul on empty matrix: lhs %s, rhs %s", m.Shape(), other.Shape())
	}
	if m.cols != other.rows {
		return Matrix{}, &ShapeError{Op: "matmul", Left: m.Shape(), Right: other.Shape()}
	}

	bT := other.Transpose()
	inner := m.cols
	out := New(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		rowA := m.data[i*inner : (i+1)*inner]
		for j := 0; j < bT.rows; j++ {
			rowB := bT.data[j*inner : (j+1)*inner]
			var dot float32
			for k, a := range rowA {
				dot += a * rowB[k]
			}
			out.data[i*out.cols+j] = dot
		}
	}
	return out, nil
}

// Transpose returns mᵗ. The transpose of an empty matrix is empty.
func (m Matrix) Transpose() Matrix {
	if len(m.data) == 0 {
		return Matrix{}
	}
	out := New(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

// Scale returns s·m.
func (m Matrix) Scale(s float32) Matrix {
	return m.Map(func(v float32) float32 { return v * s })
}

// AddScalar returns m + s applied to every element.
func (m Matrix) AddScalar(s float32) Matrix {
	return m.Map(func(v float32) float32 { return v + s })
}

// Map returns a new matrix with fn applied to every element.
func (m Matrix) Map(fn func(float32) float32) Matrix {
	out := ZerosLike(m)
	for i, v := range m.data {
		out.data[i] = fn(v)
	}
	return out
}

// AddInPlace accumulates other into m (m += other).
//
// This is the gradient accumulation primitive; m's backing array is reused.
func (m *Matrix) AddInPlace(other Matrix) error {
	return m.AxpyInPlace(1, other)
}

// AxpyInPlace accumulates alpha·x into m (m += alpha·x).
func (m *Matrix) AxpyInPlace(alpha float32, x Matrix) error {
	if !m.Shape().Equal(x.Shape()) {
		return &ShapeError{Op: "accumulate", Left: m.Shape(), Right: x.Shape()}
	}
	for i, v := range x.data {
		m.data[i] += alpha * v
	}
	return nil
}
