package matrix

import "gonum.org/v1/gonum/mat"

// FromDense converts a gonum matrix into a Matrix, narrowing to float32.
func FromDense(d mat.Matrix) Matrix {
	r, c := d.Dims()
	m := New(r, c)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			m.data[i*m.cols+j] = float32(d.At(i, j))
		}
	}
	return m
}

// Dense converts m into a gonum *mat.Dense. An empty matrix yields nil
// since gonum does not represent zero-sized matrices.
func (m Matrix) Dense() *mat.Dense {
	if len(m.data) == 0 {
		return nil
	}
	data := make([]float64, len(m.data))
	for i, v := range m.data {
		data[i] = float64(v)
	}
	return mat.NewDense(m.rows, m.cols, data)
}
