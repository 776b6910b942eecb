package matrix

// Sampler is the random source consumed by the fill routines.
//
// The matrix package never owns or reseeds a generator; callers pass one in.
// internal/rng.Random satisfies this interface.
type Sampler interface {
	// Uniform returns a sample from [min, max).
	Uniform(lo, hi float32) float32
	// XavierUniform returns a sample from [-a, a], a = sqrt(6/(fanIn+fanOut)).
	XavierUniform(fanIn, fanOut int) (float32, error)
}

// FillZero sets every element to zero.
func (m *Matrix) FillZero() {
	clear(m.data)
}

// FillIdentity overwrites m with the identity. m must be square and non-empty.
func (m *Matrix) FillIdentity() error {
	if m.Shape().IsEmpty() {
		return invalidArgf("cannot fill empty matrix as identity")
	}
	if m.rows != m.cols {
		return invalidArgf("identity matrix must be square, got %s", m.Shape())
	}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			v := float32(0)
			if i == j {
				v = 1
			}
			m.data[i*m.cols+j] = v
		}
	}
	return nil
}

// FillUniform draws every element from rng.Uniform(lo, hi).
func (m *Matrix) FillUniform(rng Sampler, lo, hi float32) {
	for i := range m.data {
		m.data[i] = rng.Uniform(lo, hi)
	}
}

// FillXavier draws every element from rng.XavierUniform(fanIn, fanOut).
//
// fanIn+fanOut must be positive; the check happens before any element is
// written so a rejected call leaves m untouched.
func (m *Matrix) FillXavier(rng Sampler, fanIn, fanOut int) error {
	if fanIn+fanOut <= 0 {
		return invalidArgf("xavier: fanIn+fanOut must be positive, got %d", fanIn+fanOut)
	}
	for i := range m.data {
		v, err := rng.XavierUniform(fanIn, fanOut)
		if err != nil {
			return err
		}
		m.data[i] = v
	}
	return nil
}
