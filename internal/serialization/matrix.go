package serialization

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/born-ml/minigrad/internal/matrix"
)

// MaxMatrixElements bounds rows*cols accepted by ReadMatrix so a corrupted
// header cannot trigger an arbitrary allocation.
const MaxMatrixElements = 1 << 28

// WriteMatrix writes m in the raw matrix format.
func WriteMatrix(w io.Writer, m matrix.Matrix) error {
	buf := make([]byte, 8+4*m.Len())
	binary.LittleEndian.PutUint32(buf[0:4], uint32(int32(m.Rows()))) //nolint:gosec // G115: rows fit in int32 for any matrix this package reads back
	binary.LittleEndian.PutUint32(buf[4:8], uint32(int32(m.Cols()))) //nolint:gosec // G115: see above
	putFloats(buf[8:], m.Data())

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write matrix: %w", err)
	}
	return nil
}

// ReadMatrix reads one matrix in the raw matrix format.
//
// Returns ErrTruncated if the input ends early and ErrInvalidDims for
// negative or oversized dimensions. A stored 0×n or n×0 shape reads back as
// the empty matrix.
func ReadMatrix(r io.Reader) (matrix.Matrix, error) {
	var dims [8]byte
	if _, err := io.ReadFull(r, dims[:]); err != nil {
		return matrix.Matrix{}, truncated("matrix dimensions", err)
	}
	rows := int64(int32(binary.LittleEndian.Uint32(dims[0:4]))) //nolint:gosec // G115: two's complement reinterpretation is intended
	cols := int64(int32(binary.LittleEndian.Uint32(dims[4:8]))) //nolint:gosec // G115: see above
	if rows < 0 || cols < 0 || rows*cols > MaxMatrixElements {
		return matrix.Matrix{}, fmt.Errorf("%w: %dx%d", ErrInvalidDims, rows, cols)
	}
	if rows == 0 || cols == 0 {
		return matrix.Matrix{}, nil
	}

	raw := make([]byte, 4*rows*cols)
	if _, err := io.ReadFull(r, raw); err != nil {
		return matrix.Matrix{}, truncated("matrix data", err)
	}
	return matrix.FromSlice(int(rows), int(cols), getFloats(raw))
}

// SaveMatrix writes m to path in the raw matrix format, replacing any existing file.
func SaveMatrix(path string, m matrix.Matrix) error {
	f, err := os.Create(path) //nolint:gosec // G304: path is chosen by the caller
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteMatrix(f, m); err != nil {
		_ = f.Close() // Best effort close on error
		return err
	}
	return f.Close()
}

// LoadMatrix reads a matrix saved with SaveMatrix.
func LoadMatrix(path string) (matrix.Matrix, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is chosen by the caller
	if err != nil {
		return matrix.Matrix{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadMatrix(f)
}

func putFloats(dst []byte, values []float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(v))
	}
}

func getFloats(src []byte) []float32 {
	values := make([]float32, len(src)/4)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:]))
	}
	return values
}
