package serialization

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/matrix"
)

// Format constants.
const (
	MagicBytes      = "MGRD"
	FormatVersion   = 1
	FixedHeaderSize = 56 // magic + version + header size + data size + checksum
	ChecksumSize    = 32 // SHA-256 checksum size (32 bytes)
	checksumOffset  = FixedHeaderSize - ChecksumSize
)

// Header represents the JSON header of a checkpoint.
type Header struct {
	FormatVersion int            `json:"format_version"` // Version of the checkpoint format
	CreatedAt     time.Time      `json:"created_at"`     // When the file was created
	Tensors       []TensorMeta   `json:"tensors"`        // Tensor metadata, in parameter order
	Checkpoint    CheckpointMeta `json:"checkpoint"`     // Training state
}

// CheckpointMeta contains training state information.
type CheckpointMeta struct {
	Epoch     int               `json:"epoch"`              // Completed training epochs
	Loss      float64           `json:"loss"`               // Loss value at checkpoint
	Accuracy  float64           `json:"accuracy"`           // Accuracy at checkpoint, if tracked
	Optimizer string            `json:"optimizer"`          // Optimizer type ("sgd", "adam")
	Metadata  map[string]string `json:"metadata,omitempty"` // Custom metadata
}

// TensorMeta describes one stored parameter.
type TensorMeta struct {
	Name   string `json:"name"`   // Parameter name (e.g., "w1")
	Shape  [2]int `json:"shape"`  // Rows, cols
	Offset int64  `json:"offset"` // Offset in the data section
	Size   int64  `json:"size"`   // Size in bytes
}

// Checkpoint is a decoded checkpoint file.
type Checkpoint struct {
	Header  Header
	tensors map[string]matrix.Matrix
}

// Tensor returns a copy of the stored matrix for name.
func (c *Checkpoint) Tensor(name string) (matrix.Matrix, bool) {
	m, ok := c.tensors[name]
	if !ok {
		return matrix.Matrix{}, false
	}
	return m.Clone(), true
}

// Restore copies stored values into params, matched by name.
//
// Every parameter must be present with an identical shape; on error no
// parameter is modified. Gradients are left untouched.
func (c *Checkpoint) Restore(params []*autodiff.Parameter) error {
	for _, p := range params {
		m, ok := c.tensors[p.Name()]
		if !ok {
			return fmt.Errorf("%w: %q", ErrMissingTensor, p.Name())
		}
		if !m.Shape().Equal(p.Shape()) {
			return fmt.Errorf("parameter %q: %w", p.Name(),
				&matrix.ShapeError{Op: "restore", Left: p.Shape(), Right: m.Shape()})
		}
	}
	for _, p := range params {
		if err := p.SetValue(c.tensors[p.Name()]); err != nil {
			return err
		}
	}
	return nil
}

// WriteCheckpoint encodes params and meta into w.
func WriteCheckpoint(w io.Writer, params []*autodiff.Parameter, meta CheckpointMeta) error {
	header := Header{
		FormatVersion: FormatVersion,
		CreatedAt:     time.Now().UTC(),
		Tensors:       make([]TensorMeta, 0, len(params)),
		Checkpoint:    meta,
	}

	var data []byte
	for _, p := range params {
		value := p.Value()
		chunk := make([]byte, 4*value.Len())
		putFloats(chunk, value.Data())

		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   p.Name(),
			Shape:  [2]int{value.Rows(), value.Cols()},
			Offset: int64(len(data)),
			Size:   int64(len(chunk)),
		})
		data = append(data, chunk...)
	}
	if err := ValidateHeader(&header, int64(len(data))); err != nil {
		return fmt.Errorf("invalid checkpoint: %w", err)
	}

	headerBytes, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerBytes) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], FormatVersion)
	binary.LittleEndian.PutUint64(fixed[8:16], uint64(len(headerBytes)))
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(data)))
	sum := checksum(headerBytes, data)
	copy(fixed[checksumOffset:], sum[:])

	for _, part := range [][]byte{fixed, headerBytes, data} {
		if _, err := w.Write(part); err != nil {
			return fmt.Errorf("failed to write checkpoint: %w", err)
		}
	}
	return nil
}

// ReadCheckpoint decodes a checkpoint written by WriteCheckpoint.
//
// The checksum is verified before the header is parsed.
func ReadCheckpoint(r io.Reader) (*Checkpoint, error) {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, truncated("fixed header", err)
	}
	if string(fixed[0:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	if version := binary.LittleEndian.Uint32(fixed[4:8]); version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	headerSize := binary.LittleEndian.Uint64(fixed[8:16])
	dataSize := binary.LittleEndian.Uint64(fixed[16:24])
	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}
	if dataSize > MaxDataSize {
		return nil, &ValidationError{
			Type:    "data_too_large",
			Details: fmt.Sprintf("data size %d > max %d", dataSize, int64(MaxDataSize)),
		}
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, truncated("header", err)
	}
	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, truncated("tensor data", err)
	}

	if sum := checksum(headerBytes, data); !bytes.Equal(sum[:], fixed[checksumOffset:]) {
		return nil, ErrChecksumMismatch
	}

	ckpt := &Checkpoint{}
	if err := json.Unmarshal(headerBytes, &ckpt.Header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}
	if err := ValidateHeader(&ckpt.Header, int64(dataSize)); err != nil { //nolint:gosec // G115: bounded by MaxDataSize
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	ckpt.tensors = make(map[string]matrix.Matrix, len(ckpt.Header.Tensors))
	for _, t := range ckpt.Header.Tensors {
		m, err := matrix.FromSlice(t.Shape[0], t.Shape[1], getFloats(data[t.Offset:t.Offset+t.Size]))
		if err != nil {
			return nil, fmt.Errorf("tensor %q: %w", t.Name, err)
		}
		ckpt.tensors[t.Name] = m
	}
	return ckpt, nil
}

// SaveCheckpoint writes a checkpoint to path, replacing any existing file.
func SaveCheckpoint(path string, params []*autodiff.Parameter, meta CheckpointMeta) error {
	f, err := os.Create(path) //nolint:gosec // G304: path is chosen by the caller
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteCheckpoint(f, params, meta); err != nil {
		_ = f.Close() // Best effort close on error
		return err
	}
	return f.Close()
}

// LoadCheckpoint reads a checkpoint from path.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is chosen by the caller
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadCheckpoint(f)
}

func checksum(parts ...[]byte) [ChecksumSize]byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var sum [ChecksumSize]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
