package serialization_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/matrix"
	"github.com/born-ml/minigrad/internal/rng"
	"github.com/born-ml/minigrad/internal/serialization"
)

func testParams(seed uint64) []*autodiff.Parameter {
	r := rng.New(seed)
	w := matrix.New(4, 3)
	w.FillUniform(r, -1, 1)
	b := matrix.New(1, 3)
	b.FillUniform(r, -1, 1)
	return []*autodiff.Parameter{
		autodiff.NewParameter("w1", w),
		autodiff.NewParameter("b1", b),
	}
}

func TestCheckpoint_RoundTrip(t *testing.T) {
	params := testParams(1)
	meta := serialization.CheckpointMeta{
		Epoch:     12,
		Loss:      0.25,
		Accuracy:  0.9,
		Optimizer: "adam",
		Metadata:  map[string]string{"dataset": "mnist"},
	}

	var buf bytes.Buffer
	require.NoError(t, serialization.WriteCheckpoint(&buf, params, meta))

	ckpt, err := serialization.ReadCheckpoint(&buf)
	require.NoError(t, err)
	assert.Equal(t, serialization.FormatVersion, ckpt.Header.FormatVersion)
	assert.Equal(t, meta, ckpt.Header.Checkpoint)
	require.Len(t, ckpt.Header.Tensors, 2)
	assert.Equal(t, "w1", ckpt.Header.Tensors[0].Name)
	assert.Equal(t, [2]int{4, 3}, ckpt.Header.Tensors[0].Shape)

	for _, p := range params {
		m, ok := ckpt.Tensor(p.Name())
		require.True(t, ok)
		assert.True(t, p.Value().Equal(m))
	}
	_, ok := ckpt.Tensor("missing")
	assert.False(t, ok)
}

func TestCheckpoint_Restore(t *testing.T) {
	saved := testParams(1)
	path := filepath.Join(t.TempDir(), "model.ckpt")
	require.NoError(t, serialization.SaveCheckpoint(path, saved, serialization.CheckpointMeta{}))

	ckpt, err := serialization.LoadCheckpoint(path)
	require.NoError(t, err)

	fresh := testParams(2)
	require.NoError(t, ckpt.Restore(fresh))
	for i := range saved {
		assert.True(t, saved[i].Value().Equal(*fresh[i].Value()))
	}

	missing := []*autodiff.Parameter{autodiff.NewParameter("w2", matrix.New(4, 3))}
	require.ErrorIs(t, ckpt.Restore(missing), serialization.ErrMissingTensor)

	// A shape mismatch leaves every parameter untouched.
	mismatched := []*autodiff.Parameter{
		autodiff.NewParameter("b1", matrix.New(1, 3)),
		autodiff.NewParameter("w1", matrix.New(3, 4)),
	}
	require.ErrorIs(t, ckpt.Restore(mismatched), matrix.ErrShapeMismatch)
	assert.Equal(t, []float32{0, 0, 0}, mismatched[0].Value().Data())
}

func TestCheckpoint_Corruption(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, serialization.WriteCheckpoint(&buf, testParams(3), serialization.CheckpointMeta{}))
	good := buf.Bytes()

	corrupt := func(mutate func([]byte) []byte) []byte {
		b := append([]byte(nil), good...)
		return mutate(b)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"bad magic", corrupt(func(b []byte) []byte { b[0] = 'X'; return b }), serialization.ErrInvalidMagic},
		{"bad version", corrupt(func(b []byte) []byte { b[4] = 9; return b }), serialization.ErrUnsupportedVersion},
		{"flipped data bit", corrupt(func(b []byte) []byte { b[len(b)-1] ^= 0x01; return b }), serialization.ErrChecksumMismatch},
		{"truncated", corrupt(func(b []byte) []byte { return b[:len(b)-5] }), serialization.ErrTruncated},
		{"no fixed header", good[:10], serialization.ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := serialization.ReadCheckpoint(bytes.NewReader(tt.data))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWriteCheckpoint_RejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "../w", "layer/w", "a\x00b"} {
		params := []*autodiff.Parameter{autodiff.NewParameter(name, matrix.Scalar(1))}
		err := serialization.WriteCheckpoint(&bytes.Buffer{}, params, serialization.CheckpointMeta{})
		var verr *serialization.ValidationError
		require.ErrorAs(t, err, &verr, "name %q", name)
	}

	dup := []*autodiff.Parameter{
		autodiff.NewParameter("w", matrix.Scalar(1)),
		autodiff.NewParameter("w", matrix.Scalar(2)),
	}
	err := serialization.WriteCheckpoint(&bytes.Buffer{}, dup, serialization.CheckpointMeta{})
	var verr *serialization.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "duplicate_name", verr.Type)
}

func TestValidateTensorOffsets(t *testing.T) {
	tests := []struct {
		name    string
		tensors []serialization.TensorMeta
		want    string
	}{
		{"negative", []serialization.TensorMeta{{Name: "a", Shape: [2]int{1, 1}, Offset: -4, Size: 4}}, "negative_offset"},
		{"size mismatch", []serialization.TensorMeta{{Name: "a", Shape: [2]int{2, 2}, Size: 4}}, "shape_size_mismatch"},
		{"wrapping product", []serialization.TensorMeta{{Name: "a", Shape: [2]int{1 << 32, 1 << 32}, Size: 0}}, "shape_size_mismatch"},
		{"out of bounds", []serialization.TensorMeta{{Name: "a", Shape: [2]int{2, 2}, Offset: 8, Size: 16}}, "out_of_bounds"},
		{"overlap", []serialization.TensorMeta{
			{Name: "a", Shape: [2]int{1, 2}, Offset: 0, Size: 8},
			{Name: "b", Shape: [2]int{1, 2}, Offset: 4, Size: 8},
		}, "offset_overlap"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := serialization.ValidateTensorOffsets(tt.tensors, 16)
			var verr *serialization.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Type)
		})
	}

	require.NoError(t, serialization.ValidateTensorOffsets([]serialization.TensorMeta{
		{Name: "a", Shape: [2]int{1, 2}, Offset: 0, Size: 8},
		{Name: "b", Shape: [2]int{1, 2}, Offset: 8, Size: 8},
	}, 16))
}
