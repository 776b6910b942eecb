// Package dataset loads handwritten-digit data and turns it into matrices.
//
// Two on-disk formats are supported:
//   - Kaggle-style CSV: label,pixel0,...,pixel783 with an optional header row
//   - The official MNIST IDX binaries (train-images-idx3-ubyte, ...)
//
// Pixels are normalized to [0, 1]. Labels become one-hot rows through OneHot.
package dataset

import (
	"errors"
	"fmt"

	"github.com/born-ml/minigrad/internal/matrix"
	"github.com/born-ml/minigrad/internal/rng"
)

// MNIST geometry.
const (
	ImageSide   = 28
	ImagePixels = ImageSide * ImageSide
	NumClasses  = 10
)

// ErrMalformed is returned for input that does not follow the expected format.
var ErrMalformed = errors.New("malformed dataset")

// Dataset holds images and labels.
type Dataset struct {
	Images [][]float32 // [num_samples][pixels], normalized to [0, 1]
	Labels []int       // [num_samples]
}

// NumSamples returns the total number of samples in the dataset.
func (d *Dataset) NumSamples() int {
	return len(d.Images)
}

// Split splits the dataset into train and validation sets.
//
// The first (1 - validationRatio) share of samples goes to training. Both
// halves share backing arrays with d.
func (d *Dataset) Split(validationRatio float32) (*Dataset, *Dataset) {
	splitIdx := int(float32(d.NumSamples()) * (1.0 - validationRatio))
	splitIdx = max(0, min(splitIdx, d.NumSamples()))

	return &Dataset{
			Images: d.Images[:splitIdx],
			Labels: d.Labels[:splitIdx],
		}, &Dataset{
			Images: d.Images[splitIdx:],
			Labels: d.Labels[splitIdx:],
		}
}

// Image returns sample i as a 1×pixels row vector.
func (d *Dataset) Image(i int) (matrix.Matrix, error) {
	if i < 0 || i >= d.NumSamples() {
		return matrix.Matrix{}, fmt.Errorf("%w: sample %d out of range [0, %d)", matrix.ErrInvalidArgument, i, d.NumSamples())
	}
	return matrix.FromRows([][]float32{d.Images[i]})
}

// Batch is a mini-batch ready to be fed to a tape.
type Batch struct {
	Images  matrix.Matrix // [size, pixels]
	Targets matrix.Matrix // [size, NumClasses], one-hot
	Labels  []int
}

// Size returns the number of samples in the batch.
func (b Batch) Size() int {
	return len(b.Labels)
}

// Batches splits the dataset into mini-batches of batchSize samples.
//
// The last batch may be smaller. When r is non-nil the samples are shuffled
// first.
func (d *Dataset) Batches(batchSize int, r *rng.Random) ([]Batch, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", matrix.ErrInvalidArgument, batchSize)
	}
	if len(d.Images) != len(d.Labels) {
		return nil, fmt.Errorf("%w: %d images but %d labels", ErrMalformed, len(d.Images), len(d.Labels))
	}

	indices := make([]int, d.NumSamples())
	for i := range indices {
		indices[i] = i
	}
	if r != nil {
		indices = r.Perm(d.NumSamples())
	}

	batches := make([]Batch, 0, (len(indices)+batchSize-1)/batchSize)
	for start := 0; start < len(indices); start += batchSize {
		end := min(start+batchSize, len(indices))

		rows := make([][]float32, 0, end-start)
		labels := make([]int, 0, end-start)
		for _, idx := range indices[start:end] {
			rows = append(rows, d.Images[idx])
			labels = append(labels, d.Labels[idx])
		}

		images, err := matrix.FromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("batch at %d: %w", start, err)
		}
		targets, err := OneHotBatch(labels, NumClasses)
		if err != nil {
			return nil, fmt.Errorf("batch at %d: %w", start, err)
		}
		batches = append(batches, Batch{Images: images, Targets: targets, Labels: labels})
	}
	return batches, nil
}

// OneHot returns a 1×classes row with a single 1 at label.
func OneHot(label, classes int) (matrix.Matrix, error) {
	return OneHotBatch([]int{label}, classes)
}

// OneHotBatch returns a len(labels)×classes matrix, one one-hot row per label.
func OneHotBatch(labels []int, classes int) (matrix.Matrix, error) {
	if classes <= 0 {
		return matrix.Matrix{}, fmt.Errorf("%w: classes must be positive, got %d", matrix.ErrInvalidArgument, classes)
	}
	m := matrix.New(len(labels), classes)
	for i, label := range labels {
		if label < 0 || label >= classes {
			return matrix.Matrix{}, fmt.Errorf("%w: label %d out of range [0, %d)", matrix.ErrInvalidArgument, label, classes)
		}
		m.Set(i, label, 1)
	}
	return m, nil
}

// Synthetic creates n labelled patterns for exercising the training pipeline
// without MNIST files.
//
// Digit k lights a horizontal band starting at row 2k, plus low uniform noise
// drawn from r. This is NOT realistic MNIST data.
func Synthetic(n int, r *rng.Random) *Dataset {
	images := make([][]float32, n)
	labels := make([]int, n)

	for i := range n {
		digit := i % NumClasses
		img := make([]float32, ImagePixels)
		for j := range img {
			img[j] = r.Uniform(0, 0.1)
		}

		startRow := digit * 2
		for row := startRow; row < startRow+8 && row < ImageSide; row++ {
			for col := 5; col < 23; col++ {
				img[row*ImageSide+col] = 0.8
			}
		}

		images[i] = img
		labels[i] = digit
	}

	return &Dataset{Images: images, Labels: labels}
}
