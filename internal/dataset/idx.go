package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// IDX magic numbers.
const (
	idxImagesMagic = 2051 // 0x00000803
	idxLabelsMagic = 2049 // 0x00000801

	maxIDXItems       = 1 << 24
	maxIDXImagePixels = 1 << 16
)

// ReadIDXImages reads an MNIST image file in IDX format.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
func ReadIDXImages(r io.Reader) ([][]byte, error) {
	var header struct {
		Magic, Count, Rows, Cols uint32
	}
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read IDX header: %w", err)
	}
	if header.Magic != idxImagesMagic {
		return nil, fmt.Errorf("%w: invalid magic number: got %d, want %d", ErrMalformed, header.Magic, idxImagesMagic)
	}
	imageSize := uint64(header.Rows) * uint64(header.Cols)
	if header.Count > maxIDXItems || imageSize == 0 || imageSize > maxIDXImagePixels {
		return nil, fmt.Errorf("%w: implausible shape %d×%d×%d", ErrMalformed, header.Count, header.Rows, header.Cols)
	}

	images := make([][]byte, header.Count)
	for i := range images {
		images[i] = make([]byte, imageSize)
		if _, err := io.ReadFull(r, images[i]); err != nil {
			return nil, fmt.Errorf("failed to read image %d: %w", i, err)
		}
	}
	return images, nil
}

// ReadIDXLabels reads an MNIST label file in IDX format.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func ReadIDXLabels(r io.Reader) ([]byte, error) {
	var header struct {
		Magic, Count uint32
	}
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read IDX header: %w", err)
	}
	if header.Magic != idxLabelsMagic {
		return nil, fmt.Errorf("%w: invalid magic number: got %d, want %d", ErrMalformed, header.Magic, idxLabelsMagic)
	}
	if header.Count > maxIDXItems {
		return nil, fmt.Errorf("%w: implausible label count %d", ErrMalformed, header.Count)
	}

	labels := make([]byte, header.Count)
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}
	return labels, nil
}

// LoadIDX loads MNIST from the official IDX files in dataDir.
//
// Expected files in dataDir:
//   - train-images-idx3-ubyte (or t10k-images-idx3-ubyte for test)
//   - train-labels-idx1-ubyte (or t10k-labels-idx1-ubyte for test)
//
// maxSamples limits how many samples are kept (0 = load all).
func LoadIDX(dataDir string, train bool, maxSamples int) (*Dataset, error) {
	prefix := "t10k"
	if train {
		prefix = "train"
	}

	imagesRaw, err := readIDXFile(filepath.Join(dataDir, prefix+"-images-idx3-ubyte"), ReadIDXImages)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	labelsRaw, err := readIDXFile(filepath.Join(dataDir, prefix+"-labels-idx1-ubyte"), ReadIDXLabels)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}
	return FromIDX(imagesRaw, labelsRaw, maxSamples)
}

// FromIDX normalizes raw IDX images and labels into a Dataset.
func FromIDX(imagesRaw [][]byte, labelsRaw []byte, maxSamples int) (*Dataset, error) {
	if len(imagesRaw) != len(labelsRaw) {
		return nil, fmt.Errorf("%w: image count (%d) != label count (%d)", ErrMalformed, len(imagesRaw), len(labelsRaw))
	}

	numSamples := len(imagesRaw)
	if maxSamples > 0 && numSamples > maxSamples {
		numSamples = maxSamples
	}

	data := &Dataset{
		Images: make([][]float32, numSamples),
		Labels: make([]int, numSamples),
	}
	for i := range numSamples {
		if int(labelsRaw[i]) >= NumClasses {
			return nil, fmt.Errorf("%w: label %d out of range at sample %d", ErrMalformed, labelsRaw[i], i)
		}
		img := make([]float32, len(imagesRaw[i]))
		for j, px := range imagesRaw[i] {
			img[j] = float32(px) / 255.0
		}
		data.Images[i] = img
		data.Labels[i] = int(labelsRaw[i])
	}
	return data, nil
}

func readIDXFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is chosen by the caller
	if err != nil {
		var zero T
		return zero, err
	}
	defer func() { _ = f.Close() }()
	return read(f)
}
