package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// LoadCSV loads a Kaggle-style MNIST CSV file.
//
// CSV Format:
//
//	label,pixel0,pixel1,...,pixel783
//	5,0,0,12,...,0
//	0,0,0,0,...,0
//
// maxSamples limits how many rows are read (0 = load all).
func LoadCSV(path string, maxSamples int) (*Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is chosen by the caller
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadCSV(f, maxSamples)
}

// ReadCSV parses MNIST CSV records from r.
//
// A first row whose first field mentions "label" or does not start with a
// digit is treated as a header and skipped. Every record must hold one label
// in [0, 9] and 784 pixel values in [0, 255].
func ReadCSV(r io.Reader, maxSamples int) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	data := &Dataset{}
	for row := 1; maxSamples <= 0 || data.NumSamples() < maxSamples; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if row == 1 && isHeader(record) {
			continue
		}

		label, image, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		data.Images = append(data.Images, image)
		data.Labels = append(data.Labels, label)
	}

	if data.NumSamples() == 0 {
		return nil, fmt.Errorf("%w: CSV holds no samples", ErrMalformed)
	}
	return data, nil
}

func isHeader(record []string) bool {
	first := strings.TrimSpace(record[0])
	if strings.Contains(strings.ToLower(first), "label") {
		return true
	}
	return first == "" || !unicode.IsDigit(rune(first[0]))
}

func parseRecord(record []string) (int, []float32, error) {
	if len(record) != 1+ImagePixels {
		return 0, nil, fmt.Errorf("%w: got %d fields, want %d", ErrMalformed, len(record), 1+ImagePixels)
	}

	label, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: invalid label: %w", ErrMalformed, err)
	}
	if label < 0 || label >= NumClasses {
		return 0, nil, fmt.Errorf("%w: label out of range [0, 9]: %d", ErrMalformed, label)
	}

	image := make([]float32, ImagePixels)
	for j := range image {
		pixel, err := strconv.Atoi(strings.TrimSpace(record[j+1]))
		if err != nil {
			return 0, nil, fmt.Errorf("%w: invalid pixel in column %d: %w", ErrMalformed, j+1, err)
		}
		if pixel < 0 || pixel > 255 {
			return 0, nil, fmt.Errorf("%w: pixel out of range [0, 255] in column %d: %d", ErrMalformed, j+1, pixel)
		}
		image[j] = float32(pixel) / 255.0
	}
	return label, image, nil
}
