// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the dense 2-D float32 matrix used throughout minigrad.
//
// Matrices are values: every operation returns a fresh backing array.
//
// Example:
//
//	import "github.com/born-ml/minigrad/matrix"
//
//	a, _ := matrix.FromRows([][]float32{{1, 2}, {3, 4}})
//	b, _ := a.MatMul(matrix.Identity(2))
//	fmt.Println(b)
package matrix

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/minigrad/internal/matrix"
)

// Matrix is a fixed-shape dense 2-D array of float32.
type Matrix = matrix.Matrix

// Shape is a (rows, cols) pair.
type Shape = matrix.Shape

// ShapeError reports operands with incompatible shapes.
type ShapeError = matrix.ShapeError

// Sampler is the random source consumed by FillUniform and FillXavier.
type Sampler = matrix.Sampler

// Common errors.
var (
	ErrShapeMismatch   = matrix.ErrShapeMismatch
	ErrInvalidArgument = matrix.ErrInvalidArgument
)

// New creates a zero-filled rows×cols matrix.
func New(rows, cols int) Matrix {
	return matrix.New(rows, cols)
}

// Scalar creates a 1×1 matrix holding v.
func Scalar(v float32) Matrix {
	return matrix.Scalar(v)
}

// Ones creates a rows×cols matrix filled with ones.
func Ones(rows, cols int) Matrix {
	return matrix.Ones(rows, cols)
}

// Identity creates an n×n identity matrix.
func Identity(n int) Matrix {
	return matrix.Identity(n)
}

// FromRows builds a matrix from equally long rows.
func FromRows(rows [][]float32) (Matrix, error) {
	return matrix.FromRows(rows)
}

// FromSlice builds a rows×cols matrix from row-major data.
func FromSlice(rows, cols int, data []float32) (Matrix, error) {
	return matrix.FromSlice(rows, cols, data)
}

// FromDense converts a gonum matrix to float32. Convert back with Matrix.Dense.
//
// Example:
//
//	var prod mat.Dense
//	prod.Mul(a.Dense(), b.Dense())
//	c := matrix.FromDense(&prod)
func FromDense(d mat.Matrix) Matrix {
	return matrix.FromDense(d)
}
