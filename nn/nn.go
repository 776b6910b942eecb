// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers that record onto an autodiff tape.
//
// # Overview
//
// This package contains:
//   - Layers: Linear
//   - Activations: ReLU, Softmax
//   - Containers: Sequential
//
// # Basic Usage
//
//	r := rng.New(42)
//	fc1, _ := nn.NewLinear("fc1", 784, 128, r)
//	fc2, _ := nn.NewLinear("fc2", 128, 10, r)
//	model := nn.NewSequential(fc1, nn.NewReLU(), fc2)
//
//	tape := autodiff.NewTape()
//	logits, err := model.Forward(tape, tape.Constant(images))
package nn

import (
	"github.com/born-ml/minigrad/internal/matrix"
	"github.com/born-ml/minigrad/internal/nn"
)

// Module interface defines the common interface for all neural network modules.
type Module = nn.Module

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// NewLinear creates a new linear layer with Xavier weights and zero biases.
//
// Example:
//
//	layer, err := nn.NewLinear("fc1", 784, 128, rng.New(42))
func NewLinear(name string, inFeatures, outFeatures int, rng matrix.Sampler) (*Linear, error) {
	return nn.NewLinear(name, inFeatures, outFeatures, rng)
}

// Activations

// ReLU represents a Rectified Linear Unit activation.
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Softmax represents a row-wise softmax.
type Softmax = nn.Softmax

// NewSoftmax creates a new Softmax activation.
func NewSoftmax() *Softmax {
	return nn.NewSoftmax()
}

// Containers

// Sequential chains modules together.
type Sequential = nn.Sequential

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}
