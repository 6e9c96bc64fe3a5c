// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/ffnet/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} is a matrix with 2 rows and 3 columns.
type Shape = tensor.Shape

// Device represents where tensor data resides.
type Device = tensor.Device

// CPU is the only device.
const CPU Device = tensor.CPU

// ErrShapeMismatch reports incompatible shapes.
var ErrShapeMismatch = tensor.ErrShapeMismatch

// Tensor is a float64 tensor bound to a backend.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros(tensor.Shape{2, 3}, backend)
//	y := tensor.Ones(tensor.Shape{3}, backend)
//	z := x.Add(y) // row broadcast
type Tensor = tensor.Tensor

// New wraps raw storage in a tensor bound to b.
func New(raw *Raw, b Backend) *Tensor {
	return tensor.New(raw, b)
}

// FromSlice copies data into a new tensor of the given shape.
func FromSlice(data []float64, shape Shape, b Backend) (*Tensor, error) {
	return tensor.FromSlice(data, shape, b)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, b Backend) *Tensor {
	return tensor.Zeros(shape, b)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, b Backend) *Tensor {
	return tensor.Ones(shape, b)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64, b Backend) *Tensor {
	return tensor.Full(shape, value, b)
}
