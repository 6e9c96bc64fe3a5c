// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/ffnet/internal/tensor"
)

// Raw is the storage behind a Tensor: row-major float64 data with a shape.
//
// Most users should use Tensor instead. Raw values are what the gradient
// tape keys gradients by and what checkpoints serialize.
//
// Example:
//
//	raw, _ := tensor.RawFromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	row := raw.Row(1) // [3 4], shares storage
type Raw = tensor.Raw

// NewRaw allocates zero-filled storage.
func NewRaw(shape Shape, device Device) (*Raw, error) {
	return tensor.NewRaw(shape, device)
}

// RawFromSlice copies data into new storage of the given shape.
func RawFromSlice(data []float64, shape Shape) (*Raw, error) {
	return tensor.RawFromSlice(data, shape)
}
