// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ffnet/backend/cpu"
	"github.com/born-ml/ffnet/tensor"
)

// TestBackendInterface verifies that the CPU backend implements every
// optional capability.
func TestBackendInterface(_ *testing.T) {
	var b tensor.Backend = cpu.New()
	_ = b.(tensor.ReLUBackend)
	_ = b.(tensor.SigmoidBackend)
	_ = b.(tensor.TanhBackend)
	_ = b.(tensor.LossBackend)
}

func TestRawAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.CPU)
	require.NoError(t, err)
	assert.True(t, raw.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, tensor.CPU, raw.Device())
	assert.Equal(t, 6, raw.NumElements())

	_, err = tensor.RawFromSlice([]float64{1, 2, 3}, tensor.Shape{2, 2})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestTensorAPI(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	sum := x.Add(tensor.Ones(tensor.Shape{2}, backend))
	assert.Equal(t, []float64{2, 3, 4, 5}, sum.Data())

	prod := x.MatMul(tensor.Full(tensor.Shape{2, 1}, 0.5, backend))
	assert.Equal(t, []float64{1.5, 3.5}, prod.Data())

	assert.Equal(t, []int{1, 1}, x.Argmax(1))
	assert.Equal(t, 10.0, x.Sum().Item())
	assert.Equal(t, []float64{0, 0}, tensor.Zeros(tensor.Shape{2}, backend).Data())
}
