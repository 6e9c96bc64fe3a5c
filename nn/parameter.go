// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/tensor"
)

// Parameter is a named trainable tensor with its accumulated gradient.
type Parameter = nn.Parameter

// NewParameter creates a parameter with a zero gradient.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, t)
}

// AccumulateGrads adds the gradients of a backward pass to params and
// returns how many parameters received one.
func AccumulateGrads(params []*Parameter, grads map[*tensor.Raw]*tensor.Raw) (int, error) {
	return nn.AccumulateGrads(params, grads)
}

// GradNorm returns the global L2 norm of the gradients of params.
func GradNorm(params []*Parameter) float64 {
	return nn.GradNorm(params)
}
