// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// This package implements reverse-mode automatic differentiation
// (backpropagation) using a gradient tape. It wraps any backend to add
// autodiff capabilities.
//
// Example:
//
//	import (
//	    "github.com/born-ml/ffnet/autodiff"
//	    "github.com/born-ml/ffnet/backend/cpu"
//	    "github.com/born-ml/ffnet/tensor"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    backend.Tape().StartRecording()
//
//	    x := tensor.Ones(tensor.Shape{2}, backend)
//	    y := x.Mul(x).Sum()
//
//	    grads := autodiff.Backward(y, backend)
//	    _ = grads[x.Raw()] // [2 2]
//	}
package autodiff

import (
	"github.com/born-ml/ffnet/internal/autodiff"
	"github.com/born-ml/ffnet/tensor"
)

// Backend is the autodiff-enabled backend.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates a new autodiff backend wrapping the given backend.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable interface for backends that support backpropagation.
type BackwardCapable = autodiff.BackwardCapable

// Backward computes gradients of t, seeded with ones, keyed by the Raw
// storage of every tensor t depends on.
func Backward(t *tensor.Tensor, backend BackwardCapable) map[*tensor.Raw]*tensor.Raw {
	return autodiff.Backward(t, backend)
}
