// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU backend for tensor operations.
//
// # Overview
//
// The backend computes in float64:
//   - Matrix multiplication through gonum's BLAS-backed mat.Dense
//   - Element-wise and reduction kernels through gonum/floats
//   - Row broadcasting for bias addition
//   - Numerically stable log-softmax, NLL and cross-entropy
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/ffnet/backend/cpu"
//	    "github.com/born-ml/ffnet/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    model, _ := nn.NewClassifier(nn.ClassifierConfig{Widths: []int{784, 10}}, backend)
//	}
//
// For training, wrap it with autodiff.New so operations are recorded.
//
// # Thread Safety
//
// The backend holds no mutable state. Tensors themselves are not
// synchronized.
package cpu
