// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the float64 tensors the classifier computes with.
//
// # Overview
//
// A Tensor is a Raw buffer (row-major float64 storage with a Shape) bound
// to the Backend that computes on it. Operations dispatch through the
// backend, so a tensor on an autodiff backend records every operation on
// the gradient tape.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/ffnet/backend/cpu"
//	    "github.com/born-ml/ffnet/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x, _ := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
//	    w := tensor.Ones(tensor.Shape{3, 2}, backend)
//
//	    logProbs := x.MatMul(w).LogSoftmax(1) // [2, 2]
//	    classes := logProbs.Argmax(1)
//	}
//
// # Broadcasting
//
// Add and Mul accept equal shapes, or a [rows, cols] tensor with a [cols]
// or [1, cols] row vector, which is how a bias is added to a batch.
//
// # Errors
//
// Constructors return errors wrapping ErrShapeMismatch when data and shape
// disagree. Operations on impossible shapes panic: they are programming
// errors, not data errors.
package tensor
