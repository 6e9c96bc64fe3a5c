// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/ffnet/internal/tensor"
)

// Backend computes tensor operations on a device.
//
// Implementations:
//   - cpu.Backend: gonum-backed CPU implementation
//   - autodiff.Backend: decorator that records operations for backpropagation
type Backend = tensor.Backend

// Optional capabilities. Backends that implement them can run the matching
// layers and losses.
type (
	// ReLUBackend provides max(0, x).
	ReLUBackend = tensor.ReLUBackend
	// SigmoidBackend provides 1 / (1 + exp(-x)).
	SigmoidBackend = tensor.SigmoidBackend
	// TanhBackend provides tanh(x).
	TanhBackend = tensor.TanhBackend
	// LossBackend provides NLL and fused cross-entropy over integer labels.
	LossBackend = tensor.LossBackend
)
