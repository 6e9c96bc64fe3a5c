// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/ffnet/internal/nn"
)

// Module is the base interface for all neural network components.
//
// Every module implements:
//   - Forward: compute output from input
//   - Parameters: return all trainable parameters
//
// Modules compose:
//
//	body := nn.NewSequential(
//	    nn.NewLinear(784, 128, nn.Normal(0.01, src), backend),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10, nn.Normal(0.01, src), backend),
//	)
type Module = nn.Module

// ModeSetter is implemented by modules that behave differently in
// training and evaluation, such as Dropout.
type ModeSetter = nn.ModeSetter
