// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// Optimizers update parameters from the gradients accumulated on each
// nn.Parameter, so a step reads whatever the backward passes since the
// last ZeroGrad left there.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/ffnet/autodiff"
//	    "github.com/born-ml/ffnet/backend/cpu"
//	    "github.com/born-ml/ffnet/nn"
//	    "github.com/born-ml/ffnet/optim"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    model, _ := nn.NewClassifier(nn.ClassifierConfig{Widths: []int{784, 10}}, backend)
//
//	    optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.001})
//	}
//
// # Training Loop Pattern
//
//	for _, batch := range batches {
//	    // 1. Zero gradients
//	    optimizer.ZeroGrad()
//
//	    // 2. Forward pass
//	    logProbs, _ := model.Predict(x)
//	    loss, _ := criterion.Forward(logProbs, batch.Labels)
//
//	    // 3. Backward pass
//	    grads := autodiff.Backward(loss, backend)
//	    nn.AccumulateGrads(model.Parameters(), grads)
//
//	    // 4. Update parameters
//	    optimizer.Step()
//	}
//
// The train package runs this loop for you.
package optim
