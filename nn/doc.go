// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the feed-forward classifier and its building blocks.
//
// # Overview
//
// This package contains:
//   - Classifier: stack of affine layers ending in log-softmax
//   - Layers: Linear, Dropout, LogSoftmax, Sequential
//   - Activations: ReLU, Sigmoid, Tanh
//   - Loss functions: NLLLoss, CrossEntropyLoss
//   - Initialization: Normal, Xavier, Zeros
//   - Utilities: Module interface, Parameter, AccumulateGrads
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/ffnet/autodiff"
//	    "github.com/born-ml/ffnet/backend/cpu"
//	    "github.com/born-ml/ffnet/nn"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//
//	    model, err := nn.NewClassifier(nn.ClassifierConfig{
//	        Widths:     []int{784, 128, 64, 10},
//	        Activation: nn.ActivationReLU,
//	    }, backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    logProbs, err := model.Predict(x) // [batch, 10]
//	}
//
// # Output Convention
//
// Predict returns log-probabilities and pairs with NLLLoss. Logits returns
// the raw scores and pairs with CrossEntropyLoss, which fuses the
// log-softmax. Both pairings give the same loss value.
//
// # Errors
//
// Predict and Logits return ErrShapeMismatch (from the tensor package) for
// inputs that are not [batch, input_dim]. Losses return ErrInvalidLabel for
// labels outside [0, num_classes).
//
// # Parameter Management
//
// Gradients accumulate on each Parameter until ZeroGrad:
//
//	for _, p := range model.Parameters() {
//	    fmt.Println(p.Name(), p.Shape(), p.Grad().Shape())
//	}
package nn
