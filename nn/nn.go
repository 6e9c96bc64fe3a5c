// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/tensor"
)

// Errors.
var (
	ErrInvalidLabel  = nn.ErrInvalidLabel
	ErrInvalidConfig = nn.ErrInvalidConfig
)

// Classifier

// Classifier maps [batch, input_dim] inputs to [batch, num_classes]
// log-probabilities.
type Classifier = nn.Classifier

// ClassifierConfig describes the classifier architecture.
type ClassifierConfig = nn.ClassifierConfig

// NewClassifier builds a classifier.
//
// Example:
//
//	model, err := nn.NewClassifier(nn.ClassifierConfig{
//	    Widths:     []int{4, 8, 3},
//	    Activation: nn.ActivationSigmoid,
//	    Seed:       42,
//	}, backend)
func NewClassifier(cfg ClassifierConfig, backend tensor.Backend) (*Classifier, error) {
	return nn.NewClassifier(cfg, backend)
}

// Activations

// Activation selects the hidden-layer nonlinearity.
type Activation = nn.Activation

// Supported activations.
const (
	ActivationReLU    = nn.ActivationReLU
	ActivationSigmoid = nn.ActivationSigmoid
	ActivationTanh    = nn.ActivationTanh
)

// ParseActivation parses "relu", "sigmoid" or "tanh".
func ParseActivation(s string) (Activation, error) {
	return nn.ParseActivation(s)
}

// ReLU represents the Rectified Linear Unit activation function.
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation layer.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Sigmoid represents the logistic activation function.
type Sigmoid = nn.Sigmoid

// NewSigmoid creates a new Sigmoid activation layer.
func NewSigmoid() *Sigmoid {
	return nn.NewSigmoid()
}

// Tanh represents the hyperbolic tangent activation function.
type Tanh = nn.Tanh

// NewTanh creates a new Tanh activation layer.
func NewTanh() *Tanh {
	return nn.NewTanh()
}

// Layers

// Linear represents a fully connected layer: y = x @ W + b.
type Linear = nn.Linear

// NewLinear creates a linear layer whose weight is drawn from initializer
// and whose bias starts at zero.
//
// Example:
//
//	layer := nn.NewLinear(784, 128, nn.Xavier(rand.NewPCG(1, 2)), backend)
func NewLinear(inFeatures, outFeatures int, initializer Initializer, backend tensor.Backend) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, initializer, backend)
}

// Dropout zeroes inputs with probability p in training mode.
type Dropout = nn.Dropout

// NewDropout creates a dropout layer drawing masks from src.
func NewDropout(p float64, src rand.Source) *Dropout {
	return nn.NewDropout(p, src)
}

// LogSoftmax applies a stabilized log-softmax along one dimension.
type LogSoftmax = nn.LogSoftmax

// NewLogSoftmax creates a log-softmax layer over dim.
func NewLogSoftmax(dim int) *LogSoftmax {
	return nn.NewLogSoftmax(dim)
}

// Sequential chains modules.
type Sequential = nn.Sequential

// NewSequential creates a container running modules in order.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Initialization

// InitScheme selects how weights are initialized.
type InitScheme = nn.InitScheme

// Supported init schemes.
const (
	InitNormal = nn.InitNormal
	InitXavier = nn.InitXavier
)

// DefaultInitStd is the standard deviation used by InitNormal when none
// is configured.
const DefaultInitStd = nn.DefaultInitStd

// Initializer produces a weight tensor for a layer.
type Initializer = nn.Initializer

// Normal draws weights from N(0, std²).
func Normal(std float64, src rand.Source) Initializer {
	return nn.Normal(std, src)
}

// Xavier draws weights from the Glorot uniform distribution.
func Xavier(src rand.Source) Initializer {
	return nn.Xavier(src)
}

// Losses

// LossFunction turns model output and labels into a scalar loss.
type LossFunction = nn.LossFunction

// OutputConvention says which model output a loss expects.
type OutputConvention = nn.OutputConvention

// Output conventions.
const (
	LogProbabilities = nn.LogProbabilities
	Logits           = nn.Logits
)

// NLLLoss is the negative log-likelihood over log-probabilities.
type NLLLoss = nn.NLLLoss

// NewNLLLoss creates an NLL loss.
//
// Example:
//
//	criterion := nn.NewNLLLoss()
//	loss, err := criterion.Forward(logProbs, labels)
func NewNLLLoss() *NLLLoss {
	return nn.NewNLLLoss()
}

// CrossEntropyLoss is log-softmax and NLL fused over logits.
type CrossEntropyLoss = nn.CrossEntropyLoss

// NewCrossEntropyLoss creates a cross-entropy loss.
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return nn.NewCrossEntropyLoss()
}

// NewLoss returns the loss named "nll" or "cross_entropy".
func NewLoss(name string) (LossFunction, error) {
	return nn.NewLoss(name)
}
