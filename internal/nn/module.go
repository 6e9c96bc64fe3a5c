// Package nn implements the neural network modules used by the classifier.
//
// This package provides building blocks for constructing feed-forward networks:
//   - Module interface: Base interface for all NN components
//   - Parameter: Trainable parameters with accumulated gradients
//   - Linear: Fully connected layer
//   - Activations: ReLU, Sigmoid, Tanh
//   - Dropout and LogSoftmax
//   - Sequential: Container for stacking layers
//   - Classifier: widths-driven feed-forward classifier
//   - Loss functions: NLLLoss, CrossEntropyLoss
//
// Design inspired by PyTorch's nn.Module.
package nn

import (
	"github.com/born-ml/ffnet/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all trainable parameters
//
// Modules can be composed to build complex architectures:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128, init, backend),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10, init, backend),
//	)
type Module interface {
	// Forward computes the output of the module given an input tensor.
	//
	// The input tensor should have the appropriate shape for this module.
	// For example, Linear expects [batch_size, in_features].
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Parameters returns all trainable parameters of this module.
	// Returns an empty slice for modules without trainable parameters.
	Parameters() []*Parameter
}

// ModeSetter is implemented by modules whose behavior differs between
// training and inference (e.g. Dropout).
type ModeSetter interface {
	SetTraining(training bool)
}
