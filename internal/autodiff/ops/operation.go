// Package ops defines operation interfaces and implementations for automatic differentiation.
//
// Each operation implements the Operation interface, which provides:
//   - Forward pass: computed by the backend
//   - Backward pass: computes gradients for inputs given output gradient
//
// Supported operations:
//   - AddOp: element-wise addition with row broadcasting
//   - MulOp: element-wise multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - MatMulOp: matrix multiplication (d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad)
//   - TransposeOp, ExpOp, SumOp, SumDimOp
//   - ReLUOp, SigmoidOp, TanhOp: activations
//   - LogSoftmaxOp: normalized log-probabilities
//   - NLLOp, CrossEntropyOp: classification losses
package ops

import "github.com/born-ml/ffnet/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass,
// and computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	//
	// Example for AddOp:
	//   inputs: [a, b]
	//   outputGrad: dL/d(a+b)
	//   returns: [dL/d(a+b), dL/d(a+b)] (gradient flows equally to both inputs)
	Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.Raw

	// Output returns the output tensor produced by this operation.
	Output() *tensor.Raw
}

// unaryOp holds the bookkeeping shared by single-input operations.
type unaryOp struct {
	input  *tensor.Raw
	output *tensor.Raw
}

// Inputs returns the single input tensor.
func (op *unaryOp) Inputs() []*tensor.Raw {
	return []*tensor.Raw{op.input}
}

// Output returns the output tensor.
func (op *unaryOp) Output() *tensor.Raw {
	return op.output
}

// binaryOp holds the bookkeeping shared by two-input operations.
type binaryOp struct {
	inputs []*tensor.Raw
	output *tensor.Raw
}

// Inputs returns the input tensors [a, b].
func (op *binaryOp) Inputs() []*tensor.Raw {
	return op.inputs
}

// Output returns the output tensor.
func (op *binaryOp) Output() *tensor.Raw {
	return op.output
}
