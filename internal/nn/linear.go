package nn

import (
	"fmt"

	"github.com/born-ml/ffnet/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Keeping W as [in, out] means the forward pass needs no transpose.
//
// Example:
//
//	layer := nn.NewLinear(784, 128, nn.Normal(0.01, src), backend)
//	output := layer.Forward(input) // [32, 784] -> [32, 128]
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [in_features, out_features]
	bias        *Parameter // [out_features]
}

// NewLinear creates a new Linear layer.
// Weights come from initializer; biases start at zero.
func NewLinear(inFeatures, outFeatures int, initializer Initializer, backend tensor.Backend) *Linear {
	weightShape := tensor.Shape{inFeatures, outFeatures}
	weight := NewParameter("weight", initializer(inFeatures, outFeatures, weightShape, backend))

	bias := NewParameter("bias", Zeros(tensor.Shape{outFeatures}, backend))

	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
	}
}

// Forward computes x @ W + b.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
//
// Panics on a mismatched input; Classifier validates inputs before calling.
func (l *Linear) Forward(input *tensor.Tensor) *tensor.Tensor {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [batch, features], got shape %v", inputShape))
	}
	if inputShape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, inputShape[1]))
	}

	// [batch, in] @ [in, out] = [batch, out], bias broadcast over rows
	return input.MatMul(l.weight.Tensor()).Add(l.bias.Tensor())
}

// Parameters returns [weight, bias].
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}
