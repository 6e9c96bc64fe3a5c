package ops

import "github.com/born-ml/ffnet/internal/tensor"

// AddOp represents an element-wise addition operation: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
//
// Note: If broadcasting was used in forward pass, gradients must be
// reduced (summed) along the broadcast dimensions to match input shapes.
type AddOp struct {
	binaryOp
}

// NewAddOp creates a new AddOp.
func NewAddOp(a, b, output *tensor.Raw) *AddOp {
	return &AddOp{binaryOp{inputs: []*tensor.Raw{a, b}, output: output}}
}

// Backward computes input gradients for addition.
func (op *AddOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	a, b := op.inputs[0], op.inputs[1]

	gradA := reduceBroadcast(outputGrad, a.Shape(), backend)
	gradB := reduceBroadcast(outputGrad, b.Shape(), backend)

	return []*tensor.Raw{gradA, gradB}
}
