package ops

import "github.com/born-ml/ffnet/internal/tensor"

// MulOp represents an element-wise multiplication: output = a * b.
//
// Backward pass:
//   - grad_a = outputGrad * b
//   - grad_b = outputGrad * a (summed over rows if b was broadcast)
//
// Dropout records a MulOp against its mask, so the mask routes gradients.
type MulOp struct {
	binaryOp
}

// NewMulOp creates a new MulOp.
func NewMulOp(a, b, output *tensor.Raw) *MulOp {
	return &MulOp{binaryOp{inputs: []*tensor.Raw{a, b}, output: output}}
}

// Backward computes input gradients for multiplication.
func (op *MulOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	a, b := op.inputs[0], op.inputs[1]

	gradA := reduceBroadcast(backend.Mul(outputGrad, b), a.Shape(), backend)
	gradB := reduceBroadcast(backend.Mul(outputGrad, a), b.Shape(), backend)

	return []*tensor.Raw{gradA, gradB}
}
