package ops

import "github.com/born-ml/ffnet/internal/tensor"

// MatMulOp represents a matrix multiplication operation: output = a @ b.
//
// Backward pass:
//   - d(A@B)/dA = outputGrad @ B^T
//   - d(A@B)/dB = A^T @ outputGrad
type MatMulOp struct {
	binaryOp
}

// NewMatMulOp creates a new MatMulOp.
func NewMatMulOp(a, b, output *tensor.Raw) *MatMulOp {
	return &MatMulOp{binaryOp{inputs: []*tensor.Raw{a, b}, output: output}}
}

// Backward computes input gradients for matrix multiplication.
func (op *MatMulOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	a, b := op.inputs[0], op.inputs[1]

	// grad_a = outputGrad @ b^T
	gradA := backend.MatMul(outputGrad, backend.Transpose(b))

	// grad_b = a^T @ outputGrad
	gradB := backend.MatMul(backend.Transpose(a), outputGrad)

	return []*tensor.Raw{gradA, gradB}
}

// TransposeOp represents a 2-D transpose. Its gradient is the transposed
// output gradient.
type TransposeOp struct {
	unaryOp
}

// NewTransposeOp creates a new TransposeOp.
func NewTransposeOp(input, output *tensor.Raw) *TransposeOp {
	return &TransposeOp{unaryOp{input: input, output: output}}
}

// Backward computes the input gradient for transpose.
func (op *TransposeOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	return []*tensor.Raw{backend.Transpose(outputGrad)}
}
