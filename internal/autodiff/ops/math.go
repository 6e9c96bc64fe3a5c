package ops

import (
	"github.com/born-ml/ffnet/internal/tensor"
)

// ExpOp represents output = e^x. Its derivative is the output itself.
type ExpOp struct {
	unaryOp
}

// NewExpOp creates a new ExpOp.
func NewExpOp(input, output *tensor.Raw) *ExpOp {
	return &ExpOp{unaryOp{input: input, output: output}}
}

// Backward computes grad_x = outputGrad * e^x.
func (op *ExpOp) Backward(outputGrad *tensor.Raw, backend tensor.Backend) []*tensor.Raw {
	return []*tensor.Raw{backend.Mul(outputGrad, op.output)}
}

// SumOp reduces a tensor to a [1] total. Every input element receives the
// output gradient.
type SumOp struct {
	unaryOp
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.Raw) *SumOp {
	return &SumOp{unaryOp{input: input, output: output}}
}

// Backward broadcasts the scalar output gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.Raw, _ tensor.Backend) []*tensor.Raw {
	grad := like(op.input)
	grad.Fill(scalarGrad(outputGrad))
	return []*tensor.Raw{grad}
}

// SumDimOp sums a 2-D tensor along one dimension.
type SumDimOp struct {
	unaryOp
	dim int
}

// NewSumDimOp creates a new SumDimOp. dim must already be normalized to 0 or 1.
func NewSumDimOp(input, output *tensor.Raw, dim int) *SumDimOp {
	return &SumDimOp{unaryOp: unaryOp{input: input, output: output}, dim: dim}
}

// Backward copies each reduced gradient back across the summed dimension.
func (op *SumDimOp) Backward(outputGrad *tensor.Raw, _ tensor.Backend) []*tensor.Raw {
	grad := like(op.input)
	rows, cols := op.input.Rows(), op.input.Cols()
	g := outputGrad.Data()
	for i := 0; i < rows; i++ {
		row := grad.Row(i)
		for j := 0; j < cols; j++ {
			if op.dim == 0 {
				row[j] = g[j]
			} else {
				row[j] = g[i]
			}
		}
	}
	return []*tensor.Raw{grad}
}
