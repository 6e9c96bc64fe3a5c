package ops

import "github.com/born-ml/ffnet/internal/tensor"

// ReLUOp represents the ReLU activation: output = max(0, x).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0
type ReLUOp struct {
	unaryOp
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(input, output *tensor.Raw) *ReLUOp {
	return &ReLUOp{unaryOp{input: input, output: output}}
}

// Backward masks the output gradient by the sign of the input.
func (op *ReLUOp) Backward(outputGrad *tensor.Raw, _ tensor.Backend) []*tensor.Raw {
	grad := like(op.input)
	dst := grad.Data()
	g := outputGrad.Data()
	for i, x := range op.input.Data() {
		if x > 0 {
			dst[i] = g[i]
		}
	}
	return []*tensor.Raw{grad}
}

// SigmoidOp represents σ(x) = 1 / (1 + e^-x).
//
// Backward pass uses the saved output:
//   - dσ/dx = σ(x) * (1 - σ(x))
type SigmoidOp struct {
	unaryOp
}

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp(input, output *tensor.Raw) *SigmoidOp {
	return &SigmoidOp{unaryOp{input: input, output: output}}
}

// Backward computes grad_x = outputGrad * σ * (1 - σ).
func (op *SigmoidOp) Backward(outputGrad *tensor.Raw, _ tensor.Backend) []*tensor.Raw {
	grad := like(op.input)
	dst := grad.Data()
	g := outputGrad.Data()
	for i, s := range op.output.Data() {
		dst[i] = g[i] * s * (1 - s)
	}
	return []*tensor.Raw{grad}
}

// TanhOp represents tanh(x).
//
// Backward pass:
//   - d(tanh(x))/dx = 1 - tanh²(x)
type TanhOp struct {
	unaryOp
}

// NewTanhOp creates a new TanhOp.
func NewTanhOp(input, output *tensor.Raw) *TanhOp {
	return &TanhOp{unaryOp{input: input, output: output}}
}

// Backward computes grad_x = outputGrad * (1 - y²).
func (op *TanhOp) Backward(outputGrad *tensor.Raw, _ tensor.Backend) []*tensor.Raw {
	grad := like(op.input)
	dst := grad.Data()
	g := outputGrad.Data()
	for i, y := range op.output.Data() {
		dst[i] = g[i] * (1 - y*y)
	}
	return []*tensor.Raw{grad}
}
