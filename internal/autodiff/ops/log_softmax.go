package ops

import (
	"math"

	"github.com/born-ml/ffnet/internal/tensor"
)

// LogSoftmaxOp represents y = log_softmax(x) along dim.
//
// Backward:
//
//	∂L/∂x_i = g_i - softmax(x)_i * Σ_j g_j
//
// where the sum runs over the normalized dimension and softmax(x) = exp(y).
type LogSoftmaxOp struct {
	unaryOp
	dim int
}

// NewLogSoftmaxOp creates a new LogSoftmaxOp. dim must already be normalized.
func NewLogSoftmaxOp(input, output *tensor.Raw, dim int) *LogSoftmaxOp {
	return &LogSoftmaxOp{unaryOp: unaryOp{input: input, output: output}, dim: dim}
}

// Backward computes the input gradient.
func (op *LogSoftmaxOp) Backward(outputGrad *tensor.Raw, _ tensor.Backend) []*tensor.Raw {
	grad := like(op.input)
	shape := op.output.Shape()

	if len(shape) == 1 {
		logSoftmaxGrad(grad.Data(), op.output.Data(), outputGrad.Data(), 1)
		return []*tensor.Raw{grad}
	}

	rows, cols := shape[0], shape[1]
	if op.dim == 1 {
		for i := 0; i < rows; i++ {
			logSoftmaxGrad(grad.Row(i), op.output.Row(i), outputGrad.Row(i), 1)
		}
		return []*tensor.Raw{grad}
	}

	for j := 0; j < cols; j++ {
		logSoftmaxGrad(grad.Data()[j:], op.output.Data()[j:], outputGrad.Data()[j:], cols)
	}
	return []*tensor.Raw{grad}
}

// logSoftmaxGrad walks one normalized slice of length n = len(y)/stride
// starting at index 0 with the given stride.
func logSoftmaxGrad(dst, y, g []float64, stride int) {
	sum := 0.0
	for i := 0; i < len(y); i += stride {
		sum += g[i]
	}
	for i := 0; i < len(y); i += stride {
		dst[i] = g[i] - math.Exp(y[i])*sum
	}
}
