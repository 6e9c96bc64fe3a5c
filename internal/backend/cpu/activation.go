package cpu

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/ffnet/internal/tensor"
)

// LogSoftmax computes log(softmax(x)) along dim of a 1-D or 2-D tensor.
//
// The max is subtracted before exponentiating:
//
//	log_softmax(x_i) = x_i - max - log(Σ exp(x_j - max))
//
// so large logits never overflow and every output is <= 0.
func (cpu *CPUBackend) LogSoftmax(x *tensor.Raw, dim int) *tensor.Raw {
	shape := x.Shape()
	result := tensor.MustRaw(shape, cpu.device)

	switch len(shape) {
	case 1:
		normalizeDim("log_softmax", dim, 1)
		logSoftmaxSlice(result.Data(), x.Data())
		return result
	case 2:
	default:
		panic(fmt.Sprintf("log_softmax: only 1D and 2D tensors supported, got %dD", len(shape)))
	}

	dim = normalizeDim("log_softmax", dim, 2)
	rows, cols := shape[0], shape[1]

	if dim == 1 {
		for i := 0; i < rows; i++ {
			logSoftmaxSlice(result.Row(i), x.Row(i))
		}
		return result
	}

	// dim 0: gather each column, normalize, scatter back.
	src := x.Data()
	dst := result.Data()
	col := make([]float64, rows)
	out := make([]float64, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			col[i] = src[i*cols+j]
		}
		logSoftmaxSlice(out, col)
		for i := 0; i < rows; i++ {
			dst[i*cols+j] = out[i]
		}
	}
	return result
}

// logSoftmaxSlice writes the log-softmax of src into dst.
func logSoftmaxSlice(dst, src []float64) {
	maxVal := floats.Max(src)
	sum := 0.0
	for _, v := range src {
		sum += math.Exp(v - maxVal)
	}
	logSum := maxVal + math.Log(sum)
	for i, v := range src {
		dst[i] = v - logSum
	}
}
