package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/ffnet/internal/tensor"
)

// Sum reduces all elements to a [1] tensor.
func (cpu *CPUBackend) Sum(x *tensor.Raw) *tensor.Raw {
	result := tensor.MustRaw(tensor.Shape{1}, cpu.device)
	result.Data()[0] = floats.Sum(x.Data())
	return result
}

// SumDim sums a 2-D tensor along dim.
// With keepDim the reduced dimension stays as size 1.
//
// Example:
//
//	x: [3, 5], dim=0 → [5]    (keepDim=false)
//	x: [3, 5], dim=1 → [3, 1] (keepDim=true)
func (cpu *CPUBackend) SumDim(x *tensor.Raw, dim int, keepDim bool) *tensor.Raw {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("sumdim: only 2D tensors supported, got %dD", len(shape)))
	}
	dim = normalizeDim("sumdim", dim, 2)
	rows, cols := shape[0], shape[1]

	if dim == 0 {
		outShape := tensor.Shape{cols}
		if keepDim {
			outShape = tensor.Shape{1, cols}
		}
		result := tensor.MustRaw(outShape, cpu.device)
		dst := result.Data()
		for i := 0; i < rows; i++ {
			floats.Add(dst, x.Row(i))
		}
		return result
	}

	outShape := tensor.Shape{rows}
	if keepDim {
		outShape = tensor.Shape{rows, 1}
	}
	result := tensor.MustRaw(outShape, cpu.device)
	dst := result.Data()
	for i := 0; i < rows; i++ {
		dst[i] = floats.Sum(x.Row(i))
	}
	return result
}

// Argmax returns the index of the maximum along dim of a 1-D or 2-D tensor.
// Ties resolve to the lowest index.
func (cpu *CPUBackend) Argmax(x *tensor.Raw, dim int) []int {
	shape := x.Shape()
	switch len(shape) {
	case 1:
		normalizeDim("argmax", dim, 1)
		return []int{floats.MaxIdx(x.Data())}
	case 2:
	default:
		panic(fmt.Sprintf("argmax: only 1D and 2D tensors supported, got %dD", len(shape)))
	}

	dim = normalizeDim("argmax", dim, 2)
	rows, cols := shape[0], shape[1]

	if dim == 1 {
		out := make([]int, rows)
		for i := range out {
			out[i] = floats.MaxIdx(x.Row(i))
		}
		return out
	}

	data := x.Data()
	out := make([]int, cols)
	for j := 0; j < cols; j++ {
		best := data[j]
		for i := 1; i < rows; i++ {
			if v := data[i*cols+j]; v > best {
				best = v
				out[j] = i
			}
		}
	}
	return out
}
