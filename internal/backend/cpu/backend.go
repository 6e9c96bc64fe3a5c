// Package cpu implements the CPU backend on top of gonum.
package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/ffnet/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
// Dense kernels (matmul, sums, argmax) delegate to gonum.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with row broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.Raw) *tensor.Raw {
	return cpu.binary("add", a, b, floats.AddTo, func(x, y float64) float64 { return x + y })
}

// Mul performs element-wise multiplication with row broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.Raw) *tensor.Raw {
	return cpu.binary("mul", a, b, floats.MulTo, func(x, y float64) float64 { return x * y })
}

// binary applies an element-wise op. Equal shapes take the vectorized gonum
// path; a broadcast row is applied to each row of a.
func (cpu *CPUBackend) binary(
	name string,
	a, b *tensor.Raw,
	vec func(dst, s, t []float64) []float64,
	scalar func(x, y float64) float64,
) *tensor.Raw {
	outShape, broadcast, err := tensor.BroadcastRows(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result := tensor.MustRaw(outShape, cpu.device)
	if !broadcast {
		vec(result.Data(), a.Data(), b.Data())
		return result
	}

	row := b.Data()
	for i := 0; i < a.Rows(); i++ {
		dst := result.Row(i)
		src := a.Row(i)
		for j := range dst {
			dst[j] = scalar(src[j], row[j])
		}
	}
	return result
}

// Transpose swaps the two dimensions of a 2-D tensor.
func (cpu *CPUBackend) Transpose(x *tensor.Raw) *tensor.Raw {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("transpose: only 2D tensors supported, got %dD", len(shape)))
	}

	rows, cols := shape[0], shape[1]
	result := tensor.MustRaw(tensor.Shape{cols, rows}, cpu.device)
	src := x.Data()
	dst := result.Data()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst[j*rows+i] = src[i*cols+j]
		}
	}
	return result
}

// normalizeDim resolves a negative dimension against rank.
func normalizeDim(op string, dim, rank int) int {
	if dim < 0 {
		dim += rank
	}
	if dim < 0 || dim >= rank {
		panic(fmt.Sprintf("%s: dimension %d out of range for tensor of rank %d", op, dim, rank))
	}
	return dim
}
