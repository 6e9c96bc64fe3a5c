package cpu

import (
	"math"

	"github.com/born-ml/ffnet/internal/tensor"
)

// Exp computes e^x element-wise.
func (cpu *CPUBackend) Exp(x *tensor.Raw) *tensor.Raw {
	return cpu.unary(x, math.Exp)
}

// ReLU computes max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.Raw) *tensor.Raw {
	return cpu.unary(x, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Sigmoid computes 1 / (1 + e^-x) element-wise.
// Negative inputs use e^x / (1 + e^x) so large magnitudes do not overflow.
func (cpu *CPUBackend) Sigmoid(x *tensor.Raw) *tensor.Raw {
	return cpu.unary(x, func(v float64) float64 {
		if v >= 0 {
			return 1 / (1 + math.Exp(-v))
		}
		e := math.Exp(v)
		return e / (1 + e)
	})
}

// Tanh computes the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.Raw) *tensor.Raw {
	return cpu.unary(x, math.Tanh)
}

func (cpu *CPUBackend) unary(x *tensor.Raw, fn func(float64) float64) *tensor.Raw {
	result := tensor.MustRaw(x.Shape(), cpu.device)
	dst := result.Data()
	for i, v := range x.Data() {
		dst[i] = fn(v)
	}
	return result
}
