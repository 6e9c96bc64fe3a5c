package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnet/internal/tensor"
)

// MatMul performs matrix multiplication.
// For 2D tensors: (M, K) @ (K, N) -> (M, N)
// The operands are wrapped as gonum Dense matrices without copying.
func (cpu *CPUBackend) MatMul(a, b *tensor.Raw) *tensor.Raw {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]

	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result := tensor.MustRaw(tensor.Shape{m, n}, cpu.device)

	lhs := mat.NewDense(m, k, a.Data())
	rhs := mat.NewDense(k, n, b.Data())
	out := mat.NewDense(m, n, result.Data())
	out.Mul(lhs, rhs)

	return result
}
