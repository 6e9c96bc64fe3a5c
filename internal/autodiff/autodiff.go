// Package autodiff implements automatic differentiation using the decorator pattern.
//
// AutodiffBackend wraps any Backend implementation and adds gradient tracking
// through a GradientTape.
//
// Architecture:
//   - Decorator pattern: AutodiffBackend[B] wraps any Backend implementation
//   - GradientTape: Records operations during forward pass
//   - Operation interface: Each op (Add, Mul, MatMul) implements backward pass
//   - Reverse-mode AD: Computes gradients efficiently using chain rule
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	x, _ := tensor.FromSlice([]float64{2}, tensor.Shape{1}, backend)
//	y := x.Mul(x) // y = x²
//
//	grads := autodiff.Backward(y, backend)
//	fmt.Println(grads[x.Raw()].Data()) // dy/dx = 2x = [4]
package autodiff

import (
	"fmt"

	"github.com/born-ml/ffnet/internal/autodiff/ops"
	"github.com/born-ml/ffnet/internal/tensor"
)

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements tensor.Backend, the activation backends and tensor.LossBackend,
// and records every op in a GradientTape while recording is on.
//
// Type parameter B must satisfy the tensor.Backend interface. Activations and
// losses additionally require B to implement the matching optional interface.
type AutodiffBackend[B tensor.Backend] struct {
	inner B             // Wrapped backend
	tape  *GradientTape // Records operations for backpropagation
}

// New creates a new AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
// Useful for:
//   - Starting/stopping recording
//   - Clearing tape between iterations
//   - Inspecting recorded operations
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(a, c *tensor.Raw) *tensor.Raw {
	result := b.inner.Add(a, c)
	b.tape.Record(ops.NewAddOp(a, c, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(a, c *tensor.Raw) *tensor.Raw {
	result := b.inner.Mul(a, c)
	b.tape.Record(ops.NewMulOp(a, c, result))
	return result
}

// MatMul performs matrix multiplication and records the operation.
func (b *AutodiffBackend[B]) MatMul(a, c *tensor.Raw) *tensor.Raw {
	result := b.inner.MatMul(a, c)
	b.tape.Record(ops.NewMatMulOp(a, c, result))
	return result
}

// Transpose transposes a tensor and records the operation.
//
// The CPU backend copies data for a transpose, so the result is a new Raw.
// Without a TransposeOp on the tape, gradients computed for the transposed
// tensor would never reach the original.
func (b *AutodiffBackend[B]) Transpose(x *tensor.Raw) *tensor.Raw {
	result := b.inner.Transpose(x)
	b.tape.Record(ops.NewTransposeOp(x, result))
	return result
}

// Exp computes e^x and records the operation.
func (b *AutodiffBackend[B]) Exp(x *tensor.Raw) *tensor.Raw {
	result := b.inner.Exp(x)
	b.tape.Record(ops.NewExpOp(x, result))
	return result
}

// LogSoftmax computes log-probabilities along dim and records the operation.
func (b *AutodiffBackend[B]) LogSoftmax(x *tensor.Raw, dim int) *tensor.Raw {
	result := b.inner.LogSoftmax(x, dim)
	if dim < 0 {
		dim += len(x.Shape())
	}
	b.tape.Record(ops.NewLogSoftmaxOp(x, result, dim))
	return result
}

// Sum reduces to a [1] tensor and records the operation.
func (b *AutodiffBackend[B]) Sum(x *tensor.Raw) *tensor.Raw {
	result := b.inner.Sum(x)
	b.tape.Record(ops.NewSumOp(x, result))
	return result
}

// SumDim sums along dim and records the operation.
func (b *AutodiffBackend[B]) SumDim(x *tensor.Raw, dim int, keepDim bool) *tensor.Raw {
	result := b.inner.SumDim(x, dim, keepDim)
	if dim < 0 {
		dim += len(x.Shape())
	}
	b.tape.Record(ops.NewSumDimOp(x, result, dim))
	return result
}

// Argmax is not differentiable and is never recorded.
func (b *AutodiffBackend[B]) Argmax(x *tensor.Raw, dim int) []int {
	return b.inner.Argmax(x, dim)
}

// ReLU applies ReLU activation and records the operation.
func (b *AutodiffBackend[B]) ReLU(x *tensor.Raw) *tensor.Raw {
	inner, ok := any(b.inner).(tensor.ReLUBackend)
	if !ok {
		panic(fmt.Sprintf("relu: backend %s does not support ReLU", b.inner.Name()))
	}
	result := inner.ReLU(x)
	b.tape.Record(ops.NewReLUOp(x, result))
	return result
}

// Sigmoid applies sigmoid activation: σ(x) = 1 / (1 + exp(-x)).
func (b *AutodiffBackend[B]) Sigmoid(x *tensor.Raw) *tensor.Raw {
	inner, ok := any(b.inner).(tensor.SigmoidBackend)
	if !ok {
		panic(fmt.Sprintf("sigmoid: backend %s does not support Sigmoid", b.inner.Name()))
	}
	result := inner.Sigmoid(x)
	b.tape.Record(ops.NewSigmoidOp(x, result))
	return result
}

// Tanh applies hyperbolic tangent activation and records the operation.
func (b *AutodiffBackend[B]) Tanh(x *tensor.Raw) *tensor.Raw {
	inner, ok := any(b.inner).(tensor.TanhBackend)
	if !ok {
		panic(fmt.Sprintf("tanh: backend %s does not support Tanh", b.inner.Name()))
	}
	result := inner.Tanh(x)
	b.tape.Record(ops.NewTanhOp(x, result))
	return result
}

// NLLLoss computes the negative log-likelihood and records the operation.
func (b *AutodiffBackend[B]) NLLLoss(logProbs *tensor.Raw, labels []int) *tensor.Raw {
	result := b.lossBackend("nll_loss").NLLLoss(logProbs, labels)
	b.tape.Record(ops.NewNLLOp(logProbs, result, labels))
	return result
}

// CrossEntropy computes the fused cross-entropy over logits and records
// the operation.
func (b *AutodiffBackend[B]) CrossEntropy(logits *tensor.Raw, labels []int) *tensor.Raw {
	result := b.lossBackend("cross_entropy").CrossEntropy(logits, labels)
	b.tape.Record(ops.NewCrossEntropyOp(logits, result, labels))
	return result
}

func (b *AutodiffBackend[B]) lossBackend(op string) tensor.LossBackend {
	inner, ok := any(b.inner).(tensor.LossBackend)
	if !ok {
		panic(fmt.Sprintf("%s: backend %s does not support losses", op, b.inner.Name()))
	}
	return inner
}
