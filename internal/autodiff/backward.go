package autodiff

import (
	"github.com/born-ml/ffnet/internal/tensor"
)

// BackwardCapable is an interface for backends that support backward pass.
// AutodiffBackend implements this interface.
type BackwardCapable interface {
	tensor.Backend
	// Tape returns the gradient tape for backward computation.
	Tape() *GradientTape
	// NoGrad runs fn with recording disabled.
	NoGrad(fn func() error) error
}

// Backward computes gradients of t with respect to every recorded input
// it depends on, seeding t's gradient with ones.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x := tensor.Ones(tensor.Shape{2}, backend)
//	y := x.Mul(x) // y = x²
//	gradients := autodiff.Backward(y, backend)
//	grad := gradients[x.Raw()] // [2, 2]
func Backward(t *tensor.Tensor, backend BackwardCapable) map[*tensor.Raw]*tensor.Raw {
	tape := backend.Tape()

	if tape.NumOps() == 0 {
		panic("backward: no operations recorded (did you forget to call Tape().StartRecording()?)")
	}

	outputGrad := tensor.MustRaw(t.Shape(), backend.Device())
	outputGrad.Fill(1)

	return tape.Backward(t.Raw(), outputGrad, backend)
}
