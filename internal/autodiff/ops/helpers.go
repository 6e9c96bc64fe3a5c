package ops

import (
	"fmt"

	"github.com/born-ml/ffnet/internal/tensor"
)

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when a row vector was broadcast in the forward pass.
//
// Example:
//
//	Forward: x[3,4] + b[4] -> c[3,4]  (b was broadcast over rows)
//	Backward: grad_c[3,4] -> grad_b[4] (sum along dim 0)
func reduceBroadcast(grad *tensor.Raw, target tensor.Shape, backend tensor.Backend) *tensor.Raw {
	gradShape := grad.Shape()

	// Clone so that accumulation on the tape never aliases a shared gradient.
	if gradShape.Equal(target) {
		return grad.Clone()
	}

	if len(gradShape) == 2 && target.IsRowVector(gradShape[1]) {
		return backend.SumDim(grad, 0, len(target) == 2)
	}

	panic(fmt.Sprintf("reduceBroadcast: cannot reduce gradient %v to %v", gradShape, target))
}

// like allocates a zero-filled tensor with x's shape and device.
func like(x *tensor.Raw) *tensor.Raw {
	return tensor.MustRaw(x.Shape(), x.Device())
}

// scalarGrad returns the single value of a [1] output gradient.
func scalarGrad(outputGrad *tensor.Raw) float64 {
	if outputGrad.NumElements() != 1 {
		panic(fmt.Sprintf("expected scalar output gradient, got shape %v", outputGrad.Shape()))
	}
	return outputGrad.Data()[0]
}
