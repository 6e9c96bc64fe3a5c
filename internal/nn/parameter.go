package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/ffnet/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// The gradient is allocated zero-filled at construction and accumulates
// across backward passes until ZeroGrad is called. Shape never changes.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()
//	grad := weight.Grad()
type Parameter struct {
	name   string         // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor // The parameter tensor
	grad   *tensor.Tensor // Accumulated gradient, same shape as tensor
}

// NewParameter creates a new trainable parameter with a zero gradient.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return &Parameter{
		name:   name,
		tensor: t,
		grad:   tensor.Zeros(t.Shape(), t.Backend()),
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.Tensor {
	return p.tensor
}

// Shape returns the parameter shape.
func (p *Parameter) Shape() tensor.Shape {
	return p.tensor.Shape()
}

// Grad returns the accumulated gradient tensor.
func (p *Parameter) Grad() *tensor.Tensor {
	return p.grad
}

// AccumulateGrad adds g into the gradient.
func (p *Parameter) AccumulateGrad(g *tensor.Raw) error {
	if !g.Shape().Equal(p.Shape()) {
		return fmt.Errorf("%w: gradient %v for parameter %q of shape %v",
			tensor.ErrShapeMismatch, g.Shape(), p.name, p.Shape())
	}
	floats.Add(p.grad.Data(), g.Data())
	return nil
}

// ZeroGrad resets the accumulated gradient to zero.
//
// This must be called before each training step; otherwise gradients from
// previous backward passes are summed into the next update.
func (p *Parameter) ZeroGrad() {
	p.grad.Raw().Fill(0)
}

// AccumulateGrads adds the gradients computed by a backward pass into the
// matching parameters. Parameters that did not take part in the recorded
// computation are left untouched. Returns the number of parameters updated.
func AccumulateGrads(params []*Parameter, grads map[*tensor.Raw]*tensor.Raw) (int, error) {
	n := 0
	for _, p := range params {
		g, ok := grads[p.tensor.Raw()]
		if !ok {
			continue
		}
		if err := p.AccumulateGrad(g); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// GradNorm returns the L2 norm of all parameter gradients taken together.
func GradNorm(params []*Parameter) float64 {
	sum := 0.0
	for _, p := range params {
		n := floats.Norm(p.grad.Data(), 2)
		sum += n * n
	}
	return math.Sqrt(sum)
}
