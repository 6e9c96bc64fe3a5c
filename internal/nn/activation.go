package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/ffnet/internal/tensor"
)

// Activation names a hidden-layer nonlinearity.
type Activation int

// Supported activations.
const (
	ActivationReLU Activation = iota
	ActivationSigmoid
	ActivationTanh
)

// String returns the config name of the activation.
func (a Activation) String() string {
	switch a {
	case ActivationReLU:
		return "relu"
	case ActivationSigmoid:
		return "sigmoid"
	case ActivationTanh:
		return "tanh"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// ParseActivation parses "relu", "sigmoid" or "tanh" (case-insensitive).
func ParseActivation(s string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "relu":
		return ActivationReLU, nil
	case "sigmoid":
		return ActivationSigmoid, nil
	case "tanh":
		return ActivationTanh, nil
	default:
		return 0, fmt.Errorf("%w: unknown activation %q", ErrInvalidConfig, s)
	}
}

// NewActivation returns the module for a.
func NewActivation(a Activation) (Module, error) {
	switch a {
	case ActivationReLU:
		return NewReLU(), nil
	case ActivationSigmoid:
		return NewSigmoid(), nil
	case ActivationTanh:
		return NewTanh(), nil
	default:
		return nil, fmt.Errorf("%w: unknown activation %v", ErrInvalidConfig, a)
	}
}

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
type ReLU struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU) Forward(input *tensor.Tensor) *tensor.Tensor {
	backend := input.Backend()
	if reluBackend, ok := backend.(tensor.ReLUBackend); ok {
		return tensor.New(reluBackend.ReLU(input.Raw()), backend)
	}
	panic("ReLU: backend must implement ReLU operation")
}

// Parameters returns nil (ReLU has no trainable parameters).
func (r *ReLU) Parameters() []*Parameter {
	return nil
}

// Sigmoid is a sigmoid activation module.
//
// Applies the element-wise function: σ(x) = 1 / (1 + exp(-x))
type Sigmoid struct{}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid() *Sigmoid {
	return &Sigmoid{}
}

// Forward applies Sigmoid activation.
func (s *Sigmoid) Forward(input *tensor.Tensor) *tensor.Tensor {
	backend := input.Backend()
	if sigmoidBackend, ok := backend.(tensor.SigmoidBackend); ok {
		return tensor.New(sigmoidBackend.Sigmoid(input.Raw()), backend)
	}
	panic("Sigmoid: backend must implement Sigmoid operation")
}

// Parameters returns nil (Sigmoid has no trainable parameters).
func (s *Sigmoid) Parameters() []*Parameter {
	return nil
}

// Tanh is a hyperbolic tangent activation module.
type Tanh struct{}

// NewTanh creates a new Tanh activation module.
func NewTanh() *Tanh {
	return &Tanh{}
}

// Forward applies Tanh activation.
func (t *Tanh) Forward(input *tensor.Tensor) *tensor.Tensor {
	backend := input.Backend()
	if tanhBackend, ok := backend.(tensor.TanhBackend); ok {
		return tensor.New(tanhBackend.Tanh(input.Raw()), backend)
	}
	panic("Tanh: backend must implement Tanh operation")
}

// Parameters returns nil (Tanh has no trainable parameters).
func (t *Tanh) Parameters() []*Parameter {
	return nil
}
