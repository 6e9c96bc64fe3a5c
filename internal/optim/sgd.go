package optim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/internal/tensor"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	params     []*nn.Parameter
	lr         float64
	momentum   float64
	velocities map[*nn.Parameter][]float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter][]float64),
	}
}

// Step performs a single optimization step in place.
func (s *SGD) Step() {
	for _, param := range s.params {
		data := param.Tensor().Data()
		grad := param.Grad().Data()

		if s.momentum == 0 {
			// param -= lr * grad
			floats.AddScaled(data, -s.lr, grad)
			continue
		}

		velocity, ok := s.velocities[param]
		if !ok {
			velocity = make([]float64, len(grad))
			s.velocities[param] = velocity
		}
		// velocity = momentum * velocity + grad
		floats.Scale(s.momentum, velocity)
		floats.Add(velocity, grad)
		// param -= lr * velocity
		floats.AddScaled(data, -s.lr, velocity)
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// Momentum returns the momentum factor.
func (s *SGD) Momentum() float64 {
	return s.momentum
}

// StateDict exports velocity buffers as "velocity.{param_index}".
// Without momentum, returns an empty map.
func (s *SGD) StateDict() map[string]*tensor.Raw {
	state := make(map[string]*tensor.Raw)
	if s.momentum == 0 {
		return state
	}
	bufferState(state, "velocity", s.params, s.velocities)
	return state
}

// LoadStateDict restores velocity buffers.
func (s *SGD) LoadStateDict(state map[string]*tensor.Raw) error {
	return loadBufferState(state, "velocity", s.params, s.velocities)
}
