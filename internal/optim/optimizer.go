// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers read the gradients accumulated on each nn.Parameter.
//
// Example usage:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.001})
//
//	for _, batch := range batches {
//	    optimizer.ZeroGrad()
//	    out, _ := model.Predict(x)
//	    loss, _ := criterion.Forward(out, batch.Labels)
//	    grads := autodiff.Backward(loss, backend)
//	    nn.AccumulateGrads(model.Parameters(), grads)
//	    optimizer.Step()
//	}
package optim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/internal/tensor"
)

// ErrUnknownOptimizer is returned by New for an unsupported name.
var ErrUnknownOptimizer = errors.New("unknown optimizer")

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - ZeroGrad: Clear gradients before next iteration
//   - GetLR / SetLR: learning rate access for monitoring and scheduling
type Optimizer interface {
	// Step applies one update to every parameter from its accumulated gradient.
	Step()

	// ZeroGrad clears all parameter gradients.
	//
	// Gradients accumulate across backward passes, so this must run before
	// each step's backward pass.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR updates the learning rate.
	SetLR(lr float64)
}

// Stateful is implemented by optimizers with per-parameter buffers.
type Stateful interface {
	StateDict() map[string]*tensor.Raw
	LoadStateDict(state map[string]*tensor.Raw) error
}

// New builds an optimizer by name: "sgd", "momentum" (SGD with momentum 0.9
// unless given) or "adam".
func New(name string, params []*nn.Parameter, lr, momentum float64) (Optimizer, error) {
	switch normalizeName(name) {
	case "", "sgd":
		return NewSGD(params, SGDConfig{LR: lr, Momentum: momentum}), nil
	case "momentum":
		if momentum == 0 {
			momentum = 0.9
		}
		return NewSGD(params, SGDConfig{LR: lr, Momentum: momentum}), nil
	case "adam":
		return NewAdam(params, AdamConfig{LR: lr}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOptimizer, name)
	}
}

// Known reports whether New accepts name.
func Known(name string) bool {
	switch normalizeName(name) {
	case "", "sgd", "momentum", "adam":
		return true
	}
	return false
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func zeroGrad(params []*nn.Parameter) {
	for _, param := range params {
		param.ZeroGrad()
	}
}

// bufferState exports per-parameter buffers keyed "<prefix>.<param_index>".
func bufferState(state map[string]*tensor.Raw, prefix string, params []*nn.Parameter, buffers map[*nn.Parameter][]float64) {
	for i, param := range params {
		buf, ok := buffers[param]
		if !ok {
			continue
		}
		raw := tensor.MustRaw(param.Shape(), tensor.CPU)
		copy(raw.Data(), buf)
		state[fmt.Sprintf("%s.%d", prefix, i)] = raw
	}
}

// loadBufferState is the inverse of bufferState.
func loadBufferState(state map[string]*tensor.Raw, prefix string, params []*nn.Parameter, buffers map[*nn.Parameter][]float64) error {
	for i, param := range params {
		raw, ok := state[fmt.Sprintf("%s.%d", prefix, i)]
		if !ok {
			continue
		}
		if !raw.Shape().Equal(param.Shape()) {
			return fmt.Errorf("%w: %s.%d has shape %v, parameter has %v",
				tensor.ErrShapeMismatch, prefix, i, raw.Shape(), param.Shape())
		}
		buffers[param] = append([]float64(nil), raw.Data()...)
	}
	return nil
}
