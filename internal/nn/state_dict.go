package nn

import (
	"fmt"
	"sort"

	"github.com/born-ml/ffnet/internal/tensor"
)

// StateDict returns the classifier parameters keyed "layers.<i>.weight" and
// "layers.<i>.bias". The returned Raws share storage with the parameters.
func (c *Classifier) StateDict() map[string]*tensor.Raw {
	state := make(map[string]*tensor.Raw, 2*len(c.layers))
	for i, layer := range c.layers {
		state[fmt.Sprintf("layers.%d.weight", i)] = layer.Weight().Tensor().Raw()
		state[fmt.Sprintf("layers.%d.bias", i)] = layer.Bias().Tensor().Raw()
	}
	return state
}

// LoadStateDict copies values from state into the parameters in place.
// Every key must be present with the exact parameter shape; extra keys
// are rejected.
func (c *Classifier) LoadStateDict(state map[string]*tensor.Raw) error {
	own := c.StateDict()

	for name := range state {
		if _, ok := own[name]; !ok {
			return fmt.Errorf("unexpected parameter %q", name)
		}
	}

	for _, name := range StateKeys(own) {
		src, ok := state[name]
		if !ok {
			return fmt.Errorf("missing parameter %q", name)
		}
		dst := own[name]
		if !src.Shape().Equal(dst.Shape()) {
			return fmt.Errorf("%w: parameter %q has shape %v, want %v",
				tensor.ErrShapeMismatch, name, src.Shape(), dst.Shape())
		}
		copy(dst.Data(), src.Data())
	}
	return nil
}

// StateKeys returns the keys of state in sorted order.
func StateKeys(state map[string]*tensor.Raw) []string {
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
