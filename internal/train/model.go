// Package train runs the classifier's training and validation loops.
//
// A TrainingLoop performs, per batch: zero gradients, forward pass, loss,
// backward pass over the autodiff tape, optimizer step. A ValidationPass
// scores the model on held-out batches with the tape switched off and the
// model in eval mode. Fit alternates the two once per epoch.
package train

import (
	"github.com/born-ml/ffnet/internal/autodiff"
	"github.com/born-ml/ffnet/internal/data"
	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/internal/tensor"
)

// Model is what the loops need from a classifier. *nn.Classifier implements it.
type Model interface {
	Predict(input *tensor.Tensor) (*tensor.Tensor, error)
	Logits(input *tensor.Tensor) (*tensor.Tensor, error)
	Parameters() []*nn.Parameter
	Train()
	Eval()
	IsTraining() bool
}

// Backend is the autodiff-capable backend both loops run on.
type Backend = autodiff.BackwardCapable

var _ Model = (*nn.Classifier)(nil)

// forward flattens the batch inputs and runs the model, returning
// log-probabilities or logits depending on what the loss expects.
func forward(model Model, loss nn.LossFunction, inputs *tensor.Raw, backend Backend) (*tensor.Tensor, error) {
	flat, err := data.Flatten(inputs)
	if err != nil {
		return nil, err
	}
	x := tensor.New(flat, backend)
	if loss.Convention() == nn.Logits {
		return model.Logits(x)
	}
	return model.Predict(x)
}

// CountCorrect returns how many predictions equal their label.
func CountCorrect(predictions, labels []int) int {
	n := 0
	for i, p := range predictions {
		if i < len(labels) && p == labels[i] {
			n++
		}
	}
	return n
}
